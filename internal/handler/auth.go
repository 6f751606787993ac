package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/projectdesk/projectdesk/internal/handler/dto"
	"github.com/projectdesk/projectdesk/internal/service"
)

// AuthHandler handles registration and login requests.
type AuthHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:    svc,
		logger: logger,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.svc.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_registered", "user_id", user.ID)

	writeJSON(w, http.StatusCreated, dto.ToRegisterResponse(user))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TokenResponse{Token: token})
}

// handleServiceError maps auth service errors to HTTP responses.
func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNameRequired):
		writeError(w, http.StatusBadRequest, "Name is required")
	case errors.Is(err, service.ErrEmailRequired):
		writeError(w, http.StatusBadRequest, "Email is required")
	case errors.Is(err, service.ErrPasswordRequired):
		writeError(w, http.StatusBadRequest, "Password is required")
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, "Email already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "An internal error occurred")
	}
}
