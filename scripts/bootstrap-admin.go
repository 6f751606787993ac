package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/projectdesk/projectdesk/internal/auth"
	"github.com/projectdesk/projectdesk/internal/model"
	"github.com/projectdesk/projectdesk/internal/repository"
)

type output struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Projects int64  `json:"projects"`
	Password string `json:"password,omitempty"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		email       = flag.String("email", "admin@projectdesk.local", "Admin user email")
		name        = flag.String("name", "Administrator", "Admin user display name")
		password    = flag.String("password", "", "Admin password (generated when empty)")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	out, err := ensureAdmin(ctx, repo, *email, *name, *password)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	out.Projects, err = repo.ProjectCountByOwner(ctx, out.UserID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "count projects:", err)
		os.Exit(1)
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Println(out.UserID)
		if out.Password != "" {
			fmt.Println(out.Password)
		}
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}

// ensureAdmin creates the admin account, or promotes an existing account
// with the same email. A fresh password is only generated for new accounts.
func ensureAdmin(ctx context.Context, repo *repository.Repository, email, name, password string) (*output, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := repo.GetUserByEmail(ctx, email)
	if err == nil {
		if existing.IsAdmin() {
			return &output{UserID: existing.ID, Email: existing.Email, Role: string(existing.Role)}, nil
		}
		if err := repo.PromoteUser(ctx, existing.ID, model.RoleAdmin); err != nil {
			return nil, fmt.Errorf("promote user: %w", err)
		}
		return &output{UserID: existing.ID, Email: existing.Email, Role: string(model.RoleAdmin)}, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	generated := password == ""
	if generated {
		password, err = generatePassword()
		if err != nil {
			return nil, fmt.Errorf("generate password: %w", err)
		}
	}

	hasher := auth.NewHasher(0)
	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	out := &output{UserID: user.ID, Email: user.Email, Role: string(user.Role)}
	if generated {
		out.Password = password
	}
	return out, nil
}

func generatePassword() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
