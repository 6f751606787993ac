package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: uniqueViolationCode}

	if !isUniqueViolation(pgErr) {
		t.Error("expected unique violation to be detected")
	}
	if !isUniqueViolation(fmt.Errorf("exec: %w", pgErr)) {
		t.Error("expected wrapped unique violation to be detected")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("foreign key violation is not a unique violation")
	}
	if isUniqueViolation(errors.New("some other error")) {
		t.Error("plain error is not a unique violation")
	}
	if isUniqueViolation(nil) {
		t.Error("nil is not a unique violation")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: foreignKeyViolationCode}

	if !isForeignKeyViolation(pgErr) {
		t.Error("expected foreign key violation to be detected")
	}
	if isForeignKeyViolation(&pgconn.PgError{Code: uniqueViolationCode}) {
		t.Error("unique violation is not a foreign key violation")
	}
}
