package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		ConstraintName: constraint,
		Detail:         "Key already exists.",
	}
}

func TestClassifyConflict(t *testing.T) {
	cases := []struct {
		constraint string
		want       error
	}{
		{constraintExternalID, ErrDuplicateExternalID},
		{constraintEmail, ErrDuplicateEmail},
		{constraintAutoAdmin, ErrDuplicateAdmin},
	}
	for _, tt := range cases {
		got := classifyConflict(uniqueViolation(tt.constraint))
		if !errors.Is(got, tt.want) {
			t.Errorf("constraint %s: got %v, want %v", tt.constraint, got, tt.want)
		}
	}

	// Violations of unrelated constraints and non-postgres errors pass
	// through unchanged.
	other := uniqueViolation("uniq_categories_name")
	if got := classifyConflict(other); got != other {
		t.Errorf("unknown constraint should pass through, got %v", got)
	}
	plain := errors.New("connection refused")
	if got := classifyConflict(plain); got != plain {
		t.Errorf("plain error should pass through, got %v", got)
	}

	// Wrapped postgres errors still classify.
	wrapped := fmt.Errorf("create account: %w", uniqueViolation(constraintEmail))
	if got := classifyConflict(wrapped); !errors.Is(got, ErrDuplicateEmail) {
		t.Errorf("wrapped violation should classify, got %v", got)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(uniqueViolation(constraintEmail)) {
		t.Error("unique violation not recognized")
	}
	if !IsUniqueViolation(fmt.Errorf("seed: %w", uniqueViolation("anything"))) {
		t.Error("wrapped unique violation not recognized")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}) {
		t.Error("foreign key violation misclassified as unique")
	}
	if IsUniqueViolation(errors.New("connection refused")) {
		t.Error("plain error misclassified")
	}
}
