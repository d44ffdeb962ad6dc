package repo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrDuplicate = errors.New("duplicate key")
	ErrInUse     = errors.New("referenced by orders")
)

// UnknownRefError is returned when a tag or fragrance id does not exist.
type UnknownRefError struct {
	Kind string
	IDs  []uuid.UUID
}

func (e *UnknownRefError) Error() string {
	return fmt.Sprintf("unknown %s: %s", e.Kind, joinIDs(e.IDs))
}

const uniqueViolation = "23505"

// MissingProductsError lists product ids that were referenced but do not exist.
type MissingProductsError struct {
	IDs []uuid.UUID
}

func (e *MissingProductsError) Error() string {
	return fmt.Sprintf("products not found: %s", joinIDs(e.IDs))
}

func joinIDs(ids []uuid.UUID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, id.String())
	}
	return strings.Join(parts, ", ")
}

// IsUniqueViolation reports whether err came from a unique constraint,
// whichever driver produced it.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, ErrDuplicate) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func translate(err error) error {
	if IsUniqueViolation(err) && !errors.Is(err, ErrDuplicate) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}
