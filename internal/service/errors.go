package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/Skotchmaster/scent_shop/internal/repo"
	"gorm.io/gorm"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
	ErrConflict   = errors.New("conflict")   // 409
	ErrForbidden  = errors.New("forbidden")  // 403

	ErrAlreadyRated = fmt.Errorf("%w: already rated", ErrConflict)
)

// StatusError rejects a status outside the accepted set.
type StatusError struct {
	Got     string
	Allowed []models.OrderStatus
}

func (e *StatusError) Error() string {
	names := make([]string, 0, len(e.Allowed))
	for _, s := range e.Allowed {
		names = append(names, string(s))
	}
	return "Invalid status. Allowed: " + strings.Join(names, ", ")
}

func (e *StatusError) Unwrap() error {
	return ErrValidation
}

// Detail strips the sentinel prefix from a service error message.
func Detail(err error) string {
	msg := err.Error()
	for _, s := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrForbidden} {
		if errors.Is(err, s) {
			return strings.TrimPrefix(msg, s.Error()+": ")
		}
	}
	return msg
}

// mapRepoErr turns repository failures into service sentinels; what tells
// "missing" apart is the entity name.
func mapRepoErr(err error, entity string) error {
	var missing *repo.MissingProductsError
	var unknown *repo.UnknownRefError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s not found", ErrNotFound, entity)
	case errors.As(err, &missing):
		return fmt.Errorf("%w: %s", ErrNotFound, missing.Error())
	case errors.As(err, &unknown):
		return fmt.Errorf("%w: %s", ErrValidation, unknown.Error())
	case errors.Is(err, repo.ErrDuplicate):
		return fmt.Errorf("%w: %s with this name already exists", ErrConflict, entity)
	default:
		return err
	}
}
