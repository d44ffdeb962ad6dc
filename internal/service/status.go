package service

import (
	"strings"

	"github.com/Skotchmaster/scent_shop/internal/models"
)

// ParseStatus accepts any member of the status set. Transitions are not
// restricted: every status may follow every other, including itself.
func ParseStatus(s string) (models.OrderStatus, error) {
	st := models.OrderStatus(strings.TrimSpace(s))
	if !st.Valid() {
		return "", &StatusError{Got: s, Allowed: models.OrderStatuses}
	}
	return st, nil
}
