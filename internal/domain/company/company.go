package company

import (
	"time"

	"jobboard/internal/common"
)

type Company struct {
	ID           common.UUID `json:"_id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Image        string      `json:"image"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
