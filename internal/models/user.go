package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser is an operator allowed to manage the catalog
type AdminUser struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
