package models

import (
	"time"

	"github.com/google/uuid"
)

const RoleAdmin = "admin"

type Admin struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	PassHash  []byte    `json:"-"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Client is a studio customer with access to the proofing portal.
type Client struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	PassHash  []byte    `json:"-"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
