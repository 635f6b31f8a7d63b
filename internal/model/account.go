package model

import (
	"github.com/google/uuid"
)

type Account struct {
	Base
	Email        string      `db:"email" json:"email"`
	Subject      string      `db:"subject" json:"subject"`
	PasswordHash string      `db:"password_hash" json:"-"`
	Level        AccessLevel `db:"access_level" json:"access_level"`
	HospitalID   *uuid.UUID  `db:"hospital_id" json:"hospital_id,omitempty"`
	ProfileIDs   UUIDList    `db:"profile_ids" json:"profile_ids"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateAccountRequest is the admin path for provisioning non-user accounts.
// HospitalID is required iff the level is hospital-tier.
type CreateAccountRequest struct {
	Email      string      `json:"email" binding:"required,email"`
	Password   string      `json:"password" binding:"required,min=8,max=72"`
	Level      AccessLevel `json:"access_level" binding:"required"`
	HospitalID *uuid.UUID  `json:"hospital_id,omitempty"`
}

type UpdateAccountRequest struct {
	Email      *string    `json:"email,omitempty" binding:"omitempty,email"`
	HospitalID *uuid.UUID `json:"hospital_id,omitempty"`
}

type TokenResponse struct {
	AccessToken string   `json:"access_token"`
	Account     *Account `json:"account"`
}
