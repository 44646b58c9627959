package entity

import (
	"time"
)

// AccountStatus is the closed set of user account states.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusSuspended AccountStatus = "suspended"
)

// ValidAccountStatus reports whether s is a recognized account status.
func ValidAccountStatus(s AccountStatus) bool {
	return s == AccountStatusActive || s == AccountStatusSuspended
}

type User struct {
	ID                    string        `json:"id"`
	Email                 string        `json:"email"`
	Password              string        `json:"-"`
	Name                  string        `json:"name"`
	Role                  string        `json:"role"`
	Status                AccountStatus `json:"status"`
	SubscriptionExpiresAt time.Time     `json:"subscription_expires_at"`
	CreatedAt             time.Time     `json:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at"`
}

func NewUser(id, email, password, name, role string) *User {
	now := time.Now().UTC()
	return &User{
		ID:        id,
		Email:     email,
		Password:  password,
		Name:      name,
		Role:      role,
		Status:    AccountStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
