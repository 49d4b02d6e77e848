// Package user defines the contract of the external user service used
// to enrich order detail views with profile data.
package user

import (
	"context"
	"time"
)

// User is the profile returned by the user service.
type User struct {
	ID        string
	Name      string
	Email     string
	TaxVat    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Gateway looks up user profiles by id.
type Gateway interface {
	GetUserByID(ctx context.Context, id string) (*User, error)
}
