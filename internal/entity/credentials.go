package entity

import (
	"context"
	"errors"
)

var ErrCredentialsNotFound = errors.New("no credentials stored for user")

// UserCredentials is the per-user provider configuration row. One row per
// user; protected by row-level security on the database side.
type UserCredentials struct {
	UserID       string `json:"user_id"`
	Provider     string `json:"provider"` // gmail or sendgrid
	SendFrom     string `json:"send_from"`
	AppPassword  string `json:"app_password,omitempty"`
	SendgridKey  string `json:"sendgrid_key,omitempty"`
	SendgridFrom string `json:"sendgrid_from,omitempty"`
	HunterKey    string `json:"hunter_key,omitempty"`
	ApolloKey    string `json:"apollo_key,omitempty"`
}

type CredentialsRepositoryInterface interface {
	FindByUserID(ctx context.Context, userID string) (*UserCredentials, error)
}
