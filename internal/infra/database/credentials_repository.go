package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/peterw/leadreach/internal/entity"
)

type CredentialsRepository struct {
	DB *sql.DB
}

func NewCredentialsRepository(db *sql.DB) *CredentialsRepository {
	return &CredentialsRepository{DB: db}
}

func (r *CredentialsRepository) FindByUserID(ctx context.Context, userID string) (*entity.UserCredentials, error) {
	query := `
		SELECT email_provider, send_from, app_password, sendgrid_key, sendgrid_from, hunter_key, apollo_key
		FROM user_credentials
		WHERE user_id = $1
	`

	var creds entity.UserCredentials
	var provider, sendFrom, appPassword, sendgridKey, sendgridFrom, hunterKey, apolloKey sql.NullString

	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&provider,
		&sendFrom,
		&appPassword,
		&sendgridKey,
		&sendgridFrom,
		&hunterKey,
		&apolloKey,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrCredentialsNotFound
	}
	if err != nil {
		return nil, err
	}

	creds.UserID = userID
	creds.Provider = provider.String
	creds.SendFrom = sendFrom.String
	creds.AppPassword = appPassword.String
	creds.SendgridKey = sendgridKey.String
	creds.SendgridFrom = sendgridFrom.String
	creds.HunterKey = hunterKey.String
	creds.ApolloKey = apolloKey.String

	return &creds, nil
}
