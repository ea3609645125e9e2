package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/checkout/internal/dal/postgres"
	"github.com/corray333/backend-labs/checkout/internal/service/models/token"
	"github.com/jackc/pgx/v5"
)

// TokenRepository stores tokenized card records in PostgreSQL.
type TokenRepository struct {
	client *postgres.Client
}

// NewTokenRepository creates a new token repository.
func NewTokenRepository(client *postgres.Client) *TokenRepository {
	return &TokenRepository{
		client: client,
	}
}

// GetByToken resolves one vault record.
func (r *TokenRepository) GetByToken(ctx context.Context, tok string) (*token.TokenizedCard, error) {
	query, args, err := sq.Select(
		"token",
		"last4",
		"cipher",
		"status",
		"created_at",
	).
		From("card_tokens").
		Where(sq.Eq{"token": tok}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var card token.TokenizedCard
	err = r.client.Pool().QueryRow(ctx, query, args...).Scan(
		&card.Token,
		&card.Last4,
		&card.Cipher,
		&card.Status,
		&card.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, token.ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query token: %w", err)
	}

	return &card, nil
}

// Insert stores a new vault record.
func (r *TokenRepository) Insert(ctx context.Context, card *token.TokenizedCard) error {
	query, args, err := sq.Insert("card_tokens").
		Columns(
			"token",
			"last4",
			"cipher",
			"status",
			"created_at",
		).
		Values(
			card.Token,
			card.Last4,
			card.Cipher,
			card.Status,
			card.CreatedAt,
		).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.client.Pool().Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert token: %w", err)
	}

	return nil
}
