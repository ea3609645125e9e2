package itokenrepo

import (
	"context"

	"github.com/corray333/backend-labs/checkout/internal/service/models/token"
)

// ITokenRepository is the card vault storage.
type ITokenRepository interface {
	GetByToken(ctx context.Context, tok string) (*token.TokenizedCard, error)
	Insert(ctx context.Context, card *token.TokenizedCard) error
}
