package vaultsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/corray333/backend-labs/checkout/internal/dal/interfaces/itokenrepo"
	"github.com/corray333/backend-labs/checkout/internal/service/models/apperrors"
	"github.com/corray333/backend-labs/checkout/internal/service/models/token"
	"github.com/corray333/backend-labs/checkout/pkg/cardcrypto"
	"github.com/google/uuid"
)

// VaultService resolves payment tokens to sealed card payloads and verifies
// they are intact.
type VaultService struct {
	tokenRepo itokenrepo.ITokenRepository
	encryptor *cardcrypto.Encryptor
}

// option is a function that configures the VaultService.
type option func(*VaultService)

// MustNewVaultService creates a new VaultService.
func MustNewVaultService(opts ...option) *VaultService {
	s := &VaultService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithTokenRepository sets the token repository for the VaultService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithTokenRepository(tokenRepo itokenrepo.ITokenRepository) option {
	return func(s *VaultService) {
		s.tokenRepo = tokenRepo
	}
}

// WithEncryptor sets the payload encryptor for the VaultService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithEncryptor(encryptor *cardcrypto.Encryptor) option {
	return func(s *VaultService) {
		s.encryptor = encryptor
	}
}

// ValidateToken resolves a token and verifies its sealed payload decrypts.
// An unknown token and a corrupted payload are distinct failures.
func (s *VaultService) ValidateToken(ctx context.Context, tok string) error {
	card, err := s.tokenRepo.GetByToken(ctx, tok)
	if errors.Is(err, token.ErrTokenNotFound) {
		slog.WarnContext(ctx, "Payment token not found")

		return apperrors.InvalidToken(tok)
	}
	if err != nil {
		return fmt.Errorf("failed to resolve token: %w", err)
	}

	if _, err := s.encryptor.Decrypt(card.Cipher); err != nil {
		slog.ErrorContext(ctx, "Failed to decrypt card payload", "error", err)

		return apperrors.TokenDecryptError()
	}

	return nil
}

// CardModel carries raw card data into Tokenize. It is never persisted in the
// clear.
type CardModel struct {
	Number         string
	CVV            string
	Expiry         string
	CardholderName string
}

// Tokenize seals the card data and stores a vault record for it. The token
// surface stays internal; it exists for seeding and fixtures.
func (s *VaultService) Tokenize(ctx context.Context, card CardModel) (*token.TokenizedCard, error) {
	number := cleanCardNumber(card.Number)
	if len(number) < 12 {
		return nil, errors.New("card number too short")
	}

	payload := fmt.Sprintf("%s|%s|%s|%s", number, card.CVV, card.Expiry, card.CardholderName)
	cipher, err := s.encryptor.Encrypt(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to seal card payload: %w", err)
	}

	record := &token.TokenizedCard{
		Token:     uuid.NewString(),
		Last4:     number[len(number)-4:],
		Cipher:    cipher,
		Status:    "ACTIVE",
		CreatedAt: time.Now(),
	}

	if err := s.tokenRepo.Insert(ctx, record); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Card tokenized", "last4", record.Last4)

	return record, nil
}

func cleanCardNumber(number string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
}
