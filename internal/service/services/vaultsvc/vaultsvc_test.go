package vaultsvc

import (
	"context"
	"errors"
	"testing"

	"github.com/corray333/backend-labs/checkout/internal/service/models/apperrors"
	"github.com/corray333/backend-labs/checkout/internal/service/models/token"
	"github.com/corray333/backend-labs/checkout/pkg/cardcrypto"
)

type stubTokenRepo struct {
	cards    map[string]*token.TokenizedCard
	inserted *token.TokenizedCard
}

func (r *stubTokenRepo) GetByToken(ctx context.Context, tok string) (*token.TokenizedCard, error) {
	card, ok := r.cards[tok]
	if !ok {
		return nil, token.ErrTokenNotFound
	}
	return card, nil
}

func (r *stubTokenRepo) Insert(ctx context.Context, card *token.TokenizedCard) error {
	r.inserted = card
	if r.cards == nil {
		r.cards = map[string]*token.TokenizedCard{}
	}
	r.cards[card.Token] = card
	return nil
}

func newTestVault(t *testing.T, repo *stubTokenRepo) *VaultService {
	t.Helper()
	return MustNewVaultService(
		WithTokenRepository(repo),
		WithEncryptor(cardcrypto.MustNewEncryptor("test-secret")),
	)
}

func TestValidateTokenRoundTrip(t *testing.T) {
	repo := &stubTokenRepo{}
	svc := newTestVault(t, repo)

	card, err := svc.Tokenize(context.Background(), CardModel{
		Number:         "4111 1111 1111 1111",
		CVV:            "123",
		Expiry:         "12/27",
		CardholderName: "Jordan Diaz",
	})
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if card.Last4 != "1111" {
		t.Errorf("Last4 = %q, want 1111", card.Last4)
	}

	if err := svc.ValidateToken(context.Background(), card.Token); err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
}

func TestValidateTokenUnknown(t *testing.T) {
	svc := newTestVault(t, &stubTokenRepo{})

	err := svc.ValidateToken(context.Background(), "nope")
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Code != "INVALID_TOKEN" {
		t.Fatalf("error = %v, want INVALID_TOKEN", err)
	}
}

func TestValidateTokenCorruptedPayload(t *testing.T) {
	repo := &stubTokenRepo{cards: map[string]*token.TokenizedCard{
		"tok-bad": {Token: "tok-bad", Cipher: "not-a-ciphertext"},
	}}
	svc := newTestVault(t, repo)

	err := svc.ValidateToken(context.Background(), "tok-bad")
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Code != "TOKEN_DECRYPT_ERROR" {
		t.Fatalf("error = %v, want TOKEN_DECRYPT_ERROR", err)
	}
}

func TestValidateTokenWrongKey(t *testing.T) {
	repo := &stubTokenRepo{}
	sealer := MustNewVaultService(
		WithTokenRepository(repo),
		WithEncryptor(cardcrypto.MustNewEncryptor("another-secret")),
	)
	card, err := sealer.Tokenize(context.Background(), CardModel{Number: "4111111111111111", CVV: "123", Expiry: "12/27"})
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	svc := newTestVault(t, repo)
	validateErr := svc.ValidateToken(context.Background(), card.Token)
	var appErr *apperrors.Error
	if !errors.As(validateErr, &appErr) || appErr.Code != "TOKEN_DECRYPT_ERROR" {
		t.Fatalf("error = %v, want TOKEN_DECRYPT_ERROR", validateErr)
	}
}

func TestTokenizeRejectsShortNumber(t *testing.T) {
	svc := newTestVault(t, &stubTokenRepo{})

	if _, err := svc.Tokenize(context.Background(), CardModel{Number: "4111"}); err == nil {
		t.Fatal("expected error for short card number")
	}
}
