package token

import (
	"errors"
	"time"
)

// ErrTokenNotFound indicates the vault has no record for a token.
var ErrTokenNotFound = errors.New("token not found")

// TokenizedCard is a vault record. Cipher holds the sealed card payload; only
// Last4 is kept in the clear.
type TokenizedCard struct {
	Token     string    `json:"token"`
	Last4     string    `json:"last4"`
	Cipher    string    `json:"-"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
