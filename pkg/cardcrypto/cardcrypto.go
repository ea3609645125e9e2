package cardcrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
)

// Payload layout: 12-byte nonce followed by the AES-GCM ciphertext, base64
// encoded. The vault stores only this form.
const nonceLength = 12

var ErrCipherTooShort = errors.New("cipher payload too short")

// Encryptor seals and opens tokenized card payloads.
type Encryptor struct {
	aead cipher.AEAD
}

// NewEncryptor derives a 256-bit key from the configured secret.
func NewEncryptor(secret string) (*Encryptor, error) {
	if secret == "" {
		return nil, errors.New("encryption secret is empty")
	}

	key := sha256.Sum256([]byte(secret))

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &Encryptor{aead: aead}, nil
}

// MustNewEncryptor creates an Encryptor or panics on startup misconfiguration.
func MustNewEncryptor(secret string) *Encryptor {
	e, err := NewEncryptor(secret)
	if err != nil {
		panic("cardcrypto: " + err.Error())
	}

	return e
}

// Encrypt seals the plaintext and returns the base64 encoded payload.
func (e *Encryptor) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, nonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := e.aead.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a payload produced by Encrypt. It fails when the payload was
// tampered with or sealed under a different key.
func (e *Encryptor) Decrypt(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode cipher payload: %w", err)
	}

	if len(raw) < nonceLength {
		return "", ErrCipherTooShort
	}

	plaintext, err := e.aead.Open(nil, raw[:nonceLength], raw[nonceLength:], nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt payload: %w", err)
	}

	return string(plaintext), nil
}
