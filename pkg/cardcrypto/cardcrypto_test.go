package cardcrypto

import (
	"strings"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	e, err := NewEncryptor("test-secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	plaintext := "4111111111111111|123|12/30|JOHN DOE"
	sealed, err := e.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if sealed == plaintext {
		t.Fatal("payload was not encrypted")
	}

	got, err := e.Decrypt(sealed)
	if err != nil {
		t.Fatalf("decrypt failed: %v", err)
	}
	if got != plaintext {
		t.Fatalf("round trip mismatch: got %q", got)
	}
}

func TestEncryptProducesUniquePayloads(t *testing.T) {
	e := MustNewEncryptor("test-secret")

	first, err := e.Encrypt("same data")
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	second, err := e.Encrypt("same data")
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct payloads for repeated plaintext")
	}
}

func TestDecryptTamperedPayload(t *testing.T) {
	e := MustNewEncryptor("test-secret")

	sealed, err := e.Encrypt("card data")
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}

	tampered := strings.Map(func(r rune) rune {
		if r == 'A' {
			return 'B'
		}
		return 'A'
	}, sealed)

	if _, err := e.Decrypt(tampered); err == nil {
		t.Fatal("expected tampered payload to fail decryption")
	}
}

func TestDecryptWrongKey(t *testing.T) {
	sealed, err := MustNewEncryptor("key-one").Encrypt("card data")
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}

	if _, err := MustNewEncryptor("key-two").Decrypt(sealed); err == nil {
		t.Fatal("expected decryption under a different key to fail")
	}
}

func TestNewEncryptorEmptySecret(t *testing.T) {
	if _, err := NewEncryptor(""); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
