package auth

import (
	"errors"
	"testing"
	"time"
)

func TestJWTValidator_RoundTrip(t *testing.T) {
	v := NewJWTValidator([]byte("test-key"))

	token, err := v.Issue("user_1", "a@example.com", time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := v.Validate("Bearer " + token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.UserID != "user_1" {
		t.Errorf("UserID = %q", claims.UserID)
	}
	if claims.Email != "a@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
}

func TestJWTValidator_BarePrefix(t *testing.T) {
	v := NewJWTValidator([]byte("test-key"))
	token, _ := v.Issue("user_1", "a@example.com", time.Hour)

	// Header value without the Bearer prefix is accepted too.
	if _, err := v.Validate(token); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestJWTValidator_Expired(t *testing.T) {
	v := NewJWTValidator([]byte("test-key"))
	token, _ := v.Issue("user_1", "a@example.com", -time.Minute)

	_, err := v.Validate("Bearer " + token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestJWTValidator_WrongKey(t *testing.T) {
	issuer := NewJWTValidator([]byte("key-one"))
	verifier := NewJWTValidator([]byte("key-two"))

	token, _ := issuer.Issue("user_1", "a@example.com", time.Hour)
	if _, err := verifier.Validate("Bearer " + token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTValidator_Garbage(t *testing.T) {
	v := NewJWTValidator([]byte("test-key"))
	if _, err := v.Validate("Bearer not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
