package mailer

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestResendMailer_SendVerification(t *testing.T) {
	var got sendRequest
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewResendMailer("rk_test", "noreply@checkmate.app", "CheckMate", slog.Default()).WithEndpoint(srv.URL)

	err := m.SendVerification(context.Background(), "alice@example.com", "http://api.test/v1/auth/verify?token=abc")
	if err != nil {
		t.Fatalf("SendVerification() error = %v", err)
	}

	if gotAuth != "Bearer rk_test" {
		t.Errorf("Authorization = %q, want Bearer rk_test", gotAuth)
	}
	if got.From != "CheckMate <noreply@checkmate.app>" {
		t.Errorf("From = %q", got.From)
	}
	if len(got.To) != 1 || got.To[0] != "alice@example.com" {
		t.Errorf("To = %v", got.To)
	}
	if !strings.Contains(got.HTML, "http://api.test/v1/auth/verify?token=abc") {
		t.Error("mail body should contain the verification link")
	}
}

func TestResendMailer_SendVerification_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	m := NewResendMailer("rk_bad", "noreply@checkmate.app", "CheckMate", slog.Default()).WithEndpoint(srv.URL)

	if err := m.SendVerification(context.Background(), "alice@example.com", "http://x"); err == nil {
		t.Error("expected error for rejected delivery")
	}
}

func TestNoopMailer(t *testing.T) {
	m := NewNoopMailer(slog.Default())
	if err := m.SendVerification(context.Background(), "alice@example.com", "http://x"); err != nil {
		t.Errorf("NoopMailer should never fail, got %v", err)
	}
}
