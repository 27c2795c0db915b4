package auth

import (
	"errors"
	"testing"
	"time"

	"battlefun/internal/apperrors"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	now := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
	tokens, err := NewTokens("secret", time.Hour, func() time.Time { return now })
	if err != nil {
		t.Fatalf("new tokens: %v", err)
	}
	tok, err := tokens.Issue("player-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	got, err := tokens.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != "player-1" {
		t.Fatalf("subject = %s, want player-1", got)
	}
}

func TestVerifyRejects(t *testing.T) {
	now := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
	clock := now
	tokens, _ := NewTokens("secret", time.Hour, func() time.Time { return clock })
	other, _ := NewTokens("other-secret", time.Hour, func() time.Time { return clock })

	tok, err := tokens.Issue("player-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := other.Verify(tok); !errors.Is(err, apperrors.ErrAuthenticationFailed) {
		t.Fatalf("wrong secret: expected authentication failure, got %v", err)
	}
	if _, err := tokens.Verify(""); !errors.Is(err, apperrors.ErrAuthenticationFailed) {
		t.Fatalf("empty token: expected authentication failure, got %v", err)
	}
	if _, err := tokens.Verify("garbage"); !errors.Is(err, apperrors.ErrAuthenticationFailed) {
		t.Fatalf("garbage token: expected authentication failure, got %v", err)
	}

	clock = now.Add(2 * time.Hour)
	if _, err := tokens.Verify(tok); !errors.Is(err, apperrors.ErrAuthenticationFailed) {
		t.Fatalf("expired token: expected authentication failure, got %v", err)
	}
}

func TestNewTokensValidation(t *testing.T) {
	if _, err := NewTokens(" ", time.Hour, nil); err == nil {
		t.Fatal("expected error for blank secret")
	}
	if _, err := NewTokens("s", 0, nil); err == nil {
		t.Fatal("expected error for zero ttl")
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer  abc ", "abc", true},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := BearerToken(tt.header)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("BearerToken(%q) = %q, %v; want %q, %v", tt.header, got, ok, tt.want, tt.ok)
		}
	}
}
