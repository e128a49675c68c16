// jwt_test.go — Unit tests for JWT generation and parsing.
package middleware

import (
	"testing"

	"github.com/ltnqls11/pdf-study-api/internal/models"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := "test-secret"
	user := &models.User{Username: "alice", Plan: models.PlanPremium}

	token, err := GenerateJWT(user, secret)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	claims, err := ParseJWT(token, secret)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.Username != "alice" {
		t.Errorf("username = %q, want alice", claims.Username)
	}
	if claims.Plan != models.PlanPremium {
		t.Errorf("plan = %q, want premium", claims.Plan)
	}
	if claims.Subject != "alice" {
		t.Errorf("subject = %q, want alice", claims.Subject)
	}
}

func TestParseJWTRejects(t *testing.T) {
	user := &models.User{Username: "alice", Plan: models.PlanFree}
	token, err := GenerateJWT(user, "right-secret")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"wrong secret", token, "wrong-secret"},
		{"garbage token", "not.a.jwt", "right-secret"},
		{"empty token", "", "right-secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseJWT(tt.token, tt.secret); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}
