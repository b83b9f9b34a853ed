package helpers

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func signedTestToken(t *testing.T, subject string) string {
	t.Helper()
	claims := &CustomClaims{
		Email: "ada@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: subject,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("local-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestValidateTokenFallbackOnlyInDevelopment(t *testing.T) {
	// A malformed base URL makes the JWKS fetch fail immediately, which is
	// the condition the fallback guards.
	t.Setenv("SUPABASE_URL", ":// unreachable")
	token := signedTestToken(t, "b7f6d0a2-0000-0000-0000-000000000001")

	t.Setenv("ENVIRONMENT", "development")
	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("development fallback rejected the token: %v", err)
	}
	if claims.Subject != "b7f6d0a2-0000-0000-0000-000000000001" {
		t.Errorf("subject = %q, want the token subject", claims.Subject)
	}

	t.Setenv("ENVIRONMENT", "production")
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("production must never accept a token it could not verify")
	}
}

func TestValidateTokenRequiresSupabaseURL(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	if _, err := ValidateToken(signedTestToken(t, "x")); err == nil {
		t.Fatal("expected an error without SUPABASE_URL")
	}
}
