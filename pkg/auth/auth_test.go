package auth

import "testing"

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("wolof123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "wolof123" {
		t.Fatal("password stored in clear")
	}
	if !CheckPassword(hash, "wolof123") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "wolof124") {
		t.Fatal("wrong password accepted")
	}
}

func TestTokenRoundtrip(t *testing.T) {
	token, err := GenerateToken(42, "mamadou", "vendor")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.VendorID != 42 || claims.Username != "mamadou" || claims.Role != "vendor" {
		t.Fatalf("claims = %+v", claims)
	}
	if claims.Issuer != "distriops" {
		t.Fatalf("issuer = %q", claims.Issuer)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}

	// A token signed with a different secret must not validate.
	t.Setenv("JWT_SECRET", "other-secret")
	token, err := GenerateToken(1, "x", "vendor")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	t.Setenv("JWT_SECRET", "")
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("token signed with a different secret validated")
	}
}
