package auth

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("663a1f0c9b8e4d2a1c3b5e7f", "admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "663a1f0c9b8e4d2a1c3b5e7f" {
		t.Errorf("UserID = %q", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q", claims.Role)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Error("garbage token should fail")
	}
	if _, err := ValidateToken(""); err == nil {
		t.Error("empty token should fail")
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	token, err := GenerateToken("abc", "user")
	if err != nil {
		t.Fatal(err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := ValidateToken(tampered); err == nil {
		t.Error("tampered signature should fail")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("sneakers-are-life")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "sneakers-are-life" {
		t.Fatal("hash must not equal the plain text")
	}

	if !CheckPassword(hash, "sneakers-are-life") {
		t.Error("correct password should verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("wrong password should not verify")
	}
}
