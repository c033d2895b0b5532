package tests

import (
	"strings"
	"testing"

	"eventapi/utils"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	token, err := utils.GenerateToken("ada@example.com", 42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	uid, err := utils.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if uid != 42 {
		t.Errorf("userId = %d, want 42", uid)
	}
}

func TestVerifyToken_RejectsTampering(t *testing.T) {
	token, err := utils.GenerateToken("ada@example.com", 42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %s", token)
	}
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]

	if _, err := utils.VerifyToken(tampered); err == nil {
		t.Error("tampered token must not verify")
	}
}

func TestVerifyToken_RejectsGarbage(t *testing.T) {
	if _, err := utils.VerifyToken("definitely.not.ajwt"); err == nil {
		t.Error("garbage must not verify")
	}
}

func TestHashPassword_Roundtrip(t *testing.T) {
	hash, err := utils.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse" {
		t.Fatal("password stored in plain text")
	}

	if !utils.CheckPasswordHash("correct horse", hash) {
		t.Error("correct password should verify")
	}
	if utils.CheckPasswordHash("wrong", hash) {
		t.Error("wrong password must not verify")
	}
}
