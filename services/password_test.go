package services

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Sup3r!Secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Sup3r!Secret" {
		t.Fatal("password stored in plain text")
	}

	ok, err := VerifyPassword(hash, "Sup3r!Secret")
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Error("correct password did not verify")
	}

	ok, err = VerifyPassword(hash, "wrong-password")
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok {
		t.Error("wrong password verified")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("Sup3r!Secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := HashPassword("Sup3r!Secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password are identical, salt missing")
	}
}

func TestComparePasswords(t *testing.T) {
	hash, err := HashPassword("Sup3r!Secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if !ComparePasswords(hash, "Sup3r!Secret") {
		t.Error("correct password rejected")
	}
	if ComparePasswords(hash, "other") {
		t.Error("wrong password accepted")
	}
	if ComparePasswords(strings.Replace(hash, "$", "#", 1), "Sup3r!Secret") {
		t.Error("malformed hash accepted")
	}
}
