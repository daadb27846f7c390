package utils

import (
	"strings"
	"testing"
)

func TestGenerateRecoveryCodes(t *testing.T) {
	codes, err := GenerateRecoveryCodes()
	if err != nil {
		t.Fatalf("GenerateRecoveryCodes: %v", err)
	}

	if len(codes) != NumRecoveryCodes {
		t.Fatalf("expected %d codes, got %d", NumRecoveryCodes, len(codes))
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		if len(code) != RecoveryCodeLength+1 {
			t.Errorf("code %q has unexpected length %d", code, len(code))
		}
		if !strings.Contains(code, "-") {
			t.Errorf("code %q missing separator", code)
		}
		if code != strings.ToUpper(code) {
			t.Errorf("code %q is not uppercase", code)
		}
		if seen[code] {
			t.Errorf("duplicate code %q", code)
		}
		seen[code] = true
	}
}

// The login path strips the hyphen from user input before hashing, so stored
// hashes have to match the stripped form.
func TestHashRecoveryCodesMatchesNormalizedInput(t *testing.T) {
	codes := []string{"ABCD-1234"}
	hashed := HashRecoveryCodes(codes)

	normalized := strings.ReplaceAll(codes[0], "-", "")
	if hashed[0] != HashString(normalized) {
		t.Error("stored hash does not match the normalized lookup form")
	}
}

func TestHashStringDeterministic(t *testing.T) {
	if HashString("hello") != HashString("hello") {
		t.Error("HashString is not deterministic")
	}
	if HashString("hello") == HashString("world") {
		t.Error("different inputs produced the same hash")
	}
	if len(HashString("hello")) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(HashString("hello")))
	}
}
