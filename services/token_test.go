package services

import (
	"testing"
	"time"

	"main/utils"

	"github.com/golang-jwt/jwt/v5"
)

func init() {
	utils.JWTSecretKey = "test_secret_key"
	utils.JWTExpirationTime = 3600
	utils.RefreshTokenExpirationTime = 604800
}

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken("user-123")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	userID, err := ValidateToken(token, "access")
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("expected user-123, got %q", userID)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken("user-456")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	userID, err := ValidateToken(token, "refresh")
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != "user-456" {
		t.Errorf("expected user-456, got %q", userID)
	}
}

func TestValidateTokenRejectsWrongType(t *testing.T) {
	refresh, err := GenerateRefreshToken("user-123")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	if _, err := ValidateToken(refresh, "access"); err == nil {
		t.Error("expected refresh token to be rejected as access token")
	}

	access, err := GenerateAccessToken("user-123")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := ValidateToken(access, "refresh"); err == nil {
		t.Error("expected access token to be rejected as refresh token")
	}
}

func TestValidateTokenRejectsWrongSignature(t *testing.T) {
	claims := jwt.MapClaims{
		"user_id": "user-123",
		"type":    "access",
		"iss":     tokenIssuer,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("some_other_key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ValidateToken(signed, "access"); err == nil {
		t.Error("expected token signed with a different key to be rejected")
	}
}

func TestValidateTokenRejectsWrongIssuer(t *testing.T) {
	claims := jwt.MapClaims{
		"user_id": "user-123",
		"type":    "access",
		"iss":     "someone-else",
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(utils.JWTSecretKey))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ValidateToken(signed, "access"); err == nil {
		t.Error("expected token with wrong issuer to be rejected")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	claims := jwt.MapClaims{
		"user_id": "user-123",
		"type":    "access",
		"iss":     tokenIssuer,
		"iat":     time.Now().Add(-2 * time.Hour).Unix(),
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(utils.JWTSecretKey))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ValidateToken(signed, "access"); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestValidateTokenRejectsMissingUserID(t *testing.T) {
	claims := jwt.MapClaims{
		"type": "access",
		"iss":  tokenIssuer,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(utils.JWTSecretKey))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ValidateToken(signed, "access"); err == nil {
		t.Error("expected token without user_id to be rejected")
	}
}
