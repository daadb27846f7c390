package services

import (
	"errors"
	"fmt"
	"time"

	"main/utils"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "studybuddy"

// GenerateAccessToken creates a short-lived access token for the user.
func GenerateAccessToken(userID string) (string, error) {
	return generateToken(userID, "access",
		time.Duration(utils.JWTExpirationTime)*time.Second)
}

// GenerateRefreshToken creates a long-lived refresh token for the user.
func GenerateRefreshToken(userID string) (string, error) {
	return generateToken(userID, "refresh",
		time.Duration(utils.RefreshTokenExpirationTime)*time.Second)
}

func generateToken(userID string, tokenType string, lifetime time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"type":    tokenType,
		"iss":     tokenIssuer,
		"iat":     now.Unix(),
		"exp":     now.Add(lifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTSecretKey))
}

// ValidateToken parses the token, checks the signature, issuer and type claim
// and returns the user ID.
func ValidateToken(tokenString string, expectedType string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(utils.JWTSecretKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	if tokenType, _ := claims["type"].(string); tokenType != expectedType {
		return "", errors.New("invalid token type")
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", errors.New("token missing user ID")
	}
	return userID, nil
}
