package handler

import (
	"log"
	"strings"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// RefreshTokenHandler exchanges a valid refresh token for a new token pair.
// The old refresh token is blacklisted so each one can be used once.
func RefreshTokenHandler(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		utils.Unauthorized(c, "Missing or invalid refresh token")
		return
	}
	refreshToken := strings.TrimPrefix(authHeader, "Bearer ")

	if services.IsTokenBlacklisted(refreshToken) {
		utils.Unauthorized(c, "Refresh token has been revoked")
		return
	}

	userID, err := services.ValidateToken(refreshToken, "refresh")
	if err != nil {
		utils.Unauthorized(c, "Invalid or expired refresh token")
		return
	}

	newAccessToken, err := services.GenerateAccessToken(userID)
	if err != nil {
		utils.InternalError(c, "Failed to generate access token")
		return
	}
	newRefreshToken, err := services.GenerateRefreshToken(userID)
	if err != nil {
		utils.InternalError(c, "Failed to generate refresh token")
		return
	}

	if err := services.BlacklistTokens("", refreshToken); err != nil {
		log.Printf("Warning: failed to blacklist rotated refresh token: %v", err)
	}

	utils.Success(c, gin.H{
		"access_token":  newAccessToken,
		"refresh_token": newRefreshToken,
	})
}
