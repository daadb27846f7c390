package handler

import (
	"log"
	"net/http"

	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
)

// MaxActiveSessions caps concurrent sessions per user. Logging in past the
// cap ends the least recently active session instead of rejecting the login.
const MaxActiveSessions = 5

type loginRequest struct {
	Username      string `json:"username" binding:"required"`
	Password      string `json:"password" binding:"required"`
	TwoFactorCode string `json:"two_factor_code"`
}

func LoginHandler(c *gin.Context, userService *usecase.UserService, sessionRepo *repository.SessionRepo) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	ctx := c.Request.Context()

	user, err := userService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		utils.InternalError(c, "Authentication failed")
		return
	}
	if user == nil {
		middleware.TrackAuthAttempt("failure", "password")
		utils.Unauthorized(c, "Invalid username or password")
		return
	}

	if user.TwoFactorEnabled {
		if req.TwoFactorCode == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":               "Two-factor code required",
				"two_factor_required": true,
			})
			return
		}
		if !totp.Validate(req.TwoFactorCode, user.TwoFactorSecret) {
			middleware.TrackAuthAttempt("failure", "2fa")
			utils.Unauthorized(c, "Invalid two-factor code")
			return
		}
	}

	count, err := sessionRepo.CountActiveSessions(ctx, user.UserID)
	if err != nil {
		utils.InternalError(c, "Failed to check active sessions")
		return
	}
	if count >= MaxActiveSessions {
		if err := sessionRepo.EndLeastActiveSession(ctx, user.UserID); err != nil {
			log.Printf("Warning: failed to end least active session for user %s: %v", user.UserID, err)
		}
	}

	if err := middleware.CreateSession(c, user.UserID, sessionRepo); err != nil {
		utils.InternalError(c, "Failed to create session")
		return
	}

	accessToken, err := services.GenerateAccessToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}
	refreshToken, err := services.GenerateRefreshToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "Failed to generate refresh token")
		return
	}

	middleware.TrackAuthAttempt("success", "password")
	utils.Success(c, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user": gin.H{
			"user_id":  user.UserID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}
