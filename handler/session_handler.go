package handler

import (
	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetActiveSessionsHandler(c *gin.Context, sessionRepo *repository.SessionRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	sessions, err := sessionRepo.GetUserActiveSessions(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to fetch sessions")
		return
	}

	utils.Success(c, gin.H{"sessions": sessions})
}

// EndSessionHandler ends one session by ID. Only the session owner can end it.
func EndSessionHandler(c *gin.Context, sessionRepo *repository.SessionRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	sessionID := c.Param("id")
	ctx := c.Request.Context()

	session, err := sessionRepo.GetSession(ctx, sessionID)
	if err != nil {
		utils.InternalError(c, "Failed to fetch session")
		return
	}
	if session == nil || session.UserID != userID.(string) {
		utils.NotFound(c, "Session not found")
		return
	}

	if err := sessionRepo.EndSession(ctx, sessionID); err != nil {
		utils.InternalError(c, "Failed to end session")
		return
	}

	utils.Success(c, gin.H{"message": "Session ended"})
}

func LogoutAllSessionsHandler(c *gin.Context, sessionRepo *repository.SessionRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	if err := sessionRepo.EndAllUserSessions(c.Request.Context(), userID.(string)); err != nil {
		utils.InternalError(c, "Failed to end all sessions")
		return
	}

	c.SetCookie("session_id", "", -1, "/", "", true, true)

	utils.Success(c, gin.H{"message": "Successfully logged out of all sessions"})
}
