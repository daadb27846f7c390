package handler

import (
	"log"

	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func DeleteUserHandler(c *gin.Context, userRepo *repository.UserRepo, sessionRepo *repository.SessionRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	ctx := c.Request.Context()

	if err := userRepo.DeleteUserByID(ctx, userID.(string)); err != nil {
		if err.Error() == "user not found" {
			utils.NotFound(c, "User not found")
			return
		}
		utils.InternalError(c, "Failed to delete account")
		return
	}

	if err := sessionRepo.EndAllUserSessions(ctx, userID.(string)); err != nil {
		log.Printf("Warning: failed to end sessions for deleted user %s: %v", userID.(string), err)
	}
	c.SetCookie("session_id", "", -1, "/", "", true, true)

	utils.Success(c, gin.H{"message": "Account deleted successfully"})
}
