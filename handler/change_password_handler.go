package handler

import (
	"log"

	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,password"`
}

// ChangePasswordHandler verifies the current password, stores the new hash
// and ends every other session so stolen sessions do not survive a reset.
func ChangePasswordHandler(c *gin.Context, userService *usecase.UserService, sessionRepo *repository.SessionRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	if err := userService.ChangePassword(ctx, userID.(string), req.OldPassword, req.NewPassword); err != nil {
		switch err.Error() {
		case "user not found":
			utils.NotFound(c, "User not found")
		case "current password is incorrect":
			utils.Unauthorized(c, "Current password is incorrect")
		case "new password must be different from current password":
			utils.BadRequest(c, "New password must be different from current password")
		default:
			utils.InternalError(c, "Failed to change password")
		}
		return
	}

	if err := sessionRepo.EndAllUserSessions(ctx, userID.(string)); err != nil {
		log.Printf("Warning: failed to end sessions after password change for user %s: %v", userID.(string), err)
	}

	utils.Success(c, gin.H{"message": "Password changed successfully. Please log in again."})
}
