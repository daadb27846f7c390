package handler

import (
	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type changeEmailRequest struct {
	NewEmail string `json:"new_email" binding:"required,email"`
}

func ChangeEmailHandler(c *gin.Context, userRepo *repository.UserRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req changeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid email address")
		return
	}

	ctx := c.Request.Context()

	user, err := userRepo.FindUser(ctx, userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to fetch user")
		return
	}
	if user == nil {
		utils.NotFound(c, "User not found")
		return
	}
	if user.Email == req.NewEmail {
		utils.BadRequest(c, "New email matches the current one")
		return
	}

	if err := userRepo.UpdateUserEmail(ctx, userID.(string), req.NewEmail); err != nil {
		utils.InternalError(c, "Failed to update email")
		return
	}

	utils.Success(c, gin.H{"message": "Email updated successfully"})
}
