package handler

import (
	"main/middleware"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type registrationRequest struct {
	Username string `json:"username" binding:"required,min=4,max=20"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,password"`
}

func RegistrationHandler(c *gin.Context, userService *usecase.UserService) {
	var req registrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	user, err := userService.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if err.Error() == "username already exists" {
			middleware.TrackAuthAttempt("failure", "register")
			utils.Conflict(c, "Username already exists")
			return
		}
		utils.InternalError(c, "Failed to create user")
		return
	}

	middleware.TrackAuthAttempt("success", "register")
	utils.Created(c, gin.H{
		"user_id":  user.UserID,
		"username": user.Username,
		"email":    user.Email,
	})
}
