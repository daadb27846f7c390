package handler

import (
	"net/http"

	"main/dto"
	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetUserProfileHandler(c *gin.Context, userRepo *repository.UserRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	user, err := userRepo.FindUser(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "Could not fetch user details")
		return
	}
	if user == nil {
		utils.NotFound(c, "User not found")
		return
	}

	baseURL := utils.GetBaseURL(c)
	links := map[string]dto.UserLink{
		"self":            {Href: baseURL + "/api/user", Method: http.MethodGet},
		"update-email":    {Href: baseURL + "/api/user/email", Method: http.MethodPut},
		"update-password": {Href: baseURL + "/api/user/password", Method: http.MethodPut},
		"delete":          {Href: baseURL + "/api/user", Method: http.MethodDelete},
	}

	utils.Success(c, dto.ToUserProfileResponse(user, links))
}
