package handler

import (
	"strings"

	"main/utils"

	"github.com/gin-gonic/gin"
)

// respondDomainError maps usecase and repository errors onto the response
// envelope. Errors naming a missing resource become 404s, validation
// messages become 400s and everything else is a 500 with a generic message
// so internal details never leak to the client.
func respondDomainError(c *gin.Context, err error, fallback string) {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		utils.NotFound(c, msg)
	case strings.Contains(msg, "already exists"):
		utils.Conflict(c, msg)
	case strings.Contains(msg, "required"),
		strings.Contains(msg, "must"),
		strings.Contains(msg, "maximum"),
		strings.Contains(msg, "exceeds"),
		strings.Contains(msg, "already completed"),
		strings.Contains(msg, "limit"):
		utils.BadRequest(c, msg)
	default:
		utils.InternalError(c, fallback)
	}
}
