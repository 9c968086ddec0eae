package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kanban-board-api/internal/response"
)

// principalFromContext reads the authenticated user id the auth
// middleware stored on the request. A miss means the route was wired
// without the middleware; respond 401 and abort.
func principalFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return uuid.Nil, false
	}

	userID, ok := value.(uuid.UUID)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	return userID, true
}

// pathUUID parses a UUID path parameter, responding 400 on malformed input
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
