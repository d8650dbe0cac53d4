package api

import (
	"net/http"

	"chat-relay/auth"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) ListUsers(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	users, err := h.users.List(c.Request.Context(), identity, auth.TokenFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
