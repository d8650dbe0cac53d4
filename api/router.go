package api

import (
	"log/slog"
	"net/http"

	"chat-relay/auth"
	"chat-relay/errors"
	"chat-relay/gateway"
	"chat-relay/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Handlers struct {
	log      *slog.Logger
	rooms    services.IRoomService
	messages services.IMessageService
	users    services.IUserService
}

func NewHandlers(log *slog.Logger, rooms services.IRoomService, messages services.IMessageService, users services.IUserService) *Handlers {
	return &Handlers{log: log, rooms: rooms, messages: messages, users: users}
}

// NewRouter mounts the REST surface and the websocket endpoint. Every REST
// route sits behind the bearer middleware; the websocket endpoint checks
// its credential itself, before the upgrade.
func NewRouter(log *slog.Logger, verifier *auth.Verifier, ws *gateway.Server, h *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/ws", ws.HandleWS)

	authenticated := router.Group("/", auth.Middleware(verifier))
	{
		authenticated.POST("/chatrooms", h.CreateRoom)
		authenticated.GET("/chatrooms", h.ListRooms)
		authenticated.PATCH("/chatrooms/:id", h.RenameRoom)
		authenticated.DELETE("/chatrooms/:id", h.DeleteRoom)
		authenticated.GET("/chatrooms/:id/participants", h.ListParticipants)
		authenticated.POST("/chatrooms/:id/participants", h.AddParticipants)
		authenticated.DELETE("/chatrooms/:id/participants", h.RemoveParticipants)

		authenticated.POST("/messages", h.SendMessage)
		// Same wildcard name on both methods: GET reads it as a room id,
		// DELETE as a message id.
		authenticated.GET("/messages/:id", h.ListMessages)
		authenticated.DELETE("/messages/:id", h.DeleteMessage)

		authenticated.GET("/users", h.ListUsers)
	}
	return router
}

func (h *Handlers) respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"error": "upstream store failure"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
