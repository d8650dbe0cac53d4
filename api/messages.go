package api

import (
	"net/http"

	"chat-relay/auth"
	"chat-relay/services"

	"github.com/gin-gonic/gin"
)

type sendMessageRequest struct {
	ChatRoomID string `json:"chatRoomId" validate:"required"`
	SenderID   string `json:"senderId"`
	Content    string `json:"content" validate:"required"`
	TempID     string `json:"tempId"`
	ReplyTo    string `json:"replyTo"`
}

func (h *Handlers) SendMessage(c *gin.Context) {
	identity, req, ok := bind[sendMessageRequest](h, c)
	if !ok {
		return
	}

	message, err := h.messages.Send(c.Request.Context(), identity, auth.TokenFrom(c), services.SendMessageInput{
		ChatRoomID: req.ChatRoomID,
		SenderID:   req.SenderID,
		Content:    req.Content,
		TempID:     req.TempID,
		ReplyToID:  req.ReplyTo,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}

func (h *Handlers) ListMessages(c *gin.Context) {
	messages, err := h.messages.List(c.Request.Context(), auth.TokenFrom(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *Handlers) DeleteMessage(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	deletedID, err := h.messages.Delete(c.Request.Context(), identity, auth.TokenFrom(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": deletedID})
}
