package api

import (
	"net/http"

	"chat-relay/auth"
	"chat-relay/domain"
	"chat-relay/services"

	"github.com/gin-gonic/gin"
)

type createRoomRequest struct {
	Name           string   `json:"name" validate:"required"`
	ParticipantIDs []string `json:"participantIds" validate:"dive,required"`
}

type renameRoomRequest struct {
	Name string `json:"name" validate:"required"`
}

type participantsRequest struct {
	UserIDs []string `json:"userIds" validate:"required,min=1,dive,required"`
}

func (h *Handlers) CreateRoom(c *gin.Context) {
	identity, req, ok := bind[createRoomRequest](h, c)
	if !ok {
		return
	}

	room, err := h.rooms.Create(c.Request.Context(), identity, auth.TokenFrom(c), services.CreateRoomInput{
		Name:           req.Name,
		ParticipantIDs: req.ParticipantIDs,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (h *Handlers) ListRooms(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	rooms, err := h.rooms.ListForUser(c.Request.Context(), identity, auth.TokenFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *Handlers) RenameRoom(c *gin.Context) {
	identity, req, ok := bind[renameRoomRequest](h, c)
	if !ok {
		return
	}

	room, err := h.rooms.Rename(c.Request.Context(), identity, auth.TokenFrom(c), c.Param("id"), req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *Handlers) DeleteRoom(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	deletedID, err := h.rooms.Delete(c.Request.Context(), identity, auth.TokenFrom(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": deletedID})
}

func (h *Handlers) ListParticipants(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	participants, err := h.rooms.ListParticipants(c.Request.Context(), identity, auth.TokenFrom(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participants)
}

func (h *Handlers) AddParticipants(c *gin.Context) {
	identity, req, ok := bind[participantsRequest](h, c)
	if !ok {
		return
	}

	room, err := h.rooms.AddParticipants(c.Request.Context(), identity, auth.TokenFrom(c), c.Param("id"), req.UserIDs)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *Handlers) RemoveParticipants(c *gin.Context) {
	identity, req, ok := bind[participantsRequest](h, c)
	if !ok {
		return
	}

	room, err := h.rooms.RemoveParticipants(c.Request.Context(), identity, auth.TokenFrom(c), c.Param("id"), req.UserIDs)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// bind decodes and validates a JSON body and resolves the caller identity,
// answering 400 itself when the payload does not hold up.
func bind[T any](h *Handlers, c *gin.Context) (domain.Identity, T, bool) {
	identity, _ := auth.IdentityFrom(c)

	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return identity, req, false
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return identity, req, false
	}
	return identity, req, true
}
