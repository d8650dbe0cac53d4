package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"chat-relay/auth"
	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/runtime"
	"chat-relay/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Server upgrades authenticated clients to websocket sessions and drives
// their read loops. Credentials are checked before the upgrade; a bad
// token is answered with a plain 401 and no websocket handshake.
type Server struct {
	log        *slog.Logger
	verifier   *auth.Verifier
	registry   *runtime.Registry
	dispatcher contract.Dispatcher
	messages   services.IMessageService
	upgrader   websocket.Upgrader
}

func NewServer(log *slog.Logger, verifier *auth.Verifier, registry *runtime.Registry, dispatcher contract.Dispatcher, messages services.IMessageService) *Server {
	return &Server{
		log:        log,
		verifier:   verifier,
		registry:   registry,
		dispatcher: dispatcher,
		messages:   messages,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Auth is bearer-token based, not cookie based, so cross-origin
			// browser clients are fine.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// HandleWS is the websocket mount point. The credential travels either in
// the "token" query parameter or as a bearer header.
func (s *Server) HandleWS(c *gin.Context) {
	credential := c.Query("token")
	if credential == "" {
		credential = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}

	identity, err := s.verifier.Verify(credential)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "user_id", identity.UserID, "error", err)
		return
	}

	sess := newSession(s.log, conn, identity, credential)
	s.registry.Admit(sess.ID, identity.UserID, sess)
	s.log.Info("session opened", "session_id", sess.ID, "user_id", identity.UserID)

	go sess.writePump()
	s.readLoop(c.Request.Context(), sess, conn)
}

func (s *Server) readLoop(ctx context.Context, sess *Session, conn *websocket.Conn) {
	// Teardown is unconditional: clean close, network failure and process
	// shutdown all land here, and presence is released either way.
	defer func() {
		offlineRooms := s.registry.Drop(sess.ID)
		for _, roomID := range offlineRooms {
			s.dispatcher.Dispatch(ctx, domain.Event{
				Name:     domain.EventUserOffline,
				Scope:    domain.ScopeRoom,
				TargetID: roomID,
				Payload:  domain.PresenceChange{UserID: sess.Identity.UserID, ChatRoomID: roomID},
			})
		}
		sess.shutdown()
		s.log.Info("session closed", "session_id", sess.ID, "user_id", sess.Identity.UserID)
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			s.log.Debug("read loop ended", "session_id", sess.ID, "error", err)
			return
		}
		s.handleFrame(ctx, sess, raw)
	}
}

// handleFrame applies one client action. Malformed frames are logged and
// dropped; they never terminate the session.
func (s *Server) handleFrame(ctx context.Context, sess *Session, raw []byte) {
	var frame inboundFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		s.log.Warn("malformed frame", "session_id", sess.ID, "error", err)
		return
	}

	switch frame.Action {
	case ActionJoinRoom:
		var data roomFrame
		if err := json.Unmarshal(frame.Data, &data); err != nil || data.ChatRoomID == "" {
			s.log.Warn("malformed join-room frame", "session_id", sess.ID)
			return
		}
		if first := s.registry.Join(sess.ID, data.ChatRoomID); first {
			s.dispatcher.Dispatch(ctx, domain.Event{
				Name:     domain.EventUserOnline,
				Scope:    domain.ScopeRoom,
				TargetID: data.ChatRoomID,
				Payload:  domain.PresenceChange{UserID: sess.Identity.UserID, ChatRoomID: data.ChatRoomID},
			})
		}

	case ActionLeaveRoom:
		var data roomFrame
		if err := json.Unmarshal(frame.Data, &data); err != nil || data.ChatRoomID == "" {
			s.log.Warn("malformed leave-room frame", "session_id", sess.ID)
			return
		}
		if last := s.registry.Leave(sess.ID, data.ChatRoomID); last {
			s.dispatcher.Dispatch(ctx, domain.Event{
				Name:     domain.EventUserOffline,
				Scope:    domain.ScopeRoom,
				TargetID: data.ChatRoomID,
				Payload:  domain.PresenceChange{UserID: sess.Identity.UserID, ChatRoomID: data.ChatRoomID},
			})
		}

	case ActionSendMessage:
		var data sendMessageFrame
		if err := json.Unmarshal(frame.Data, &data); err != nil || data.ChatRoomID == "" || data.Content == "" {
			s.log.Warn("malformed send-message frame", "session_id", sess.ID)
			return
		}
		_, err := s.messages.Send(ctx, sess.Identity, sess.Token(), services.SendMessageInput{
			ChatRoomID: data.ChatRoomID,
			SenderID:   sess.Identity.UserID,
			Content:    data.Content,
			TempID:     data.TempID,
			ReplyToID:  data.ReplyToID,
		})
		if err != nil {
			s.log.Warn("send-message failed", "session_id", sess.ID, "room_id", data.ChatRoomID, "error", err)
		}

	default:
		s.log.Warn("unknown action", "session_id", sess.ID, "action", frame.Action)
	}
}
