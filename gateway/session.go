package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"chat-relay/domain"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// outboundBuffer bounds how far a slow client may lag before its copies of
// new events are dropped.
const outboundBuffer = 256

const writeTimeout = 10 * time.Second

// Session is one authenticated websocket connection. It is the event sink
// the registry hands to the dispatcher: Consume enqueues, the write pump is
// the single goroutine ever writing to the connection.
type Session struct {
	ID       string
	Identity domain.Identity

	token string
	conn  *websocket.Conn
	log   *slog.Logger

	out       chan envelope
	closing   chan struct{}
	closeOnce sync.Once
}

func newSession(log *slog.Logger, conn *websocket.Conn, identity domain.Identity, token string) *Session {
	return &Session{
		ID:       uuid.NewString(),
		Identity: identity,
		token:    token,
		conn:     conn,
		log:      log,
		out:      make(chan envelope, outboundBuffer),
		closing:  make(chan struct{}),
	}
}

// Token returns the raw credential presented at the handshake, forwarded
// verbatim on store calls made on this session's behalf.
func (s *Session) Token() string {
	return s.token
}

// Consume enqueues an event for delivery. It never blocks: a full buffer
// drops this session's copy and reports it, other recipients are
// unaffected.
func (s *Session) Consume(_ context.Context, evt domain.Event) error {
	select {
	case <-s.closing:
		return fmt.Errorf("session %s is closed", s.ID)
	case s.out <- envelope{Event: evt.Name, Data: evt.Payload}:
		return nil
	default:
		return fmt.Errorf("outbound buffer full on session %s", s.ID)
	}
}

func (s *Session) writePump() {
	defer s.conn.Close()
	for {
		select {
		case env := <-s.out:
			s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.conn.WriteJSON(env); err != nil {
				s.log.Debug("write failed, closing session", "session_id", s.ID, "error", err)
				s.shutdown()
				return
			}
		case <-s.closing:
			s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			s.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func (s *Session) shutdown() {
	s.closeOnce.Do(func() { close(s.closing) })
}
