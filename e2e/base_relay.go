package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"chat-relay/auth"
	"chat-relay/domain"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
)

// BaseRelaySuite drives a running relay (plus its external store) over its
// public surfaces only: REST and websocket. The whole suite skips when
// RELAY_ADDR is unset, so plain `go test ./...` stays environment-free.
type BaseRelaySuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseRelaySuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)

	if s.Config.RelayAddr == "" {
		s.T().Skip("RELAY_ADDR not set, skipping e2e suite")
	}
}

// Header prints a colorized step banner in the test log
func (s *BaseRelaySuite) Header(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// MintToken signs a credential for an arbitrary user with the relay's secret
func (s *BaseRelaySuite) MintToken(userID, name string) string {
	token, err := auth.GenerateToken(s.Config.TokenSecret, domain.Identity{UserID: userID, DisplayName: name}, time.Hour)
	s.Require().NoError(err)
	return token
}

// Rest performs one authenticated REST call and decodes the JSON answer into out
func (s *BaseRelaySuite) Rest(method, path, token string, body any, out any) int {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, "http://"+s.Config.RelayAddr+path, reader)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.T().Logf("REST %s %s [%d] in %v", method, path, resp.StatusCode, time.Since(start))

	if out != nil && resp.StatusCode < 300 {
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// DialWS opens an authenticated websocket session for the given credential
func (s *BaseRelaySuite) DialWS(token string) *websocket.Conn {
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+s.Config.RelayAddr+"/ws?token="+token, nil)
	s.Require().NoError(err)
	s.T().Cleanup(func() { conn.Close() })
	return conn
}

// JoinRoom sends the join-room action on an open session
func (s *BaseRelaySuite) JoinRoom(conn *websocket.Conn, roomID string) {
	frame := fmt.Sprintf(`{"action":"join-room","data":{"chatRoomId":%q}}`, roomID)
	s.Require().NoError(conn.WriteMessage(websocket.TextMessage, []byte(frame)))
}

// NextEvent waits for a named event, skipping unrelated ones
func (s *BaseRelaySuite) NextEvent(conn *websocket.Conn, name string) map[string]any {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		s.Require().NoError(conn.SetReadDeadline(deadline))

		var evt struct {
			Event string         `json:"event"`
			Data  map[string]any `json:"data"`
		}
		s.Require().NoError(conn.ReadJSON(&evt))
		s.T().Logf("WS event %s", evt.Event)
		if evt.Event == name {
			return evt.Data
		}
	}
	s.FailNowf("event never arrived", "waited for %s", name)
	return nil
}
