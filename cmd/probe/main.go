// Command probe is a diagnostic client for a running relay: it mints a
// credential from the shared secret, lists the user's rooms, then tails
// the websocket and prints every pushed event.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"chat-relay/auth"
	"chat-relay/domain"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
)

type Config struct {
	RelayAddr   string `env:"RELAY_ADDR,default=localhost:8080"`
	TokenSecret string `env:"TOKEN_SECRET,required=true"`
}

func main() {
	userID := flag.String("user", "", "User id to impersonate")
	name := flag.String("name", "probe", "Display name")
	roomID := flag.String("room", "", "Room to join and tail (optional)")
	flag.Parse()

	if *userID == "" {
		log.Fatal("missing -user flag")
	}

	// 1. Config & credential
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	identity := domain.Identity{UserID: *userID, DisplayName: *name}
	token, err := auth.GenerateToken(config.TokenSecret, identity, time.Hour)
	if err != nil {
		log.Fatalf("Token generation failed: %v", err)
	}

	// 2. Room listing over REST
	if err := printRooms(config.RelayAddr, token); err != nil {
		log.Fatalf("Room listing failed: %v", err)
	}

	// 3. Websocket tail
	wsURL := url.URL{Scheme: "ws", Host: config.RelayAddr, Path: "/ws", RawQuery: "token=" + url.QueryEscape(token)}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	if err != nil {
		log.Fatalf("Websocket dial failed: %v", err)
	}
	defer conn.Close()

	if *roomID != "" {
		join := fmt.Sprintf(`{"action":"join-room","data":{"chatRoomId":%q}}`, *roomID)
		if err := conn.WriteMessage(websocket.TextMessage, []byte(join)); err != nil {
			log.Fatalf("Join failed: %v", err)
		}
		color.Cyan.Printf("Joined room %s, tailing events...\n", *roomID)
	} else {
		color.Cyan.Println("Connected, tailing personal channel events...")
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			color.Red.Printf("Connection closed: %v\n", err)
			return
		}
		printEvent(raw)
	}
}

func printRooms(addr, token string) error {
	req, err := http.NewRequest(http.MethodGet, "http://"+addr+"/chatrooms", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("relay answered %d: %s", resp.StatusCode, body)
	}

	var rooms []domain.RoomSummary
	if err := json.NewDecoder(resp.Body).Decode(&rooms); err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Name", "Participants", "Latest"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	for _, room := range rooms {
		names := make([]string, 0, len(room.Participants))
		for _, p := range room.Participants {
			names = append(names, p.Name)
		}
		latest := ""
		if room.LatestMessage != nil {
			latest = room.LatestMessage.Content
		}
		table.Append([]string{room.ID, room.Name, strings.Join(names, ", "), latest})
	}
	table.Render()
	return nil
}

func printEvent(raw []byte) {
	var env struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		color.Red.Printf("Unreadable frame: %s\n", raw)
		return
	}

	switch env.Event {
	case domain.EventNewMessage:
		color.Green.Printf("[%s] %s\n", env.Event, env.Data)
	case domain.EventUserOnline, domain.EventUserOffline:
		color.Yellow.Printf("[%s] %s\n", env.Event, env.Data)
	default:
		color.White.Printf("[%s] %s\n", env.Event, env.Data)
	}
}
