package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chat-relay/api"
	"chat-relay/auth"
	"chat-relay/gateway"
	"chat-relay/repositories"
	"chat-relay/runtime"
	"chat-relay/services"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run wires all components and owns the server lifecycle, so every defer
// fires before the process exits and main stays trivially testable.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Store access
	client := repositories.NewClient(log, config.StoreEndpoint, config.StoreTimeout)
	roomRepository := repositories.NewRoomRepository(client)
	messageRepository := repositories.NewMessageRepository(client)
	userRepository := repositories.NewUserRepository(client)

	// 3. Connection state & fan-out
	presence := runtime.NewPresence()
	registry := runtime.NewRegistry(log, presence)
	dispatcher := runtime.NewDispatcher(log, registry)

	// 4. Services & transport
	verifier := auth.NewVerifier(config.TokenSecret)
	roomService := services.NewRoomService(log, roomRepository, dispatcher, presence)
	messageService := services.NewMessageService(log, messageRepository, dispatcher)
	userService := services.NewUserService(userRepository)

	ws := gateway.NewServer(log, verifier, registry, dispatcher, messageService)
	handlers := api.NewHandlers(log, roomService, messageService, userService)
	router := api.NewRouter(log, verifier, ws, handlers)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{Addr: address, Handler: router}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting relay server", "address", address, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	// 6. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 7. Final Cleanup. Open websockets are torn down with the listener;
	// each session's disconnect path releases its presence on the way out.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	log.Info("Program stopped cleanly")

	return nil
}
