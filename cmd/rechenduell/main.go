package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/slack-go/slack"
)

func main() {

	// Environment Variables
	envPort := os.Getenv("RECHENDUELL_PORT")
	slackToken := os.Getenv("RECHENDUELL_SLACK_TOKEN")
	slackChannelID := os.Getenv("RECHENDUELL_SLACK_CHANNELID")

	// Flags
	port := flag.String("port", "8080", "Define the port on which the server will listen")
	roundDelay := flag.Duration("round-delay", DEFAULT_ROUND_DELAY, "Pause before the next question after a non-goal round win")
	roundBarrier := flag.Bool("round-barrier", false, "Require both players to signal ready before every round, not only on game start and after goals")
	flag.Parse()
	if envPort != "" {
		*port = envPort
	}

	// Gateway and Room Manager
	gateway := NewGateway()
	roomMgr := NewRoomManager(gateway, *roundDelay, *roundBarrier)
	gateway.Bind(roomMgr)

	if slackToken != "" && slackChannelID != "" {
		roomMgr.SetAnnouncer(NewResultAnnouncer(slack.New(slackToken), slackChannelID))
		slog.Info("Slack result announcements enabled", "channel", slackChannelID)
	}

	// Routes
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.HandleFunc("/ws", gateway.ServeWS)
	r.Get("/healthz", handleHealth(roomMgr, gateway))

	// Server
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%s", *port),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info(fmt.Sprintf("Server running on port %s", *port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	shutdownSignal := <-shutdownChan

	log.Printf("Shutdown signal (%s) received, shutting down gracefully...\n", shutdownSignal)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP Server failed to shutdown gracefully", "error", err.Error())
	}
	slog.Info("HTTP Server successfully shutdown")
	// Hijacked websocket connections outlive srv.Shutdown; close them first
	// so no intent can reach the manager once it drains.
	gateway.Shutdown()
	slog.Info("Gateway successfully shutdown")
	roomMgr.Shutdown()
	slog.Info("Room Manager successfully shutdown")
	slog.Info("Shutdown complete. Server exiting.")
}
