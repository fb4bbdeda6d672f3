package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"llamabot/config"
	"llamabot/db"
	"llamabot/handlers"
	"llamabot/middleware"
	"llamabot/services/commands"
	"llamabot/services/emotes"
	"llamabot/services/matcher"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize error alert middleware
	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.AlertConfig{
		WebhookURL:  cfg.AlertWebhookURL,
		Environment: cfg.Environment,
		AppName:     "llamabot",
		LogsURL:     cfg.ServerLogsURL,
	})

	// Initialize database connection
	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	// Initialize repositories with shared connection
	emotesRepo := db.NewPostgresEmotesRepository(dbConn, cfg.DatabaseSchema)
	commandsRepo := db.NewPostgresCommandsRepository(dbConn, cfg.DatabaseSchema)

	emotesService := emotes.NewEmotesService(emotesRepo)
	matcherService := matcher.NewMatcherService(emotesRepo)
	commandsService := commands.NewCommandsService(commandsRepo)

	emotesHandler := handlers.NewEmotesHTTPHandler(emotesService, matcherService)
	commandsHandler := handlers.NewCommandsHTTPHandler(commandsService)

	// Create a new router
	router := mux.NewRouter()

	// Setup endpoints with the new router
	emotesHandler.SetupEndpoints(router)
	commandsHandler.SetupEndpoints(router)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			log.Printf("❌ Failed to write health check response: %v", err)
		}
	}).Methods("GET")

	// Start the gateway bot when its configuration is present. The HTTP API
	// serves either way.
	if cfg.DiscordConfig.IsConfigured() {
		discordHandler, err := handlers.NewDiscordEventsHandler(
			cfg.DiscordConfig.BotToken,
			cfg.DiscordConfig.AppID,
			cfg.DiscordConfig.DevGuildID,
			alertMiddleware,
			matcherService,
			emotesService,
			commandsService,
		)
		if err != nil {
			return err
		}
		if err := discordHandler.StartBot(); err != nil {
			return err
		}
		defer func() {
			if err := discordHandler.StopBot(); err != nil {
				log.Printf("⚠️ Failed to stop Discord bot cleanly: %v", err)
			}
		}()
	}

	// Setup CORS middleware
	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	// Setup and handle graceful shutdown
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           alertMiddleware.HTTPMiddleware(c.Handler(router)),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

func handleGracefulShutdown(server *http.Server) error {
	// Channel to listen for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown server gracefully
	if err := server.Shutdown(ctx); err != nil {
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
