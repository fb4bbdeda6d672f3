package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type DiscordConfig struct {
	BotToken string
	AppID    string
	// DevGuildID additionally registers slash commands for one guild so
	// they update instantly during development
	DevGuildID string
}

// IsConfigured returns true if all required Discord configuration is present
func (c DiscordConfig) IsConfigured() bool {
	return c.BotToken != "" &&
		c.AppID != ""
	// Note: DevGuildID is optional
}

type AppConfig struct {
	// Core configuration (always required)
	DatabaseURL        string
	DatabaseSchema     string
	Port               string // Optional with default "8080"
	CORSAllowedOrigins string // Optional with default "*"
	Environment        string
	AlertWebhookURL    string
	ServerLogsURL      string

	// Gateway bot configuration (optional - the API serves without it)
	DiscordConfig DiscordConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	// Core required configuration
	databaseURL, err := getEnvRequired("DB_URL")
	if err != nil {
		return nil, err
	}

	databaseSchema, err := getEnvRequired("DB_SCHEMA")
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		// Core configuration
		DatabaseURL:        databaseURL,
		DatabaseSchema:     databaseSchema,
		Port:               getEnvWithDefault("PORT", "8080"),
		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "dev"),
		AlertWebhookURL:    getEnvWithDefault("ALERT_WEBHOOK_URL", ""),
		ServerLogsURL:      getEnvWithDefault("SERVER_LOGS_URL", ""),

		// Discord configuration (optional)
		DiscordConfig: DiscordConfig{
			BotToken:   os.Getenv("DISCORD_BOT_TOKEN"),
			AppID:      os.Getenv("DISCORD_APP_ID"),
			DevGuildID: os.Getenv("DISCORD_DEV_GUILD_ID"),
		},
	}

	if config.DiscordConfig.IsConfigured() {
		log.Printf("✅ Discord gateway configured")
	} else {
		log.Printf("⚠️ Discord gateway not configured - the bot will not start")
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
