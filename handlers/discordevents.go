package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"llamabot/middleware"
	"llamabot/services"
)

type DiscordEventsHandler struct {
	discordSDKClient *discordgo.Session
	appID            string
	devGuildID       string
	alertMiddleware  *middleware.ErrorAlertMiddleware
	matcherService   services.MatcherService
	emotesService    services.EmotesService
	commandsService  services.CommandsService
}

func NewDiscordEventsHandler(
	botToken, appID, devGuildID string,
	alertMiddleware *middleware.ErrorAlertMiddleware,
	matcherService services.MatcherService,
	emotesService services.EmotesService,
	commandsService services.CommandsService,
) (*DiscordEventsHandler, error) {
	// Create a new Discord session using the provided bot token
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	handler := &DiscordEventsHandler{
		discordSDKClient: session,
		appID:            appID,
		devGuildID:       devGuildID,
		alertMiddleware:  alertMiddleware,
		matcherService:   matcherService,
		emotesService:    emotesService,
		commandsService:  commandsService,
	}

	// Register event handlers, each guarded against panics
	session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		alertMiddleware.WrapEventHandler("message_create", func() error {
			handler.handleMessageCreatedEvent(s, m)
			return nil
		})()
	})
	session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		alertMiddleware.WrapEventHandler("interaction_create", func() error {
			handler.handleInteractionCreatedEvent(s, i)
			return nil
		})()
	})

	// Set intents to receive guild messages with their content
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	return handler, nil
}

// StartBot opens the Discord connection, registers the slash commands and
// starts listening for events
func (h *DiscordEventsHandler) StartBot() error {
	err := h.discordSDKClient.Open()
	if err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	if err := h.registerSlashCommands(); err != nil {
		return fmt.Errorf("failed to register slash commands: %w", err)
	}

	log.Printf("🤖 Discord bot is now running and listening for events")
	return nil
}

// StopBot gracefully closes the Discord connection
func (h *DiscordEventsHandler) StopBot() error {
	return h.discordSDKClient.Close()
}

func slashCommandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "add-emote",
			Description: "Add a new emote trigger",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "trigger",
					Description: "The text that will trigger this emote",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "image-url",
					Description: "The image URL to send when the trigger matches",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "exact-match",
					Description: "Require the whole message to equal the trigger (default: contains)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "guild-only",
					Description: "Make this emote specific to this server (default: true)",
				},
			},
		},
		{
			Name:        "remove-emote",
			Description: "Remove an emote by trigger text",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "trigger",
					Description: "The trigger text of the emote to remove",
					Required:    true,
				},
			},
		},
		{
			Name:        "list-emotes",
			Description: "List the emotes for this server",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "enabled-only",
					Description: "Show only enabled emotes (default: true)",
				},
			},
		},
		{
			Name:        "command",
			Description: "Invoke a canned command by name",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "The command name",
					Required:    true,
				},
			},
		},
	}
}

func (h *DiscordEventsHandler) registerSlashCommands() error {
	appID := h.appID
	if appID == "" {
		appID = h.discordSDKClient.State.User.ID
	}

	for _, cmd := range slashCommandDefinitions() {
		// Empty guild ID registers the command globally
		if _, err := h.discordSDKClient.ApplicationCommandCreate(appID, "", cmd); err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Name, err)
		}

		// Also register for the dev guild when configured, so command
		// updates show up instantly there
		if h.devGuildID != "" {
			if _, err := h.discordSDKClient.ApplicationCommandCreate(appID, h.devGuildID, cmd); err != nil {
				return fmt.Errorf("failed to register command %s for dev guild: %w", cmd.Name, err)
			}
		}

		log.Printf("✅ Registered slash command: %s", cmd.Name)
	}

	return nil
}

// handleMessageCreatedEvent runs every guild message through the match
// engine and renders each fired emote as its own reply
func (h *DiscordEventsHandler) handleMessageCreatedEvent(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Ignore bot messages, including our own replies
	if m.Author == nil || m.Author.Bot {
		return
	}
	if strings.TrimSpace(m.Content) == "" {
		return
	}

	ctx := context.Background()
	var guildID *string
	if m.GuildID != "" {
		guildID = &m.GuildID
	}

	result, err := h.matcherService.MatchMessage(ctx, m.Content, guildID)
	if err != nil {
		log.Printf("❌ Failed to match message in guild %s: %v", m.GuildID, err)
		return
	}
	if !result.Matched {
		return
	}

	for _, emote := range result.Emotes {
		if _, err := s.ChannelMessageSend(m.ChannelID, emote.ImageURL); err != nil {
			log.Printf("⚠️ Failed to send emote %s to channel %s: %v", emote.ID, m.ChannelID, err)
		}
	}
}

// handleInteractionCreatedEvent routes slash-command interactions
func (h *DiscordEventsHandler) handleInteractionCreatedEvent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	ctx := context.Background()
	data := i.ApplicationCommandData()

	switch data.Name {
	case "add-emote":
		h.handleAddEmote(ctx, s, i, data)
	case "remove-emote":
		h.handleRemoveEmote(ctx, s, i, data)
	case "list-emotes":
		h.handleListEmotes(ctx, s, i, data)
	case "command":
		h.handleInvokeCommand(ctx, s, i, data)
	default:
		log.Printf("❌ No handler for slash command: %s", data.Name)
	}
}
