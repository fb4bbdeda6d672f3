package services

import (
	"context"

	"github.com/samber/mo"

	"llamabot/models"
)

// EmotesService defines the interface for emote registry operations
type EmotesService interface {
	CreateEmote(ctx context.Context, params models.CreateEmoteParams) (*models.Emote, error)
	GetEmoteByID(ctx context.Context, id string) (mo.Option[*models.Emote], error)
	ListEmotes(ctx context.Context, guildID *string, enabled *bool) ([]*models.Emote, error)
	UpdateEmote(ctx context.Context, id string, update models.EmoteUpdate) (*models.Emote, error)
	DeleteEmote(ctx context.Context, id string) error
}

// MatcherService defines the interface for the message match engine
type MatcherService interface {
	MatchMessage(ctx context.Context, message string, guildID *string) (*models.MatchResult, error)
}

// CommandsService defines the interface for command registry and invocation
// operations
type CommandsService interface {
	CreateCommand(ctx context.Context, params models.CreateCommandParams) (*models.Command, error)
	GetCommandByID(ctx context.Context, id string) (mo.Option[*models.Command], error)
	GetCommandByName(ctx context.Context, name string, guildID *string) (mo.Option[*models.Command], error)
	ListCommands(ctx context.Context, guildID *string, enabled *bool) ([]*models.Command, error)
	UpdateCommand(ctx context.Context, id string, update models.CommandUpdate) (*models.Command, error)
	DeleteCommand(ctx context.Context, id string) error
	InvokeCommand(ctx context.Context, id string) (*models.CommandInvocation, error)
}
