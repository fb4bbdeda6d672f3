package commands

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/samber/mo"

	"llamabot/core"
	"llamabot/models"
)

// CommandsRepository defines the interface for command repository operations
type CommandsRepository interface {
	CreateCommand(ctx context.Context, command *models.Command) error
	GetCommandByID(ctx context.Context, id string) (mo.Option[*models.Command], error)
	GetCommandByName(ctx context.Context, name string, guildID *string) (mo.Option[*models.Command], error)
	ListCommands(ctx context.Context, guildID *string, enabled *bool) ([]*models.Command, error)
	UpdateCommand(ctx context.Context, id string, update models.CommandUpdate) (mo.Option[*models.Command], error)
	DeleteCommand(ctx context.Context, id string) (bool, error)
	IncrementCommandUseCount(ctx context.Context, id string) (mo.Option[*models.Command], error)
}

type CommandsService struct {
	commandsRepo CommandsRepository
}

func NewCommandsService(repo CommandsRepository) *CommandsService {
	return &CommandsService{commandsRepo: repo}
}

// CreateCommand validates and registers a new canned command. Enabled
// defaults to true; scope is global when no guild is given.
func (s *CommandsService) CreateCommand(
	ctx context.Context,
	params models.CreateCommandParams,
) (*models.Command, error) {
	log.Printf("📋 Starting to create command: %s", params.Name)

	if strings.TrimSpace(params.Name) == "" {
		return nil, core.NewValidationError("name", "cannot be empty")
	}
	if strings.TrimSpace(params.Response) == "" {
		return nil, core.NewValidationError("response", "cannot be empty")
	}
	if strings.TrimSpace(params.CreatedBy) == "" {
		return nil, core.NewValidationError("created_by", "cannot be empty")
	}

	enabled := true
	if params.Enabled != nil {
		enabled = *params.Enabled
	}

	command := &models.Command{
		ID:          core.NewID("cmd"),
		GuildID:     params.GuildID,
		Name:        params.Name,
		Description: params.Description,
		Response:    params.Response,
		Enabled:     enabled,
		CreatedBy:   params.CreatedBy,
	}
	if err := s.commandsRepo.CreateCommand(ctx, command); err != nil {
		if core.IsDuplicateInScopeError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create command in database: %w", err)
	}

	log.Printf("📋 Completed successfully - created command with ID: %s", command.ID)
	return command, nil
}

func (s *CommandsService) GetCommandByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Command], error) {
	log.Printf("📋 Starting to get command by ID: %s", id)
	if !core.IsValidID(id) {
		return mo.None[*models.Command](), core.NewValidationError("id", "must be a valid command ID")
	}

	maybeCommand, err := s.commandsRepo.GetCommandByID(ctx, id)
	if err != nil {
		return mo.None[*models.Command](), fmt.Errorf("failed to get command by ID: %w", err)
	}

	if !maybeCommand.IsPresent() {
		log.Printf("📋 Completed successfully - command not found")
		return mo.None[*models.Command](), nil
	}

	log.Printf("📋 Completed successfully - found command: %s", maybeCommand.MustGet().Name)
	return maybeCommand, nil
}

// GetCommandByName resolves a name within a guild. The guild's own command
// shadows a global command of the same name; when the guild has none the
// global command is returned.
func (s *CommandsService) GetCommandByName(
	ctx context.Context,
	name string,
	guildID *string,
) (mo.Option[*models.Command], error) {
	log.Printf("📋 Starting to get command by name: %s %s", name, models.ScopeDescription(guildID))
	if strings.TrimSpace(name) == "" {
		return mo.None[*models.Command](), core.NewValidationError("name", "cannot be empty")
	}

	maybeCommand, err := s.commandsRepo.GetCommandByName(ctx, name, guildID)
	if err != nil {
		return mo.None[*models.Command](), fmt.Errorf("failed to get command by name: %w", err)
	}

	if !maybeCommand.IsPresent() {
		log.Printf("📋 Completed successfully - command not found")
		return mo.None[*models.Command](), nil
	}

	log.Printf("📋 Completed successfully - resolved command %s", maybeCommand.MustGet().ID)
	return maybeCommand, nil
}

// ListCommands returns one scope's commands: the guild's when guildID is
// non-nil, the global ones otherwise.
func (s *CommandsService) ListCommands(
	ctx context.Context,
	guildID *string,
	enabled *bool,
) ([]*models.Command, error) {
	log.Printf("📋 Starting to list commands %s", models.ScopeDescription(guildID))

	commands, err := s.commandsRepo.ListCommands(ctx, guildID, enabled)
	if err != nil {
		return nil, fmt.Errorf("failed to list commands: %w", err)
	}

	log.Printf("📋 Completed successfully - found %d commands", len(commands))
	return commands, nil
}

// UpdateCommand applies a partial update. Fields not present in the update
// are left untouched.
func (s *CommandsService) UpdateCommand(
	ctx context.Context,
	id string,
	update models.CommandUpdate,
) (*models.Command, error) {
	log.Printf("📋 Starting to update command: %s", id)
	if !core.IsValidID(id) {
		return nil, core.NewValidationError("id", "must be a valid command ID")
	}

	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, core.NewValidationError("name", "cannot be empty")
	}
	if update.Response != nil && strings.TrimSpace(*update.Response) == "" {
		return nil, core.NewValidationError("response", "cannot be empty")
	}

	maybeCommand, err := s.commandsRepo.UpdateCommand(ctx, id, update)
	if err != nil {
		if core.IsDuplicateInScopeError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update command: %w", err)
	}
	if !maybeCommand.IsPresent() {
		return nil, core.ErrNotFound
	}

	command := maybeCommand.MustGet()
	log.Printf("📋 Completed successfully - updated command: %s", command.ID)
	return command, nil
}

func (s *CommandsService) DeleteCommand(ctx context.Context, id string) error {
	log.Printf("📋 Starting to delete command: %s", id)
	if !core.IsValidID(id) {
		return core.NewValidationError("id", "must be a valid command ID")
	}

	deleted, err := s.commandsRepo.DeleteCommand(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete command: %w", err)
	}
	if !deleted {
		return core.ErrNotFound
	}

	log.Printf("📋 Completed successfully - deleted command: %s", id)
	return nil
}

// InvokeCommand resolves the command, enforces the enabled gate and records
// the invocation. A disabled command is reported as disabled, not as
// missing, and its counter is never touched. The increment is a single
// atomic add-one; concurrent invocations never lose updates.
func (s *CommandsService) InvokeCommand(
	ctx context.Context,
	id string,
) (*models.CommandInvocation, error) {
	log.Printf("📋 Starting to invoke command: %s", id)
	if !core.IsValidID(id) {
		return nil, core.NewValidationError("id", "must be a valid command ID")
	}

	maybeCommand, err := s.commandsRepo.GetCommandByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get command for invocation: %w", err)
	}
	if !maybeCommand.IsPresent() {
		return nil, core.ErrNotFound
	}

	command := maybeCommand.MustGet()
	if !command.Enabled {
		return nil, core.ErrDisabled
	}

	maybeUpdated, err := s.commandsRepo.IncrementCommandUseCount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to record command invocation: %w", err)
	}
	if !maybeUpdated.IsPresent() {
		// Deleted between the read and the increment
		return nil, core.ErrNotFound
	}

	updated := maybeUpdated.MustGet()
	log.Printf("📋 Completed successfully - invoked command %s (use count %d)", updated.Name, updated.UseCount)
	return &models.CommandInvocation{
		Response: updated.Response,
		Command:  updated,
	}, nil
}
