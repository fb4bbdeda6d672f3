package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	"llamabot/core"
	"llamabot/models"
)

type PostgresCommandsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for commands table
var commandsColumns = []string{
	"id",
	"guild_id",
	"name",
	"description",
	"response",
	"enabled",
	"created_by",
	"use_count",
	"created_at",
	"updated_at",
}

func NewPostgresCommandsRepository(db *sqlx.DB, schema string) *PostgresCommandsRepository {
	return &PostgresCommandsRepository{db: db, schema: schema}
}

func (r *PostgresCommandsRepository) CreateCommand(ctx context.Context, command *models.Command) error {
	insertColumns := []string{
		"id",
		"guild_id",
		"name",
		"description",
		"response",
		"enabled",
		"created_by",
	}
	columnsStr := strings.Join(insertColumns, ", ")
	returningStr := strings.Join(commandsColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.commands (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`, r.schema, columnsStr, returningStr)

	err := r.db.QueryRowxContext(ctx, query,
		command.ID, command.GuildID, command.Name, command.Description, command.Response, command.Enabled, command.CreatedBy).
		StructScan(command)
	if err != nil {
		if isUniqueViolation(err) {
			return &core.DuplicateInScopeError{
				Value: command.Name,
				Scope: models.ScopeDescription(command.GuildID),
			}
		}
		return fmt.Errorf("failed to create command: %w", err)
	}

	return nil
}

func (r *PostgresCommandsRepository) GetCommandByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Command], error) {
	columnsStr := strings.Join(commandsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.commands
		WHERE id = $1`, columnsStr, r.schema)

	var command models.Command
	err := r.db.GetContext(ctx, &command, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return mo.None[*models.Command](), nil
		}
		return mo.None[*models.Command](), fmt.Errorf("failed to get command by ID: %w", err)
	}

	return mo.Some(&command), nil
}

// GetCommandByName resolves a command name for a guild. A guild-scoped
// command shadows a global command of the same name; when guildID is nil
// only global commands are considered.
func (r *PostgresCommandsRepository) GetCommandByName(
	ctx context.Context,
	name string,
	guildID *string,
) (mo.Option[*models.Command], error) {
	columnsStr := strings.Join(commandsColumns, ", ")

	scopeClause := "guild_id IS NULL"
	args := []any{name}
	if guildID != nil {
		scopeClause = "(guild_id IS NULL OR guild_id = $2)"
		args = append(args, *guildID)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.commands
		WHERE name = $1 AND %s
		ORDER BY guild_id NULLS LAST
		LIMIT 1`, columnsStr, r.schema, scopeClause)

	var command models.Command
	err := r.db.GetContext(ctx, &command, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return mo.None[*models.Command](), nil
		}
		return mo.None[*models.Command](), fmt.Errorf("failed to get command by name: %w", err)
	}

	return mo.Some(&command), nil
}

// ListCommands lists commands in a single scope: the given guild's commands
// when guildID is non-nil, global commands otherwise.
func (r *PostgresCommandsRepository) ListCommands(
	ctx context.Context,
	guildID *string,
	enabled *bool,
) ([]*models.Command, error) {
	columnsStr := strings.Join(commandsColumns, ", ")

	conditions := []string{}
	args := []any{}
	if guildID != nil {
		args = append(args, *guildID)
		conditions = append(conditions, fmt.Sprintf("guild_id = $%d", len(args)))
	} else {
		conditions = append(conditions, "guild_id IS NULL")
	}
	if enabled != nil {
		args = append(args, *enabled)
		conditions = append(conditions, fmt.Sprintf("enabled = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.commands
		WHERE %s
		ORDER BY created_at DESC`, columnsStr, r.schema, strings.Join(conditions, " AND "))

	var commands []*models.Command
	err := r.db.SelectContext(ctx, &commands, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list commands: %w", err)
	}

	return commands, nil
}

func (r *PostgresCommandsRepository) UpdateCommand(
	ctx context.Context,
	id string,
	update models.CommandUpdate,
) (mo.Option[*models.Command], error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	addSet := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Name != nil {
		addSet("name", *update.Name)
	}
	if update.Description != nil {
		addSet("description", *update.Description)
	}
	if update.Response != nil {
		addSet("response", *update.Response)
	}
	if update.Enabled != nil {
		addSet("enabled", *update.Enabled)
	}

	args = append(args, id)
	returningStr := strings.Join(commandsColumns, ", ")
	query := fmt.Sprintf(`
		UPDATE %s.commands
		SET %s
		WHERE id = $%d
		RETURNING %s`, r.schema, strings.Join(setClauses, ", "), len(args), returningStr)

	var command models.Command
	err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&command)
	if err != nil {
		if err == sql.ErrNoRows {
			return mo.None[*models.Command](), nil
		}
		if isUniqueViolation(err) {
			name := ""
			if update.Name != nil {
				name = *update.Name
			}
			return mo.None[*models.Command](), &core.DuplicateInScopeError{
				Value: name,
				Scope: "in this scope",
			}
		}
		return mo.None[*models.Command](), fmt.Errorf("failed to update command: %w", err)
	}

	return mo.Some(&command), nil
}

func (r *PostgresCommandsRepository) DeleteCommand(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s.commands WHERE id = $1`, r.schema)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete command: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rowsAffected > 0, nil
}

// IncrementCommandUseCount applies a single atomic add-one to the command's
// use counter and returns the updated row. Two concurrent invocations both
// observe their increment.
func (r *PostgresCommandsRepository) IncrementCommandUseCount(
	ctx context.Context,
	id string,
) (mo.Option[*models.Command], error) {
	returningStr := strings.Join(commandsColumns, ", ")
	query := fmt.Sprintf(`
		UPDATE %s.commands
		SET use_count = use_count + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, r.schema, returningStr)

	var command models.Command
	err := r.db.QueryRowxContext(ctx, query, id).StructScan(&command)
	if err != nil {
		if err == sql.ErrNoRows {
			return mo.None[*models.Command](), nil
		}
		return mo.None[*models.Command](), fmt.Errorf("failed to increment command use count: %w", err)
	}

	return mo.Some(&command), nil
}
