package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/samber/mo"

	"llamabot/core"
	"llamabot/models"
)

type PostgresEmotesRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for emotes table
var emotesColumns = []string{
	"id",
	"guild_id",
	"trigger",
	"image_url",
	"match_mode",
	"enabled",
	"author",
	"use_count",
	"created_at",
	"updated_at",
}

func NewPostgresEmotesRepository(db *sqlx.DB, schema string) *PostgresEmotesRepository {
	return &PostgresEmotesRepository{db: db, schema: schema}
}

// isUniqueViolation reports whether err is a postgres unique-constraint
// violation (SQLSTATE 23505)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (r *PostgresEmotesRepository) CreateEmote(ctx context.Context, emote *models.Emote) error {
	insertColumns := []string{
		"id",
		"guild_id",
		"trigger",
		"image_url",
		"match_mode",
		"enabled",
		"author",
	}
	columnsStr := strings.Join(insertColumns, ", ")
	returningStr := strings.Join(emotesColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.emotes (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`, r.schema, columnsStr, returningStr)

	err := r.db.QueryRowxContext(ctx, query,
		emote.ID, emote.GuildID, emote.Trigger, emote.ImageURL, emote.MatchMode, emote.Enabled, emote.Author).
		StructScan(emote)
	if err != nil {
		if isUniqueViolation(err) {
			return &core.DuplicateInScopeError{
				Value: emote.Trigger,
				Scope: models.ScopeDescription(emote.GuildID),
			}
		}
		return fmt.Errorf("failed to create emote: %w", err)
	}

	return nil
}

func (r *PostgresEmotesRepository) GetEmoteByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Emote], error) {
	columnsStr := strings.Join(emotesColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.emotes
		WHERE id = $1`, columnsStr, r.schema)

	var emote models.Emote
	err := r.db.GetContext(ctx, &emote, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return mo.None[*models.Emote](), nil
		}
		return mo.None[*models.Emote](), fmt.Errorf("failed to get emote by ID: %w", err)
	}

	return mo.Some(&emote), nil
}

// ListEmotes lists emotes in a single scope: the given guild's emotes when
// guildID is non-nil, global emotes otherwise. The enabled filter is applied
// when present.
func (r *PostgresEmotesRepository) ListEmotes(
	ctx context.Context,
	guildID *string,
	enabled *bool,
) ([]*models.Emote, error) {
	columnsStr := strings.Join(emotesColumns, ", ")

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
		FROM %s.emotes
		WHERE %s
		ORDER BY created_at DESC`, columnsStr, r.schema, strings.Join(conditions, " AND "))

	var emotes []*models.Emote
	err := r.db.SelectContext(ctx, &emotes, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list emotes: %w", err)
	}

	return emotes, nil
}

// ListMatchCandidates returns all enabled emotes visible to the given guild:
// global emotes plus the guild's own when guildID is non-nil.
func (r *PostgresEmotesRepository) ListMatchCandidates(
	ctx context.Context,
	guildID *string,
) ([]*models.Emote, error) {
	columnsStr := strings.Join(emotesColumns, ", ")

	scopeClause := "guild_id IS NULL"
	args := []any{}
	if guildID != nil {
		scopeClause = "(guild_id IS NULL OR guild_id = $1)"
		args = append(args, *guildID)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.emotes
		WHERE enabled = TRUE AND %s`, columnsStr, r.schema, scopeClause)

	var emotes []*models.Emote
	err := r.db.SelectContext(ctx, &emotes, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list match candidates: %w", err)
	}

	return emotes, nil
}

func (r *PostgresEmotesRepository) UpdateEmote(
	ctx context.Context,
	id string,
	update models.EmoteUpdate,
) (mo.Option[*models.Emote], error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	addSet := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Trigger != nil {
		addSet("trigger", *update.Trigger)
	}
	if update.ImageURL != nil {
		addSet("image_url", *update.ImageURL)
	}
	if update.MatchMode != nil {
		addSet("match_mode", *update.MatchMode)
	}
	if update.Enabled != nil {
		addSet("enabled", *update.Enabled)
	}

	args = append(args, id)
	returningStr := strings.Join(emotesColumns, ", ")
	query := fmt.Sprintf(`
		UPDATE %s.emotes
		SET %s
		WHERE id = $%d
		RETURNING %s`, r.schema, strings.Join(setClauses, ", "), len(args), returningStr)

	var emote models.Emote
	err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&emote)
	if err != nil {
		if err == sql.ErrNoRows {
			return mo.None[*models.Emote](), nil
		}
		if isUniqueViolation(err) {
			trigger := ""
			if update.Trigger != nil {
				trigger = *update.Trigger
			}
			return mo.None[*models.Emote](), &core.DuplicateInScopeError{
				Value: trigger,
				Scope: "in this scope",
			}
		}
		return mo.None[*models.Emote](), fmt.Errorf("failed to update emote: %w", err)
	}

	return mo.Some(&emote), nil
}

func (r *PostgresEmotesRepository) DeleteEmote(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s.emotes WHERE id = $1`, r.schema)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete emote: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rowsAffected > 0, nil
}

// IncrementEmoteUseCount applies a single atomic add-one to the emote's use
// counter; concurrent firings of the same emote never lose updates.
func (r *PostgresEmotesRepository) IncrementEmoteUseCount(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		UPDATE %s.emotes
		SET use_count = use_count + 1, updated_at = NOW()
		WHERE id = $1`, r.schema)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to increment emote use count: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return core.ErrNotFound
	}

	return nil
}
