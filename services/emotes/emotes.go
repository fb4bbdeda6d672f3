package emotes

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/samber/mo"

	"llamabot/core"
	"llamabot/models"
)

// EmotesRepository defines the interface for emote repository operations
type EmotesRepository interface {
	CreateEmote(ctx context.Context, emote *models.Emote) error
	GetEmoteByID(ctx context.Context, id string) (mo.Option[*models.Emote], error)
	ListEmotes(ctx context.Context, guildID *string, enabled *bool) ([]*models.Emote, error)
	UpdateEmote(ctx context.Context, id string, update models.EmoteUpdate) (mo.Option[*models.Emote], error)
	DeleteEmote(ctx context.Context, id string) (bool, error)
}

type EmotesService struct {
	emotesRepo EmotesRepository
}

func NewEmotesService(repo EmotesRepository) *EmotesService {
	return &EmotesService{emotesRepo: repo}
}

// CreateEmote validates and registers a new emote. Defaulting happens here
// so every caller gets identical defaults: match mode contains, enabled
// true, global scope when no guild is given.
func (s *EmotesService) CreateEmote(
	ctx context.Context,
	params models.CreateEmoteParams,
) (*models.Emote, error) {
	log.Printf("📋 Starting to create emote with trigger: %s", params.Trigger)

	if strings.TrimSpace(params.Trigger) == "" {
		return nil, core.NewValidationError("trigger", "cannot be empty")
	}
	if strings.TrimSpace(params.Author) == "" {
		return nil, core.NewValidationError("author", "cannot be empty")
	}
	if err := validateImageURL(params.ImageURL); err != nil {
		return nil, err
	}

	matchMode := params.MatchMode
	if matchMode == "" {
		matchMode = models.MatchModeContains
	}
	if !matchMode.IsValid() {
		return nil, core.NewValidationError("match_mode", "must be exact or contains")
	}

	enabled := true
	if params.Enabled != nil {
		enabled = *params.Enabled
	}

	emote := &models.Emote{
		ID:        core.NewID("em"),
		GuildID:   params.GuildID,
		Trigger:   params.Trigger,
		ImageURL:  params.ImageURL,
		MatchMode: matchMode,
		Enabled:   enabled,
		Author:    params.Author,
	}
	if err := s.emotesRepo.CreateEmote(ctx, emote); err != nil {
		if core.IsDuplicateInScopeError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create emote in database: %w", err)
	}

	log.Printf("📋 Completed successfully - created emote with ID: %s", emote.ID)
	return emote, nil
}

func (s *EmotesService) GetEmoteByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Emote], error) {
	log.Printf("📋 Starting to get emote by ID: %s", id)
	if !core.IsValidID(id) {
		return mo.None[*models.Emote](), core.NewValidationError("id", "must be a valid emote ID")
	}

	maybeEmote, err := s.emotesRepo.GetEmoteByID(ctx, id)
	if err != nil {
		return mo.None[*models.Emote](), fmt.Errorf("failed to get emote by ID: %w", err)
	}

	if !maybeEmote.IsPresent() {
		log.Printf("📋 Completed successfully - emote not found")
		return mo.None[*models.Emote](), nil
	}

	log.Printf("📋 Completed successfully - found emote with trigger: %s", maybeEmote.MustGet().Trigger)
	return maybeEmote, nil
}

// ListEmotes returns one scope's emotes: the guild's when guildID is
// non-nil, the global ones otherwise.
func (s *EmotesService) ListEmotes(
	ctx context.Context,
	guildID *string,
	enabled *bool,
) ([]*models.Emote, error) {
	log.Printf("📋 Starting to list emotes %s", models.ScopeDescription(guildID))

	emotes, err := s.emotesRepo.ListEmotes(ctx, guildID, enabled)
	if err != nil {
		return nil, fmt.Errorf("failed to list emotes: %w", err)
	}

	log.Printf("📋 Completed successfully - found %d emotes", len(emotes))
	return emotes, nil
}

// UpdateEmote applies a partial update. Fields not present in the update
// are left untouched.
func (s *EmotesService) UpdateEmote(
	ctx context.Context,
	id string,
	update models.EmoteUpdate,
) (*models.Emote, error) {
	log.Printf("📋 Starting to update emote: %s", id)
	if !core.IsValidID(id) {
		return nil, core.NewValidationError("id", "must be a valid emote ID")
	}

	if update.Trigger != nil && strings.TrimSpace(*update.Trigger) == "" {
		return nil, core.NewValidationError("trigger", "cannot be empty")
	}
	if update.ImageURL != nil {
		if err := validateImageURL(*update.ImageURL); err != nil {
			return nil, err
		}
	}
	if update.MatchMode != nil && !update.MatchMode.IsValid() {
		return nil, core.NewValidationError("match_mode", "must be exact or contains")
	}

	maybeEmote, err := s.emotesRepo.UpdateEmote(ctx, id, update)
	if err != nil {
		if core.IsDuplicateInScopeError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update emote: %w", err)
	}
	if !maybeEmote.IsPresent() {
		return nil, core.ErrNotFound
	}

	emote := maybeEmote.MustGet()
	log.Printf("📋 Completed successfully - updated emote: %s", emote.ID)
	return emote, nil
}

func (s *EmotesService) DeleteEmote(ctx context.Context, id string) error {
	log.Printf("📋 Starting to delete emote: %s", id)
	if !core.IsValidID(id) {
		return core.NewValidationError("id", "must be a valid emote ID")
	}

	deleted, err := s.emotesRepo.DeleteEmote(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete emote: %w", err)
	}
	if !deleted {
		return core.ErrNotFound
	}

	log.Printf("📋 Completed successfully - deleted emote: %s", id)
	return nil
}

// validateImageURL requires a syntactically valid absolute http(s) URL
func validateImageURL(imageURL string) error {
	parsed, err := url.ParseRequestURI(imageURL)
	if err != nil {
		return core.NewValidationError("image_url", "must be a valid URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return core.NewValidationError("image_url", "must use http or https")
	}
	if parsed.Host == "" {
		return core.NewValidationError("image_url", "must include a host")
	}
	return nil
}
