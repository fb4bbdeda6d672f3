package matcher

import (
	"context"
	"fmt"
	"log"
	"strings"

	"llamabot/models"
)

// MatchCandidatesRepository defines the repository operations the match
// engine needs: the candidate fetch and the atomic usage increment
type MatchCandidatesRepository interface {
	ListMatchCandidates(ctx context.Context, guildID *string) ([]*models.Emote, error)
	IncrementEmoteUseCount(ctx context.Context, id string) error
}

type MatcherService struct {
	emotesRepo MatchCandidatesRepository
}

func NewMatcherService(repo MatchCandidatesRepository) *MatcherService {
	return &MatcherService{emotesRepo: repo}
}

// EvaluateMessage is the pure matching predicate: it decides which of the
// given candidates fire for the message, with no side effects. Exact mode
// requires whole-message equality after trimming, contains mode a substring
// occurrence, both case-insensitive. An empty or whitespace-only message
// matches nothing.
func EvaluateMessage(message string, candidates []*models.Emote) []*models.Emote {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return nil
	}

	messageLower := strings.ToLower(trimmed)

	var matched []*models.Emote
	for _, emote := range candidates {
		triggerLower := strings.ToLower(emote.Trigger)

		var matches bool
		switch emote.MatchMode {
		case models.MatchModeExact:
			matches = messageLower == triggerLower
		case models.MatchModeContains:
			matches = strings.Contains(messageLower, triggerLower)
		}

		if matches {
			matched = append(matched, emote)
		}
	}

	return matched
}

// MatchMessage decides which enabled emotes fire for one inbound message
// and records their usage. The candidate set is all enabled global emotes
// plus the guild's own when a guild ID is supplied. Usage recording is best
// effort: a failed increment is logged but never retracts the match nor
// blocks the other increments.
func (s *MatcherService) MatchMessage(
	ctx context.Context,
	message string,
	guildID *string,
) (*models.MatchResult, error) {
	if strings.TrimSpace(message) == "" {
		return &models.MatchResult{Matched: false, Emotes: []*models.Emote{}}, nil
	}

	log.Printf("📋 Starting to match message %s", models.ScopeDescription(guildID))

	candidates, err := s.emotesRepo.ListMatchCandidates(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch match candidates: %w", err)
	}

	matched := EvaluateMessage(message, candidates)

	for _, emote := range matched {
		if err := s.emotesRepo.IncrementEmoteUseCount(ctx, emote.ID); err != nil {
			log.Printf("⚠️ Failed to record usage for emote %s: %v", emote.ID, err)
		}
	}

	if matched == nil {
		matched = []*models.Emote{}
	}

	log.Printf("📋 Completed successfully - %d of %d candidates matched", len(matched), len(candidates))
	return &models.MatchResult{
		Matched: len(matched) > 0,
		Emotes:  matched,
	}, nil
}
