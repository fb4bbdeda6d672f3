package models

import (
	"time"
)

// MatchMode controls how an emote trigger is tested against a message
type MatchMode string

const (
	MatchModeExact    MatchMode = "exact"
	MatchModeContains MatchMode = "contains"
)

// IsValid returns true if the match mode is one of the known values
func (m MatchMode) IsValid() bool {
	return m == MatchModeExact || m == MatchModeContains
}

// Emote is a registered text trigger that fires an image reply when a
// message matches it. A nil GuildID means the emote is global.
type Emote struct {
	ID        string    `db:"id"         json:"id"`
	GuildID   *string   `db:"guild_id"   json:"guild_id"`
	Trigger   string    `db:"trigger"    json:"trigger"`
	ImageURL  string    `db:"image_url"  json:"image_url"`
	MatchMode MatchMode `db:"match_mode" json:"match_mode"`
	Enabled   bool      `db:"enabled"    json:"enabled"`
	Author    string    `db:"author"     json:"author"`
	UseCount  int64     `db:"use_count"  json:"use_count"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsGlobal returns true when the emote is visible in every guild
func (e *Emote) IsGlobal() bool {
	return e.GuildID == nil
}

// CreateEmoteParams carries the caller-supplied fields for registering an
// emote. MatchMode and Enabled are optional; the registry applies defaults
// (contains, true) when they are absent.
type CreateEmoteParams struct {
	GuildID   *string   `json:"guild_id"`
	Trigger   string    `json:"trigger"`
	ImageURL  string    `json:"image_url"`
	MatchMode MatchMode `json:"match_mode"`
	Enabled   *bool     `json:"enabled"`
	Author    string    `json:"author"`
}

// MatchResult is the outcome of matching one message against the registered
// emotes visible to its guild
type MatchResult struct {
	Matched bool     `json:"matches"`
	Emotes  []*Emote `json:"emotes"`
}

// EmoteUpdate carries partial update fields for an emote. Nil fields are
// left untouched.
type EmoteUpdate struct {
	Trigger   *string    `json:"trigger"`
	ImageURL  *string    `json:"image_url"`
	MatchMode *MatchMode `json:"match_mode"`
	Enabled   *bool      `json:"enabled"`
}

// ScopeDescription returns a human-readable description of a guild scope,
// used in duplicate-conflict messages
func ScopeDescription(guildID *string) string {
	if guildID == nil {
		return "globally"
	}
	return "in this server"
}
