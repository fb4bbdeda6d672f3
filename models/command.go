package models

import (
	"time"
)

// Command is a canned response invoked explicitly by name or identifier,
// rather than matched against message text. A nil GuildID means the command
// is global; a guild-scoped command shadows a global command of the same
// name within its guild.
type Command struct {
	ID          string    `db:"id"          json:"id"`
	GuildID     *string   `db:"guild_id"    json:"guild_id"`
	Name        string    `db:"name"        json:"name"`
	Description *string   `db:"description" json:"description"`
	Response    string    `db:"response"    json:"response"`
	Enabled     bool      `db:"enabled"     json:"enabled"`
	CreatedBy   string    `db:"created_by"  json:"created_by"`
	UseCount    int64     `db:"use_count"   json:"use_count"`
	CreatedAt   time.Time `db:"created_at"  json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"  json:"updated_at"`
}

// IsGlobal returns true when the command is visible in every guild
func (c *Command) IsGlobal() bool {
	return c.GuildID == nil
}

// CreateCommandParams carries the caller-supplied fields for registering a
// command. Enabled is optional and defaults to true.
type CreateCommandParams struct {
	GuildID     *string `json:"guild_id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Response    string  `json:"response"`
	Enabled     *bool   `json:"enabled"`
	CreatedBy   string  `json:"created_by"`
}

// CommandInvocation is the outcome of invoking a command: the response text
// to render plus the record after its use counter was incremented
type CommandInvocation struct {
	Response string   `json:"response"`
	Command  *Command `json:"command"`
}

// CommandUpdate carries partial update fields for a command. Nil fields are
// left untouched.
type CommandUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Response    *string `json:"response"`
	Enabled     *bool   `json:"enabled"`
}
