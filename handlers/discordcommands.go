package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"llamabot/core"
	"llamabot/models"
)

// maxListedEmotes caps the embed description at Discord's field limit
const maxListedEmotes = 25

func commandOptions(
	data discordgo.ApplicationCommandInteractionData,
) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(data.Options))
	for _, opt := range data.Options {
		options[opt.Name] = opt
	}
	return options
}

func interactionUsername(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.Username
	}
	if i.User != nil {
		return i.User.Username
	}
	return ""
}

func (h *DiscordEventsHandler) replyEphemeral(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	content string,
) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("⚠️ Failed to respond to interaction: %v", err)
	}
}

func (h *DiscordEventsHandler) handleAddEmote(
	ctx context.Context,
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	data discordgo.ApplicationCommandInteractionData,
) {
	if i.GuildID == "" {
		h.replyEphemeral(s, i, "This command can only be used in a server!")
		return
	}

	options := commandOptions(data)
	trigger := options["trigger"].StringValue()
	imageURL := options["image-url"].StringValue()

	matchMode := models.MatchModeContains
	if opt, ok := options["exact-match"]; ok && opt.BoolValue() {
		matchMode = models.MatchModeExact
	}

	guildOnly := true
	if opt, ok := options["guild-only"]; ok {
		guildOnly = opt.BoolValue()
	}
	var guildID *string
	if guildOnly {
		guildID = &i.GuildID
	}

	emote, err := h.emotesService.CreateEmote(ctx, models.CreateEmoteParams{
		GuildID:   guildID,
		Trigger:   trigger,
		ImageURL:  imageURL,
		MatchMode: matchMode,
		Author:    interactionUsername(i),
	})
	if err != nil {
		log.Printf("❌ Failed to add emote: %v", err)
		h.replyEphemeral(s, i, fmt.Sprintf("❌ Failed to add emote: %v", err))
		return
	}

	h.replyEphemeral(s, i, fmt.Sprintf("✅ Image trigger added! Trigger: %q → [Image]", emote.Trigger))
}

func (h *DiscordEventsHandler) handleRemoveEmote(
	ctx context.Context,
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	data discordgo.ApplicationCommandInteractionData,
) {
	if i.GuildID == "" {
		h.replyEphemeral(s, i, "This command can only be used in a server!")
		return
	}

	trigger := commandOptions(data)["trigger"].StringValue()

	emotes, err := h.emotesService.ListEmotes(ctx, &i.GuildID, nil)
	if err != nil {
		log.Printf("❌ Failed to list emotes for removal: %v", err)
		h.replyEphemeral(s, i, "❌ Failed to remove emote")
		return
	}

	var toDelete *models.Emote
	for _, emote := range emotes {
		if strings.EqualFold(emote.Trigger, trigger) {
			toDelete = emote
			break
		}
	}
	if toDelete == nil {
		h.replyEphemeral(s, i, fmt.Sprintf("❌ No emote found with trigger %q", trigger))
		return
	}

	if err := h.emotesService.DeleteEmote(ctx, toDelete.ID); err != nil {
		log.Printf("❌ Failed to delete emote %s: %v", toDelete.ID, err)
		h.replyEphemeral(s, i, "❌ Failed to remove emote")
		return
	}

	h.replyEphemeral(s, i, fmt.Sprintf("✅ Image trigger removed! Trigger: %q", toDelete.Trigger))
}

func (h *DiscordEventsHandler) handleListEmotes(
	ctx context.Context,
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	data discordgo.ApplicationCommandInteractionData,
) {
	options := commandOptions(data)

	enabledOnly := true
	if opt, ok := options["enabled-only"]; ok {
		enabledOnly = opt.BoolValue()
	}
	var enabled *bool
	if enabledOnly {
		t := true
		enabled = &t
	}

	var guildID *string
	if i.GuildID != "" {
		guildID = &i.GuildID
	}

	emotes, err := h.emotesService.ListEmotes(ctx, guildID, enabled)
	if err != nil {
		log.Printf("❌ Failed to list emotes: %v", err)
		h.replyEphemeral(s, i, "❌ Failed to list emotes")
		return
	}
	if len(emotes) == 0 {
		h.replyEphemeral(s, i, "No emotes found for this server.")
		return
	}

	displayed := emotes
	if len(displayed) > maxListedEmotes {
		displayed = displayed[:maxListedEmotes]
	}
	lines := make([]string, 0, len(displayed))
	for _, emote := range displayed {
		lines = append(lines, fmt.Sprintf("Trigger: **%s** | Uses: %d | Author: %s",
			emote.Trigger, emote.UseCount, emote.Author))
	}

	footer := fmt.Sprintf("Total: %d", len(emotes))
	if len(emotes) > maxListedEmotes {
		footer = fmt.Sprintf("Showing %d of %d emotes", maxListedEmotes, len(emotes))
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Emotes (%d)", len(emotes)),
		Color:       0x5865F2,
		Description: strings.Join(lines, "\n"),
		Footer:      &discordgo.MessageEmbedFooter{Text: footer},
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("⚠️ Failed to respond with emote list: %v", err)
	}
}

func (h *DiscordEventsHandler) handleInvokeCommand(
	ctx context.Context,
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	data discordgo.ApplicationCommandInteractionData,
) {
	name := commandOptions(data)["name"].StringValue()

	var guildID *string
	if i.GuildID != "" {
		guildID = &i.GuildID
	}

	maybeCommand, err := h.commandsService.GetCommandByName(ctx, name, guildID)
	if err != nil {
		log.Printf("❌ Failed to resolve command %q: %v", name, err)
		h.replyEphemeral(s, i, "❌ Failed to run command")
		return
	}
	if !maybeCommand.IsPresent() {
		h.replyEphemeral(s, i, fmt.Sprintf("❌ No command named %q", name))
		return
	}

	invocation, err := h.commandsService.InvokeCommand(ctx, maybeCommand.MustGet().ID)
	if err != nil {
		if core.IsDisabledError(err) {
			h.replyEphemeral(s, i, fmt.Sprintf("❌ Command %q is disabled", name))
			return
		}
		log.Printf("❌ Failed to invoke command %q: %v", name, err)
		h.replyEphemeral(s, i, "❌ Failed to run command")
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: invocation.Response,
		},
	})
	if err != nil {
		log.Printf("⚠️ Failed to respond with command output: %v", err)
	}
}
