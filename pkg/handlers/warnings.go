package handlers

import (
	"fmt"
	"log/slog"
	"strings"

	"tagbot/pkg/db"
	"tagbot/pkg/tags"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
	"github.com/lmittmann/tint"
)

const (
	warningsPerPage = 10
	warningColor    = 0xFEE75C
	noReason        = "No reason provided"
	unknownGuild    = "Unknown server"
)

func (h *Handler) HandleWarnAdd(data discord.SlashCommandInteractionData, event *handler.CommandEvent) error {
	guildID, ok, err := h.checkWarnings(event)
	if !ok {
		return err
	}
	user := data.User("user")
	reason, ok := data.OptString("reason")
	if !ok || reason == "" {
		reason = noReason
	}
	guildName := unknownGuild
	if guild, ok := event.Client().Caches.Guild(guildID); ok {
		guildName = guild.Name
	}

	response := fmt.Sprintf("✅ warned %s.", user.Username)
	rest := event.Client().Rest
	channel, err := rest.CreateDMChannel(user.ID)
	if err == nil {
		_, err = rest.CreateMessage(channel.ID(), discord.NewMessageCreate().
			WithContentf("**%s**: You have been warned.\n**Reason**: %s", guildName, reason))
	}
	if err != nil {
		slog.Warn("tagbot: error while sending a warning DM", slog.Any("user.id", user.ID), tint.Err(err))
		response = "❌ Could not send DM."
	}

	if _, err := h.Bot.Warnings.AddWarning(guildID, user.ID, event.User().ID, reason); err != nil {
		slog.Error("tagbot: error while storing a warning", slog.Any("guild.id", guildID), slog.Any("user.id", user.ID), tint.Err(err))
		return event.CreateMessage(discord.NewMessageCreate().
			WithContent("There was an error while storing the warning.").
			WithEphemeral(true))
	}
	return event.CreateMessage(discord.NewMessageCreate().WithContent(response).WithEphemeral(true))
}

func (h *Handler) HandleWarnList(data discord.SlashCommandInteractionData, event *handler.CommandEvent) error {
	guildID, ok, err := h.checkWarnings(event)
	if !ok {
		return err
	}
	user := data.User("user")
	page := 1
	if p, ok := data.OptInt("page"); ok && p > 0 {
		page = p
	}
	messageCreate := discord.NewMessageCreate().WithEphemeral(true)
	warnings, total, err := h.Bot.Warnings.GetWarnings(guildID, user.ID, page-1, warningsPerPage)
	if err != nil {
		slog.Error("tagbot: error while getting warnings", slog.Any("guild.id", guildID), slog.Any("user.id", user.ID), tint.Err(err))
		return event.CreateMessage(messageCreate.WithContent("There was an error while getting the warnings."))
	}
	if total == 0 {
		return event.CreateMessage(messageCreate.WithContentf("%s has no warnings.", user.Username))
	}
	if pages := pageCount(total, warningsPerPage); page > pages {
		return event.CreateMessage(messageCreate.WithContentf("Page **%d** does not exist, %s has **%d** page(s) of warnings.", page, user.Username, pages))
	}
	return event.CreateMessage(messageCreate.WithEmbeds(warningsEmbed(user.Username, warnings, page, total)))
}

func (h *Handler) HandleWarnRemove(data discord.SlashCommandInteractionData, event *handler.CommandEvent) error {
	guildID, ok, err := h.checkWarnings(event)
	if !ok {
		return err
	}
	id := data.Int("id")
	messageCreate := discord.NewMessageCreate().WithEphemeral(true)
	removed, err := h.Bot.Warnings.RemoveWarning(guildID, int64(id))
	if err != nil {
		slog.Error("tagbot: error while removing a warning", slog.Any("guild.id", guildID), slog.Int("warning.id", id), tint.Err(err))
		return event.CreateMessage(messageCreate.WithContent("There was an error while removing the warning."))
	}
	if !removed {
		return event.CreateMessage(messageCreate.WithContentf("❌ Warning `#%d` doesn't exist!", id))
	}
	return event.CreateMessage(messageCreate.WithContentf("✅ Removed warning `#%d`", id))
}

// checkWarnings rejects the invocation unless it happens in a guild, by a
// moderator, with a warnings database configured. ok is false once a response
// has been sent.
func (h *Handler) checkWarnings(event *handler.CommandEvent) (guildID snowflake.ID, ok bool, err error) {
	guildID, err = tags.GuildID(event.GuildID())
	if err != nil {
		return 0, false, h.respondError(event, err, true)
	}
	messageCreate := discord.NewMessageCreate().WithEphemeral(true)
	if h.Bot.Warnings == nil {
		return 0, false, event.CreateMessage(messageCreate.WithContent("Warnings are not enabled for this bot."))
	}
	if member := event.Member(); member == nil || !member.Permissions.Has(discord.PermissionModerateMembers) {
		return 0, false, event.CreateMessage(messageCreate.WithContent("You need the **Timeout Members** permission to manage warnings."))
	}
	return guildID, true, nil
}

func pageCount(total int, perPage int) int {
	return (total + perPage - 1) / perPage
}

func warningsEmbed(username string, warnings []db.Warning, page int, total int) discord.Embed {
	lines := make([]string, 0, len(warnings))
	for _, w := range warnings {
		lines = append(lines, fmt.Sprintf("`#%d` **%s** - %s", w.ID, w.CreatedAt.Format("02/01/2006"), w.Reason))
	}
	embedBuilder := discord.NewEmbedBuilder()
	embedBuilder.SetTitle("Warnings for " + username)
	embedBuilder.SetColor(warningColor)
	embedBuilder.SetDescription(truncate(strings.Join(lines, "\n"), embedDescriptionLimit))
	embedBuilder.SetFooterText(fmt.Sprintf("Page %d/%d • Total Warnings: %d", page, pageCount(total, warningsPerPage), total))
	return embedBuilder.Build()
}
