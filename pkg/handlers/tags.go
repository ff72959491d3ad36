package handlers

import (
	"log/slog"
	"strings"

	"tagbot/pkg/tags"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/lmittmann/tint"
)

const noTagsText = "No tags found. Try creating a tag with `/tag create`"

func (h *Handler) HandleTagGet(data discord.SlashCommandInteractionData, event *handler.CommandEvent) error {
	guildID, err := tags.GuildID(event.GuildID())
	if err != nil {
		return h.respondError(event, err, true)
	}
	content, err := h.Bot.Tags.Get(guildID, data.String("name"))
	if err != nil {
		return h.respondError(event, err, false)
	}
	return event.CreateMessage(discord.NewMessageCreate().
		WithContent(truncate(content, messageContentLimit)).
		WithAllowedMentions(&discord.AllowedMentions{}))
}

func (h *Handler) HandleTagCreate(data discord.SlashCommandInteractionData, event *handler.CommandEvent) error {
	guildID, err := tags.GuildID(event.GuildID())
	if err != nil {
		return h.respondError(event, err, true)
	}
	name := data.String("name")
	if err := h.Bot.Tags.Create(guildID, name, data.String("content")); err != nil {
		return h.respondError(event, err, false)
	}
	return event.CreateMessage(discord.NewMessageCreate().WithContentf("✅ Created tag `%s`", name))
}

func (h *Handler) HandleTagEdit(data discord.SlashCommandInteractionData, event *handler.CommandEvent) error {
	guildID, err := tags.GuildID(event.GuildID())
	if err != nil {
		return h.respondError(event, err, true)
	}
	resolved, err := h.Bot.Tags.Edit(guildID, data.String("name"), data.String("content"))
	if err != nil {
		return h.respondError(event, err, false)
	}
	return event.CreateMessage(discord.NewMessageCreate().WithContentf("✅ Updated tag `%s`", resolved))
}

func (h *Handler) HandleTagDelete(data discord.SlashCommandInteractionData, event *handler.CommandEvent) error {
	guildID, err := tags.GuildID(event.GuildID())
	if err != nil {
		return h.respondError(event, err, true)
	}
	resolved, err := h.Bot.Tags.Delete(guildID, data.String("name"))
	if err != nil {
		return h.respondError(event, err, false)
	}
	return event.CreateMessage(discord.NewMessageCreate().WithContentf("✅ Deleted tag `%s`", resolved))
}

func (h *Handler) HandleTagList(event *handler.CommandEvent) error {
	guildID, err := tags.GuildID(event.GuildID())
	if err != nil {
		return h.respondError(event, err, true)
	}
	names, err := h.Bot.Tags.List(guildID)
	if err != nil {
		return h.respondError(event, err, true)
	}
	description := noTagsText
	if len(names) != 0 {
		description = strings.Join(names, ", ")
	}
	embedBuilder := discord.NewEmbedBuilder()
	embedBuilder.SetTitle("All Tags")
	embedBuilder.SetDescription(truncate(description, embedDescriptionLimit))
	return event.CreateMessage(discord.NewMessageCreate().
		WithEmbeds(embedBuilder.Build()).
		WithEphemeral(true))
}

func (h *Handler) HandleTagPreview(data discord.SlashCommandInteractionData, event *handler.CommandEvent) error {
	guildID, err := tags.GuildID(event.GuildID())
	if err != nil {
		return h.respondError(event, err, true)
	}
	content, err := h.Bot.Tags.Get(guildID, data.String("name"))
	if err != nil {
		return h.respondError(event, err, true)
	}
	return event.CreateMessage(discord.NewMessageCreate().WithContent(truncate(content, messageContentLimit)).WithEphemeral(true))
}

func (h *Handler) HandleTagRaw(data discord.SlashCommandInteractionData, event *handler.CommandEvent) error {
	guildID, err := tags.GuildID(event.GuildID())
	if err != nil {
		return h.respondError(event, err, true)
	}
	content, err := h.Bot.Tags.Get(guildID, data.String("name"))
	if err != nil {
		return h.respondError(event, err, false)
	}
	return event.CreateMessage(discord.NewMessageCreate().
		WithContent(truncate(EscapeMarkdown(content), messageContentLimit)).
		WithAllowedMentions(&discord.AllowedMentions{}))
}

func (h *Handler) HandleTagAlias(data discord.SlashCommandInteractionData, event *handler.CommandEvent) error {
	guildID, err := tags.GuildID(event.GuildID())
	if err != nil {
		return h.respondError(event, err, true)
	}
	alias := data.String("alias")
	if _, err := h.Bot.Tags.Alias(guildID, data.String("name"), alias); err != nil {
		return h.respondError(event, err, false)
	}
	return event.CreateMessage(discord.NewMessageCreate().WithContentf("✅ Created tag alias `%s`", alias))
}

// respondError shows err to the invoking user. Failures that are not caused by
// the user's input are logged as well.
func (h *Handler) respondError(event *handler.CommandEvent, err error, ephemeral bool) error {
	if !isUserError(err) {
		slog.Error("tagbot: error while running a command",
			slog.String("command.name", event.Data.CommandName()),
			tint.Err(err))
	}
	return event.CreateMessage(discord.NewMessageCreate().
		WithEmbeds(ErrorEmbed(err)).
		WithEphemeral(ephemeral))
}
