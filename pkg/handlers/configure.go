package handlers

import (
	"log/slog"

	"tagbot/pkg/settings"
	"tagbot/pkg/tags"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/lmittmann/tint"
)

func (h *Handler) HandleLogChannelSet(data discord.SlashCommandInteractionData, event *handler.CommandEvent) error {
	guildID, err := tags.GuildID(event.GuildID())
	if err != nil {
		return h.respondError(event, err, true)
	}
	key := settings.Key(data.String("type"))
	channelID := data.Snowflake("channel")
	messageCreate := discord.NewMessageCreate().WithEphemeral(true)
	if err := h.Bot.Settings.Set(guildID, key, channelID); err != nil {
		slog.Error("tagbot: error while updating a log channel", slog.String("setting.key", string(key)), slog.Any("guild.id", guildID), tint.Err(err))
		return event.CreateMessage(messageCreate.
			WithContent("There was an error while updating the log channel."))
	}
	return event.CreateMessage(messageCreate.
		WithContentf("**%s** will now be logged in %s.", key, discord.ChannelMention(channelID)))
}

func (h *Handler) HandleLogChannelCurrent(data discord.SlashCommandInteractionData, event *handler.CommandEvent) error {
	guildID, err := tags.GuildID(event.GuildID())
	if err != nil {
		return h.respondError(event, err, true)
	}
	key := settings.Key(data.String("type"))
	messageCreate := discord.NewMessageCreate().WithEphemeral(true)
	channelID, ok, err := h.Bot.Settings.Get(guildID, key)
	if err != nil {
		slog.Error("tagbot: error while getting a log channel", slog.String("setting.key", string(key)), slog.Any("guild.id", guildID), tint.Err(err))
		return event.CreateMessage(messageCreate.WithContent("There was an error while getting the log channel."))
	}
	if !ok {
		return event.CreateMessage(messageCreate.WithContentf("**%s** are not logged.", key))
	}
	return event.CreateMessage(messageCreate.WithContentf("**%s** are logged in %s.", key, discord.ChannelMention(channelID)))
}
