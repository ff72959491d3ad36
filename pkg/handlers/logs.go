package handlers

import (
	"log/slog"
	"time"

	"tagbot/pkg/settings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/lmittmann/tint"
)

const (
	messageSentColor = 0x5865F2
	banColor         = errorColor
)

// HandleMessageLog mirrors guild messages into the guild's sent messages log channel.
func (h *Handler) HandleMessageLog(ev *events.GuildMessageCreate) {
	if !shouldLogMessage(ev.Message.Author, ev.Client().ApplicationID) {
		return
	}
	content := ev.Message.Content
	if content == "" {
		content = "*no text content*"
	}
	embedBuilder := discord.NewEmbedBuilder()
	embedBuilder.SetTitle("Message Sent")
	embedBuilder.SetColor(messageSentColor)
	embedBuilder.AddField("User", ev.Message.Author.Mention(), true)
	embedBuilder.AddField("Channel", discord.ChannelMention(ev.ChannelID), true)
	embedBuilder.AddField("Content", truncate(content, embedFieldLimit), false)
	embedBuilder.SetTimestamp(ev.Message.CreatedAt)
	h.sendLog(ev.Client().Rest, ev.GuildID, settings.MessageSentChannel, embedBuilder.Build())
}

// shouldLogMessage skips only the bot's own messages. Other bots and webhooks are logged.
func shouldLogMessage(author discord.User, selfID snowflake.ID) bool {
	return author.ID != selfID
}

// HandleBanLog reports guild bans in the guild's ban log channel.
func (h *Handler) HandleBanLog(ev *events.GuildBan) {
	embedBuilder := discord.NewEmbedBuilder()
	embedBuilder.SetTitle("User Banned")
	embedBuilder.SetColor(banColor)
	embedBuilder.AddField("Banned User", ev.User.Mention()+" ("+ev.User.Username+")", false)
	embedBuilder.SetTimestamp(time.Now())
	h.sendLog(ev.Client().Rest, ev.GuildID, settings.BanChannel, embedBuilder.Build())
}

func (h *Handler) sendLog(client rest.Rest, guildID snowflake.ID, key settings.Key, embed discord.Embed) {
	channelID, ok, err := h.Bot.Settings.Get(guildID, key)
	if err != nil {
		slog.Error("tagbot: error while getting a log channel", slog.Any("guild.id", guildID), slog.String("setting.key", string(key)), tint.Err(err))
		return
	}
	if !ok {
		return
	}
	if _, err := client.CreateMessage(channelID, discord.NewMessageCreate().
		WithEmbeds(embed).
		WithAllowedMentions(&discord.AllowedMentions{})); err != nil {
		slog.Warn("tagbot: error while sending a log message", slog.Any("guild.id", guildID), slog.Any("channel.id", channelID), tint.Err(err))
	}
}
