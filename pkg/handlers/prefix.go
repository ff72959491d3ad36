package handlers

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/lmittmann/tint"
)

// parsePrefixCommand extracts the tag name from a "<prefix>tag <name>" or
// "<prefix>dtag <name>" message. deleteInvocation is set for dtag.
func parsePrefixCommand(content string, prefix string) (name string, deleteInvocation bool, ok bool) {
	if prefix == "" {
		return "", false, false
	}
	rest, ok := strings.CutPrefix(content, prefix)
	if !ok {
		return "", false, false
	}
	command, name := rest, ""
	if i := strings.IndexFunc(rest, unicode.IsSpace); i != -1 {
		command, name = rest[:i], strings.TrimSpace(rest[i:])
	}
	if name == "" {
		return "", false, false
	}
	switch strings.ToLower(command) {
	case "tag":
		return name, false, true
	case "dtag":
		return name, true, true
	}
	return "", false, false
}

// HandlePrefixTag posts a tag in the channel of the invoking message, replying
// to whatever that message replied to.
func (h *Handler) HandlePrefixTag(ev *events.GuildMessageCreate) {
	if ev.Message.Author.Bot {
		return
	}
	name, deleteInvocation, ok := parsePrefixCommand(ev.Message.Content, h.Config.Prefix)
	if !ok {
		return
	}
	messageCreate := discord.NewMessageCreate().WithAllowedMentions(&discord.AllowedMentions{})
	if ref := ev.Message.MessageReference; ref != nil && ref.MessageID != nil {
		messageCreate = messageCreate.WithMessageReferenceByID(*ref.MessageID)
	}
	content, err := h.Bot.Tags.Get(ev.GuildID, name)
	if err != nil {
		if !isUserError(err) {
			slog.Error("tagbot: error while getting a tag", slog.Any("guild.id", ev.GuildID), slog.String("tag.name", name), tint.Err(err))
		}
		messageCreate = messageCreate.AddEmbeds(ErrorEmbed(err))
	} else {
		messageCreate = messageCreate.WithContent(truncate(content, messageContentLimit))
	}

	rest := ev.Client().Rest
	if _, err := rest.CreateMessage(ev.ChannelID, messageCreate); err != nil {
		slog.Error("tagbot: error while sending a tag", slog.Any("channel.id", ev.ChannelID), slog.String("tag.name", name), tint.Err(err))
	}
	if !deleteInvocation {
		return
	}
	if err := rest.DeleteMessage(ev.ChannelID, ev.MessageID); err != nil {
		slog.Warn("tagbot: error while deleting a dtag invocation", slog.Any("channel.id", ev.ChannelID), slog.Any("message.id", ev.MessageID), tint.Err(err))
	}
}
