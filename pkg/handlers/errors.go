package handlers

import (
	"errors"
	"fmt"

	"tagbot/pkg/storage"
	"tagbot/pkg/tags"

	"github.com/disgoorg/disgo/discord"
)

const errorColor = 0xED4245

// ErrorText renders err the way it is shown to the invoking user.
func ErrorText(err error) string {
	var tagErr *tags.Error
	if errors.As(err, &tagErr) {
		switch {
		case errors.Is(tagErr.Err, tags.ErrDoesNotExist):
			return fmt.Sprintf("❌ Tag `%s` doesn't exist!", tagErr.Name)
		case errors.Is(tagErr.Err, tags.ErrAlreadyExists):
			return fmt.Sprintf("❌ Tag `%s` already exists!", tagErr.Name)
		case errors.Is(tagErr.Err, tags.ErrEncoding):
			return fmt.Sprintf("❌ Tag `%s` is stored in an unreadable format.", tagErr.Name)
		}
	}
	if errors.Is(err, tags.ErrNotGuild) {
		return "❌ This command can only be run in servers."
	}
	var storageErr *storage.Error
	if errors.As(err, &storageErr) {
		return "❌ There was an error while accessing the storage."
	}
	return "❌ " + err.Error()
}

func ErrorEmbed(err error) discord.Embed {
	return discord.NewEmbedBuilder().
		SetTitle("Error").
		SetDescription(ErrorText(err)).
		SetColor(errorColor).
		Build()
}

// isUserError reports whether err is an expected outcome of the user's input
// rather than a failure worth logging.
func isUserError(err error) bool {
	var tagErr *tags.Error
	return (errors.As(err, &tagErr) && !errors.Is(err, tags.ErrEncoding)) || errors.Is(err, tags.ErrNotGuild)
}
