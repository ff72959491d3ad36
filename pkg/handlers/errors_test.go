package handlers

import (
	"errors"
	"fmt"
	"testing"

	"tagbot/pkg/settings"
	"tagbot/pkg/storage"
	"tagbot/pkg/tags"

	"github.com/stretchr/testify/assert"
)

func TestErrorText(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "does not exist",
			err:  &tags.Error{Name: "banana", Err: tags.ErrDoesNotExist},
			want: "❌ Tag `banana` doesn't exist!",
		},
		{
			name: "already exists",
			err:  &tags.Error{Name: "apple", Err: tags.ErrAlreadyExists},
			want: "❌ Tag `apple` already exists!",
		},
		{
			name: "wrapped tag error",
			err:  fmt.Errorf("edit: %w", &tags.Error{Name: "kiwi", Err: tags.ErrDoesNotExist}),
			want: "❌ Tag `kiwi` doesn't exist!",
		},
		{
			name: "not a guild",
			err:  tags.ErrNotGuild,
			want: "❌ This command can only be run in servers.",
		},
		{
			name: "storage",
			err:  &storage.Error{Op: "commit", Err: errors.New("disk full")},
			want: "❌ There was an error while accessing the storage.",
		},
		{
			name: "malformed setting",
			err:  &storage.Error{Op: "decode", Err: settings.ErrMalformedValue},
			want: "❌ There was an error while accessing the storage.",
		},
		{
			name: "other",
			err:  errors.New("boom"),
			want: "❌ boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorText(tt.err))
		})
	}
}

func TestErrorEmbed(t *testing.T) {
	embed := ErrorEmbed(tags.ErrNotGuild)
	assert.Equal(t, "Error", embed.Title)
	assert.Equal(t, "❌ This command can only be run in servers.", embed.Description)
	assert.Equal(t, errorColor, embed.Color)
}

func TestIsUserError(t *testing.T) {
	assert.True(t, isUserError(&tags.Error{Name: "x", Err: tags.ErrDoesNotExist}))
	assert.True(t, isUserError(tags.ErrNotGuild))
	assert.False(t, isUserError(&tags.Error{Name: "x", Err: tags.ErrEncoding}))
	assert.False(t, isUserError(&storage.Error{Op: "open", Err: storage.ErrLocked}))
}
