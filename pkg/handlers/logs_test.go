package handlers

import (
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
)

func TestShouldLogMessage(t *testing.T) {
	self := snowflake.ID(1000)

	tests := []struct {
		name   string
		author discord.User
		want   bool
	}{
		{"member", discord.User{ID: 1}, true},
		{"other bot", discord.User{ID: 2, Bot: true}, true},
		{"system user", discord.User{ID: 3, System: true}, true},
		{"self", discord.User{ID: self, Bot: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldLogMessage(tt.author, self))
		})
	}
}
