package handlers

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, "plain text", EscapeMarkdown("plain text"))
	assert.Equal(t, "\\*bold\\* \\_it\\_ \\~\\~gone\\~\\~", EscapeMarkdown("*bold* _it_ ~~gone~~"))
	assert.Equal(t, "\\`code\\` \\# \\<@1\\> \\|\\|spoiler\\|\\|", EscapeMarkdown("`code` # <@1> ||spoiler||"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "äöü…", truncate("äöüßxyz", 4), "counts runes, not bytes")
}

func TestTruncate_MessageLimit(t *testing.T) {
	exact := strings.Repeat("a", messageContentLimit)
	assert.Equal(t, exact, truncate(exact, messageContentLimit))

	long := truncate(strings.Repeat("é", messageContentLimit+500), messageContentLimit)
	assert.Equal(t, messageContentLimit, utf8.RuneCountInString(long))
	assert.True(t, strings.HasSuffix(long, "…"))
}
