package handlers

import "strings"

const (
	messageContentLimit   = 2000
	embedDescriptionLimit = 4096
	embedFieldLimit       = 1024
)

var markdownReplacer = strings.NewReplacer(
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"~", `\~`,
	"#", `\#`,
	"<", `\<`,
	">", `\>`,
	"|", `\|`,
)

// EscapeMarkdown escapes the characters Discord interprets as formatting so
// the text is displayed verbatim.
func EscapeMarkdown(s string) string {
	return markdownReplacer.Replace(s)
}

// truncate shortens s to at most limit runes, marking the cut with an ellipsis.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
