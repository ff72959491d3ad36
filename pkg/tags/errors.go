package tags

import (
	"errors"

	"github.com/disgoorg/snowflake/v2"
)

var (
	ErrDoesNotExist  = errors.New("tag does not exist")
	ErrAlreadyExists = errors.New("tag already exists")
	ErrEncoding      = errors.New("stored tag is not valid UTF-8")
	ErrNotGuild      = errors.New("not in a guild")
)

// Error reports a failure concerning a single tag name. Err is one of the sentinels above.
type Error struct {
	Name string
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error() + ": " + e.Name
}

func (e *Error) Unwrap() error {
	return e.Err
}

// GuildID returns the guild an interaction was invoked in, or ErrNotGuild outside of one.
func GuildID(guildID *snowflake.ID) (snowflake.ID, error) {
	if guildID == nil {
		return 0, ErrNotGuild
	}
	return *guildID, nil
}

func doesNotExist(name string) error {
	return &Error{Name: name, Err: ErrDoesNotExist}
}

func alreadyExists(name string) error {
	return &Error{Name: name, Err: ErrAlreadyExists}
}

func encoding(name string) error {
	return &Error{Name: name, Err: ErrEncoding}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrDoesNotExist):
		return "does_not_exist"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrEncoding):
		return "encoding"
	}
	return "storage"
}
