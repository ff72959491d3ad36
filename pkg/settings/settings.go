// Package settings keeps per-guild log channel bindings.
package settings

import (
	"encoding/binary"
	"errors"
	"slices"

	"tagbot/pkg/metrics"
	"tagbot/pkg/storage"

	"github.com/disgoorg/snowflake/v2"
)

var ErrMalformedValue = errors.New("stored channel id is not 8 bytes")

type Key string

const (
	MessageSentChannel Key = "MESSAGE_SENT_CHANNEL_ID"
	BanChannel         Key = "BAN_CHANNEL_ID"
)

var Keys = []Key{MessageSentChannel, BanChannel}

func (k Key) Known() bool {
	return slices.Contains(Keys, k)
}

func (k Key) String() string {
	switch k {
	case MessageSentChannel:
		return "Sent messages"
	case BanChannel:
		return "Bans"
	}
	return string(k)
}

type Repository struct {
	store *storage.Store
}

func NewRepository(store *storage.Store) *Repository {
	return &Repository{store: store}
}

// Set binds key to channelID for the guild, replacing any previous binding.
// Neither the key nor the channel are validated.
func (r *Repository) Set(guildID snowflake.ID, key Key, channelID snowflake.ID) error {
	value := binary.BigEndian.AppendUint64(nil, uint64(channelID))
	err := r.store.Update(guildID, func(ns *storage.Namespace) error {
		return ns.Put([]byte(key), value)
	})
	label := string(key)
	if !key.Known() {
		label = "other"
	}
	metrics.RecordSettingsWrite(label, err)
	return err
}

// Get returns the channel bound to key. ok is false when nothing was ever set.
// A value that is not a channel id fails with a *storage.Error wrapping
// ErrMalformedValue.
func (r *Repository) Get(guildID snowflake.ID, key Key) (channelID snowflake.ID, ok bool, err error) {
	err = r.store.View(guildID, func(ns *storage.Namespace) error {
		value := ns.Get([]byte(key))
		if value == nil {
			return nil
		}
		if len(value) != 8 {
			return &storage.Error{Op: "decode", Err: ErrMalformedValue}
		}
		channelID, ok = snowflake.ID(binary.BigEndian.Uint64(value)), true
		return nil
	})
	return
}
