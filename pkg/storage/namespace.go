package storage

import (
	"bytes"

	"github.com/disgoorg/snowflake/v2"
	"go.etcd.io/bbolt"
)

// Namespace is one guild's partition of a store. It is only valid inside the
// View or Update callback that produced it.
type Namespace struct {
	guildID snowflake.ID
	bucket  *bbolt.Bucket
}

func (n *Namespace) GuildID() snowflake.ID {
	return n.guildID
}

// Get returns a copy of the value stored under key, or nil if there is none.
func (n *Namespace) Get(key []byte) []byte {
	if n.bucket == nil {
		return nil
	}
	v := n.bucket.Get(key)
	if v == nil {
		return nil
	}
	return bytes.Clone(v)
}

func (n *Namespace) Has(key []byte) bool {
	return n.bucket != nil && n.bucket.Get(key) != nil
}

func (n *Namespace) Put(key []byte, value []byte) error {
	if n.bucket == nil {
		return wrap("put", bbolt.ErrTxNotWritable)
	}
	if err := n.bucket.Put(key, value); err != nil {
		return wrap("put", err)
	}
	return nil
}

func (n *Namespace) Delete(key []byte) error {
	if n.bucket == nil {
		return wrap("delete", bbolt.ErrTxNotWritable)
	}
	if err := n.bucket.Delete(key); err != nil {
		return wrap("delete", err)
	}
	return nil
}

// Keys returns a copy of every key in the namespace, in byte order.
func (n *Namespace) Keys() [][]byte {
	if n.bucket == nil {
		return nil
	}
	var keys [][]byte
	_ = n.bucket.ForEach(func(k, _ []byte) error {
		keys = append(keys, bytes.Clone(k))
		return nil
	})
	return keys
}

// ForEach calls fn for every key/value pair. The slices are only valid during the call.
func (n *Namespace) ForEach(fn func(key, value []byte) error) error {
	if n.bucket == nil {
		return nil
	}
	return n.bucket.ForEach(fn)
}
