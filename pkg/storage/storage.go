// Package storage owns the on-disk key/value engine shared by the tag and settings repositories.
// Every guild gets its own bucket, keyed by the decimal string of its snowflake.
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"go.etcd.io/bbolt"
)

const (
	fileMode = 0o600
	dirMode  = 0o755
)

type Store struct {
	db *bbolt.DB
}

// Open opens the store at path, creating the file and its parent directories when missing.
// bbolt holds an exclusive file lock for the lifetime of the handle; if another handle owns it,
// Open gives up after timeout.
func Open(path string, timeout time.Duration) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return nil, wrap("open", err)
	}
	db, err := bbolt.Open(path, fileMode, &bbolt.Options{Timeout: timeout})
	if err != nil {
		if errors.Is(err, bbolt.ErrTimeout) {
			return nil, wrap("open", ErrLocked)
		}
		return nil, wrap("open", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Path() string {
	return s.db.Path()
}

// View runs fn against the guild's namespace in a read-only transaction.
// A namespace that has never been written to reads as empty.
func (s *Store) View(guildID snowflake.ID, fn func(ns *Namespace) error) error {
	var fnErr error
	err := s.db.View(func(tx *bbolt.Tx) error {
		fnErr = fn(&Namespace{guildID: guildID, bucket: tx.Bucket(namespaceKey(guildID))})
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return wrap("view", err)
	}
	return nil
}

// Update runs fn against the guild's namespace in a read-write transaction, creating the
// namespace first if needed. The transaction is committed and fsynced before Update returns.
// An error from fn rolls the transaction back and is returned as is.
func (s *Store) Update(guildID snowflake.ID, fn func(ns *Namespace) error) error {
	var fnErr error
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(namespaceKey(guildID))
		if err != nil {
			fnErr = wrap("create namespace", err)
			return fnErr
		}
		fnErr = fn(&Namespace{guildID: guildID, bucket: bucket})
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return wrap("commit", err)
	}
	return nil
}

// Tenants returns the id of every guild that owns a namespace in this store.
func (s *Store) Tenants() ([]snowflake.ID, error) {
	var ids []snowflake.ID
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bbolt.Bucket) error {
			id, err := strconv.ParseUint(string(name), 10, 64)
			if err != nil { // not a guild namespace
				return nil
			}
			ids = append(ids, snowflake.ID(id))
			return nil
		})
	})
	if err != nil {
		return nil, wrap("list namespaces", err)
	}
	return ids, nil
}

func (s *Store) Sync() error {
	if err := s.db.Sync(); err != nil {
		return wrap("sync", err)
	}
	return nil
}

func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return wrap("close", err)
	}
	return nil
}

func namespaceKey(guildID snowflake.ID) []byte {
	return []byte(guildID.String())
}
