// Package tags stores named text snippets per guild and looks them up by approximate name.
package tags

import (
	"log/slog"
	"maps"
	"slices"
	"unicode/utf8"

	"tagbot/pkg/fuzzy"
	"tagbot/pkg/metrics"
	"tagbot/pkg/storage"

	"github.com/disgoorg/snowflake/v2"
)

type Repository struct {
	store *storage.Store
}

func NewRepository(store *storage.Store) *Repository {
	return &Repository{store: store}
}

// Create stores a new tag under the literal name. Names are never corrected on creation.
func (r *Repository) Create(guildID snowflake.ID, name string, content string) (err error) {
	defer record("create", &err)
	return r.store.Update(guildID, func(ns *storage.Namespace) error {
		return create(ns, name, content)
	})
}

// Get returns the content of the tag closest to name. The error echoes the requested name.
func (r *Repository) Get(guildID snowflake.ID, name string) (content string, err error) {
	defer record("get", &err)
	err = r.store.View(guildID, func(ns *storage.Namespace) error {
		var getErr error
		_, content, getErr = get(ns, name)
		return getErr
	})
	return
}

// Edit replaces the content of the tag closest to name and returns the name it edited.
func (r *Repository) Edit(guildID snowflake.ID, name string, content string) (resolved string, err error) {
	defer record("edit", &err)
	err = r.store.Update(guildID, func(ns *storage.Namespace) error {
		var resolveErr error
		if resolved, resolveErr = resolve(ns, name); resolveErr != nil {
			return resolveErr
		}
		if !ns.Has([]byte(resolved)) {
			return doesNotExist(name)
		}
		return ns.Put([]byte(resolved), []byte(content))
	})
	return
}

// Delete removes the tag closest to name and returns the name it removed.
func (r *Repository) Delete(guildID snowflake.ID, name string) (resolved string, err error) {
	defer record("delete", &err)
	err = r.store.Update(guildID, func(ns *storage.Namespace) error {
		var resolveErr error
		if resolved, resolveErr = resolve(ns, name); resolveErr != nil {
			return resolveErr
		}
		if !ns.Has([]byte(resolved)) {
			return doesNotExist(name)
		}
		return ns.Delete([]byte(resolved))
	})
	return
}

// List returns the name of every tag in the guild. The order is not part of the contract.
func (r *Repository) List(guildID snowflake.ID) (names []string, err error) {
	defer record("list", &err)
	err = r.store.View(guildID, func(ns *storage.Namespace) error {
		var listErr error
		names, listErr = tagNames(ns)
		return listErr
	})
	return
}

// Alias copies the content of the tag closest to name into a new tag called alias.
// The copy is independent, later edits to the source don't affect it.
// It returns the name of the source tag.
func (r *Repository) Alias(guildID snowflake.ID, name string, alias string) (resolved string, err error) {
	defer record("alias", &err)
	err = r.store.Update(guildID, func(ns *storage.Namespace) error {
		var (
			content string
			getErr  error
		)
		if resolved, content, getErr = get(ns, name); getErr != nil {
			return getErr
		}
		return create(ns, alias, content)
	})
	return
}

// Dump returns every tag of the guild keyed by name.
func (r *Repository) Dump(guildID snowflake.ID) (map[string]string, error) {
	dump := make(map[string]string)
	err := r.store.View(guildID, func(ns *storage.Namespace) error {
		return ns.ForEach(func(key, value []byte) error {
			if !utf8.Valid(key) || !utf8.Valid(value) {
				return encoding(string(key))
			}
			dump[string(key)] = string(value)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return dump, nil
}

// Restore creates every tag of dump that the guild doesn't have yet and returns how many it wrote.
// Existing tags are left untouched.
func (r *Repository) Restore(guildID snowflake.ID, dump map[string]string) (int, error) {
	var written int
	err := r.store.Update(guildID, func(ns *storage.Namespace) error {
		for _, name := range slices.Sorted(maps.Keys(dump)) {
			if ns.Has([]byte(name)) {
				continue
			}
			if err := ns.Put([]byte(name), []byte(dump[name])); err != nil {
				return err
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

func create(ns *storage.Namespace, name string, content string) error {
	if ns.Has([]byte(name)) {
		return alreadyExists(name)
	}
	return ns.Put([]byte(name), []byte(content))
}

func get(ns *storage.Namespace, name string) (resolved string, content string, err error) {
	if resolved, err = resolve(ns, name); err != nil {
		return "", "", err
	}
	value := ns.Get([]byte(resolved))
	if value == nil {
		return "", "", doesNotExist(name)
	}
	if !utf8.Valid(value) {
		return "", "", encoding(resolved)
	}
	return resolved, string(value), nil
}

// resolve maps name to the closest existing tag name, or returns it unchanged.
func resolve(ns *storage.Namespace, name string) (string, error) {
	if ns.Has([]byte(name)) { // nothing scores higher than an exact match
		metrics.RecordResolution(metrics.ResolutionExact)
		return name, nil
	}
	names, err := tagNames(ns)
	if err != nil {
		return "", err
	}
	resolved := fuzzy.Resolve(name, names)
	if resolved == name {
		metrics.RecordResolution(metrics.ResolutionLiteral)
		return name, nil
	}
	metrics.RecordResolution(metrics.ResolutionCorrected)
	slog.Debug("tagbot: corrected tag name",
		slog.Any("guild.id", ns.GuildID()),
		slog.String("tag.requested", name),
		slog.String("tag.name", resolved))
	return resolved, nil
}

func tagNames(ns *storage.Namespace) ([]string, error) {
	keys := ns.Keys()
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		if !utf8.Valid(key) {
			return nil, encoding(string(key))
		}
		names = append(names, string(key))
	}
	return names, nil
}

func record(operation string, err *error) {
	metrics.RecordTagOperation(operation, resultLabel(*err))
}
