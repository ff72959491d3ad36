package tags

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"tagbot/pkg/storage"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	guildA = snowflake.ID(1000)
	guildB = snowflake.ID(2000)
)

func newTestRepository(t *testing.T) (*Repository, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "tags.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewRepository(store), store
}

func requireTagError(t *testing.T, err error, sentinel error, name string) {
	t.Helper()
	require.ErrorIs(t, err, sentinel)
	var tagErr *Error
	require.ErrorAs(t, err, &tagErr)
	assert.Equal(t, name, tagErr.Name)
}

func TestRepository_CreateIsUnique(t *testing.T) {
	repo, _ := newTestRepository(t)

	require.NoError(t, repo.Create(guildA, "rules", "be nice"))
	err := repo.Create(guildA, "rules", "be mean")
	requireTagError(t, err, ErrAlreadyExists, "rules")

	content, err := repo.Get(guildA, "rules")
	require.NoError(t, err)
	assert.Equal(t, "be nice", content)
}

func TestRepository_CreateDoesNotResolve(t *testing.T) {
	repo, _ := newTestRepository(t)

	require.NoError(t, repo.Create(guildA, "banana", "yellow"))
	require.NoError(t, repo.Create(guildA, "banan", "typo on purpose"))

	names, err := repo.List(guildA)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"banana", "banan"}, names)

	content, err := repo.Get(guildA, "banan")
	require.NoError(t, err)
	assert.Equal(t, "typo on purpose", content)
}

func TestRepository_RoundTrip(t *testing.T) {
	repo, _ := newTestRepository(t)

	contents := map[string]string{
		"plain":     "hello",
		"multiline": "line one\nline two\n",
		"markup":    "**bold** `code` <@123> | ~strike~",
		"unicode":   "héllo wörld 🎉",
		"empty":     "",
	}
	for name, content := range contents {
		require.NoError(t, repo.Create(guildA, name, content))
	}
	for name, content := range contents {
		got, err := repo.Get(guildA, name)
		require.NoError(t, err, name)
		assert.Equal(t, content, got, name)
	}
}

func TestRepository_GetWithoutTags(t *testing.T) {
	repo, _ := newTestRepository(t)

	_, err := repo.Get(guildA, "anything")
	requireTagError(t, err, ErrDoesNotExist, "anything")
}

func TestRepository_GetResolvesTypos(t *testing.T) {
	repo, _ := newTestRepository(t)
	require.NoError(t, repo.Create(guildA, "banana", "yellow"))

	content, err := repo.Get(guildA, "banan")
	require.NoError(t, err)
	assert.Equal(t, "yellow", content)

	_, err = repo.Get(guildA, "zzz")
	requireTagError(t, err, ErrDoesNotExist, "zzz")
}

func TestRepository_Edit(t *testing.T) {
	repo, _ := newTestRepository(t)
	require.NoError(t, repo.Create(guildA, "banana", "yellow"))

	resolved, err := repo.Edit(guildA, "banan", "green")
	require.NoError(t, err)
	assert.Equal(t, "banana", resolved)

	content, err := repo.Get(guildA, "banana")
	require.NoError(t, err)
	assert.Equal(t, "green", content)

	_, err = repo.Edit(guildA, "zzz", "nope")
	requireTagError(t, err, ErrDoesNotExist, "zzz")

	names, err := repo.List(guildA)
	require.NoError(t, err)
	assert.Equal(t, []string{"banana"}, names, "edit must not create tags")
}

func TestRepository_DeleteThenGet(t *testing.T) {
	repo, _ := newTestRepository(t)
	require.NoError(t, repo.Create(guildA, "x", "y"))

	resolved, err := repo.Delete(guildA, "x")
	require.NoError(t, err)
	assert.Equal(t, "x", resolved)

	_, err = repo.Get(guildA, "x")
	requireTagError(t, err, ErrDoesNotExist, "x")

	_, err = repo.Delete(guildA, "x")
	requireTagError(t, err, ErrDoesNotExist, "x")
}

func TestRepository_DeleteResolvesTypos(t *testing.T) {
	repo, _ := newTestRepository(t)
	require.NoError(t, repo.Create(guildA, "banana", "yellow"))
	require.NoError(t, repo.Create(guildA, "cherry", "red"))

	resolved, err := repo.Delete(guildA, "bananna")
	require.NoError(t, err)
	assert.Equal(t, "banana", resolved)

	names, err := repo.List(guildA)
	require.NoError(t, err)
	assert.Equal(t, []string{"cherry"}, names)
}

func TestRepository_List(t *testing.T) {
	repo, _ := newTestRepository(t)

	names, err := repo.List(guildA)
	require.NoError(t, err)
	assert.Empty(t, names)

	for _, name := range []string{"c", "a", "b"} {
		require.NoError(t, repo.Create(guildA, name, name))
	}
	names, err = repo.List(guildA)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, names)
}

func TestRepository_AliasIsIndependent(t *testing.T) {
	repo, _ := newTestRepository(t)
	require.NoError(t, repo.Create(guildA, "a", "original"))

	source, err := repo.Alias(guildA, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "a", source)

	_, err = repo.Edit(guildA, "a", "new")
	require.NoError(t, err)

	content, err := repo.Get(guildA, "b")
	require.NoError(t, err)
	assert.Equal(t, "original", content)

	content, err = repo.Get(guildA, "a")
	require.NoError(t, err)
	assert.Equal(t, "new", content)
}

func TestRepository_AliasFailures(t *testing.T) {
	repo, _ := newTestRepository(t)

	_, err := repo.Alias(guildA, "missing", "alias")
	requireTagError(t, err, ErrDoesNotExist, "missing")

	require.NoError(t, repo.Create(guildA, "source", "content"))
	require.NoError(t, repo.Create(guildA, "taken", "other"))

	_, err = repo.Alias(guildA, "source", "taken")
	requireTagError(t, err, ErrAlreadyExists, "taken")

	content, err := repo.Get(guildA, "taken")
	require.NoError(t, err)
	assert.Equal(t, "other", content)
}

func TestRepository_TenantIsolation(t *testing.T) {
	repo, _ := newTestRepository(t)
	require.NoError(t, repo.Create(guildA, "x", "only in A"))

	_, err := repo.Get(guildB, "x")
	requireTagError(t, err, ErrDoesNotExist, "x")

	names, err := repo.List(guildB)
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, repo.Create(guildB, "x", "only in B"))
	content, err := repo.Get(guildA, "x")
	require.NoError(t, err)
	assert.Equal(t, "only in A", content)
}

func TestRepository_InvalidUTF8IsEncodingError(t *testing.T) {
	repo, store := newTestRepository(t)
	require.NoError(t, store.Update(guildA, func(ns *storage.Namespace) error {
		return ns.Put([]byte("broken"), []byte{0xff, 0xfe})
	}))

	_, err := repo.Get(guildA, "broken")
	requireTagError(t, err, ErrEncoding, "broken")

	_, err = repo.Dump(guildA)
	requireTagError(t, err, ErrEncoding, "broken")
}

func TestRepository_StorageErrorsPropagate(t *testing.T) {
	repo, _ := newTestRepository(t)

	err := repo.Create(guildA, "", "no name")
	var storageErr *storage.Error
	require.ErrorAs(t, err, &storageErr)
}

func TestRepository_DumpAndRestore(t *testing.T) {
	repo, _ := newTestRepository(t)
	require.NoError(t, repo.Create(guildA, "one", "1"))
	require.NoError(t, repo.Create(guildA, "two", "2"))

	dump, err := repo.Dump(guildA)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"one": "1", "two": "2"}, dump)

	require.NoError(t, repo.Create(guildB, "one", "kept"))
	written, err := repo.Restore(guildB, dump)
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	restored, err := repo.Dump(guildB)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"one": "kept", "two": "2"}, restored)
}

func TestRepository_ConcurrentCreates(t *testing.T) {
	repo, _ := newTestRepository(t)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures int
	)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.Create(guildA, "race", "content"); err != nil {
				mu.Lock()
				failures++
				mu.Unlock()
				assert.ErrorIs(t, err, ErrAlreadyExists)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 15, failures)
}

func TestGuildID(t *testing.T) {
	_, err := GuildID(nil)
	assert.ErrorIs(t, err, ErrNotGuild)

	id := snowflake.ID(5)
	got, err := GuildID(&id)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}
