package api

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tagbot/pkg/settings"
	"tagbot/pkg/storage"

	"github.com/disgoorg/json"
	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *settings.Repository) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "log_channels.db"), 100*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	repo := settings.NewRepository(store)
	return NewServer(":0", repo), repo
}

func do(t *testing.T, s *Server, method string, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	rq := httptest.NewRequest(method, target, strings.NewReader(body))
	rs := httptest.NewRecorder()
	s.Handler().ServeHTTP(rs, rq)
	return rs
}

func decode(t *testing.T, rs *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var v map[string]any
	require.NoError(t, json.Unmarshal(rs.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	rs := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rs.Code)
	assert.Equal(t, "hi", rs.Body.String())

	rs = do(t, s, http.MethodGet, "/1234/health", "")
	assert.Equal(t, http.StatusOK, rs.Code)
	assert.Equal(t, map[string]any{"success": true}, decode(t, rs))
}

func TestSetLogChannel(t *testing.T) {
	s, repo := newTestServer(t)

	rs := do(t, s, http.MethodPost, "/1234/settings/log-channel", `{"log_type":"BAN_CHANNEL_ID","channel_id":5678}`)
	assert.Equal(t, http.StatusOK, rs.Code)
	assert.Equal(t, map[string]any{"success": true}, decode(t, rs))

	channelID, ok, err := repo.Get(1234, settings.BanChannel)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, snowflake.ID(5678), channelID)

	_, ok, err = repo.Get(4321, settings.BanChannel)
	require.NoError(t, err)
	assert.False(t, ok, "other guilds are untouched")
}

func TestSetLogChannel_BadRequest(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name   string
		target string
		body   string
	}{
		{name: "malformed json", target: "/1234/settings/log-channel", body: `{"log_type":`},
		{name: "missing log type", target: "/1234/settings/log-channel", body: `{"channel_id":1}`},
		{name: "channel id as text", target: "/1234/settings/log-channel", body: `{"log_type":"BAN_CHANNEL_ID","channel_id":"abc"}`},
		{name: "guild id overflow", target: "/99999999999999999999999/settings/log-channel", body: `{"log_type":"BAN_CHANNEL_ID","channel_id":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := do(t, s, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, http.StatusBadRequest, rs.Code)
			v := decode(t, rs)
			assert.Equal(t, false, v["success"])
			assert.NotEmpty(t, v["reason"])
		})
	}
}

func TestGetLogChannel(t *testing.T) {
	s, repo := newTestServer(t)

	rs := do(t, s, http.MethodGet, "/1234/settings/log-channel/MESSAGE_SENT_CHANNEL_ID", "")
	assert.Equal(t, http.StatusNotFound, rs.Code)

	require.NoError(t, repo.Set(1234, settings.MessageSentChannel, 42))
	rs = do(t, s, http.MethodGet, "/1234/settings/log-channel/MESSAGE_SENT_CHANNEL_ID", "")
	assert.Equal(t, http.StatusOK, rs.Code)
	assert.Equal(t, map[string]any{
		"success":    true,
		"log_type":   "MESSAGE_SENT_CHANNEL_ID",
		"channel_id": "42",
	}, decode(t, rs))
}

func TestGetLogChannel_MalformedValue(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "log_channels.db"), 100*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	s := NewServer(":0", settings.NewRepository(store))

	require.NoError(t, store.Update(1234, func(ns *storage.Namespace) error {
		return ns.Put([]byte(settings.BanChannel), []byte{1, 2, 3})
	}))

	rs := do(t, s, http.MethodGet, "/1234/settings/log-channel/BAN_CHANNEL_ID", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rs.Code)
	assert.Equal(t, false, decode(t, rs)["success"])
}

func TestRouting(t *testing.T) {
	s, _ := newTestServer(t)

	rs := do(t, s, http.MethodGet, "/not-a-guild/settings/log-channel/BAN_CHANNEL_ID", "")
	assert.Equal(t, http.StatusNotFound, rs.Code)

	rs = do(t, s, http.MethodDelete, "/1234/settings/log-channel", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rs.Code)
	assert.JSONEq(t, `{"success":false,"reason":"method not allowed"}`, rs.Body.String())

	do(t, s, http.MethodGet, "/health", "")
	rs = do(t, s, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rs.Code)
	assert.Contains(t, rs.Body.String(), "tagbot_http_requests_total")
}

func TestRouting_GuildMethodMismatch(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/1234/settings/log-channel"},
		{http.MethodPut, "/1234/settings/log-channel"},
		{http.MethodPost, "/1234/settings/log-channel/BAN_CHANNEL_ID"},
		{http.MethodDelete, "/1234/health"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rs := do(t, s, tt.method, tt.path, "")
			assert.Equal(t, http.StatusMethodNotAllowed, rs.Code)
		})
	}

	rs := do(t, s, http.MethodGet, "/1234/unknown", "")
	assert.Equal(t, http.StatusNotFound, rs.Code)
}
