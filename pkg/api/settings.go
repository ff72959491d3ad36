package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"tagbot/pkg/settings"

	"github.com/disgoorg/json"
	"github.com/disgoorg/snowflake/v2"
	"github.com/gorilla/mux"
	"github.com/lmittmann/tint"
)

const maxBodySize = 1 << 16

type setLogChannelRequest struct {
	LogType   string `json:"log_type"`
	ChannelID uint64 `json:"channel_id"`
}

type response struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}

type logChannelResponse struct {
	Success   bool         `json:"success"`
	LogType   string       `json:"log_type"`
	ChannelID snowflake.ID `json:"channel_id"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("hi"))
}

func (s *Server) handleGuildHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, response{Success: true})
}

func (s *Server) handleSetLogChannel(w http.ResponseWriter, r *http.Request) {
	guildID, err := snowflake.Parse(mux.Vars(r)["guild_id"])
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid guild id")
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}
	var rq setLogChannelRequest
	if err := json.Unmarshal(body, &rq); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if rq.LogType == "" {
		writeFailure(w, http.StatusBadRequest, "log_type is required")
		return
	}
	if err := s.settings.Set(guildID, settings.Key(rq.LogType), snowflake.ID(rq.ChannelID)); err != nil {
		slog.Error("tagbot: error while setting a log channel from the API",
			slog.Any("guild.id", guildID),
			slog.String("setting.key", rq.LogType),
			tint.Err(err))
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true})
}

func (s *Server) handleGetLogChannel(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	guildID, err := snowflake.Parse(vars["guild_id"])
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid guild id")
		return
	}
	logType := vars["log_type"]
	channelID, ok, err := s.settings.Get(guildID, settings.Key(logType))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, settings.ErrMalformedValue) {
			status = http.StatusUnprocessableEntity
		}
		writeFailure(w, status, err.Error())
		return
	}
	if !ok {
		writeFailure(w, http.StatusNotFound, "log channel is not set")
		return
	}
	writeJSON(w, http.StatusOK, logChannelResponse{Success: true, LogType: logType, ChannelID: channelID})
}

func writeFailure(w http.ResponseWriter, status int, reason string) {
	writeJSON(w, status, response{Success: false, Reason: reason})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("tagbot: error while encoding an API response", tint.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
