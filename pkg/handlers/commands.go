package handlers

import (
	"log/slog"

	"tagbot/pkg"
	"tagbot/pkg/config"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/handler"
	"github.com/lmittmann/tint"
)

func NewHandler(b *pkg.Bot, c *config.Config) *Handler {
	mux := handler.New()
	mux.Error(func(e *handler.InteractionEvent, err error) {
		i := e.Interaction.(discord.ApplicationCommandInteraction)
		slog.Error("tagbot: error while handling a command", slog.String("command.name", i.Data.CommandName()), tint.Err(err))
		_ = e.Respond(discord.InteractionResponseTypeCreateMessage, discord.NewMessageCreate().
			WithContentf("There was an error while handling the command: %v", err).
			WithEphemeral(true))
	})
	handlers := &Handler{
		Bot:    b,
		Config: c,
		Router: mux,
	}
	handlers.Route("/tag", func(r handler.Router) {
		r.SlashCommand("/get", handlers.HandleTagGet)
		r.SlashCommand("/create", handlers.HandleTagCreate)
		r.SlashCommand("/edit", handlers.HandleTagEdit)
		r.SlashCommand("/delete", handlers.HandleTagDelete)
		r.Command("/list", handlers.HandleTagList)
		r.SlashCommand("/preview", handlers.HandleTagPreview)
		r.SlashCommand("/raw", handlers.HandleTagRaw)
		r.SlashCommand("/alias", handlers.HandleTagAlias)
	})
	handlers.Route("/configure", func(r handler.Router) {
		r.Route("/logs", func(r handler.Router) {
			r.SlashCommand("/set", handlers.HandleLogChannelSet)
			r.SlashCommand("/current", handlers.HandleLogChannelCurrent)
		})
	})
	handlers.Route("/warn", func(r handler.Router) {
		r.SlashCommand("/add", handlers.HandleWarnAdd)
		r.SlashCommand("/list", handlers.HandleWarnList)
		r.SlashCommand("/remove", handlers.HandleWarnRemove)
	})
	return handlers
}

type Handler struct {
	Bot    *pkg.Bot
	Config *config.Config
	handler.Router
}

// Listeners returns the gateway listeners serving the prefix commands and the guild logs.
func (h *Handler) Listeners() *events.ListenerAdapter {
	return &events.ListenerAdapter{
		OnGuildMessageCreate: func(ev *events.GuildMessageCreate) {
			h.HandlePrefixTag(ev)
			h.HandleMessageLog(ev)
		},
		OnGuildBan: h.HandleBanLog,
	}
}
