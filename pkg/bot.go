package pkg

import (
	"tagbot/pkg/db"
	"tagbot/pkg/settings"
	"tagbot/pkg/tags"
)

type Bot struct {
	Tags     *tags.Repository
	Settings *settings.Repository
	Warnings *db.DB // nil when no database is configured
}
