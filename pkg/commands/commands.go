// Package commands defines the application commands synced to Discord on startup.
package commands

import (
	"tagbot/pkg/settings"

	"github.com/disgoorg/disgo/discord"
)

// contentMaxLength keeps tag content sendable as a single message.
const contentMaxLength = 2000

var guildOnly = []discord.InteractionContextType{discord.InteractionContextTypeGuild}

var Commands = []discord.ApplicationCommandCreate{
	discord.SlashCommandCreate{
		Name:        "tag",
		Description: "Show and manage the tags of this server",
		Contexts:    guildOnly,
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionSubCommand{
				Name:        "get",
				Description: "Show a tag",
				Options:     []discord.ApplicationCommandOption{nameOption("Tag name")},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "create",
				Description: "Create a new tag",
				Options: []discord.ApplicationCommandOption{
					nameOption("Tag name"),
					contentOption("Tag content"),
				},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "edit",
				Description: "Edit an existing tag",
				Options: []discord.ApplicationCommandOption{
					nameOption("Tag name"),
					contentOption("New content"),
				},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "delete",
				Description: "Delete an existing tag",
				Options:     []discord.ApplicationCommandOption{nameOption("Tag name")},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "list",
				Description: "List all tags for this server",
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "preview",
				Description: "Privately preview a tag",
				Options:     []discord.ApplicationCommandOption{nameOption("Tag name")},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "raw",
				Description: "View a tag in raw text",
				Options:     []discord.ApplicationCommandOption{nameOption("Tag name")},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "alias",
				Description: "Create an alias for an existing tag",
				Options: []discord.ApplicationCommandOption{
					nameOption("Tag name"),
					discord.ApplicationCommandOptionString{
						Name:        "alias",
						Description: "Tag alias",
						Required:    true,
					},
				},
			},
		},
	},
	discord.SlashCommandCreate{
		Name:        "configure",
		Description: "Configure the bot for this server",
		Contexts:    guildOnly,
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionSubCommandGroup{
				Name:        "logs",
				Description: "Configure log channels",
				Options: []discord.ApplicationCommandOptionSubCommand{
					{
						Name:        "set",
						Description: "Set the channel a log type is posted to",
						Options: []discord.ApplicationCommandOption{
							logTypeOption(),
							discord.ApplicationCommandOptionChannel{
								Name:         "channel",
								Description:  "Log channel",
								Required:     true,
								ChannelTypes: []discord.ChannelType{discord.ChannelTypeGuildText},
							},
						},
					},
					{
						Name:        "current",
						Description: "Show the channel a log type is posted to",
						Options:     []discord.ApplicationCommandOption{logTypeOption()},
					},
				},
			},
		},
	},
	discord.SlashCommandCreate{
		Name:        "warn",
		Description: "Warn server members",
		Contexts:    guildOnly,
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionSubCommand{
				Name:        "add",
				Description: "Warn a server member",
				Options: []discord.ApplicationCommandOption{
					userOption("User to warn"),
					discord.ApplicationCommandOptionString{
						Name:        "reason",
						Description: "Reason",
					},
				},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "list",
				Description: "Show all warnings of a server member",
				Options: []discord.ApplicationCommandOption{
					userOption("User to show warnings for"),
					discord.ApplicationCommandOptionInt{
						Name:        "page",
						Description: "Page to show",
						MinValue:    intPtr(1),
					},
				},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "remove",
				Description: "Remove a warning",
				Options: []discord.ApplicationCommandOption{
					discord.ApplicationCommandOptionInt{
						Name:        "id",
						Description: "Warning ID",
						Required:    true,
					},
				},
			},
		},
	},
}

func nameOption(description string) discord.ApplicationCommandOptionString {
	return discord.ApplicationCommandOptionString{
		Name:        "name",
		Description: description,
		Required:    true,
	}
}

func contentOption(description string) discord.ApplicationCommandOptionString {
	return discord.ApplicationCommandOptionString{
		Name:        "content",
		Description: description,
		Required:    true,
		MaxLength:   intPtr(contentMaxLength),
	}
}

func userOption(description string) discord.ApplicationCommandOptionUser {
	return discord.ApplicationCommandOptionUser{
		Name:        "user",
		Description: description,
		Required:    true,
	}
}

func logTypeOption() discord.ApplicationCommandOptionString {
	choices := make([]discord.ApplicationCommandOptionChoiceString, 0, len(settings.Keys))
	for _, key := range settings.Keys {
		choices = append(choices, discord.ApplicationCommandOptionChoiceString{
			Name:  key.String(),
			Value: string(key),
		})
	}
	return discord.ApplicationCommandOptionString{
		Name:        "type",
		Description: "Log type",
		Required:    true,
		Choices:     choices,
	}
}

func intPtr(i int) *int {
	return &i
}
