package commands

import (
	"fmt"

	"tagbot/pkg/settings"

	"github.com/disgoorg/snowflake/v2"
	"github.com/spf13/cobra"
)

func newSettingsCmd(opts *options) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Read and change the log channels of a guild",
		Long: `Read and change the log channels of a guild.

Known keys:
  MESSAGE_SENT_CHANNEL_ID  channel sent messages are mirrored to
  BAN_CHANNEL_ID           channel bans are reported in`,
	}
	settingsCmd.AddCommand(newSettingsGetCmd(opts), newSettingsSetCmd(opts))
	return settingsCmd
}

func newSettingsGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get GUILD_ID KEY",
		Short: "Print the channel bound to a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			guildID, err := snowflake.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid guild id %q: %w", args[0], err)
			}
			store, err := opts.openSettings()
			if err != nil {
				return err
			}
			defer store.Close()

			channelID, ok, err := settings.NewRepository(store).Get(guildID, settings.Key(args[1]))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s is not set for guild %s", args[1], guildID)
			}
			fmt.Fprintln(cmd.OutOrStdout(), channelID)
			return nil
		},
	}
}

func newSettingsSetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "set GUILD_ID KEY CHANNEL_ID",
		Short: "Bind a key to a channel",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			guildID, err := snowflake.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid guild id %q: %w", args[0], err)
			}
			channelID, err := snowflake.Parse(args[2])
			if err != nil {
				return fmt.Errorf("invalid channel id %q: %w", args[2], err)
			}
			key := settings.Key(args[1])
			if !key.Known() {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s is not a key the bot reads\n", string(key))
			}
			store, err := opts.openSettings()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := settings.NewRepository(store).Set(guildID, key, channelID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s set to %s\n", string(key), channelID)
			return nil
		},
	}
}
