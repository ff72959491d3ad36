// Package commands implements tagctl, the maintenance CLI for the bot's data
// directory. It opens the same files as the bot and must run while the bot is stopped.
package commands

import (
	"time"

	"tagbot/pkg/config"
	"tagbot/pkg/storage"

	"github.com/spf13/cobra"
)

type options struct {
	dataDir     string
	lockTimeout time.Duration
	cfg         *config.Config
}

// NewRootCmd builds the tagctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "tagctl",
		Short: "Inspect and maintain tagbot's tag and settings stores",
		Long: `tagctl reads and writes the bot's embedded stores directly.

The bot holds an exclusive lock on both stores while it runs, so stop it first.
A locked store is reported as an error after the lock timeout.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("data-dir") {
				cfg.DataDir = opts.dataDir
			}
			if cmd.Flags().Changed("lock-timeout") {
				cfg.LockTimeout = opts.lockTimeout
			}
			opts.cfg = cfg
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&opts.dataDir, "data-dir", "d", "data", "Data directory (defaults to TAGBOT_DATA_DIR)")
	rootCmd.PersistentFlags().DurationVar(&opts.lockTimeout, "lock-timeout", time.Second, "How long to wait for the store lock (defaults to TAGBOT_LOCK_TIMEOUT)")

	rootCmd.AddCommand(newGuildsCmd(opts), newTagsCmd(opts), newSettingsCmd(opts))
	return rootCmd
}

// Execute runs tagctl with the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *options) openTags() (*storage.Store, error) {
	return storage.Open(o.cfg.TagsPath(), o.cfg.LockTimeout)
}

func (o *options) openSettings() (*storage.Store, error) {
	return storage.Open(o.cfg.SettingsPath(), o.cfg.LockTimeout)
}
