package commands

import (
	"fmt"
	"text/tabwriter"

	"tagbot/pkg/tags"

	"github.com/spf13/cobra"
)

func newGuildsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "guilds",
		Short: "List the guilds that have tags, with their tag count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openTags()
			if err != nil {
				return err
			}
			defer store.Close()

			guildIDs, err := store.Tenants()
			if err != nil {
				return err
			}
			repo := tags.NewRepository(store)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "GUILD\tTAGS")
			for _, guildID := range guildIDs {
				names, err := repo.List(guildID)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%d\n", guildID, len(names))
			}
			return w.Flush()
		},
	}
}
