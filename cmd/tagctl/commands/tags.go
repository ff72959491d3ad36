package commands

import (
	"fmt"
	"io"
	"os"

	"tagbot/pkg/tags"

	"github.com/disgoorg/snowflake/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// tagFile is the YAML layout written by "tags export" and read by "tags import".
type tagFile struct {
	Guild string            `yaml:"guild"`
	Tags  map[string]string `yaml:"tags"`
}

func newTagsCmd(opts *options) *cobra.Command {
	tagsCmd := &cobra.Command{
		Use:   "tags",
		Short: "List, export and import the tags of a guild",
	}
	tagsCmd.AddCommand(newTagsListCmd(opts), newTagsExportCmd(opts), newTagsImportCmd(opts))
	return tagsCmd
}

func newTagsListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list GUILD_ID",
		Short: "Print the tag names of a guild",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			guildID, err := snowflake.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid guild id %q: %w", args[0], err)
			}
			store, err := opts.openTags()
			if err != nil {
				return err
			}
			defer store.Close()

			names, err := tags.NewRepository(store).List(guildID)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newTagsExportCmd(opts *options) *cobra.Command {
	var output string
	exportCmd := &cobra.Command{
		Use:     "export GUILD_ID",
		Short:   "Write all tags of a guild as YAML",
		Example: `  tagctl tags export 123456789012345678 -o tags.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			guildID, err := snowflake.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid guild id %q: %w", args[0], err)
			}
			store, err := opts.openTags()
			if err != nil {
				return err
			}
			defer store.Close()

			dump, err := tags.NewRepository(store).Dump(guildID)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(tagFile{Guild: guildID.String(), Tags: dump})
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported %d tags to %s\n", len(dump), output)
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&output, "output", "o", "-", "File to write to, - for stdout")
	return exportCmd
}

func newTagsImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import GUILD_ID FILE",
		Short: "Create the tags of a YAML export in a guild, skipping names that already exist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			guildID, err := snowflake.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid guild id %q: %w", args[0], err)
			}
			data, err := readInput(cmd, args[1])
			if err != nil {
				return err
			}
			var file tagFile
			if err := yaml.Unmarshal(data, &file); err != nil {
				return fmt.Errorf("parse %s: %w", args[1], err)
			}

			store, err := opts.openTags()
			if err != nil {
				return err
			}
			defer store.Close()

			created, err := tags.NewRepository(store).Restore(guildID, file.Tags)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d tags, skipped %d existing\n", created, len(file.Tags)-created)
			return nil
		},
	}
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
