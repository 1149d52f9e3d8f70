package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/dshills/conflux/settings"
)

// SettingsGroup builds the "settings" command tree over a persistent store:
// show, get, set, and rm. Mutating commands write the backing file
// immediately.
func SettingsGroup(log *slog.Logger, store *settings.Store) *cobra.Command {
	root := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and edit persistent settings",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print all settings as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log.Debug("showing settings", "path", store.Path())
			if rendered := strings.TrimSpace(store.String()); rendered != "" {
				fmt.Fprintln(cmd.OutOrStdout(), rendered)
			}
			return nil
		},
	}

	get := &cobra.Command{
		Use:   "get KEY",
		Short: "Print the value of one setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := store.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%v\n", v)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set one setting and write the file",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := store.Set(args[0], parseSettingValue(args[1])); err != nil {
				return err
			}
			return store.Write()
		},
	}

	rm := &cobra.Command{
		Use:   "rm KEY",
		Short: "Remove one setting and write the file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			return store.Write()
		},
	}

	root.AddCommand(show, get, set, rm)
	return root
}

// parseSettingValue interprets a command-line value as a TOML literal so
// numbers, booleans, and dates keep their types. Anything that does not parse
// is stored as a plain string.
func parseSettingValue(raw string) any {
	var doc map[string]any
	if err := toml.Unmarshal([]byte("v = "+raw), &doc); err == nil {
		if v, ok := doc["v"]; ok {
			return v
		}
	}
	return raw
}
