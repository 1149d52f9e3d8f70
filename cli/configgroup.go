package cli

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/conflux/config"
)

// ConfigGroup builds the "config" command tree for inspecting and copying the
// configurations registered under group: list, describe, and copy.
func ConfigGroup(log *slog.Logger, loader *config.Loader, group string) *cobra.Command {
	root := &cobra.Command{
		Use:   "config",
		Short: "Inspect registered configurations",
	}
	root.AddCommand(
		configListCommand(loader, group),
		configDescribeCommand(log, loader, group),
		configCopyCommand(log, loader, group),
	)
	return root
}

func configListCommand(loader *config.Loader, group string) *cobra.Command {
	return &cobra.Command{
		Use:   "list [PREFIX]",
		Short: "List registered configurations, grouped by origin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetCount("verbose")
			registry := loader.Registry()
			out := cmd.OutOrStdout()

			var prefix string
			if len(args) == 1 {
				prefix = args[0]
			}

			byOrigin := make(map[string][]string)
			for _, name := range registry.NamesUnder(group, prefix) {
				target, _ := registry.Lookup(group, name)
				origin := target.Origin()
				byOrigin[origin] = append(byOrigin[origin], name)
			}

			origins := make([]string, 0, len(byOrigin))
			for origin := range byOrigin {
				origins = append(origins, origin)
			}
			sort.Strings(origins)

			for _, origin := range origins {
				fmt.Fprintf(out, "%s:\n", origin)
				for _, name := range byOrigin[origin] {
					target, _ := registry.Lookup(group, name)
					doc := target.Doc
					if doc == "" {
						doc = "<no description>"
					}
					fmt.Fprintf(out, "  %s: %s\n", name, doc)
					if verbose >= 1 {
						ns, err := loader.Load([]string{name}, config.WithGroup(group))
						if err != nil {
							fmt.Fprintf(out, "    (cannot be loaded)\n")
							continue
						}
						fmt.Fprintf(out, "    defines: %s\n", strings.Join(ns.Keys(), ", "))
					}
				}
			}
			return nil
		},
	}
}

func configDescribeCommand(log *slog.Logger, loader *config.Loader, group string) *cobra.Command {
	return &cobra.Command{
		Use:   "describe NAME...",
		Short: "Describe registered configurations, with -v showing their contents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetCount("verbose")
			registry := loader.Registry()
			out := cmd.OutOrStdout()

			for _, name := range args {
				target, ok := registry.Lookup(group, name)
				if !ok {
					return fmt.Errorf("no configuration named %q in group %q", name, group)
				}
				fmt.Fprintf(out, "%s (%s)\n", name, target.Origin())
				if target.Doc != "" {
					fmt.Fprintf(out, "  %s\n", target.Doc)
				}
				if verbose < 1 {
					continue
				}
				source, err := targetSource(loader, name, group)
				if err != nil {
					log.Warn("cannot read configuration source", "name", name, "error", err)
					continue
				}
				fmt.Fprintln(out, indent(source, "  | "))
			}
			return nil
		},
	}
}

func configCopyCommand(log *slog.Logger, loader *config.Loader, group string) *cobra.Command {
	return &cobra.Command{
		Use:   "copy SOURCE DESTINATION",
		Short: "Copy a configuration to a local file for customization",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := targetSource(loader, args[0], group)
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[1], []byte(source), 0o644); err != nil {
				return fmt.Errorf("copying configuration: %w", err)
			}
			log.Info("copied configuration", "from", args[0], "to", args[1])
			return nil
		},
	}
}

// targetSource returns the script text of a resolvable reference, reading the
// backing file for path and module targets.
func targetSource(loader *config.Loader, ref, group string) (string, error) {
	resolved, err := loader.Resolve(ref, group)
	if err != nil {
		return "", err
	}
	if resolved.Source != "" {
		return resolved.Source, nil
	}
	raw, err := os.ReadFile(resolved.Path)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
