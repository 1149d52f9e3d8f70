package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// ApplyAliases registers alternate names for root's subcommands from a table
// of alias to canonical command name. Aliased invocations dispatch to the
// canonical command; cobra's help output lists them alongside it. An alias
// naming an unknown command is an error.
func ApplyAliases(root *cobra.Command, table map[string]string) error {
	byName := make(map[string]*cobra.Command, len(root.Commands()))
	for _, child := range root.Commands() {
		byName[child.Name()] = child
	}

	aliases := make([]string, 0, len(table))
	for alias := range table {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)

	for _, alias := range aliases {
		canonical := table[alias]
		child, ok := byName[canonical]
		if !ok {
			return fmt.Errorf("alias %q: no command named %q", alias, canonical)
		}
		child.Aliases = append(child.Aliases, alias)
	}
	return nil
}
