package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/conflux/cli"
	"github.com/dshills/conflux/config"
)

// greetCommand builds the greet command: its message, shout, and name options
// can all come from chained configurations passed as positional arguments.
func greetCommand(log *slog.Logger, loader *config.Loader) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "greet [CONFIG...]",
		Short: "Print a greeting assembled from flags and configurations",
		RunE: func(c *cobra.Command, _ []string) error {
			cli.LogParameters(c, log)

			message, _ := c.Flags().GetString("message")
			name, _ := c.Flags().GetString("name")
			shout, _ := c.Flags().GetBool("shout")

			greeting := fmt.Sprintf("%s, %s!", message, name)
			if shout {
				greeting = strings.ToUpper(greeting)
			}
			fmt.Fprintln(c.OutOrStdout(), greeting)
			return nil
		},
	}
	cmd.Flags().String("message", "hello", "the greeting text")
	cmd.Flags().Bool("shout", false, "print the greeting in upper case")
	cmd.Flags().String("name", "", "who to greet")

	if err := cli.MarkEligible(cmd, "message", "shout"); err != nil {
		return nil, err
	}
	if err := cli.MarkRequired(cmd, "name"); err != nil {
		return nil, err
	}
	cli.BindConfigArgs(cmd, loader, configGroup)
	return cmd, nil
}
