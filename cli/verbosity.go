package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// AddVerbosity attaches a repeatable -v/--verbose count flag to cmd and hooks
// its PersistentPreRunE so the shared level variable is set before any
// subcommand runs. An existing PersistentPreRunE is preserved and called
// after the level is applied.
func AddVerbosity(cmd *cobra.Command, level *slog.LevelVar) {
	cmd.PersistentFlags().CountP("verbose", "v",
		"increase verbosity: errors only, then warnings (-v), info (-vv), debug (-vvv)")

	previous := cmd.PersistentPreRunE
	cmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		count, err := c.Flags().GetCount("verbose")
		if err != nil {
			return err
		}
		level.Set(LevelForCount(count))
		if previous != nil {
			return previous(c, args)
		}
		return nil
	}
}

// LevelForCount maps a verbosity count to a log level. Zero means errors
// only; each repetition lowers the threshold, saturating at Debug.
func LevelForCount(count int) slog.Level {
	switch count {
	case 0:
		return slog.LevelError
	case 1:
		return slog.LevelWarn
	case 2:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
