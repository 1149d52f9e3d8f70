package cli

import (
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// LogParameters emits one debug record per flag of cmd with its effective
// value, for reproducing a run from its logs. Flags named in ignore (and the
// plumbing flags added by this package) are skipped.
func LogParameters(cmd *cobra.Command, log *slog.Logger, ignore ...string) {
	skip := append([]string{"help", "verbose", "dump-config"}, ignore...)
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if slices.Contains(skip, f.Name) {
			return
		}
		log.Debug("parameter", "name", f.Name, "value", f.Value.String())
	})
}
