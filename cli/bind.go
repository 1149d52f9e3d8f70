package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dshills/conflux/config"
)

// ValueSource records where a bound flag's effective value came from.
type ValueSource string

const (
	// SourceCommandLine marks a value given explicitly on the command line.
	SourceCommandLine ValueSource = "command-line"
	// SourceConfig marks a value filled from the loaded configuration chain.
	SourceConfig ValueSource = "configuration"
	// SourceDefault marks a flag left at its declared default.
	SourceDefault ValueSource = "default"
)

const (
	eligibleAnnotation = "conflux_eligible"
	requiredAnnotation = "conflux_required"
)

// MissingOptionError reports a required option that was set neither on the
// command line nor by any loaded configuration.
type MissingOptionError struct {
	Option string
}

func (e *MissingOptionError) Error() string {
	return fmt.Sprintf("option --%s is required: pass it on the command line or set %q in a configuration",
		e.Option, e.Option)
}

// MarkEligible marks flags as fillable from loaded configurations. Only
// eligible flags participate in binding; everything else is ignored even when
// a configuration defines a variable of the same name.
func MarkEligible(cmd *cobra.Command, names ...string) error {
	for _, name := range names {
		if err := cmd.Flags().SetAnnotation(name, eligibleAnnotation, []string{"true"}); err != nil {
			return err
		}
	}
	return nil
}

// MarkRequired marks flags that must receive a value from the command line or
// a configuration before the command runs. Required implies eligible.
//
// This is deliberately not cobra's MarkFlagRequired: cobra validates required
// flags before PreRun, which would reject values that a configuration is
// about to supply.
func MarkRequired(cmd *cobra.Command, names ...string) error {
	if err := MarkEligible(cmd, names...); err != nil {
		return err
	}
	for _, name := range names {
		if err := cmd.Flags().SetAnnotation(name, requiredAnnotation, []string{"true"}); err != nil {
			return err
		}
	}
	return nil
}

// provenance records, per bound command, where each eligible flag's value
// came from on the last run. Loading is single-threaded, so a plain map.
var provenance = make(map[*cobra.Command]map[string]ValueSource)

// Provenance returns where each eligible flag of a bound command got its
// value, recorded during the command's last run. It returns nil before the
// command has run.
func Provenance(cmd *cobra.Command) map[string]ValueSource {
	return provenance[cmd]
}

// BindConfigArgs makes cmd accept configuration references as positional
// arguments. Before the command's RunE runs, the references are chain-loaded
// with alias resolution scoped to group, and every eligible flag not set on
// the command line is filled from the merged namespace. Explicit command-line
// values always win; flags absent from both keep their defaults. Required
// flags still unset afterwards abort the run with a MissingOptionError.
//
// It also adds a --dump-config flag that writes an annotated example
// configuration for the command's eligible flags and exits without running.
func BindConfigArgs(cmd *cobra.Command, loader *config.Loader, group string) {
	cmd.Args = cobra.ArbitraryArgs
	cmd.Flags().String("dump-config", "",
		"write an example configuration for this command to the given file and exit")

	run := cmd.RunE
	cmd.RunE = func(c *cobra.Command, args []string) error {
		if dump, _ := c.Flags().GetString("dump-config"); dump != "" {
			return dumpConfig(c, loader, group, dump)
		}

		ns, err := loader.Load(args, config.WithGroup(group))
		if err != nil {
			return err
		}
		if err := applyNamespace(c, ns); err != nil {
			return err
		}
		if run != nil {
			return run(c, args)
		}
		return nil
	}
}

// applyNamespace fills unchanged eligible flags from the namespace and
// records provenance for all of them.
func applyNamespace(cmd *cobra.Command, ns config.Namespace) error {
	sources := make(map[string]ValueSource)
	provenance[cmd] = sources

	var failed error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if failed != nil || !hasAnnotation(f, eligibleAnnotation) {
			return
		}
		switch v, ok := ns[f.Name]; {
		case f.Changed:
			sources[f.Name] = SourceCommandLine
		case ok:
			if err := setFlagValue(f, v); err != nil {
				failed = fmt.Errorf("applying configuration value for --%s: %w", f.Name, err)
				return
			}
			sources[f.Name] = SourceConfig
		default:
			sources[f.Name] = SourceDefault
			if hasAnnotation(f, requiredAnnotation) {
				failed = &MissingOptionError{Option: f.Name}
			}
		}
	})
	return failed
}

func hasAnnotation(f *pflag.Flag, key string) bool {
	return len(f.Annotations[key]) > 0
}

// setFlagValue assigns a namespace value to a flag through its pflag value
// parser. Arrays feed slice flags element by element; tables have no flag
// representation and are rejected.
func setFlagValue(f *pflag.Flag, v any) error {
	switch v := v.(type) {
	case []any:
		for _, item := range v {
			if err := f.Value.Set(fmt.Sprint(item)); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		return fmt.Errorf("value is a table, which cannot fill a flag")
	default:
		return f.Value.Set(fmt.Sprint(v))
	}
}

// dumpConfig writes an annotated example configuration covering the command's
// eligible flags, one assignment per option at its declared default.
func dumpConfig(cmd *cobra.Command, loader *config.Loader, group, path string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "-- Example configuration for %q.\n", cmd.Name())
	fmt.Fprintf(&b, "-- Pass this file as a positional argument to load it.\n")
	if names := loader.Registry().Names(group); len(names) > 0 {
		fmt.Fprintf(&b, "-- Registered configurations: %s\n", strings.Join(names, ", "))
	}

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !hasAnnotation(f, eligibleAnnotation) {
			return
		}
		b.WriteString("\n")
		if f.Usage != "" {
			fmt.Fprintf(&b, "-- %s\n", f.Usage)
		}
		if hasAnnotation(f, requiredAnnotation) {
			b.WriteString("-- (required)\n")
		}
		fmt.Fprintf(&b, "%s = %s\n", f.Name, luaLiteral(f))
	})

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing example configuration: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote example configuration to %s\n", path)
	return nil
}

// luaLiteral renders a flag's default as a Lua literal. Numeric and boolean
// flag types print verbatim; everything else is quoted as a string.
func luaLiteral(f *pflag.Flag) string {
	switch f.Value.Type() {
	case "bool", "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64",
		"float32", "float64", "count":
		if f.DefValue == "" {
			return "0"
		}
		return f.DefValue
	default:
		if strings.HasSuffix(f.Value.Type(), "Slice") || strings.HasSuffix(f.Value.Type(), "Array") {
			inner := strings.Trim(f.DefValue, "[]")
			if inner == "" {
				return "{}"
			}
			parts := strings.Split(inner, ",")
			for i, p := range parts {
				parts[i] = fmt.Sprintf("%q", p)
			}
			return "{" + strings.Join(parts, ", ") + "}"
		}
		return fmt.Sprintf("%q", f.DefValue)
	}
}
