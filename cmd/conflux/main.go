package main

import (
	"embed"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/conflux/cli"
	"github.com/dshills/conflux/config"
	"github.com/dshills/conflux/logging"
	"github.com/dshills/conflux/settings"
)

//go:embed samples/*.lua
var samples embed.FS

// configGroup is the registry group the sample configurations live under.
const configGroup = "conflux.config"

func main() {
	os.Exit(run())
}

func run() int {
	log, level := logging.New(os.Stdout, os.Stderr)

	root, err := newRoot(log, level)
	if err != nil {
		log.Error("startup failed", "error", err)
		return 1
	}
	if err := root.Execute(); err != nil {
		// Cobra already prints the error
		return 1
	}
	return 0
}

func newRoot(log *slog.Logger, level *slog.LevelVar) (*cobra.Command, error) {
	loader := config.NewLoader(
		config.WithLogger(log),
		config.WithSearchPaths("."),
	)
	if err := registerSamples(loader.Registry()); err != nil {
		return nil, err
	}

	store, err := settings.Open("conflux.toml",
		settings.WithEnvOverride("CONFLUXRC"),
		settings.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	root := &cobra.Command{
		Use:          "conflux",
		Short:        "Greet people using chain-loaded configurations",
		SilenceUsage: true,
	}
	cli.AddVerbosity(root, level)

	greet, err := greetCommand(log, loader)
	if err != nil {
		return nil, err
	}
	root.AddCommand(
		greet,
		cli.ConfigGroup(log, loader, configGroup),
		cli.SettingsGroup(log, store),
	)

	err = cli.ApplyAliases(root, map[string]string{
		"cfg": "config",
		"rc":  "settings",
	})
	if err != nil {
		return nil, err
	}
	return root, nil
}

// registerSamples registers the embedded sample scripts as aliases named
// after their files, with the leading comment line as the description.
func registerSamples(registry *config.Registry) error {
	entries, err := samples.ReadDir("samples")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		raw, err := samples.ReadFile("samples/" + entry.Name())
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(entry.Name(), ".lua")
		target := config.Target{
			Source: string(raw),
			Module: "conflux.samples." + name,
			Doc:    docLine(string(raw)),
		}
		if err := registry.Register(configGroup, name, target); err != nil {
			return err
		}
	}
	return nil
}

// docLine returns the first line of a script when it is a "--" comment.
func docLine(source string) string {
	line, _, _ := strings.Cut(source, "\n")
	if !strings.HasPrefix(line, "--") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(line, "--"))
}
