package cli

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/dshills/conflux/config"
)

func configTestRoot(t *testing.T, loader *config.Loader, group string) *cobra.Command {
	t.Helper()
	root := &cobra.Command{Use: "app", SilenceUsage: true}
	AddVerbosity(root, new(slog.LevelVar))
	root.AddCommand(ConfigGroup(slog.New(slog.NewTextHandler(io.Discard, nil)), loader, group))
	return root
}

func runCommand(t *testing.T, root *cobra.Command, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute(%v): %v", args, err)
	}
	return out.String()
}

func TestConfigList_GroupsByOrigin(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "local.lua", "x = 1")

	loader := config.NewLoader()
	reg := loader.Registry()
	if err := reg.Register("app.config", "canned", config.Target{
		Source: "y = 2",
		Doc:    "A canned configuration.",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := reg.Register("app.config", "local", config.Target{Path: path}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	out := runCommand(t, configTestRoot(t, loader, "app.config"), "config", "list")

	for _, want := range []string{"<embedded>:", "canned: A canned configuration.", dir + ":", "local: <no description>"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigList_PrefixScopesToModule(t *testing.T) {
	loader := config.NewLoader()
	reg := loader.Registry()
	if err := reg.Register("app.config", "mine", config.Target{Source: "x = 1", Module: "app.samples.mine"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := reg.Register("app.config", "theirs", config.Target{Source: "y = 2", Module: "other.theirs"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	out := runCommand(t, configTestRoot(t, loader, "app.config"), "config", "list", "app.samples")

	if !strings.Contains(out, "mine") {
		t.Errorf("scoped list missing matching alias:\n%s", out)
	}
	if strings.Contains(out, "theirs") {
		t.Errorf("scoped list leaked non-matching alias:\n%s", out)
	}
}

func TestConfigList_VerboseSummarizesContents(t *testing.T) {
	loader := config.NewLoader()
	reg := loader.Registry()
	if err := reg.Register("app.config", "canned", config.Target{Source: "b = 2\na = 1"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := reg.Register("app.config", "broken", config.Target{Source: "this is not lua"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	out := runCommand(t, configTestRoot(t, loader, "app.config"), "config", "list", "-v")

	if !strings.Contains(out, "defines: a, b") {
		t.Errorf("verbose list missing key summary:\n%s", out)
	}
	if !strings.Contains(out, "(cannot be loaded)") {
		t.Errorf("verbose list missing load-failure marker:\n%s", out)
	}
}

func TestConfigDescribe(t *testing.T) {
	loader := config.NewLoader()
	err := loader.Registry().Register("app.config", "canned", config.Target{
		Source: "answer = 42",
		Doc:    "Holds the answer.",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	root := configTestRoot(t, loader, "app.config")
	out := runCommand(t, root, "config", "describe", "canned")
	if !strings.Contains(out, "Holds the answer.") {
		t.Errorf("describe output missing doc:\n%s", out)
	}
	if strings.Contains(out, "answer = 42") {
		t.Errorf("describe without -v should not print source:\n%s", out)
	}

	out = runCommand(t, configTestRoot(t, loader, "app.config"), "config", "describe", "-v", "canned")
	if !strings.Contains(out, "| answer = 42") {
		t.Errorf("verbose describe missing source:\n%s", out)
	}
}

func TestConfigDescribe_Unknown(t *testing.T) {
	root := configTestRoot(t, config.NewLoader(), "app.config")
	root.SilenceErrors = true
	root.SetArgs([]string{"config", "describe", "nope"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected an error for an unknown configuration")
	}
}

func TestConfigCopy(t *testing.T) {
	loader := config.NewLoader()
	if err := loader.Registry().Register("app.config", "canned", config.Target{Source: "z = 9\n"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	dest := filepath.Join(t.TempDir(), "mine.lua")
	runCommand(t, configTestRoot(t, loader, "app.config"), "config", "copy", "canned", dest)

	raw, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading copy: %v", err)
	}
	if string(raw) != "z = 9\n" {
		t.Errorf("copied content = %q", raw)
	}
}

func TestConfigCopy_FromFile(t *testing.T) {
	dir := t.TempDir()
	src := writeScript(t, dir, "src.lua", "k = true\n")
	dest := filepath.Join(dir, "dst.lua")

	runCommand(t, configTestRoot(t, config.NewLoader(), "app.config"), "config", "copy", src, dest)

	raw, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading copy: %v", err)
	}
	if string(raw) != "k = true\n" {
		t.Errorf("copied content = %q", raw)
	}
}
