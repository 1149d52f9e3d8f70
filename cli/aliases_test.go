package cli

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestApplyAliases_Dispatch(t *testing.T) {
	var ran string
	root := &cobra.Command{Use: "app"}
	root.AddCommand(
		&cobra.Command{
			Use:  "config",
			RunE: func(*cobra.Command, []string) error { ran = "config"; return nil },
		},
		&cobra.Command{
			Use:  "settings",
			RunE: func(*cobra.Command, []string) error { ran = "settings"; return nil },
		},
	)

	if err := ApplyAliases(root, map[string]string{"cfg": "config", "rc": "settings"}); err != nil {
		t.Fatalf("ApplyAliases: %v", err)
	}

	root.SetArgs([]string{"cfg"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if ran != "config" {
		t.Errorf("alias cfg dispatched to %q, want config", ran)
	}

	root.SetArgs([]string{"rc"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if ran != "settings" {
		t.Errorf("alias rc dispatched to %q, want settings", ran)
	}
}

func TestApplyAliases_UnknownCommand(t *testing.T) {
	root := &cobra.Command{Use: "app"}
	if err := ApplyAliases(root, map[string]string{"x": "nope"}); err == nil {
		t.Fatal("expected an error for an alias to a missing command")
	}
}
