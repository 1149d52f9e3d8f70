// Package cli wires the config and settings packages into cobra commands.
//
// It provides the repeatable -v verbosity flag, command alias dispatch, and
// BindConfigArgs, which lets a command accept configuration references as
// positional arguments and fill its flags from the merged namespace with
// strict precedence: an explicit command-line value always wins, then the
// configuration chain, then the flag default. ConfigGroup and SettingsGroup
// build the standard "config" and "settings" command trees for inspecting
// registered configurations and the persistent settings file.
package cli
