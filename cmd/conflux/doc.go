// Conflux demonstrates chain-loaded Lua configurations for command-line
// tools: positional configuration references fill a command's flags, with
// explicit command-line values taking precedence.
//
// Usage:
//
//	conflux greet --name world             # flags only
//	conflux greet basic loud --name world  # chain sample configurations
//	conflux greet --dump-config my.lua     # write an example configuration
//	conflux config list                    # show registered configurations
//	conflux settings set greeting.count 3  # edit the persistent settings file
//
// The settings file lives at conflux.toml under the user configuration
// directory; set CONFLUXRC to use a different path.
package main
