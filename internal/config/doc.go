// Package config loads scrub's settings.
//
// Settings come from a TOML or YAML file (chosen by extension), then
// environment variables, then command line flags applied by the caller:
//
//	modifier = "alt"            # alt, shift, ctrl, meta, or mod
//
//	[rules]
//	builtin = ["number", "boolean", "vec2", "color", "url"]
//	lua = ["rules/hex.lua"]     # relative to the config file
//
//	[number]
//	sensitivity = 1.0
//
//	[log]
//	level = "info"
//	file = "/tmp/scrub.log"
//	max_size_mb = 10
//	max_backups = 3
//
// Environment overrides: SCRUB_MODIFIER, SCRUB_LOG_LEVEL, SCRUB_LOG_FILE.
package config
