// Package configs manages crypter's configuration and resolved settings.
//
// # Configuration File
//
// Configuration is stored in TOML format at
// $XDG_CONFIG_HOME/crypter/config.toml (or the platform equivalent):
//
//	[keys]
//	data_dir = "~/.local/share/crypter"
//	seed = "crypter"
//	difficulty = 15
//	rebuild_on_start = true
//	max_probe_attempts = 0
//
//	[audit]
//	enabled = true
//
// Keys missing from the file keep their defaults. A missing file is the
// same as DefaultConfig().
//
// # Seeds and Rebuilds
//
// With rebuild_on_start every process regenerates the key tables when it
// opens them. Because the generator is seeded, processes sharing a seed
// rebuild identical tables, which is what lets one process decode what
// another encoded right after startup.
//
// # Settings
//
// CrypterSettings holds resolved paths and is initialized at startup. The
// data directory defaults to $XDG_DATA_HOME/crypter.
package configs
