// Package utils provides shared helpers used across crypter's packages.
//
// # Filesystem Utilities
//
//   - ExpandHome: expands a leading ~ in configured paths
//   - FileExists: reports whether a path is a regular file
//
// # System Utilities
//
//   - GetUsername: returns the current system username, recorded in audit entries
//
// # String Utilities
//
//   - FormatPaths: formats file paths for human-readable output
//   - Truncate: shortens long ciphertexts for log listings
//
// # I/O Utilities
//
//   - ReadStdin: reads piped input for the cipher and uncipher commands
//
// # Terminal Utilities
//
//   - IsTerminal, IsOutputTerminal: detect interactive sessions
//   - TerminalWidth: sizes the chat banner
package utils
