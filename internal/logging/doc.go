// Package logger provides leveled logging for crypter commands and services.
//
// # Verbosity Levels
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details and errors
//
// Without flags, only WarnfAlways output is shown. Command results are
// printed by the cmd layer, not through the logger.
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Loaded %d codes from %s", len(table), path)
//
// Out and Err can be pointed at buffers in tests.
package logger
