package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/PolarWolf314/crypter/internal/configs"
	kerrors "github.com/PolarWolf314/crypter/internal/errors"
	"github.com/PolarWolf314/crypter/internal/ui"

	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		// Stop the spinner first to clear the spinner line.
		if quiet {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// formatError turns a workflow error into the message shown to the user.
func formatError(err error) string {
	fail := ui.Error.Sprint("✗") + " "
	hint := "\n" + ui.Info.Sprint("→") + " "

	switch {
	case errors.Is(err, kerrors.ErrTablesNotInitialized):
		return fail + "Key tables have not been created" +
			hint + "Run " + ui.Code.Sprint("crypter init") + " first"

	case errors.Is(err, kerrors.ErrLocked):
		return fail + "Another crypter process is using the key tables" +
			hint + "Wait for it to finish and try again"

	case errors.Is(err, kerrors.ErrInvalidConfig):
		return fail + err.Error() +
			hint + "Check " + ui.Path.Sprint(configs.CrypterSettings.ConfigPath) + " or run " + ui.Code.Sprint("crypter config init --force")

	case errors.Is(err, kerrors.ErrMalformedCiphertext), errors.Is(err, kerrors.ErrMalformedBullet):
		return fail + "Not a crypter ciphertext: " + err.Error()

	case errors.Is(err, kerrors.ErrChunkNotFound):
		return fail + "The uncipher table does not match the sender: " + err.Error() +
			hint + "Apply earlier bullets with " + ui.Code.Sprint("crypter apply") + " or run " + ui.Code.Sprint("crypter sync")

	case errors.Is(err, kerrors.ErrSlotOutOfRange):
		return fail + "The key tables are shorter than the library: " + err.Error() +
			hint + "Run " + ui.Code.Sprint("crypter doctor") + " for details"

	case errors.Is(err, kerrors.ErrDuplicateCodeExhaustion):
		return fail + "No unused code found for rotation: " + err.Error() +
			hint + "Raise " + ui.Code.Sprint("keys.max_probe_attempts") + " or set it to 0"

	case errors.Is(err, kerrors.ErrNoFilesFound):
		return fail + "No matching files found"

	case errors.Is(err, kerrors.ErrInvalidDateFormat):
		return fail + err.Error()

	default:
		return fail + err.Error()
	}
}

// isUnexpectedError reports whether err falls outside the errors formatError
// knows how to explain.
func isUnexpectedError(err error) bool {
	known := []error{
		kerrors.ErrTablesNotInitialized,
		kerrors.ErrLocked,
		kerrors.ErrInvalidConfig,
		kerrors.ErrMalformedCiphertext,
		kerrors.ErrMalformedBullet,
		kerrors.ErrChunkNotFound,
		kerrors.ErrSlotOutOfRange,
		kerrors.ErrDuplicateCodeExhaustion,
		kerrors.ErrNoFilesFound,
		kerrors.ErrInvalidDateFormat,
	}
	for _, k := range known {
		if errors.Is(err, k) {
			return false
		}
	}
	return true
}

// reportError prints the formatted error and returns the error main should
// exit with.
func reportError(finalMsg *string, err error) error {
	Logger.Errorf("%v", err)
	*finalMsg = formatError(err)
	if isUnexpectedError(err) {
		return err
	}
	return ErrReported
}
