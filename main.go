package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/crypter/cmd"
)

func main() {
	err := cmd.RootCmd.Execute()
	if err == nil {
		return
	}

	var exit *cmd.ExitError
	switch {
	case errors.As(err, &exit):
		os.Exit(exit.Code)
	case errors.Is(err, cmd.ErrReported):
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
