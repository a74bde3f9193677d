package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess = 0 // run completed; individual skipped targets do not fail the batch
	ExitSetup   = 1 // required inputs could not be discovered before the run started
	ExitError   = 2 // configuration or runtime error
)

// SetupError indicates that the batch never started: the root path was
// invalid or discovery found nothing to process.
type SetupError struct {
	Message string
}

func (e *SetupError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var setupErr *SetupError
		if errors.As(err, &setupErr) {
			os.Exit(ExitSetup)
		}

		os.Exit(ExitError)
	}
}
