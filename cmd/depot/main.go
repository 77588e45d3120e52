// Package main provides the depot CLI, a tracker for fleets of loanable
// physical items.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// sysError marks a failure of the environment (unwritable workspace,
// unreadable config) rather than of the request. main maps it to exit 2;
// everything else a command returns is a user error and exits 1.
type sysError struct{ err error }

func (e *sysError) Error() string { return e.err.Error() }
func (e *sysError) Unwrap() error { return e.err }

func systemErr(err error) error { return &sysError{err: err} }

func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *sysError
	if errors.As(err, &se) {
		return exitSysError
	}
	return exitUserError
}
