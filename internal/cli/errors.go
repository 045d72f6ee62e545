package cli

import (
	"errors"
	"fmt"
)

// Exit codes returned by Run.
const (
	exitOK      = 0
	exitFailure = 1 // Unreadable input, unwritable output, or differences found with --exit-code.
	exitUsage   = 2
)

// ExitCoder is implemented by errors that choose udiff's exit code. Errors that don't implement it exit with 1.
type ExitCoder interface {
	error
	ExitCode() int
}

// UsageError reports bad arguments, flags, or configuration values. Run prints Message followed by the usage text and exits with 2.
type UsageError struct {
	Message string
}

func (e UsageError) Error() string { return e.Message }
func (e UsageError) ExitCode() int { return exitUsage }

func usageErrorf(format string, args ...any) UsageError {
	return UsageError{Message: fmt.Sprintf(format, args...)}
}

// ExitError sets the exit code for Err. With a nil Err, Run exits with Code and prints nothing; --exit-code uses this when the files differ.
type ExitError struct {
	Code int
	Err  error
}

// errDifferencesFound is returned with --exit-code when the inputs differ. The diff on stdout already says everything.
var errDifferencesFound = ExitError{Code: exitFailure}

func (e ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e ExitError) Unwrap() error { return e.Err }
func (e ExitError) ExitCode() int { return e.Code }

// exitCode returns the exit code for err, the result of running the root command.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var coder ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return exitFailure
}
