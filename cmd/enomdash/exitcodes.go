package main

import (
	"errors"
	"fmt"

	"github.com/enomcdcdash/enomdash/engine"
)

// Exit codes for the enomdash CLI.
const (
	ExitOK          = 0 // Rendered, or nothing to show.
	ExitError       = 1 // Bad arguments, config or source files.
	ExitFormatError = 2 // Period labels could not be converted to months.
)

type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

func exitError(code int, format string, args ...any) *exitCodeError {
	return &exitCodeError{code: code, msg: fmt.Sprintf(format, args...)}
}

// classify maps a pipeline error to its exit code.
func classify(err error) error {
	var fe *engine.FormatError
	if errors.As(err, &fe) {
		return exitError(ExitFormatError, "enomdash: %s", engine.FormatMessage(err))
	}
	return exitError(ExitError, "enomdash: %v", err)
}
