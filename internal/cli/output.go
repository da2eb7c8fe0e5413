// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/taibuivan/kinoteka/internal/platform/apperr"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // The operation was refused (validation, not found).
	ExitCommandError = 2 // The command could not run (connection, migration source).
)

// ExitError carries a process exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// printer writes command results in the selected format.
type printer struct {
	format string
	out    io.Writer
}

func newPrinter(opts *RootOptions, cmd *cobra.Command) *printer {
	return &printer{format: opts.Format, out: cmd.OutOrStdout()}
}

// result prints a payload as JSON, or the text line otherwise.
func (p *printer) result(payload any, text string, args ...any) error {
	if p.format == "json" {
		encoder := json.NewEncoder(p.out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}
	_, err := fmt.Fprintf(p.out, text+"\n", args...)
	return err
}

// refusal turns a domain error into a readable failure, listing field details.
func refusal(action string, err error) error {
	appError := apperr.As(err)
	if appError == nil || !appError.IsUserFacing() {
		return WrapExitError(ExitCommandError, action, err)
	}

	message := appError.Message
	for _, detail := range appError.Details {
		message += fmt.Sprintf("\n  %s: %s", detail.Field, detail.Message)
	}
	return &ExitError{Code: ExitFailure, Message: action + ": " + message}
}
