package cli

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/matzehuels/radialtext/pkg/errors"
)

// Process exit statuses.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitUsage     = 2
	ExitInterrupt = 130 // shell convention for SIGINT
)

// ReportError writes err to w the way commands report failures. Export
// failures read like the alert of the web form.
func ReportError(w io.Writer, err error) {
	msg := errors.UserMessage(err)
	if exportFailure(err) {
		msg = "Action failed! Reasons: " + msg
	}
	printError(w, "%s", msg)
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, context.Canceled):
		return ExitInterrupt
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return ExitUsage
	}
	return ExitFailure
}

func exportFailure(err error) bool {
	switch errors.GetCode(err) {
	case errors.ErrCodeDecode, errors.ErrCodeOversize, errors.ErrCodeEncode, errors.ErrCodeUnsupported:
		return true
	}
	return false
}
