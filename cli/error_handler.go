package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/docnav/errors"
	"github.com/spf13/cobra"
)

// Exit codes returned by the docnav binary.
const (
	ExitOK      = 0
	ExitError   = 1
	ExitConfig  = 2
	ExitRender  = 3
	ExitWarning = 4
)

// ErrorHandler provides user-friendly error messages.
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
	cmd     *cobra.Command
}

// NewErrorHandler creates a new error handler writing to stderr.
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// WithCommand sets the command used for the usage hint and output stream.
func (h *ErrorHandler) WithCommand(cmd *cobra.Command) *ErrorHandler {
	h.cmd = cmd
	h.Out = cmd.ErrOrStderr()
	return h
}

// Handle prints a message for err based on its code and returns err.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	p := DefaultPalette
	fail := p.Error.Render("✗")
	hint := func(format string, args ...interface{}) {
		fmt.Fprintln(h.Out, p.Muted.Render(fmt.Sprintf(format, args...)))
	}

	navErr, _ := errors.As(err)
	detail := func(key string) interface{} {
		if navErr == nil {
			return ""
		}
		return navErr.Details[key]
	}

	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(h.Out, "%s Configuration not found\n", fail)
		hint("Run 'docnav init' to create docnav.yml, or pass --preset.")

	case errors.ErrCodePresetNotFound:
		fmt.Fprintf(h.Out, "%s Unknown preset '%v'\n", fail, detail("preset"))
		hint("Available presets: %v", detail("known"))

	case errors.ErrCodeConfigInvalid, errors.ErrCodeConfigValidation:
		fmt.Fprintf(h.Out, "%s %s\n", fail, navErr.Message)
		if navErr.Cause != nil {
			fmt.Fprintf(h.Out, "  %v\n", navErr.Cause)
		}
		hint("Run 'docnav schema' to see the accepted configuration.")

	case errors.ErrCodeElementNotFound:
		if page := detail("page"); page != nil && page != "" {
			fmt.Fprintf(h.Out, "%s %s has no '%v' element\n", fail, page, detail("selector"))
		} else {
			fmt.Fprintf(h.Out, "%s Page has no '%v' element\n", fail, detail("selector"))
		}
		hint("Add the element to the page or exclude it with build.exclude.")

	case errors.ErrCodePageRead, errors.ErrCodePageParse, errors.ErrCodePageWrite:
		fmt.Fprintf(h.Out, "%s %s\n", fail, navErr.Message)
		if navErr.Cause != nil {
			fmt.Fprintf(h.Out, "  %v\n", navErr.Cause)
		}

	default:
		fmt.Fprintf(h.Out, "%s Error: %v\n", fail, err)
		if h.cmd != nil && navErr == nil {
			hint("Run '%s --help' for usage.", h.cmd.CommandPath())
		}
	}

	if h.Verbose && navErr != nil {
		fmt.Fprintf(h.Out, "\nError details:\n%s\n", navErr.ToJSON())
	}
	return err
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound, errors.ErrCodeConfigInvalid,
		errors.ErrCodeConfigValidation, errors.ErrCodePresetNotFound:
		return ExitConfig
	case errors.ErrCodeElementNotFound, errors.ErrCodePageRead,
		errors.ErrCodePageParse, errors.ErrCodePageWrite:
		return ExitRender
	case errors.ErrCodeLintWarnings:
		return ExitWarning
	default:
		return ExitError
	}
}
