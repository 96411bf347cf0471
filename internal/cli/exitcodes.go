package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/docmodel/internal/configloader"
	"github.com/yaklabco/docmodel/pkg/fsutil"
	"github.com/yaklabco/docmodel/pkg/runner"
)

// Exit codes for docmodel.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitWarningsFound indicates error-severity warnings were found in strict mode.
	ExitWarningsFound = 1

	// ExitFailures indicates some files or scanners could not be analyzed.
	ExitFailures = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrWarningsFound is returned by scan --strict when error-severity
	// warnings were reported.
	ErrWarningsFound = errors.New("error-severity warnings found")

	// ErrFailures is returned when files or scanners failed during a scan.
	ErrFailures = errors.New("some files could not be analyzed")

	// ErrInvalidUsage marks flag and argument errors.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrConfig marks configuration loading errors.
	ErrConfig = errors.New("failed to load configuration")
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasFailures():
		return ExitFailures
	case strict && result.HasErrors():
		return ExitWarningsFound
	default:
		return ExitSuccess
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var verr *configloader.ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrWarningsFound):
		return ExitWarningsFound
	case errors.Is(err, ErrFailures):
		return ExitFailures
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &verr):
		return ExitConfigError
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrModified):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// IsSignal reports whether err only signals the exit code and needs no log line.
func IsSignal(err error) bool {
	return errors.Is(err, ErrWarningsFound) || errors.Is(err, ErrFailures)
}
