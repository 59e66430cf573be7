package cli

import "fmt"

// Exit codes: configuration problems (bad config file, unusable base URL,
// unopenable audit store) are distinguished from faults while serving.
const (
	exitSuccess = 0
	exitConfig  = 1
	exitRuntime = 2
)

// ExitError carries the process exit code alongside the failure message.
// Subcommands return it from RunE; main unwraps it to pick the exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func exitError(code int, format string, args ...any) *ExitError {
	return &ExitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
