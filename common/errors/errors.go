package errors

// ExitCodeError pairs an error with the process exit code main should use for it.
type ExitCodeError struct {
	code ExitCode
	error
}

func NewError(err error, exitCode ExitCode) *ExitCodeError {
	if err == nil {
		return nil
	}
	return &ExitCodeError{exitCode, err}
}

func (e *ExitCodeError) GetExitCode() ExitCode {
	if e == nil {
		return 0
	}
	return e.code
}

// Cause lets github.com/pkg/errors unwrap to the underlying error.
func (e *ExitCodeError) Cause() error {
	return e.error
}

type causer interface {
	Cause() error
}

// ExitCodeOf returns the exit code carried anywhere in err's cause chain,
// or GenericFailureExitCode if err carries none.
func ExitCodeOf(err error) ExitCode {
	if err == nil {
		return 0
	}
	for err != nil {
		if e, ok := err.(*ExitCodeError); ok {
			return e.code
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return GenericFailureExitCode
}
