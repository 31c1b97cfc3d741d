package cli

// NewError creates a new error with the given error code and error.
//
// Returning an error created with [ErrShowHelp] from [Command.Exec] makes [Run] print the command
// usage to the state's Stderr before returning the error.
func NewError(code ErrorCode, err error) error {
	return &Error{code: code, err: err}
}

// ErrorCode represents an error code for a specific error type.
type ErrorCode int

const (
	ErrShowHelp ErrorCode = iota + 1
)

func (c ErrorCode) String() string {
	return convertErrorCode(c)
}

func convertErrorCode(code ErrorCode) string {
	switch code {
	case ErrShowHelp:
		return "show help"
	default:
		return "unknown error"
	}
}

// Error represents an error with an error code and an underlying error.
type Error struct {
	code ErrorCode
	err  error
}

// Code returns the error code.
func (e *Error) Code() ErrorCode {
	return e.code
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.err == nil {
		return convertErrorCode(e.code) + ": <nil>"
	}
	return e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}
