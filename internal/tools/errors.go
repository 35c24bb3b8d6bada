package tools

import "fmt"

// ErrorKind classifies a tool failure for the error envelope.
type ErrorKind string

const (
	KindUnknownTool     ErrorKind = "UnknownTool"
	KindMissingArgument ErrorKind = "MissingArgument"
	KindInvalidInput    ErrorKind = "InvalidInput"
	KindServiceError    ErrorKind = "ServiceError"
	KindNotFound        ErrorKind = "NotFound"
)

// Error is a classified tool failure.
type Error struct {
	Tool    string
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func newError(tool string, kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{
		Tool:    tool,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}
