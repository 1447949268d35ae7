package pandasai

import "fmt"

// UsageError signals a precondition the caller must fix before retrying,
// such as pushing a dataset that was never saved.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

// StateError signals an operation invoked in the wrong conversation state,
// such as a follow-up before any chat.
type StateError struct {
	Msg string
}

func (e *StateError) Error() string {
	return e.Msg
}

// APIKeyError signals missing or unusable platform credentials. It is a
// distinct type so callers can branch on "needs setup" versus a bad call.
type APIKeyError struct {
	Var string
}

func (e *APIKeyError) Error() string {
	return fmt.Sprintf("PandaAI API key not found: set the %s environment variable", e.Var)
}

// ColumnError reports an operation against a column that does not exist or
// does not support the operation.
type ColumnError struct {
	Column string
	Op     string
	Err    error
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("column error [%s] %s: %v", e.Column, e.Op, e.Err)
}

func (e *ColumnError) Unwrap() error {
	return e.Err
}
