package dejson

import "fmt"

type sink[E error] struct {
	faults Faults[E]
}

func (s sink[E]) Unexpected(description string) error {
	return s.faults.Unexpected(description)
}

func (s sink[E]) FormatError(line, column int, message string) error {
	return s.faults.FormatError(line, column, message)
}

func (s sink[E]) MissingField(field string) error {
	return s.faults.MissingField(field)
}

// SinkOf adapts a Faults capability into the non-generic Sink the engine
// threads through visitors.
func SinkOf[E error](faults Faults[E]) Sink {
	return sink[E]{faults: faults}
}

// ErrorKind classifies errors produced by the bundled capability.
type ErrorKind int

const (
	ErrorUnexpected ErrorKind = iota
	ErrorFormat
	ErrorMissingField
)

// Error is the bundled Faults implementation used by Unmarshal when the
// caller supplies no capability of its own. The engine never constructs it
// directly; it arrives through DefaultFaults like any other capability.
type Error struct {
	Kind        ErrorKind
	Line        int
	Column      int
	Message     string
	Field       string
	Description string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrorFormat:
		return fmt.Sprintf("%s at line %d column %d", e.Message, e.Line, e.Column)
	case ErrorMissingField:
		return fmt.Sprintf("missing field %q", e.Field)
	default:
		return fmt.Sprintf("unexpected %s", e.Description)
	}
}

// DefaultFaults implements Faults[*Error].
type DefaultFaults struct{}

func (DefaultFaults) Unexpected(description string) *Error {
	return &Error{Kind: ErrorUnexpected, Description: description}
}

func (DefaultFaults) FormatError(line, column int, message string) *Error {
	return &Error{Kind: ErrorFormat, Line: line, Column: column, Message: message}
}

func (DefaultFaults) MissingField(field string) *Error {
	return &Error{Kind: ErrorMissingField, Field: field}
}
