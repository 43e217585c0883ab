package fastjson

import "fmt"

// ErrorKind categorizes codec errors.
type ErrorKind string

const (
	KindUnexpectedToken           ErrorKind = "unexpected token"
	KindMalformedNumber           ErrorKind = "malformed number"
	KindInvalidEscape             ErrorKind = "invalid escape"
	KindUnterminatedString        ErrorKind = "unterminated string"
	KindTypeMismatch              ErrorKind = "type mismatch"
	KindMissingField              ErrorKind = "missing field"
	KindUnknownVariant            ErrorKind = "unknown variant"
	KindNumberOutOfRange          ErrorKind = "number out of range"
	KindFractionalValueForInteger ErrorKind = "fractional value for integer"
)

// Pos is a byte position in the input document. Line and Column are 1-based;
// Column counts bytes, not runes.
type Pos struct {
	Offset int
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("line %d, column %d (offset %d)", p.Line, p.Column, p.Offset)
}

// Error is the codec's error type. Lexer and parser errors carry a Pos;
// typed (de)serialization errors carry a dotted Path instead. The message
// returned by Error contains the positional or path context already, so
// callers can surface it verbatim.
type Error struct {
	Kind    ErrorKind
	Message string
	Pos     Pos  // valid when HasPos
	HasPos  bool // true for lexer/parser errors
	Path    string
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.HasPos:
		return fmt.Sprintf("%s: %s at %s", e.Kind, e.Message, e.Pos)
	case e.Path != "":
		return fmt.Sprintf("%s at %s: %s", e.Kind, e.Path, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

// Is implements errors.Is for comparison by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// KindError returns a bare error matching any *Error of the given kind,
// for use as an errors.Is target.
func KindError(kind ErrorKind) error {
	return &Error{Kind: kind}
}

// newSyntaxError creates a positioned lexer/parser error.
func newSyntaxError(kind ErrorKind, pos Pos, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
		HasPos:  true,
	}
}

// newValueError creates a path-scoped typed (de)serialization error.
func newValueError(kind ErrorKind, path string, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Path:    path,
	}
}
