package header

import (
	"errors"
	"fmt"

	"vcfheader/internal/model"
)

// Reasons a declaration or file is rejected. Match with errors.Is.
var (
	ErrMalformedBrackets = errors.New("attribute list must be enclosed in <...>")
	ErrMalformedPair     = errors.New("attribute is not KEY=VALUE")
	ErrUnterminatedQuote = errors.New("unterminated quoted value")
	ErrDuplicateKey      = errors.New("duplicate attribute")
	ErrMissingAttribute  = errors.New("missing required attribute")
	ErrEmptyID           = errors.New("empty ID")
	ErrInvalidNumber     = errors.New("invalid Number")
	ErrInvalidType       = errors.New("invalid Type")
	ErrUnquotedDesc      = errors.New("unquoted Description")
	ErrNoColumnHeader    = errors.New("no column header line")
	ErrNotDeclaration    = errors.New("not an INFO or FORMAT declaration")
)

// FormatError reports a header line or file that violates the declaration
// grammar. File and Line are filled in by the extractor; the parser alone
// only knows the text.
type FormatError struct {
	File   string
	Line   int
	Text   string
	Reason error
}

func (e *FormatError) Error() string {
	loc := e.File
	if loc == "" {
		loc = "<input>"
	}
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, e.Line)
	}
	if e.Text == "" {
		return fmt.Sprintf("malformed VCF header at %s: %v", loc, e.Reason)
	}
	return fmt.Sprintf("malformed VCF header at %s: %v: %q", loc, e.Reason, e.Text)
}

func (e *FormatError) Unwrap() error {
	return e.Reason
}

// IncompatibleHeaderError reports one id declared with two different
// (Number, Type) pairs. First and Second carry their source files.
type IncompatibleHeaderError struct {
	Kind   model.Kind
	ID     string
	First  model.FieldDefinition
	Second model.FieldDefinition
}

func (e *IncompatibleHeaderError) Error() string {
	return fmt.Sprintf("incompatible %s header %q: %s%s vs %s%s",
		e.Kind, e.ID,
		e.First.Signature(), origin(e.First),
		e.Second.Signature(), origin(e.Second))
}

func origin(def model.FieldDefinition) string {
	if def.Source == "" {
		return ""
	}
	if def.Line > 0 {
		return fmt.Sprintf(" (%s:%d)", def.Source, def.Line)
	}
	return fmt.Sprintf(" (%s)", def.Source)
}
