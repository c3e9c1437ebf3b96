package synclyrics

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a lyrics document was rejected.
type ErrorKind int

const (
	KindMalformed ErrorKind = iota + 1
	KindMissingSection
	KindMissingAttribute
	KindMissingText
	KindInvalidTimeFormat
	KindInvalidNumber
	KindUnexpectedTag
)

func (k ErrorKind) String() string {
	switch k {
	case KindMalformed:
		return "malformed"
	case KindMissingSection:
		return "missing_section"
	case KindMissingAttribute:
		return "missing_attribute"
	case KindMissingText:
		return "missing_text"
	case KindInvalidTimeFormat:
		return "invalid_time_format"
	case KindInvalidNumber:
		return "invalid_number"
	case KindUnexpectedTag:
		return "unexpected_tag"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. Any *ParseError of the same kind matches.
var (
	ErrMalformed         = &ParseError{Kind: KindMalformed}
	ErrMissingSection    = &ParseError{Kind: KindMissingSection}
	ErrMissingAttribute  = &ParseError{Kind: KindMissingAttribute}
	ErrMissingText       = &ParseError{Kind: KindMissingText}
	ErrInvalidTimeFormat = &ParseError{Kind: KindInvalidTimeFormat}
	ErrInvalidNumber     = &ParseError{Kind: KindInvalidNumber}
	ErrUnexpectedTag     = &ParseError{Kind: KindUnexpectedTag}
)

// ParseError reports a rejected document. Only the fields relevant to Kind
// are set.
type ParseError struct {
	Kind ErrorKind
	// Section is the missing element for KindMissingSection.
	Section string
	// Attribute is the missing or invalid attribute name.
	Attribute string
	// Tag is the offending element name.
	Tag string
	// Value is the raw text that failed to parse.
	Value string
	// Line is the 1-based position of the lyric line involved, 0 if none.
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	var msg string
	switch e.Kind {
	case KindMalformed:
		msg = "malformed lyrics document"
	case KindMissingSection:
		msg = fmt.Sprintf("missing section %q", e.Section)
	case KindMissingAttribute:
		msg = fmt.Sprintf("line %d: missing attribute %q", e.Line, e.Attribute)
	case KindMissingText:
		msg = fmt.Sprintf("<%s> entry has no text", e.Tag)
	case KindInvalidTimeFormat:
		msg = fmt.Sprintf("line %d: invalid time %q in attribute %q", e.Line, e.Value, e.Attribute)
	case KindInvalidNumber:
		msg = fmt.Sprintf("invalid number %q in attribute %q", e.Value, e.Attribute)
	case KindUnexpectedTag:
		msg = fmt.Sprintf("unexpected tag <%s>, want <songwriters>", e.Tag)
	default:
		msg = "lyrics parse error"
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *ParseError of the same kind.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of the first *ParseError in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}
