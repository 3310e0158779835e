package anim

import "fmt"

type ErrorKind int

const (
	KIND_BAD_MAGIC ErrorKind = iota + 1
	KIND_UNSUPPORTED_VERSION
	KIND_TRUNCATED
	KIND_BAD_BITFIELD
	KIND_INVALID_SEGMENT
	KIND_SECTION_SIZE_MISMATCH // warning only, unless Options.Strict
	KIND_OUT_OF_BOUNDS
	KIND_INVALID_BIT_WIDTH
)

var kindNames = map[ErrorKind]string{
	KIND_BAD_MAGIC:             "BadMagic",
	KIND_UNSUPPORTED_VERSION:   "UnsupportedVersion",
	KIND_TRUNCATED:             "Truncated",
	KIND_BAD_BITFIELD:          "BadBitfield",
	KIND_INVALID_SEGMENT:       "InvalidSegment",
	KIND_SECTION_SIZE_MISMATCH: "SectionSizeMismatch",
	KIND_OUT_OF_BOUNDS:         "OutOfBounds",
	KIND_INVALID_BIT_WIDTH:     "InvalidBitWidth",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// FormatError describes a malformed or unsupported buffer.
// Offset is the absolute byte offset in the buffer where the problem was detected.
type FormatError struct {
	Kind   ErrorKind `json:"kind" yaml:"kind"`
	Offset int64     `json:"offset" yaml:"offset"`
	Msg    string    `json:"msg" yaml:"msg"`
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("[anim] %v at 0x%x: %s", e.Kind, e.Offset, e.Msg)
}

// Is matches any FormatError of the same kind, so errors.Is(err, ErrTruncated) works
// regardless of offset and message.
func (e *FormatError) Is(target error) bool {
	t, ok := target.(*FormatError)
	return ok && t.Kind == e.Kind
}

var (
	ErrBadMagic            = &FormatError{Kind: KIND_BAD_MAGIC}
	ErrUnsupportedVersion  = &FormatError{Kind: KIND_UNSUPPORTED_VERSION}
	ErrTruncated           = &FormatError{Kind: KIND_TRUNCATED}
	ErrBadBitfield         = &FormatError{Kind: KIND_BAD_BITFIELD}
	ErrInvalidSegment      = &FormatError{Kind: KIND_INVALID_SEGMENT}
	ErrSectionSizeMismatch = &FormatError{Kind: KIND_SECTION_SIZE_MISMATCH}
	ErrOutOfBounds         = &FormatError{Kind: KIND_OUT_OF_BOUNDS}
	ErrInvalidBitWidth     = &FormatError{Kind: KIND_INVALID_BIT_WIDTH}
)

func formatErrorf(kind ErrorKind, offset int, format string, a ...interface{}) *FormatError {
	return &FormatError{
		Kind:   kind,
		Offset: int64(offset),
		Msg:    fmt.Sprintf(format, a...),
	}
}
