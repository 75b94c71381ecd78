package scaledecode

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel error kinds. The decoder's own failures wrap them inside a
// *DecodeError with positional context; an error a Visitor method
// returns at the top level is wrapped in a *VisitorError instead.
// Compare with errors.Is.
var (
	ErrNotEnoughInput       = errors.New("scaledecode: not enough input")
	ErrInvalidBool          = errors.New("scaledecode: invalid bool byte")
	ErrInvalidChar          = errors.New("scaledecode: invalid char")
	ErrInvalidUtf8          = errors.New("scaledecode: invalid utf-8")
	ErrInvalidBitSequence   = errors.New("scaledecode: invalid bit sequence")
	ErrCompactOverflow      = errors.New("scaledecode: compact value overflows target width")
	ErrInvalidCompactTarget = errors.New("scaledecode: compact target is not an unsigned integer")
	ErrVariantOutOfRange    = errors.New("scaledecode: variant index out of range")
	ErrTypeNotFound         = errors.New("scaledecode: type id not found in registry")
	ErrTypeResolveError     = errors.New("scaledecode: type resolution failed")
	ErrWrongShape           = errors.New("scaledecode: visitor does not handle this shape")
	ErrTrailingBytes        = errors.New("scaledecode: trailing bytes after decode")

	errUnsupportedWidth = "scaledecode: unsupported integer width: %d"
)

// PathFrame identifies one step from the root of a decoded value to
// the point an error occurred.
type PathFrame struct {
	Field   string // set when Kind == "field"
	Index   int    // set when Kind == "index" or "tuple"
	Variant string // set when Kind == "variant"
	Kind    string // "field", "index", "variant", "tuple", "compact"
}

func fieldFrame(name string) PathFrame   { return PathFrame{Kind: "field", Field: name} }
func indexFrame(i int) PathFrame         { return PathFrame{Kind: "index", Index: i} }
func variantFrame(name string) PathFrame { return PathFrame{Kind: "variant", Variant: name} }
func tupleFrame(i int) PathFrame         { return PathFrame{Kind: "tuple", Index: i} }
func compactFrame() PathFrame            { return PathFrame{Kind: "compact"} }

func (f PathFrame) String() string {
	switch f.Kind {
	case "field":
		return "." + f.Field
	case "index":
		return fmt.Sprintf("[%d]", f.Index)
	case "variant":
		return "::" + f.Variant
	case "tuple":
		return fmt.Sprintf(".%d", f.Index)
	case "compact":
		return ".<compact>"
	default:
		return "?"
	}
}

// DecodeError is the error type the decoder reports its own failures
// with (and wraps nested visitor errors in, at field/index frames). It
// carries the byte offset at which the failure occurred and a path
// from the root of the value being decoded.
type DecodeError struct {
	Offset int
	Path   []PathFrame
	cause  error
}

func newDecodeError(offset int, cause error) *DecodeError {
	return &DecodeError{Offset: offset, cause: cause}
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString("scaledecode: at offset ")
	fmt.Fprintf(&b, "%d", e.Offset)
	if len(e.Path) > 0 {
		b.WriteString(" (path: $")
		for _, f := range e.Path {
			b.WriteString(f.String())
		}
		b.WriteString(")")
	}
	b.WriteString(": ")
	b.WriteString(e.cause.Error())
	return b.String()
}

func (e *DecodeError) Unwrap() error {
	return e.cause
}

// withFrame returns a copy of e with frame prepended to the path (the
// innermost frame is appended last by the caller closest to the
// failure, so callers higher up the call stack prepend).
func (e *DecodeError) withFrame(frame PathFrame) *DecodeError {
	path := make([]PathFrame, 0, len(e.Path)+1)
	path = append(path, frame)
	path = append(path, e.Path...)
	return &DecodeError{Offset: e.Offset, Path: path, cause: e.cause}
}

// wrapErr and the at* helpers let orchestrator code attach path context to
// whatever error a child decode produced, converting plain errors into
// a *DecodeError on first contact.
func wrapErr(offset int, err error) *DecodeError {
	var de *DecodeError
	if errors.As(err, &de) {
		return de
	}
	return newDecodeError(offset, err)
}

func atField(offset int, err error, name string) *DecodeError {
	return wrapErr(offset, err).withFrame(fieldFrame(name))
}

func atIndex(offset int, err error, i int) *DecodeError {
	return wrapErr(offset, err).withFrame(indexFrame(i))
}

func atVariant(offset int, err error, name string) *DecodeError {
	return wrapErr(offset, err).withFrame(variantFrame(name))
}

func atTuple(offset int, err error, i int) *DecodeError {
	return wrapErr(offset, err).withFrame(tupleFrame(i))
}

func atCompact(offset int, err error) *DecodeError {
	return wrapErr(offset, err).withFrame(compactFrame())
}

// VisitorError wraps an arbitrary error returned by a user-supplied
// Visitor method, distinguishing it from errors raised internally by
// the decoder itself.
type VisitorError struct {
	Err error
}

func (e *VisitorError) Error() string { return "scaledecode: visitor error: " + e.Err.Error() }
func (e *VisitorError) Unwrap() error { return e.Err }
