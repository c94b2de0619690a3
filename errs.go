package plist

import (
	"errors"
	"fmt"

	"github.com/plistkit/go-plist/encode"
	"github.com/plistkit/go-plist/format"
	"github.com/plistkit/go-plist/parse"
)

var (
	// ErrKind is returned by the AsT accessors when the value holds a
	// different kind.
	ErrKind = errors.New("kind mismatch")

	// ErrBounds covers container accesses outside the valid range.
	ErrBounds = errors.New("out of bounds")

	// ErrStale is returned by Item accesses after the owning tree was
	// structurally mutated.
	ErrStale = fmt.Errorf("%w: stale item", ErrBounds)
)

// Re-exported codec errors so callers need only this package for
// errors.Is branching.
var (
	ErrParse              = parse.ErrParse
	ErrTruncated          = parse.ErrTruncated
	ErrUnsupportedVersion = parse.ErrUnsupportedVersion
	ErrEncoding           = encode.ErrEncoding
	ErrFormat             = encode.ErrFormat
	ErrBadFormat          = format.ErrBadFormat
)
