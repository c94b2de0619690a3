package parse

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is the cause of every decode failure.
	ErrParse = errors.New("parse error")
	// ErrTruncated marks input that ends before the document does.
	ErrTruncated = fmt.Errorf("%w: truncated input", ErrParse)
	// ErrUnsupportedVersion marks a binary plist whose version this
	// package does not read.
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported version", ErrParse)
)
