package parse

import "github.com/plistkit/go-plist/format"

type parseOpts struct {
	format    format.Format
	hasFormat bool
}

type ParseOption func(*parseOpts)

// WithFormat pins the wire format instead of auto-detecting it.
func WithFormat(f format.Format) ParseOption {
	return func(o *parseOpts) {
		o.format = f
		o.hasFormat = true
	}
}
