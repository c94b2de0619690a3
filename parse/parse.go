package parse

import (
	"github.com/plistkit/go-plist/debug"
	"github.com/plistkit/go-plist/format"
	"github.com/plistkit/go-plist/ir"
)

// Parse reads a complete plist document into an ir.Node tree. Without a
// WithFormat option the format is auto-detected; a leading '{' is
// ambiguous between OpenStep and JSON, so in auto mode a failed OpenStep
// parse falls back to JSON before reporting an error.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	if pOpts.hasFormat {
		if debug.Parse() {
			debug.Logf("parse: %d bytes as %v\n", len(d), pOpts.format)
		}
		return parseAs(d, pOpts.format)
	}
	detected := format.Detect(d)
	if debug.Parse() {
		debug.Logf("parse: %d bytes, detected %v\n", len(d), detected)
	}
	res, err := parseAs(d, detected)
	if err != nil && detected == format.OpenStepFormat {
		if debug.Parse() {
			debug.Logf("parse: openstep failed (%v), retrying as json\n", err)
		}
		if res2, err2 := parseAs(d, format.JSONFormat); err2 == nil {
			return res2, nil
		}
	}
	if err != nil && debug.Parse() {
		debug.Logf("parse: %v\n", err)
	}
	return res, err
}

func parseAs(d []byte, f format.Format) (*ir.Node, error) {
	switch f {
	case format.XMLFormat:
		return parseXML(d)
	case format.BinaryFormat:
		return parseBinary(d)
	case format.OpenStepFormat:
		return parseOpenStep(d)
	case format.JSONFormat:
		return parseJSON(d)
	default:
		return nil, format.ErrBadFormat
	}
}
