// Package format enumerates the plist wire formats and detects which one
// a byte sequence carries.
package format

import (
	"bytes"
	"errors"
	"fmt"
)

type Format int

const (
	XMLFormat Format = iota
	BinaryFormat
	OpenStepFormat
	JSONFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"x":        XMLFormat,
		"xml":      XMLFormat,
		"b":        BinaryFormat,
		"bin":      BinaryFormat,
		"binary":   BinaryFormat,
		"o":        OpenStepFormat,
		"openstep": OpenStepFormat,
		"ascii":    OpenStepFormat,
		"j":        JSONFormat,
		"json":     JSONFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case XMLFormat:
		return []byte("xml"), nil
	case BinaryFormat:
		return []byte("binary"), nil
	case OpenStepFormat:
		return []byte("openstep"), nil
	case JSONFormat:
		return []byte("json"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsXML() bool      { return f == XMLFormat }
func (f Format) IsBinary() bool   { return f == BinaryFormat }
func (f Format) IsOpenStep() bool { return f == OpenStepFormat }
func (f Format) IsJSON() bool     { return f == JSONFormat }

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case XMLFormat, BinaryFormat, OpenStepFormat:
		return ".plist"
	case JSONFormat:
		return ".json"
	default:
		return ""
	}
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{XMLFormat, BinaryFormat, OpenStepFormat, JSONFormat}
}

// BinaryMagic is the prefix of every binary plist, followed by a
// two-digit version.
var BinaryMagic = []byte("bplist")

// Detect inspects a document prefix and reports the format it carries.
// The binary magic wins outright; an XML preamble or element comes next;
// a leading '{' or '(' reads as OpenStep; everything else falls through
// to JSON. Callers that need to disambiguate OpenStep from a JSON object
// should attempt OpenStep first and fall back to JSON on a parse error.
func Detect(d []byte) Format {
	if bytes.HasPrefix(d, BinaryMagic) {
		return BinaryFormat
	}
	t := bytes.TrimLeft(d, " \t\r\n")
	// UTF-8 BOM
	t = bytes.TrimPrefix(t, []byte{0xEF, 0xBB, 0xBF})
	if bytes.HasPrefix(t, []byte("<")) {
		return XMLFormat
	}
	if len(t) > 0 && (t[0] == '{' || t[0] == '(' || t[0] == '/') {
		return OpenStepFormat
	}
	return JSONFormat
}
