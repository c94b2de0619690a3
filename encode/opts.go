package encode

import (
	"github.com/plistkit/go-plist/format"
	"github.com/plistkit/go-plist/ir"
)

type EncodeOption func(*EncState)

// EncState carries encoder settings and per-document state.
type EncState struct {
	format format.Format
	pretty bool
	indent string
	depth  int

	Color func(ir.Kind, ColorAttr, string) string
}

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// Pretty enables indented output for the JSON and OpenStep formats.
// XML is always indented and binary output ignores this setting.
func Pretty(v bool) EncodeOption {
	return func(es *EncState) { es.pretty = v }
}

// Indent sets the indent unit used by pretty output.
func Indent(s string) EncodeOption {
	return func(es *EncState) { es.indent = s }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
