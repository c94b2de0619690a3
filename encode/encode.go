package encode

import (
	"io"

	"github.com/plistkit/go-plist/format"
	"github.com/plistkit/go-plist/ir"
)

// Encode writes node to w in the format selected by the options,
// defaulting to XML.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		format: format.XMLFormat,
		indent: "\t",
	}
	for _, opt := range opts {
		opt(es)
	}
	switch es.format {
	case format.BinaryFormat:
		return encodeBinary(node, w)
	case format.OpenStepFormat:
		return encodeOpenStep(node, w, es)
	case format.JSONFormat:
		return encodeJSON(node, w, es)
	default:
		return encodeXML(node, w, es)
	}
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func writeBytes(w io.Writer, b []byte) error {
	_, err := w.Write(b)
	return err
}
