package plist

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/plistkit/go-plist/encode"
)

// Dump writes the XML rendering of v to w, colorized when w is a
// terminal.
func Dump(w io.Writer, v Value) error {
	opts := []encode.EncodeOption{}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		opts = append(opts, encode.EncodeColors(encode.NewColors()))
	}
	return encode.Encode(v.node, w, opts...)
}
