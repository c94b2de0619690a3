package debug

import (
	"bytes"
	"fmt"
	"os"

	"github.com/plistkit/go-plist/encode"
	"github.com/plistkit/go-plist/ir"
)

type Plist struct{ *ir.Node }

func (p Plist) String() string {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(p.Node, buf); err != nil {
		return fmt.Sprintf("[raw *ir.Node] %v", p.Node)
	}
	return buf.String()
}

// Logf writes a formatted message to stderr, rendering any *ir.Node
// arguments as XML.
func Logf(msg string, args ...any) {
	for i := range args {
		if x, ok := args[i].(*ir.Node); ok {
			args[i] = Plist{x}.String()
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
