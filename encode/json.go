package encode

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/segmentio/encoding/json"

	"github.com/plistkit/go-plist/ir"
)

// encodeJSON writes a JSON document, preserving dictionary key order.
// Data, date and UID nodes have no JSON value and return an error
// wrapping ErrFormat.
func encodeJSON(node *ir.Node, w io.Writer, es *EncState) error {
	if err := jsonValue(node, w, es); err != nil {
		return err
	}
	return writeString(w, "\n")
}

func jsonValue(n *ir.Node, w io.Writer, es *EncState) error {
	switch n.Kind {
	case ir.NullKind:
		return writeString(w, "null")

	case ir.BoolKind:
		return writeString(w, strconv.FormatBool(n.Bool))

	case ir.IntKind:
		if n.Unsigned {
			return writeString(w, strconv.FormatUint(uint64(n.Int), 10))
		}
		return writeString(w, strconv.FormatInt(n.Int, 10))

	case ir.RealKind:
		return writeString(w, strconv.FormatFloat(n.Real, 'g', -1, 64))

	case ir.StringKind, ir.KeyKind:
		return jsonString(n.String, w)

	case ir.ArrayKind:
		if len(n.Values) == 0 {
			return writeString(w, "[]")
		}
		if err := writeString(w, "["); err != nil {
			return err
		}
		es.depth++
		for i, v := range n.Values {
			if i > 0 {
				if err := writeString(w, ","); err != nil {
					return err
				}
			}
			if err := jsonBreak(w, es); err != nil {
				return err
			}
			if err := jsonValue(v, w, es); err != nil {
				return err
			}
		}
		es.depth--
		if err := jsonBreak(w, es); err != nil {
			return err
		}
		return writeString(w, "]")

	case ir.DictKind:
		if len(n.Fields) == 0 {
			return writeString(w, "{}")
		}
		if err := writeString(w, "{"); err != nil {
			return err
		}
		es.depth++
		for i, f := range n.Fields {
			if i > 0 {
				if err := writeString(w, ","); err != nil {
					return err
				}
			}
			if err := jsonBreak(w, es); err != nil {
				return err
			}
			if err := jsonString(f.String, w); err != nil {
				return err
			}
			sep := ":"
			if es.pretty {
				sep = ": "
			}
			if err := writeString(w, sep); err != nil {
				return err
			}
			if err := jsonValue(n.Values[i], w, es); err != nil {
				return err
			}
		}
		es.depth--
		if err := jsonBreak(w, es); err != nil {
			return err
		}
		return writeString(w, "}")

	default:
		return fmt.Errorf("%w: %s in JSON", ErrFormat, n.Kind)
	}
}

func jsonBreak(w io.Writer, es *EncState) error {
	if !es.pretty {
		return nil
	}
	return writeString(w, "\n"+strings.Repeat(es.indent, es.depth))
}

func jsonString(s string, w io.Writer) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return writeBytes(w, b)
}
