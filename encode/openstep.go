package encode

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/plistkit/go-plist/ir"
)

// encodeOpenStep writes NeXTSTEP-style ASCII text. The format carries
// only strings, numbers, data and containers; other kinds return an
// error wrapping ErrFormat.
func encodeOpenStep(node *ir.Node, w io.Writer, es *EncState) error {
	if err := stepValue(node, w, es); err != nil {
		return err
	}
	return writeString(w, "\n")
}

func stepValue(n *ir.Node, w io.Writer, es *EncState) error {
	switch n.Kind {
	case ir.IntKind:
		if n.Unsigned {
			return writeString(w, strconv.FormatUint(uint64(n.Int), 10))
		}
		return writeString(w, strconv.FormatInt(n.Int, 10))

	case ir.RealKind:
		return writeString(w, strconv.FormatFloat(n.Real, 'g', -1, 64))

	case ir.StringKind, ir.KeyKind:
		return writeString(w, stepString(n.String))

	case ir.DataKind:
		return writeString(w, "<"+hex.EncodeToString(n.Bytes)+">")

	case ir.ArrayKind:
		if err := writeString(w, "("); err != nil {
			return err
		}
		es.depth++
		for i, v := range n.Values {
			if i > 0 {
				if err := writeString(w, ","); err != nil {
					return err
				}
			}
			if err := stepBreak(w, es); err != nil {
				return err
			}
			if err := stepValue(v, w, es); err != nil {
				return err
			}
		}
		es.depth--
		if len(n.Values) > 0 {
			if err := stepBreak(w, es); err != nil {
				return err
			}
		}
		return writeString(w, ")")

	case ir.DictKind:
		if err := writeString(w, "{"); err != nil {
			return err
		}
		es.depth++
		for i, f := range n.Fields {
			if err := stepBreak(w, es); err != nil {
				return err
			}
			if err := writeString(w, stepString(f.String)+" = "); err != nil {
				return err
			}
			if err := stepValue(n.Values[i], w, es); err != nil {
				return err
			}
			if err := writeString(w, ";"); err != nil {
				return err
			}
		}
		es.depth--
		if len(n.Fields) > 0 {
			if err := stepBreak(w, es); err != nil {
				return err
			}
		}
		return writeString(w, "}")

	default:
		return fmt.Errorf("%w: %s in step plist", ErrFormat, n.Kind)
	}
}

// stepBreak starts an indented line in pretty mode and separates tokens
// with a space otherwise.
func stepBreak(w io.Writer, es *EncState) error {
	if !es.pretty {
		return writeString(w, " ")
	}
	return writeString(w, "\n"+strings.Repeat(es.indent, es.depth))
}

// stepString quotes a string unless it is a plain word token. Tokens
// that would read back as numbers are quoted to keep their kind.
func stepString(s string) string {
	if isStepWord(s) && !readsAsNumber(s) {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"':
			b.WriteString(`\"`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\r':
			b.WriteString(`\r`)
		case r < 0x20:
			fmt.Fprintf(&b, `\%03o`, r)
		case r < 0x80:
			b.WriteRune(r)
		default:
			for _, u := range utf16.Encode([]rune{r}) {
				fmt.Fprintf(&b, `\U%04x`, u)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

func readsAsNumber(s string) bool {
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseUint(s, 10, 64); err == nil {
		return true
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil && strings.ContainsAny(s, ".")
}

func isStepWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_' || c == '$' || c == '.' || c == '/' || c == ':':
		default:
			return false
		}
	}
	return true
}
