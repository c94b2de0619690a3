package encode

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/plistkit/go-plist/ir"
)

const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		`<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">` + "\n"
	xmlOpen  = `<plist version="1.0">` + "\n"
	xmlClose = "</plist>\n"
)

// encodeXML writes the standard Apple XML document: header, DOCTYPE,
// plist envelope and a single root value, tab-indented.
func encodeXML(node *ir.Node, w io.Writer, es *EncState) error {
	if err := writeString(w, xmlHeader+xmlOpen); err != nil {
		return err
	}
	if err := xmlValue(node, w, es); err != nil {
		return err
	}
	return writeString(w, xmlClose)
}

func xmlValue(n *ir.Node, w io.Writer, es *EncState) error {
	pad := strings.Repeat("\t", es.depth)
	switch n.Kind {
	case ir.NullKind:
		// no XML record type, encoded as an empty string
		return writeString(w, pad+xmlColor(es, n.Kind, "<string></string>")+"\n")

	case ir.BoolKind:
		tag := "<false/>"
		if n.Bool {
			tag = "<true/>"
		}
		return writeString(w, pad+xmlColor(es, n.Kind, tag)+"\n")

	case ir.IntKind:
		var body string
		if n.Unsigned {
			body = strconv.FormatUint(uint64(n.Int), 10)
		} else {
			body = strconv.FormatInt(n.Int, 10)
		}
		return xmlLeaf(w, es, n.Kind, pad, "integer", body)

	case ir.RealKind:
		return xmlLeaf(w, es, n.Kind, pad, "real", strconv.FormatFloat(n.Real, 'g', -1, 64))

	case ir.DateKind:
		return xmlLeaf(w, es, n.Kind, pad, "date", xmlDate(n.Time))

	case ir.DataKind:
		return xmlLeaf(w, es, n.Kind, pad, "data", base64.StdEncoding.EncodeToString(n.Bytes))

	case ir.StringKind, ir.KeyKind:
		body, err := xmlEscape(n.String)
		if err != nil {
			return err
		}
		return xmlLeaf(w, es, ir.StringKind, pad, "string", body)

	case ir.UIDKind:
		// UIDs have no XML record and travel as a CF$UID dictionary
		if err := writeString(w, pad+"<dict>\n"); err != nil {
			return err
		}
		body := pad + "\t<key>CF$UID</key>\n" +
			pad + "\t<integer>" + strconv.FormatUint(n.UID, 10) + "</integer>\n"
		if err := writeString(w, xmlColor(es, n.Kind, body)); err != nil {
			return err
		}
		return writeString(w, pad + "</dict>\n")

	case ir.ArrayKind:
		if len(n.Values) == 0 {
			return writeString(w, pad+"<array/>\n")
		}
		if err := writeString(w, pad+"<array>\n"); err != nil {
			return err
		}
		es.depth++
		for _, v := range n.Values {
			if err := xmlValue(v, w, es); err != nil {
				return err
			}
		}
		es.depth--
		return writeString(w, pad+"</array>\n")

	case ir.DictKind:
		if len(n.Fields) == 0 {
			return writeString(w, pad+"<dict/>\n")
		}
		if err := writeString(w, pad+"<dict>\n"); err != nil {
			return err
		}
		es.depth++
		for i, f := range n.Fields {
			key, err := xmlEscape(f.String)
			if err != nil {
				return err
			}
			line := pad + "\t<key>" + xmlColor(es, ir.KeyKind, key) + "</key>\n"
			if err := writeString(w, line); err != nil {
				return err
			}
			if err := xmlValue(n.Values[i], w, es); err != nil {
				return err
			}
		}
		es.depth--
		return writeString(w, pad+"</dict>\n")

	default:
		return fmt.Errorf("%w: %s in XML", ErrFormat, n.Kind)
	}
}

func xmlLeaf(w io.Writer, es *EncState, k ir.Kind, pad, tag, body string) error {
	return writeString(w, pad+"<"+tag+">"+xmlColor(es, k, body)+"</"+tag+">\n")
}

func xmlColor(es *EncState, k ir.Kind, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(k, ValueColor, s)
}

func xmlEscape(s string) (string, error) {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return b.String(), nil
}

// xmlDate formats a UTC timestamp, keeping fractional seconds only
// when present so common dates stay in the plain Z form.
func xmlDate(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond() == 0 {
		return t.Format("2006-01-02T15:04:05Z")
	}
	return t.Format("2006-01-02T15:04:05.999999999Z")
}
