package parse

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/plistkit/go-plist/ir"
)

// parseXML reads an XML plist document. The <?xml?>/<!DOCTYPE>/<plist>
// envelope is accepted but not required; a bare typed element parses too.
func parseXML(d []byte) (*ir.Node, error) {
	p := &xmlParser{dec: xml.NewDecoder(bytes.NewReader(d))}
	se, err := p.nextStart()
	if err != nil {
		return nil, err
	}
	if se.Name.Local != "plist" {
		return p.value(se)
	}
	tok, err := p.nextElement()
	if err != nil {
		return nil, err
	}
	inner, ok := tok.(xml.StartElement)
	if !ok {
		return nil, fmt.Errorf("%w: empty plist document", ErrParse)
	}
	root, err := p.value(inner)
	if err != nil {
		return nil, err
	}
	if err := p.endElement("plist"); err != nil {
		return nil, err
	}
	return root, nil
}

type xmlParser struct {
	dec *xml.Decoder
}

// nextElement returns the next StartElement or EndElement token.
func (p *xmlParser) nextElement() (xml.Token, error) {
	for {
		t, err := p.dec.Token()
		if err != nil {
			return nil, xmlErr(err)
		}
		switch t.(type) {
		case xml.StartElement, xml.EndElement:
			return t, nil
		}
	}
}

// nextStart skips the document preamble and returns the first
// StartElement.
func (p *xmlParser) nextStart() (xml.StartElement, error) {
	t, err := p.nextElement()
	if err != nil {
		return xml.StartElement{}, err
	}
	se, ok := t.(xml.StartElement)
	if !ok {
		return xml.StartElement{}, fmt.Errorf("%w: unexpected end element", ErrParse)
	}
	return se, nil
}

// endElement reads the end element with the given name.
func (p *xmlParser) endElement(name string) error {
	t, err := p.nextElement()
	if err != nil {
		return err
	}
	ee, ok := t.(xml.EndElement)
	if !ok {
		return fmt.Errorf("%w: expected </%s>", ErrParse, name)
	}
	if ee.Name.Local != name {
		return fmt.Errorf("%w: expected </%s>, got </%s>", ErrParse, name, ee.Name.Local)
	}
	return nil
}

// charData accumulates character data up to the end element of name.
func (p *xmlParser) charData(name string) (string, error) {
	var sb strings.Builder
	for {
		t, err := p.dec.Token()
		if err != nil {
			return "", xmlErr(err)
		}
		switch tt := t.(type) {
		case xml.CharData:
			sb.Write(tt)
		case xml.EndElement:
			if tt.Name.Local != name {
				return "", fmt.Errorf("%w: expected </%s>, got </%s>", ErrParse, name, tt.Name.Local)
			}
			return sb.String(), nil
		case xml.StartElement:
			return "", fmt.Errorf("%w: unexpected <%s> inside <%s>", ErrParse, tt.Name.Local, name)
		}
	}
}

// value parses the element started by se, consuming through its end
// element.
func (p *xmlParser) value(se xml.StartElement) (*ir.Node, error) {
	switch se.Name.Local {
	case "dict":
		return p.dict()
	case "array":
		return p.array()
	case "true":
		if err := p.endElement("true"); err != nil {
			return nil, err
		}
		return ir.FromBool(true), nil
	case "false":
		if err := p.endElement("false"); err != nil {
			return nil, err
		}
		return ir.FromBool(false), nil
	case "string":
		s, err := p.charData("string")
		if err != nil {
			return nil, err
		}
		return ir.FromString(s), nil
	case "integer":
		s, err := p.charData("integer")
		if err != nil {
			return nil, err
		}
		return parseXMLInteger(strings.TrimSpace(s))
	case "real":
		s, err := p.charData("real")
		if err != nil {
			return nil, err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad <real> value %q", ErrParse, s)
		}
		return ir.FromFloat(f), nil
	case "date":
		s, err := p.charData("date")
		if err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("%w: bad <date> value %q", ErrParse, s)
		}
		return ir.FromTime(t), nil
	case "data":
		s, err := p.charData("data")
		if err != nil {
			return nil, err
		}
		raw, err := base64.StdEncoding.DecodeString(stripSpace(s))
		if err != nil {
			return nil, fmt.Errorf("%w: bad <data> payload: %v", ErrParse, err)
		}
		return ir.FromBytes(raw), nil
	default:
		return nil, fmt.Errorf("%w: unexpected element <%s>", ErrParse, se.Name.Local)
	}
}

func (p *xmlParser) dict() (*ir.Node, error) {
	res := &ir.Node{Kind: ir.DictKind}
	for {
		t, err := p.nextElement()
		if err != nil {
			return nil, err
		}
		se, ok := t.(xml.StartElement)
		if !ok {
			ee := t.(xml.EndElement)
			if ee.Name.Local != "dict" {
				return nil, fmt.Errorf("%w: expected </dict>, got </%s>", ErrParse, ee.Name.Local)
			}
			return uidFromDict(res), nil
		}
		if se.Name.Local != "key" {
			return nil, fmt.Errorf("%w: expected <key>, got <%s>", ErrParse, se.Name.Local)
		}
		key, err := p.charData("key")
		if err != nil {
			return nil, err
		}
		vse, err := p.nextStart()
		if err != nil {
			return nil, err
		}
		val, err := p.value(vse)
		if err != nil {
			return nil, err
		}
		// duplicate keys replace the earlier value in place
		res.SetKey(key, val)
	}
}

func (p *xmlParser) array() (*ir.Node, error) {
	res := &ir.Node{Kind: ir.ArrayKind, Values: []*ir.Node{}}
	for {
		t, err := p.nextElement()
		if err != nil {
			return nil, err
		}
		se, ok := t.(xml.StartElement)
		if !ok {
			ee := t.(xml.EndElement)
			if ee.Name.Local != "array" {
				return nil, fmt.Errorf("%w: expected </array>, got </%s>", ErrParse, ee.Name.Local)
			}
			return res, nil
		}
		val, err := p.value(se)
		if err != nil {
			return nil, err
		}
		res.Append(val)
	}
}

// uidFromDict folds the {"CF$UID": n} encoding back into a UID node; any
// other dictionary passes through unchanged.
func uidFromDict(res *ir.Node) *ir.Node {
	if len(res.Fields) != 1 || res.Fields[0].String != "CF$UID" {
		return res
	}
	v := res.Values[0]
	if v.Kind != ir.IntKind || v.Unsigned {
		return res
	}
	return ir.FromUID(uint64(v.Int))
}

// parseXMLInteger accepts decimal and 0x-prefixed hexadecimal text and
// values up to the full uint64 range.
func parseXMLInteger(s string) (*ir.Node, error) {
	i, err := strconv.ParseInt(s, 0, 64)
	if err == nil {
		return ir.FromInt(i), nil
	}
	if errors.Is(err, strconv.ErrRange) {
		u, uerr := strconv.ParseUint(s, 0, 64)
		if uerr == nil {
			return ir.FromUint(u), nil
		}
	}
	return nil, fmt.Errorf("%w: bad <integer> value %q", ErrParse, s)
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)
}

func xmlErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	// the xml decoder reports mid-document EOF as a syntax error
	var syn *xml.SyntaxError
	if errors.As(err, &syn) && strings.Contains(syn.Msg, "unexpected EOF") {
		return ErrTruncated
	}
	return fmt.Errorf("%w: %v", ErrParse, err)
}
