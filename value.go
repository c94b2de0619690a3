package plist

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/plistkit/go-plist/debug"
	"github.com/plistkit/go-plist/encode"
	"github.com/plistkit/go-plist/format"
	"github.com/plistkit/go-plist/ir"
)

// Value is a node in a property list tree. Values sharing a tree share
// a revision counter, bumped on every structural mutation so borrowed
// Items can detect staleness.
type Value struct {
	node *ir.Node
	rev  *uint64
}

func newValue(n *ir.Node) Value {
	return Value{node: n, rev: new(uint64)}
}

func (v Value) wrap(n *ir.Node) Value {
	return Value{node: n, rev: v.rev}
}

func (v Value) bump() {
	*v.rev++
}

func (v Value) Kind() Kind {
	if v.node == nil {
		return NullKind
	}
	return v.node.Kind
}

func (v Value) IsNull() bool {
	return v.node == nil || v.node.Kind == ir.NullKind
}

func (v Value) AsBool() (bool, error) {
	if v.Kind() != BoolKind {
		return false, fmt.Errorf("%w: %s is not a boolean", ErrKind, v.Kind())
	}
	return v.node.Bool, nil
}

// AsInt returns the value as a signed integer. Integers above the
// int64 range carry the unsigned flag and are only reachable through
// AsUint.
func (v Value) AsInt() (int64, error) {
	if v.Kind() != IntKind {
		return 0, fmt.Errorf("%w: %s is not an integer", ErrKind, v.Kind())
	}
	if v.node.Unsigned {
		return 0, fmt.Errorf("%w: integer exceeds the signed range", ErrKind)
	}
	return v.node.Int, nil
}

func (v Value) AsUint() (uint64, error) {
	if v.Kind() != IntKind {
		return 0, fmt.Errorf("%w: %s is not an integer", ErrKind, v.Kind())
	}
	if !v.node.Unsigned && v.node.Int < 0 {
		return 0, fmt.Errorf("%w: negative integer", ErrKind)
	}
	return uint64(v.node.Int), nil
}

func (v Value) AsReal() (float64, error) {
	if v.Kind() != RealKind {
		return 0, fmt.Errorf("%w: %s is not a real", ErrKind, v.Kind())
	}
	return v.node.Real, nil
}

func (v Value) AsString() (string, error) {
	if v.Kind() != StringKind {
		return "", fmt.Errorf("%w: %s is not a string", ErrKind, v.Kind())
	}
	return v.node.String, nil
}

func (v Value) AsData() ([]byte, error) {
	if v.Kind() != DataKind {
		return nil, fmt.Errorf("%w: %s is not data", ErrKind, v.Kind())
	}
	return v.node.Bytes, nil
}

func (v Value) AsDate() (time.Time, error) {
	if v.Kind() != DateKind {
		return time.Time{}, fmt.Errorf("%w: %s is not a date", ErrKind, v.Kind())
	}
	return v.node.Time, nil
}

func (v Value) AsUID() (uint64, error) {
	if v.Kind() != UIDKind {
		return 0, fmt.Errorf("%w: %s is not a uid", ErrKind, v.Kind())
	}
	return v.node.UID, nil
}

func (v Value) AsArray() (*Array, error) {
	if v.Kind() != ArrayKind {
		return nil, fmt.Errorf("%w: %s is not an array", ErrKind, v.Kind())
	}
	return &Array{v: v}, nil
}

func (v Value) AsDict() (*Dictionary, error) {
	if v.Kind() != DictKind {
		return nil, fmt.Errorf("%w: %s is not a dictionary", ErrKind, v.Kind())
	}
	return &Dictionary{v: v}, nil
}

// Clone returns a detached deep copy with its own revision counter.
func (v Value) Clone() Value {
	if v.node == nil {
		return newValue(ir.Null())
	}
	return newValue(v.node.Clone().Detach())
}

// Equal compares trees structurally. Dictionary order does not matter,
// array order does, and integers compare by raw 64-bit value.
func (v Value) Equal(o Value) bool {
	return ir.Equal(v.node, o.node)
}

// GetPath resolves a dotted/bracketed path such as "items[2].name".
func (v Value) GetPath(path string) (Value, error) {
	n, err := v.node.GetPath(path)
	if err != nil {
		return Value{}, err
	}
	return v.wrap(n), nil
}

// XML renders the standard Apple XML document.
func (v Value) XML() (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(v.node, buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Binary renders a bplist00 document.
func (v Value) Binary() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(v.node, buf, encode.EncodeFormat(format.BinaryFormat)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSON renders a JSON document. Data, date and UID values are not
// representable and return an error wrapping ErrFormat.
func (v Value) JSON(pretty bool) (string, error) {
	buf := bytes.NewBuffer(nil)
	opts := []encode.EncodeOption{
		encode.EncodeFormat(format.JSONFormat),
		encode.Pretty(pretty),
		encode.Indent("  "),
	}
	if err := encode.Encode(v.node, buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// OpenStep renders NeXTSTEP-style ASCII text. Boolean, date, UID and
// null values are not representable and return an error wrapping
// ErrFormat.
func (v Value) OpenStep(pretty bool) (string, error) {
	buf := bytes.NewBuffer(nil)
	opts := []encode.EncodeOption{
		encode.EncodeFormat(format.OpenStepFormat),
		encode.Pretty(pretty),
		encode.Indent("  "),
	}
	if err := encode.Encode(v.node, buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// String renders the value for diagnostics. With the clean toggle set
// (the default) the XML envelope lines are stripped, leaving only the
// value records.
func (v Value) String() string {
	s, err := v.XML()
	if err != nil {
		return fmt.Sprintf("[unencodable %s] %v", v.Kind(), v.node)
	}
	if !debug.Clean() {
		return s
	}
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	kept := lines[:0]
	for _, ln := range lines {
		switch {
		case strings.HasPrefix(ln, "<?xml"),
			strings.HasPrefix(ln, "<!DOCTYPE"),
			strings.HasPrefix(ln, "<plist"),
			strings.HasPrefix(ln, "</plist"):
		default:
			kept = append(kept, ln)
		}
	}
	return strings.Join(kept, "\n")
}
