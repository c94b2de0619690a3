package parse

import (
	"errors"
	"testing"

	"github.com/plistkit/go-plist/format"
	"github.com/plistkit/go-plist/ir"
)

func parseStep(t *testing.T, doc string) *ir.Node {
	t.Helper()
	n, err := Parse([]byte(doc), WithFormat(format.OpenStepFormat))
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestOpenStepDocument(t *testing.T) {
	n := parseStep(t, `
/* pet registry */
{
	pets = ( Polly, "Penny Lane" ); // two of them
	count = 3;
	weight = 12.5;
	"needs space" = yes;
	blob = <0001 1a2b>;
}`)
	if n.Kind != ir.DictKind || len(n.Fields) != 5 {
		t.Fatalf("parsed %v", n)
	}
	pets := ir.Get(n, "pets")
	if pets.Kind != ir.ArrayKind || len(pets.Values) != 2 {
		t.Fatalf("pets = %v", pets)
	}
	if pets.Values[0].String != "Polly" || pets.Values[1].String != "Penny Lane" {
		t.Fatalf("pets = %v, %v", pets.Values[0], pets.Values[1])
	}
	if v := ir.Get(n, "count"); v.Kind != ir.IntKind || v.Int != 3 {
		t.Fatalf("count = %v", v)
	}
	if v := ir.Get(n, "weight"); v.Kind != ir.RealKind || v.Real != 12.5 {
		t.Fatalf("weight = %v", v)
	}
	// bare words stay strings even when they look boolean
	if v := ir.Get(n, "needs space"); v.Kind != ir.StringKind || v.String != "yes" {
		t.Fatalf("needs space = %v", v)
	}
	if v := ir.Get(n, "blob"); string(v.Bytes) != "\x00\x01\x1a\x2b" {
		t.Fatalf("blob = %x", v.Bytes)
	}
}

func TestOpenStepEscapes(t *testing.T) {
	n := parseStep(t, `{ s = "a\tb\nc \"q\" \101 \U00e9"; }`)
	want := "a\tb\nc \"q\" A é"
	if v := ir.Get(n, "s"); v.String != want {
		t.Fatalf("s = %q, want %q", v.String, want)
	}
}

func TestOpenStepSurrogatePair(t *testing.T) {
	n := parseStep(t, `{ s = "\Ud83d\Ude00"; }`)
	if v := ir.Get(n, "s"); v.String != "\U0001f600" {
		t.Fatalf("s = %q", v.String)
	}
}

func TestOpenStepVersionStringsStayStrings(t *testing.T) {
	n := parseStep(t, `{ v = 1.2.3; n = -7; u = 18446744073709551615; }`)
	if v := ir.Get(n, "v"); v.Kind != ir.StringKind || v.String != "1.2.3" {
		t.Fatalf("v = %v", v)
	}
	if v := ir.Get(n, "n"); v.Kind != ir.IntKind || v.Int != -7 {
		t.Fatalf("n = %v", v)
	}
	if v := ir.Get(n, "u"); v.Kind != ir.IntKind || !v.Unsigned {
		t.Fatalf("u = %v", v)
	}
}

func TestOpenStepNestedArrays(t *testing.T) {
	n := parseStep(t, `( ( 1, 2 ), { a = b; }, "x" )`)
	if n.Kind != ir.ArrayKind || len(n.Values) != 3 {
		t.Fatalf("parsed %v", n)
	}
	if inner := n.Values[0]; inner.Values[1].Int != 2 {
		t.Fatalf("inner = %v", inner)
	}
	if d := n.Values[1]; ir.Get(d, "a").String != "b" {
		t.Fatalf("dict = %v", d)
	}
}

func TestOpenStepErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"empty", "", ErrTruncated},
		{"unclosed dict", "{ a = 1;", ErrTruncated},
		{"unclosed string", `{ a = "x`, ErrTruncated},
		{"missing equals", "{ a 1; }", ErrParse},
		{"missing semicolon", "{ a = 1 }", ErrParse},
		{"odd hex", "<abc>", ErrParse},
		{"trailing content", "( 1 ) extra", ErrParse},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc), WithFormat(format.OpenStepFormat))
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}
