package parse

import (
	"errors"
	"testing"

	"github.com/plistkit/go-plist/format"
	"github.com/plistkit/go-plist/ir"
)

func TestJSONDocument(t *testing.T) {
	n, err := Parse([]byte(`{
		"zeta": 1,
		"alpha": [true, null, 1.5, "s"],
		"big": 18446744073709551615,
		"neg": -3
	}`), WithFormat(format.JSONFormat))
	if err != nil {
		t.Fatal(err)
	}
	// key order is insertion order, not sorted
	want := []string{"zeta", "alpha", "big", "neg"}
	for i, k := range want {
		if n.Fields[i].String != k {
			t.Fatalf("key %d = %q, want %q", i, n.Fields[i].String, k)
		}
	}
	arr := ir.Get(n, "alpha")
	if arr.Values[0].Kind != ir.BoolKind || !arr.Values[0].Bool {
		t.Fatalf("alpha[0] = %v", arr.Values[0])
	}
	if arr.Values[1].Kind != ir.NullKind {
		t.Fatalf("alpha[1] = %v", arr.Values[1])
	}
	if arr.Values[2].Kind != ir.RealKind || arr.Values[2].Real != 1.5 {
		t.Fatalf("alpha[2] = %v", arr.Values[2])
	}
	if v := ir.Get(n, "zeta"); v.Kind != ir.IntKind || v.Int != 1 {
		t.Fatalf("zeta = %v", v)
	}
	if v := ir.Get(n, "big"); !v.Unsigned || v.Uint() != 18446744073709551615 {
		t.Fatalf("big = %v", v)
	}
	if v := ir.Get(n, "neg"); v.Int != -3 {
		t.Fatalf("neg = %v", v)
	}
}

func TestJSONScalarDocument(t *testing.T) {
	n, err := Parse([]byte(`"hello"`), WithFormat(format.JSONFormat))
	if err != nil {
		t.Fatal(err)
	}
	if n.Kind != ir.StringKind || n.String != "hello" {
		t.Fatalf("parsed %v", n)
	}
}

func TestJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"truncated object", `{"a": 1`},
		{"trailing garbage", `{"a": 1} x`},
		{"bare word", `nope`},
		{"missing colon", `{"a" 1}`},
		{"non-string key", `{1: 2}`},
		{"trailing comma in array", `[1, 2,]`},
		{"trailing comma in object", `{"a": 1,}`},
		{"missing comma", `[1 2]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.doc), WithFormat(format.JSONFormat)); !errors.Is(err, ErrParse) {
				t.Fatalf("err = %v, want ErrParse", err)
			}
		})
	}
}

func TestJSONTruncated(t *testing.T) {
	for _, doc := range []string{`{"a": 1`, `[1, 2`, `{"a":`, `[`} {
		if _, err := Parse([]byte(doc), WithFormat(format.JSONFormat)); !errors.Is(err, ErrTruncated) {
			t.Fatalf("%q: err = %v, want ErrTruncated", doc, err)
		}
	}
}

func TestAutoDetectJSONObjectFallback(t *testing.T) {
	// '{' detects as OpenStep; the JSON colon is not valid there, so
	// auto mode retries as JSON.
	n, err := Parse([]byte(`{"a": [1, 2]}`))
	if err != nil {
		t.Fatal(err)
	}
	arr := ir.Get(n, "a")
	if arr == nil || arr.Kind != ir.ArrayKind || arr.Values[0].Int != 1 {
		t.Fatalf("parsed %v", n)
	}
}

func TestAutoDetectOpenStep(t *testing.T) {
	n, err := Parse([]byte(`{ a = (1, 2); }`))
	if err != nil {
		t.Fatal(err)
	}
	arr := ir.Get(n, "a")
	if arr == nil || len(arr.Values) != 2 {
		t.Fatalf("parsed %v", n)
	}
}
