package parse

import (
	"errors"
	"testing"
	"time"

	"github.com/plistkit/go-plist/format"
	"github.com/plistkit/go-plist/ir"
)

func parseXMLDoc(t *testing.T, body string) *ir.Node {
	t.Helper()
	n, err := Parse([]byte(
		`<?xml version="1.0" encoding="UTF-8"?>`+"\n"+
			`<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">`+"\n"+
			`<plist version="1.0">`+body+`</plist>`),
		WithFormat(format.XMLFormat))
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestXMLDictKeyOrder(t *testing.T) {
	n := parseXMLDoc(t, `
<dict>
	<key>name</key>
	<string>hello</string>
	<key>count</key>
	<integer>3</integer>
	<key>flag</key>
	<true/>
</dict>`)
	if n.Kind != ir.DictKind {
		t.Fatalf("kind = %s", n.Kind)
	}
	want := []string{"name", "count", "flag"}
	if len(n.Fields) != len(want) {
		t.Fatalf("%d keys, want %d", len(n.Fields), len(want))
	}
	for i, k := range want {
		if n.Fields[i].String != k {
			t.Fatalf("key %d = %q, want %q", i, n.Fields[i].String, k)
		}
	}
	if v := ir.Get(n, "name"); v.Kind != ir.StringKind || v.String != "hello" {
		t.Fatalf("name = %v", v)
	}
	if v := ir.Get(n, "count"); v.Kind != ir.IntKind || v.Int != 3 {
		t.Fatalf("count = %v", v)
	}
	if v := ir.Get(n, "flag"); v.Kind != ir.BoolKind || !v.Bool {
		t.Fatalf("flag = %v", v)
	}
}

func TestXMLDuplicateKeyReplaces(t *testing.T) {
	n := parseXMLDoc(t, `
<dict>
	<key>a</key><integer>1</integer>
	<key>b</key><integer>2</integer>
	<key>a</key><integer>9</integer>
</dict>`)
	if len(n.Fields) != 2 {
		t.Fatalf("%d keys, want 2", len(n.Fields))
	}
	if n.Fields[0].String != "a" || n.Fields[1].String != "b" {
		t.Fatal("duplicate key did not keep its position")
	}
	if ir.Get(n, "a").Int != 9 {
		t.Fatal("duplicate key did not replace the value")
	}
}

func TestXMLLeaves(t *testing.T) {
	n := parseXMLDoc(t, `
<dict>
	<key>real</key><real>3.25</real>
	<key>neg</key><integer>-42</integer>
	<key>hex</key><integer>0x10</integer>
	<key>big</key><integer>18446744073709551615</integer>
	<key>data</key><data>aGVsbG8=</data>
	<key>date</key><date>2021-06-01T12:30:00Z</date>
	<key>empty</key><string></string>
</dict>`)
	if v := ir.Get(n, "real"); v.Kind != ir.RealKind || v.Real != 3.25 {
		t.Fatalf("real = %v", v)
	}
	if v := ir.Get(n, "neg"); v.Int != -42 {
		t.Fatalf("neg = %v", v)
	}
	if v := ir.Get(n, "hex"); v.Int != 16 {
		t.Fatalf("hex = %v", v)
	}
	if v := ir.Get(n, "big"); !v.Unsigned || v.Uint() != 18446744073709551615 {
		t.Fatalf("big = %v", v)
	}
	if v := ir.Get(n, "data"); string(v.Bytes) != "hello" {
		t.Fatalf("data = %q", v.Bytes)
	}
	wantDate := time.Date(2021, 6, 1, 12, 30, 0, 0, time.UTC)
	if v := ir.Get(n, "date"); !v.Time.Equal(wantDate) {
		t.Fatalf("date = %v", v.Time)
	}
	if v := ir.Get(n, "empty"); v.Kind != ir.StringKind || v.String != "" {
		t.Fatalf("empty = %v", v)
	}
}

func TestXMLUIDFolding(t *testing.T) {
	n := parseXMLDoc(t, `
<array>
	<dict>
		<key>CF$UID</key>
		<integer>7</integer>
	</dict>
	<dict>
		<key>CF$UID</key>
		<integer>7</integer>
		<key>other</key>
		<string>x</string>
	</dict>
</array>`)
	if v := n.Values[0]; v.Kind != ir.UIDKind || v.UID != 7 {
		t.Fatalf("single-key CF$UID dict = %v, want UID 7", v)
	}
	// A dict with extra keys is a plain dict even when CF$UID appears.
	if v := n.Values[1]; v.Kind != ir.DictKind {
		t.Fatalf("two-key dict folded to %s", v.Kind)
	}
}

func TestXMLContainers(t *testing.T) {
	n := parseXMLDoc(t, `
<array>
	<array/>
	<dict/>
	<array><false/></array>
</array>`)
	if len(n.Values) != 3 {
		t.Fatalf("%d elements", len(n.Values))
	}
	if n.Values[0].Kind != ir.ArrayKind || len(n.Values[0].Values) != 0 {
		t.Fatalf("empty array = %v", n.Values[0])
	}
	if n.Values[1].Kind != ir.DictKind || len(n.Values[1].Fields) != 0 {
		t.Fatalf("empty dict = %v", n.Values[1])
	}
	if inner := n.Values[2]; len(inner.Values) != 1 || inner.Values[0].Bool {
		t.Fatalf("nested array = %v", inner)
	}
}

func TestXMLErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"truncated", `<plist version="1.0"><dict><key>a</key>`, ErrTruncated},
		{"bad integer", `<plist><integer>abc</integer></plist>`, ErrParse},
		{"bad base64", `<plist><data>!!</data></plist>`, ErrParse},
		{"bad date", `<plist><date>yesterday</date></plist>`, ErrParse},
		{"stray element", `<plist><widget/></plist>`, ErrParse},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc), WithFormat(format.XMLFormat))
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}
