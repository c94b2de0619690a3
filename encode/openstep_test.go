package encode_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/plistkit/go-plist/format"
	. "github.com/plistkit/go-plist/encode"
	"github.com/plistkit/go-plist/ir"
	"github.com/plistkit/go-plist/parse"
)

func TestOpenStepRoundTrip(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: "name", Val: ir.FromString("Penny Lane")},
		{Key: "word", Val: ir.FromString("bare")},
		{Key: "numeric string", Val: ir.FromString("123")},
		{Key: "count", Val: ir.FromInt(-3)},
		{Key: "ratio", Val: ir.FromFloat(0.5)},
		{Key: "blob", Val: ir.FromBytes([]byte{0xDE, 0xAD})},
		{Key: "pets", Val: ir.FromSlice([]*ir.Node{ir.FromString("Polly"), ir.FromInt(2)})},
	})
	for _, pretty := range []bool{false, true} {
		buf := bytes.NewBuffer(nil)
		err := Encode(node, buf, EncodeFormat(format.OpenStepFormat), Pretty(pretty))
		if err != nil {
			t.Fatal(err)
		}
		back, err := parse.Parse(buf.Bytes(), parse.WithFormat(format.OpenStepFormat))
		if err != nil {
			t.Fatalf("pretty=%v decoding own output: %v\n%s", pretty, err, buf.String())
		}
		if !ir.Equal(node, back) {
			t.Fatalf("pretty=%v round trip changed the tree:\n%s", pretty, buf.String())
		}
	}
}

func TestOpenStepQuoting(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	node := ir.FromSlice([]*ir.Node{
		ir.FromString("bare_word.ok"),
		ir.FromString("has space"),
		ir.FromString("tab\there"),
	})
	if err := Encode(node, buf, EncodeFormat(format.OpenStepFormat)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"bare_word.ok", `"has space"`, `"tab\there"`} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Fatalf("output %q missing %q", out, want)
		}
	}
}

func TestOpenStepUnrepresentable(t *testing.T) {
	nodes := []*ir.Node{
		ir.FromBool(true),
		ir.FromTime(time.Unix(0, 0)),
		ir.FromUID(1),
		ir.Null(),
	}
	for _, n := range nodes {
		buf := bytes.NewBuffer(nil)
		err := Encode(n, buf, EncodeFormat(format.OpenStepFormat))
		if !errors.Is(err, ErrFormat) {
			t.Fatalf("%s: err = %v, want ErrFormat", n.Kind, err)
		}
		if !errors.Is(err, ErrEncoding) {
			t.Fatalf("%s: ErrFormat does not wrap ErrEncoding", n.Kind)
		}
	}
}
