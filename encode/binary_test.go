package encode_test

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"

	"github.com/plistkit/go-plist/format"
	. "github.com/plistkit/go-plist/encode"
	"github.com/plistkit/go-plist/ir"
	"github.com/plistkit/go-plist/parse"
)

func binRoundTrip(t *testing.T, node *ir.Node) []byte {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, EncodeFormat(format.BinaryFormat)); err != nil {
		t.Fatal(err)
	}
	back, err := parse.Parse(buf.Bytes(), parse.WithFormat(format.BinaryFormat))
	if err != nil {
		t.Fatalf("decoding own output: %v", err)
	}
	if !ir.Equal(node, back) {
		t.Fatalf("round trip changed the tree, got %s", MustString(back))
	}
	return buf.Bytes()
}

func TestBinaryRoundTrip(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: "null", Val: ir.Null()},
		{Key: "yes", Val: ir.FromBool(true)},
		{Key: "no", Val: ir.FromBool(false)},
		{Key: "small", Val: ir.FromInt(7)},
		{Key: "medium", Val: ir.FromInt(300)},
		{Key: "wide", Val: ir.FromInt(70000)},
		{Key: "neg", Val: ir.FromInt(-1)},
		{Key: "huge", Val: ir.FromUint(18446744073709551614)},
		{Key: "real", Val: ir.FromFloat(3.25)},
		{Key: "date", Val: ir.FromTime(time.Date(2021, 6, 1, 12, 30, 15, 0, time.UTC))},
		{Key: "ascii", Val: ir.FromString("plain")},
		{Key: "wide string", Val: ir.FromString("dvořák")},
		{Key: "blob", Val: ir.FromBytes(bytes.Repeat([]byte{0xAB}, 20))},
		{Key: "uid", Val: ir.FromUID(300)},
		{Key: "list", Val: ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromString("two")})},
	})
	d := binRoundTrip(t, node)
	if !bytes.HasPrefix(d, []byte("bplist00")) {
		t.Fatalf("missing magic: % x", d[:8])
	}
}

func TestBinaryDedup(t *testing.T) {
	node := ir.FromSlice([]*ir.Node{
		ir.FromString("same"),
		ir.FromString("same"),
		ir.FromString("same"),
	})
	d := binRoundTrip(t, node)
	numObjects := binary.BigEndian.Uint64(d[len(d)-24 : len(d)-16])
	// one array object plus a single shared string
	if numObjects != 2 {
		t.Fatalf("numObjects = %d, want 2", numObjects)
	}
}

func TestBinarySharedSubtree(t *testing.T) {
	leaf := ir.FromKeyVals([]ir.KeyVal{{Key: "k", Val: ir.FromInt(1)}})
	node := ir.FromSlice([]*ir.Node{leaf, leaf.Clone().Detach()})
	d := binRoundTrip(t, node)
	numObjects := binary.BigEndian.Uint64(d[len(d)-24 : len(d)-16])
	// array, one dict, one key string, one int
	if numObjects != 4 {
		t.Fatalf("numObjects = %d, want 4", numObjects)
	}
}

func TestBinaryLongCounts(t *testing.T) {
	vals := make([]*ir.Node, 20)
	for i := range vals {
		vals[i] = ir.FromInt(int64(i))
	}
	binRoundTrip(t, ir.FromSlice(vals))
}

func TestBinaryDateSubsecond(t *testing.T) {
	// quarter seconds survive the float64 wire representation exactly
	node := ir.FromTime(time.Date(2021, 6, 1, 12, 30, 15, 250_000_000, time.UTC))
	binRoundTrip(t, node)
}
