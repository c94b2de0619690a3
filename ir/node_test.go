package ir

import (
	"math"
	"testing"
)

func TestSetKeyPreservesPosition(t *testing.T) {
	d := FromKeyVals([]KeyVal{
		{"a", FromInt(1)},
		{"b", FromInt(2)},
		{"c", FromInt(3)},
	})
	prev := d.SetKey("b", FromString("two"))
	if prev == nil || prev.Int != 2 {
		t.Fatalf("expected previous value 2, got %v", prev)
	}
	if prev.Parent != nil {
		t.Fatal("previous value not detached")
	}
	wantKeys := []string{"a", "b", "c"}
	for i, k := range wantKeys {
		if d.Fields[i].String != k {
			t.Fatalf("key %d = %q, want %q", i, d.Fields[i].String, k)
		}
	}
	if got := Get(d, "b"); got.Kind != StringKind || got.String != "two" {
		t.Fatalf("b = %v, want string two", got)
	}
}

func TestSetKeyNewAppends(t *testing.T) {
	d := FromKeyVals([]KeyVal{{"a", FromInt(1)}})
	if prev := d.SetKey("z", FromInt(26)); prev != nil {
		t.Fatalf("expected nil previous, got %v", prev)
	}
	if len(d.Fields) != 2 || d.Fields[1].String != "z" {
		t.Fatalf("z not appended: %v", d.Fields)
	}
	v := Get(d, "z")
	if v.Parent != d || v.ParentKey != "z" || v.ParentIndex != 1 {
		t.Fatal("parent linkage not set on insert")
	}
}

func TestDeleteKey(t *testing.T) {
	d := FromKeyVals([]KeyVal{
		{"a", FromInt(1)},
		{"b", FromInt(2)},
		{"c", FromInt(3)},
	})
	prev := d.DeleteKey("b")
	if prev == nil || prev.Int != 2 || prev.Parent != nil {
		t.Fatalf("bad deleted value %v", prev)
	}
	if d.DeleteKey("missing") != nil {
		t.Fatal("deleting a missing key returned a value")
	}
	if len(d.Fields) != 2 || d.Fields[1].String != "c" {
		t.Fatalf("unexpected fields after delete: %v", d.Fields)
	}
	if got := Get(d, "c"); got.ParentIndex != 1 {
		t.Fatalf("c not reindexed, ParentIndex=%d", got.ParentIndex)
	}
}

func TestArrayOps(t *testing.T) {
	a := FromSlice([]*Node{FromInt(0), FromInt(2)})
	a.InsertAt(1, FromInt(1))
	for i, v := range a.Values {
		if v.Int != int64(i) {
			t.Fatalf("Values[%d] = %d", i, v.Int)
		}
		if v.Parent != a || v.ParentIndex != i {
			t.Fatalf("Values[%d] linkage parent=%v index=%d", i, v.Parent, v.ParentIndex)
		}
	}

	prev := a.ReplaceAt(1, FromString("one"))
	if prev.Int != 1 || prev.Parent != nil {
		t.Fatalf("bad replaced value %v", prev)
	}

	removed := a.RemoveAt(0)
	if removed.Int != 0 || removed.Parent != nil {
		t.Fatalf("bad removed value %v", removed)
	}
	if len(a.Values) != 2 || a.Values[0].String != "one" || a.Values[0].ParentIndex != 0 {
		t.Fatalf("unexpected values after remove: %v", a.Values)
	}

	a.Append(FromInt(9))
	last := a.Values[len(a.Values)-1]
	if last.ParentIndex != 2 || last.Parent != a {
		t.Fatal("append linkage wrong")
	}
}

func TestCloneIndependence(t *testing.T) {
	orig := FromKeyVals([]KeyVal{
		{"data", FromBytes([]byte{1, 2, 3})},
		{"list", FromSlice([]*Node{FromInt(1)})},
	})
	c := orig.Clone().Detach()

	c.SetKey("extra", FromBool(true))
	Get(c, "data").Bytes[0] = 9
	Get(c, "list").Append(FromInt(2))

	if len(orig.Fields) != 2 {
		t.Fatal("clone mutation leaked into original fields")
	}
	if Get(orig, "data").Bytes[0] != 1 {
		t.Fatal("clone shares byte payload with original")
	}
	if len(Get(orig, "list").Values) != 1 {
		t.Fatal("clone shares array with original")
	}
	if Get(c, "list").Values[0].Root() != c {
		t.Fatal("clone children do not root at the clone")
	}
}

func TestFromUint(t *testing.T) {
	small := FromUint(42)
	if small.Unsigned {
		t.Fatal("42 flagged unsigned")
	}
	big := FromUint(math.MaxUint64)
	if !big.Unsigned {
		t.Fatal("MaxUint64 not flagged unsigned")
	}
	if big.Uint() != math.MaxUint64 {
		t.Fatalf("Uint() = %d", big.Uint())
	}
}

func TestFromMapSortsKeys(t *testing.T) {
	d := FromMap(map[string]*Node{
		"zebra": FromInt(1),
		"apple": FromInt(2),
		"mango": FromInt(3),
	})
	want := []string{"apple", "mango", "zebra"}
	for i, k := range want {
		if d.Fields[i].String != k {
			t.Fatalf("key %d = %q, want %q", i, d.Fields[i].String, k)
		}
	}
	m := ToMap(d)
	if len(m) != 3 || m["zebra"].Int != 1 {
		t.Fatalf("ToMap = %v", m)
	}
}

func TestVisitOrder(t *testing.T) {
	tree := FromSlice([]*Node{
		FromInt(1),
		FromSlice([]*Node{FromInt(2)}),
	})
	var pre, post int
	err := tree.Visit(func(y *Node, isPost bool) (bool, error) {
		if isPost {
			post++
		} else {
			pre++
		}
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if pre != 4 || post != 4 {
		t.Fatalf("pre=%d post=%d, want 4/4", pre, post)
	}
}
