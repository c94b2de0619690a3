package ir

import (
	"testing"
)

func TestHashAgreesWithEqual(t *testing.T) {
	a := FromKeyVals([]KeyVal{
		{"x", FromInt(1)},
		{"y", FromSlice([]*Node{FromString("a"), FromBool(true)})},
	})
	b := FromKeyVals([]KeyVal{
		{"y", FromSlice([]*Node{FromString("a"), FromBool(true)})},
		{"x", FromInt(1)},
	})
	if a.Hash() != b.Hash() {
		t.Fatal("equal dicts with reordered keys hash differently")
	}
	if a.Hash() != a.Clone().Hash() {
		t.Fatal("clone hashes differently")
	}
}

func TestHashDistinguishes(t *testing.T) {
	pairs := [][2]*Node{
		{FromInt(1), FromInt(2)},
		{FromString("a"), FromString("b")},
		{FromSlice([]*Node{FromInt(1), FromInt(2)}), FromSlice([]*Node{FromInt(2), FromInt(1)})},
		{FromBool(true), FromInt(1)},
	}
	for _, p := range pairs {
		if p[0].Hash() == p[1].Hash() {
			t.Errorf("%s and %s hash equal", p[0].Kind, p[1].Kind)
		}
	}
}
