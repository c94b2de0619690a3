package ir

import (
	"bytes"
	"cmp"
	"strings"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
//
// Nodes of different kinds order by kind rank; dictionaries compare by
// their insertion-ordered key/value sequences, so Compare(a, b) == 0 is
// stricter than Equal for dictionaries with differing key order.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	rankA := rank(a.Kind)
	rankB := rank(b.Kind)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch a.Kind {
	case NullKind:
		return 0
	case BoolKind:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case IntKind:
		return compareInts(a, b)
	case RealKind:
		return cmp.Compare(a.Real, b.Real)
	case DateKind:
		return a.Time.Compare(b.Time)
	case DataKind:
		return bytes.Compare(a.Bytes, b.Bytes)
	case StringKind, KeyKind:
		return strings.Compare(a.String, b.String)
	case UIDKind:
		return cmp.Compare(a.UID, b.UID)
	case ArrayKind:
		return compareArrays(a, b)
	case DictKind:
		return compareDicts(a, b)
	}
	return 0
}

// rank returns the sorting rank of a kind.
// Order: Null < Bool < Int < Real < Date < Data < String < UID < Key < Array < Dict
func rank(k Kind) int {
	switch k {
	case NullKind:
		return 0
	case BoolKind:
		return 1
	case IntKind:
		return 2
	case RealKind:
		return 3
	case DateKind:
		return 4
	case DataKind:
		return 5
	case StringKind:
		return 6
	case UIDKind:
		return 7
	case KeyKind:
		return 8
	case ArrayKind:
		return 9
	case DictKind:
		return 10
	}
	return 100
}

func compareInts(a, b *Node) int {
	if a.Unsigned || b.Unsigned {
		// Either side is above MaxInt64; anything not flagged and
		// negative sorts below.
		if a.Unsigned != b.Unsigned {
			if a.Unsigned {
				if b.Int < 0 {
					return 1
				}
				return cmpUint(a, b)
			}
			if a.Int < 0 {
				return -1
			}
			return cmpUint(a, b)
		}
		return cmpUint(a, b)
	}
	return cmp.Compare(a.Int, b.Int)
}

func cmpUint(a, b *Node) int {
	return cmp.Compare(a.Uint(), b.Uint())
}

func compareArrays(a, b *Node) int {
	lenA := len(a.Values)
	lenB := len(b.Values)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

func compareDicts(a, b *Node) int {
	lenA := len(a.Fields)
	lenB := len(b.Fields)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Fields[i], b.Fields[i]); c != 0 {
			return c
		}
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

// Equal reports whether two nodes represent the same plist value.
// Arrays are equal when they have equal elements in the same order.
// Dictionaries are equal when they have the same key set with equal
// values, independent of insertion order. Integers compare by their raw
// 64-bit payload so that -1 and the equivalent uint64 reading coincide,
// matching the wire format.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case NullKind:
		return true
	case BoolKind:
		return a.Bool == b.Bool
	case IntKind:
		return a.Int == b.Int
	case RealKind:
		return a.Real == b.Real
	case DateKind:
		return a.Time.Equal(b.Time)
	case DataKind:
		return bytes.Equal(a.Bytes, b.Bytes)
	case StringKind, KeyKind:
		return a.String == b.String
	case UIDKind:
		return a.UID == b.UID
	case ArrayKind:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case DictKind:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i, f := range a.Fields {
			other := Get(b, f.String)
			if other == nil {
				return false
			}
			if !Equal(a.Values[i], other) {
				return false
			}
		}
		return true
	}
	return false
}
