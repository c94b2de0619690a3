package ir

import (
	"encoding/binary"
	"hash/maphash"
	"math"
	"math/bits"
)

var hashSeed = maphash.MakeSeed()

// Hash returns a 64-bit hash of the node, consistent with Equal: equal
// nodes hash equal, including dictionaries that differ only in key order.
// It panics if n is nil.
func (n *Node) Hash() uint64 {
	if n == nil {
		panic("ir: Hash called on nil node")
	}

	var h maphash.Hash
	h.SetSeed(hashSeed)

	h.WriteByte(byte(n.Kind))

	switch n.Kind {
	case NullKind:
	case BoolKind:
		if n.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case IntKind:
		writeU64(&h, uint64(n.Int))
	case RealKind:
		writeU64(&h, math.Float64bits(n.Real))
	case DateKind:
		writeU64(&h, uint64(n.Time.UnixNano()))
	case DataKind:
		h.Write(n.Bytes)
	case StringKind, KeyKind:
		h.WriteString(n.String)
	case UIDKind:
		writeU64(&h, n.UID)
	case ArrayKind:
		for _, v := range n.Values {
			// Order-dependent combination: feed each child hash
			// into the hasher in sequence.
			writeU64(&h, v.Hash())
		}
	case DictKind:
		// Order-independent combination so that hashing agrees with
		// Equal for dictionaries with differing insertion order.
		var acc uint64
		for i, field := range n.Fields {
			pair := field.Hash() ^ bits.RotateLeft64(n.Values[i].Hash(), 1)
			acc += pair
		}
		writeU64(&h, acc)
	}
	return h.Sum64()
}

func writeU64(h *maphash.Hash, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	h.Write(b[:])
}
