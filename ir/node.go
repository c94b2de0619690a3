package ir

import (
	"maps"
	"math"
	"slices"
	"time"
)

// Node is a single value in a plist tree. Exactly one kind is active at a
// time; the payload fields other than the active one are zero.
//
// Dictionaries keep keys as KeyKind nodes in Fields and the corresponding
// values at the same index in Values. Arrays use Values only.
type Node struct {
	Kind        Kind
	Parent      *Node
	ParentIndex int
	ParentKey   string
	Fields      []*Node
	Values      []*Node

	String   string
	Bool     bool
	Int      int64
	Unsigned bool
	Real     float64
	Bytes    []byte
	Time     time.Time
	UID      uint64
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

// CloneTo deep-copies y into dst and returns dst. The copy keeps y's
// parent linkage so that CloneTo can be used for in-place replacement;
// use Detach on the result for an independently owned tree.
func (y *Node) CloneTo(dst *Node) *Node {
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.ParentKey = y.ParentKey
	dst.Kind = y.Kind
	dst.String = y.String
	dst.Bool = y.Bool
	dst.Int = y.Int
	dst.Unsigned = y.Unsigned
	dst.Real = y.Real
	dst.Time = y.Time
	dst.UID = y.UID
	if y.Bytes != nil {
		dst.Bytes = make([]byte, len(y.Bytes))
		copy(dst.Bytes, y.Bytes)
	} else {
		dst.Bytes = nil
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, yv := range y.Values {
			dstI := &Node{}
			yv.CloneTo(dstI)
			dstI.Parent = dst
			dstI.ParentIndex = i
			dstI.ParentKey = yv.ParentKey
			dst.Values[i] = dstI
		}
	} else {
		dst.Values = nil
	}
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
		for i, yf := range y.Fields {
			dstI := &Node{}
			yf.CloneTo(dstI)
			dstI.Parent = dst
			dstI.ParentIndex = i
			dstI.ParentKey = yf.String
			dst.Fields[i] = dstI
		}
	} else {
		dst.Fields = nil
	}
	return dst
}

// Detach removes y's parent linkage, making it the root of its own tree.
func (y *Node) Detach() *Node {
	y.Parent = nil
	y.ParentIndex = 0
	y.ParentKey = ""
	return y
}

func Null() *Node {
	return &Node{Kind: NullKind}
}

func FromBool(v bool) *Node {
	return &Node{Kind: BoolKind, Bool: v}
}

func FromInt(v int64) *Node {
	return &Node{Kind: IntKind, Int: v}
}

// FromUint stores v in a Node's Int bits, flagging values above
// math.MaxInt64 so accessors and codecs keep the unsigned reading.
func FromUint(v uint64) *Node {
	return &Node{Kind: IntKind, Int: int64(v), Unsigned: v > math.MaxInt64}
}

// Uint returns the integer payload read as a uint64.
func (y *Node) Uint() uint64 {
	return uint64(y.Int)
}

func FromFloat(v float64) *Node {
	return &Node{Kind: RealKind, Real: v}
}

func FromString(v string) *Node {
	return FromStringAt(&Node{}, v)
}

func FromStringAt(p *Node, v string) *Node {
	p.Kind = StringKind
	p.String = v
	return p
}

func FromBytes(v []byte) *Node {
	b := make([]byte, len(v))
	copy(b, v)
	return &Node{Kind: DataKind, Bytes: b}
}

func FromTime(v time.Time) *Node {
	return &Node{Kind: DateKind, Time: v}
}

func FromUID(v uint64) *Node {
	return &Node{Kind: UIDKind, UID: v}
}

func newKey(key string) *Node {
	return &Node{Kind: KeyKind, String: key}
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Kind: ArrayKind,
	}
	res.Values = make([]*Node, len(ySlice))
	for i, y := range ySlice {
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{}
	return FromKeyValsAt(res, kvs)
}

func FromKeyValsAt(res *Node, kvs []KeyVal) *Node {
	res.Kind = DictKind
	res.Fields = make([]*Node, 0, len(kvs))
	res.Values = make([]*Node, 0, len(kvs))
	for i := range kvs {
		kv := &kvs[i]
		res.SetKey(kv.Key, kv.Val)
	}
	return res
}

func FromMap(yMap map[string]*Node) *Node {
	res := &Node{}
	res.Kind = DictKind
	keys := slices.Sorted(maps.Keys(yMap))
	res.Fields = make([]*Node, 0, len(keys))
	res.Values = make([]*Node, 0, len(keys))
	for _, key := range keys {
		res.SetKey(key, yMap[key])
	}
	return res
}

func ToMap(node *Node) map[string]*Node {
	if node.Kind != DictKind {
		return nil
	}
	res := make(map[string]*Node, len(node.Fields))
	for i := range node.Fields {
		res[node.Fields[i].String] = node.Values[i]
	}
	return res
}

// Get returns the value for key in a dictionary node, or nil.
func Get(y *Node, key string) *Node {
	n := len(y.Fields)
	for i := range n {
		if y.Fields[i].String == key {
			return y.Values[i]
		}
	}
	return nil
}

// IndexOfKey returns the field index of key, or -1.
func (y *Node) IndexOfKey(key string) int {
	for i := range y.Fields {
		if y.Fields[i].String == key {
			return i
		}
	}
	return -1
}

// SetKey inserts or replaces key in a dictionary node. A replaced value
// keeps the key's position; a new key is appended. The previous value, if
// any, is returned detached.
func (y *Node) SetKey(key string, val *Node) *Node {
	if i := y.IndexOfKey(key); i >= 0 {
		prev := y.Values[i]
		val.Parent = y
		val.ParentIndex = i
		val.ParentKey = key
		y.Values[i] = val
		return prev.Detach()
	}
	i := len(y.Fields)
	k := newKey(key)
	k.Parent = y
	k.ParentIndex = i
	k.ParentKey = key
	val.Parent = y
	val.ParentIndex = i
	val.ParentKey = key
	y.Fields = append(y.Fields, k)
	y.Values = append(y.Values, val)
	return nil
}

// DeleteKey removes key from a dictionary node and returns its value
// detached, or nil if the key is absent.
func (y *Node) DeleteKey(key string) *Node {
	i := y.IndexOfKey(key)
	if i < 0 {
		return nil
	}
	prev := y.Values[i]
	y.Fields = slices.Delete(y.Fields, i, i+1)
	y.Values = slices.Delete(y.Values, i, i+1)
	y.reindex(i)
	return prev.Detach()
}

// Append adds val at the end of an array node.
func (y *Node) Append(val *Node) {
	val.Parent = y
	val.ParentIndex = len(y.Values)
	y.Values = append(y.Values, val)
}

// InsertAt places val at index i in an array node, shifting later
// elements right. The caller checks 0 <= i <= len(Values).
func (y *Node) InsertAt(i int, val *Node) {
	val.Parent = y
	y.Values = slices.Insert(y.Values, i, val)
	y.reindex(i)
}

// RemoveAt removes and returns the element at index i of an array node,
// detached, shifting later elements left. The caller checks bounds.
func (y *Node) RemoveAt(i int) *Node {
	prev := y.Values[i]
	y.Values = slices.Delete(y.Values, i, i+1)
	y.reindex(i)
	return prev.Detach()
}

// ReplaceAt swaps the element at index i of an array node for val and
// returns the previous element detached. The caller checks bounds.
func (y *Node) ReplaceAt(i int, val *Node) *Node {
	prev := y.Values[i]
	val.Parent = y
	val.ParentIndex = i
	y.Values[i] = val
	return prev.Detach()
}

func (y *Node) reindex(from int) {
	for i := from; i < len(y.Values); i++ {
		y.Values[i].ParentIndex = i
	}
	for i := from; i < len(y.Fields) && i < len(y.Values); i++ {
		y.Fields[i].ParentIndex = i
		key := y.Fields[i].String
		y.Fields[i].ParentKey = key
		y.Values[i].ParentKey = key
	}
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}
