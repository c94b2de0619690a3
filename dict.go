package plist

import (
	"iter"

	"github.com/plistkit/go-plist/ir"
)

// Dictionary is a view over a dict node. Keys are unique and iterate
// in insertion order.
type Dictionary struct {
	v Value
}

func NewDictionary() *Dictionary {
	return &Dictionary{v: newValue(&ir.Node{Kind: ir.DictKind})}
}

func (d *Dictionary) Len() int {
	return len(d.v.node.Fields)
}

func (d *Dictionary) IsEmpty() bool {
	return d.Len() == 0
}

func (d *Dictionary) ContainsKey(key string) bool {
	return d.v.node.IndexOfKey(key) >= 0
}

// Get hands out a borrowed Item for key.
func (d *Dictionary) Get(key string) (Item, bool) {
	n := ir.Get(d.v.node, key)
	if n == nil {
		return Item{}, false
	}
	return newItem(d.v, n), true
}

// Insert stores v under key. When the key already exists its entry
// keeps its position and the previous value is returned detached.
func (d *Dictionary) Insert(key string, v any) (Value, bool) {
	prev := d.v.node.SetKey(key, toNode(v))
	d.v.bump()
	if prev == nil {
		return Value{}, false
	}
	return newValue(prev), true
}

// Remove deletes key, returning the detached value when it existed.
func (d *Dictionary) Remove(key string) (Value, bool) {
	prev := d.v.node.DeleteKey(key)
	if prev == nil {
		return Value{}, false
	}
	d.v.bump()
	return newValue(prev), true
}

// Merge copies every entry of from into d, overwriting on key
// collision. from is not modified.
func (d *Dictionary) Merge(from *Dictionary) {
	for i, f := range from.v.node.Fields {
		d.v.node.SetKey(f.String, from.v.node.Values[i].Clone())
	}
	if from.Len() > 0 {
		d.v.bump()
	}
}

func (d *Dictionary) Keys() []string {
	keys := make([]string, 0, d.Len())
	for _, f := range d.v.node.Fields {
		keys = append(keys, f.String)
	}
	return keys
}

// All iterates entries in insertion order. The tree must not be
// mutated during iteration.
func (d *Dictionary) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for i, f := range d.v.node.Fields {
			if !yield(f.String, d.v.wrap(d.v.node.Values[i])) {
				return
			}
		}
	}
}

func (d *Dictionary) Value() Value {
	return d.v
}

func (d *Dictionary) Clone() *Dictionary {
	return &Dictionary{v: d.v.Clone()}
}
