package plist

import (
	"fmt"
	"iter"

	"github.com/plistkit/go-plist/ir"
)

// Array is a view over an array node.
type Array struct {
	v Value
}

func NewArray() *Array {
	return &Array{v: newValue(&ir.Node{Kind: ir.ArrayKind, Values: []*ir.Node{}})}
}

func (a *Array) Len() int {
	return len(a.v.node.Values)
}

func (a *Array) IsEmpty() bool {
	return a.Len() == 0
}

// Get hands out a borrowed Item for index i.
func (a *Array) Get(i int) (Item, bool) {
	if i < 0 || i >= a.Len() {
		return Item{}, false
	}
	return newItem(a.v, a.v.node.Values[i]), true
}

// Append adds v at the end, invalidating outstanding Items.
func (a *Array) Append(v any) {
	a.v.node.Append(toNode(v))
	a.v.bump()
}

// Insert places v at index i, shifting later elements. i may equal
// Len to append.
func (a *Array) Insert(i int, v any) error {
	if i < 0 || i > a.Len() {
		return fmt.Errorf("%w: insert at %d of %d", ErrBounds, i, a.Len())
	}
	a.v.node.InsertAt(i, toNode(v))
	a.v.bump()
	return nil
}

// Set replaces the element at index i.
func (a *Array) Set(i int, v any) error {
	if i < 0 || i >= a.Len() {
		return fmt.Errorf("%w: index %d of %d", ErrBounds, i, a.Len())
	}
	a.v.node.ReplaceAt(i, toNode(v))
	a.v.bump()
	return nil
}

// Remove deletes the element at index i, returning it detached.
func (a *Array) Remove(i int) (Value, error) {
	if i < 0 || i >= a.Len() {
		return Value{}, fmt.Errorf("%w: index %d of %d", ErrBounds, i, a.Len())
	}
	n := a.v.node.RemoveAt(i)
	a.v.bump()
	return newValue(n), nil
}

// All iterates elements in index order. The tree must not be mutated
// during iteration.
func (a *Array) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i, n := range a.v.node.Values {
			if !yield(i, a.v.wrap(n)) {
				return
			}
		}
	}
}

func (a *Array) Value() Value {
	return a.v
}

func (a *Array) Clone() *Array {
	return &Array{v: a.v.Clone()}
}
