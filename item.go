package plist

import (
	"fmt"
	"time"

	"github.com/plistkit/go-plist/ir"
)

// Item is a borrowed handle to an element inside a container. It
// captures the tree revision at hand-out; any structural mutation of
// the tree afterwards makes every access fail with ErrStale.
type Item struct {
	node *ir.Node
	rev  *uint64
	seen uint64
}

func newItem(v Value, n *ir.Node) Item {
	return Item{node: n, rev: v.rev, seen: *v.rev}
}

func (it Item) valid() error {
	if *it.rev != it.seen {
		return fmt.Errorf("%w: container changed since lookup", ErrStale)
	}
	return nil
}

// Value copies the element out as a detached Value, safe to keep
// across later mutations.
func (it Item) Value() (Value, error) {
	if err := it.valid(); err != nil {
		return Value{}, err
	}
	return newValue(it.node.Clone().Detach()), nil
}

func (it Item) Kind() (Kind, error) {
	if err := it.valid(); err != nil {
		return NullKind, err
	}
	return it.node.Kind, nil
}

func (it Item) AsBool() (bool, error) {
	if err := it.valid(); err != nil {
		return false, err
	}
	return Value{node: it.node, rev: it.rev}.AsBool()
}

func (it Item) AsInt() (int64, error) {
	if err := it.valid(); err != nil {
		return 0, err
	}
	return Value{node: it.node, rev: it.rev}.AsInt()
}

func (it Item) AsUint() (uint64, error) {
	if err := it.valid(); err != nil {
		return 0, err
	}
	return Value{node: it.node, rev: it.rev}.AsUint()
}

func (it Item) AsReal() (float64, error) {
	if err := it.valid(); err != nil {
		return 0, err
	}
	return Value{node: it.node, rev: it.rev}.AsReal()
}

func (it Item) AsString() (string, error) {
	if err := it.valid(); err != nil {
		return "", err
	}
	return Value{node: it.node, rev: it.rev}.AsString()
}

func (it Item) AsData() ([]byte, error) {
	if err := it.valid(); err != nil {
		return nil, err
	}
	return Value{node: it.node, rev: it.rev}.AsData()
}

func (it Item) AsDate() (time.Time, error) {
	if err := it.valid(); err != nil {
		return time.Time{}, err
	}
	return Value{node: it.node, rev: it.rev}.AsDate()
}

func (it Item) AsUID() (uint64, error) {
	if err := it.valid(); err != nil {
		return 0, err
	}
	return Value{node: it.node, rev: it.rev}.AsUID()
}

func (it Item) AsArray() (*Array, error) {
	if err := it.valid(); err != nil {
		return nil, err
	}
	return Value{node: it.node, rev: it.rev}.AsArray()
}

func (it Item) AsDict() (*Dictionary, error) {
	if err := it.valid(); err != nil {
		return nil, err
	}
	return Value{node: it.node, rev: it.rev}.AsDict()
}
