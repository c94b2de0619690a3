package plist

import (
	"fmt"
	"time"

	"github.com/plistkit/go-plist/ir"
)

// From builds a Value from a Go value. Supported argument types are
// nil, bool, the integer and float types, string, []byte, time.Time,
// Value, *Array, *Dictionary, []any and map[string]any. Anything else
// panics; construction is infallible by contract.
func From(v any) Value {
	return newValue(toNode(v))
}

// UID builds an NSKeyedArchiver uid value.
func UID(n uint64) Value {
	return newValue(ir.FromUID(n))
}

// KV is one Dict entry.
type KV struct {
	Key string
	Val any
}

// Dict builds a dictionary from literal entries:
//
//	d := plist.Dict(
//	    plist.KV{"name", "alice"},
//	    plist.KV{"age", 30},
//	)
//
// Later duplicate keys replace earlier ones in place.
func Dict(kvs ...KV) *Dictionary {
	d := NewDictionary()
	for _, kv := range kvs {
		d.v.node.SetKey(kv.Key, toNode(kv.Val))
	}
	return d
}

// List builds an array from literal elements:
//
//	a := plist.List(1, "two", 3.0)
func List(items ...any) *Array {
	a := NewArray()
	for _, it := range items {
		a.v.node.Append(toNode(it))
	}
	return a
}

func toNode(v any) *ir.Node {
	switch x := v.(type) {
	case nil:
		return ir.Null()
	case bool:
		return ir.FromBool(x)
	case int:
		return ir.FromInt(int64(x))
	case int8:
		return ir.FromInt(int64(x))
	case int16:
		return ir.FromInt(int64(x))
	case int32:
		return ir.FromInt(int64(x))
	case int64:
		return ir.FromInt(x)
	case uint:
		return ir.FromUint(uint64(x))
	case uint8:
		return ir.FromUint(uint64(x))
	case uint16:
		return ir.FromUint(uint64(x))
	case uint32:
		return ir.FromUint(uint64(x))
	case uint64:
		return ir.FromUint(x)
	case float32:
		return ir.FromFloat(float64(x))
	case float64:
		return ir.FromFloat(x)
	case string:
		return ir.FromString(x)
	case []byte:
		return ir.FromBytes(x)
	case time.Time:
		return ir.FromTime(x)
	case Value:
		if x.node == nil {
			return ir.Null()
		}
		return x.node.Clone().Detach()
	case *ir.Node:
		return x.Clone().Detach()
	case *Array:
		return x.v.node.Clone().Detach()
	case *Dictionary:
		return x.v.node.Clone().Detach()
	case []any:
		res := &ir.Node{Kind: ir.ArrayKind, Values: []*ir.Node{}}
		for _, it := range x {
			res.Append(toNode(it))
		}
		return res
	case map[string]any:
		m := make(map[string]*ir.Node, len(x))
		for k, it := range x {
			m[k] = toNode(it)
		}
		return ir.FromMap(m)
	default:
		panic(fmt.Sprintf("plist: cannot build a value from %T", v))
	}
}
