// Package ir provides the intermediate representation (IR) for property
// list documents.
//
// # Overview
//
// The IR package defines the core data structure for representing plist
// documents as a tree of nodes. All plist documents (whether parsed from
// XML, binary, OpenStep or JSON input, or created programmatically) are
// represented as ir.Node trees.
//
// # Node Structure
//
// A Node represents a single value in a plist document. Nodes can be:
//
//   - Atomic kinds: null, boolean, integer, real, string, data, date, uid
//   - Composite kinds: dictionary (key-value pairs), array (ordered list)
//
// Each node maintains parent-child relationships, allowing navigation
// through the tree structure.
//
// The IR works as a recursive tagged union structure, where values are
// placed in fields depending on the node kind.
//
// # IR Structure Constraints
//
// For DictKind nodes, Fields[i] is the key for the value at Values[i], so
// there are always as many fields as values. Fields are always KeyKind
// nodes carrying the key text, in insertion order, and no key text occurs
// twice. Replacing a key's value keeps its position.
//
// Integer values are stored in the Int field. When the Unsigned flag is
// set, the Int bits are to be read as a uint64; this covers the range
// above math.MaxInt64 that the binary format can carry.
//
// # Creating Nodes
//
// Use constructor functions to create nodes:
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	arr := ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})
//	obj := ir.FromKeyVals([]ir.KeyVal{{Key: "key", Val: ir.FromString("v")}})
//
// # Thread Safety
//
// Node structures are not thread-safe. If you need to access nodes from
// multiple goroutines, you must synchronize access yourself or clone nodes
// for each goroutine.
//
// # Related Packages
//
//   - github.com/plistkit/go-plist/parse - parses bytes into IR nodes
//   - github.com/plistkit/go-plist/encode - encodes IR nodes to bytes
package ir
