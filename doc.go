// Package plist implements the Apple property list data model with
// XML, binary (bplist00), OpenStep and JSON codecs.
//
// # Overview
//
// A document is a tree of Values: booleans, integers, reals, strings,
// data, dates, UIDs, arrays and dictionaries. Values are built with
// the construction helpers or decoded from any of the wire formats:
//
//	v, err := plist.FromMemory(data) // auto-detects the format
//	v, err = plist.FromXML(xmlText)
//
//	d := plist.Dict(
//	    plist.KV{"name", "alice"},
//	    plist.KV{"age", 30},
//	)
//	out, err := d.Value().XML()
//
// # Containers and Items
//
// Array and Dictionary lookups hand out Items, borrowed handles into
// the tree. An Item stays valid until the next structural mutation of
// its tree; after that every access fails with an error wrapping
// ErrStale. Read the value out with Item.Value before mutating.
//
// # Thread Safety
//
// Values and their trees are not safe for concurrent mutation. Clone
// a Value to hand it to another goroutine.
package plist
