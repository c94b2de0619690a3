// Package encode serializes nodes to the property list wire formats.
//
// # Usage
//
//	// Encode to XML (the default)
//	node := ir.FromMap(map[string]*ir.Node{
//	    "name": ir.FromString("alice"),
//	    "age":  ir.FromInt(30),
//	})
//	var buf bytes.Buffer
//	err := encode.Encode(node, &buf)
//
//	// Encode to a specific format
//	err := encode.Encode(node, &buf, encode.EncodeFormat(format.BinaryFormat))
//
//	// Pretty JSON output
//	err := encode.Encode(node, &buf, encode.EncodeFormat(format.JSONFormat), encode.Pretty(true))
//
// Not every node kind fits every format. OpenStep text has no boolean,
// date, UID or null records, and JSON has no data, date or UID values;
// encoding such a node returns an error wrapping ErrFormat.
//
// # Related Packages
//
//   - github.com/plistkit/go-plist/ir - node representation
//   - github.com/plistkit/go-plist/parse - parse documents to nodes
package encode
