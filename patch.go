package plist

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
)

// PatchJSON applies an RFC 6902 JSON patch to doc through the JSON
// bridge and returns the patched value. doc must be representable as
// JSON, so data, date and UID values inside it are rejected with an
// error wrapping ErrFormat.
func PatchJSON(doc Value, patch []byte) (Value, error) {
	p, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return Value{}, fmt.Errorf("decoding patch: %w", err)
	}
	raw, err := doc.JSON(false)
	if err != nil {
		return Value{}, err
	}
	patched, err := p.Apply([]byte(raw))
	if err != nil {
		return Value{}, fmt.Errorf("applying patch: %w", err)
	}
	return FromJSON(string(patched))
}
