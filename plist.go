package plist

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/plistkit/go-plist/debug"
	"github.com/plistkit/go-plist/encode"
	"github.com/plistkit/go-plist/format"
	"github.com/plistkit/go-plist/parse"
)

// FromXML decodes an Apple XML property list document.
func FromXML(s string) (Value, error) {
	return fromBytes([]byte(s), format.XMLFormat)
}

// FromBinary decodes a bplist00 document.
func FromBinary(d []byte) (Value, error) {
	return fromBytes(d, format.BinaryFormat)
}

// FromOpenStep decodes NeXTSTEP-style ASCII text.
func FromOpenStep(s string) (Value, error) {
	return fromBytes([]byte(s), format.OpenStepFormat)
}

// FromJSON decodes a JSON document.
func FromJSON(s string) (Value, error) {
	return fromBytes([]byte(s), format.JSONFormat)
}

// FromMemory decodes a document of any supported format, detecting the
// format from the input bytes.
func FromMemory(d []byte) (Value, error) {
	n, err := parse.Parse(d)
	if err != nil {
		return Value{}, err
	}
	return newValue(n), nil
}

func fromBytes(d []byte, f format.Format) (Value, error) {
	n, err := parse.Parse(d, parse.WithFormat(f))
	if err != nil {
		return Value{}, err
	}
	return newValue(n), nil
}

// FromFile reads and decodes path, detecting the format from the file
// contents.
func FromFile(path string) (Value, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return Value{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return FromMemory(d)
}

// ToFile encodes v in the given format and writes it to path. The
// write goes to a temporary file in the same directory first and is
// renamed into place, so readers never see a partial document.
func ToFile(path string, v Value, f format.Format) error {
	if debug.Encode() {
		debug.Logf("encode: writing %v to %s:\n%v", f, path, v.node)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	encErr := encode.Encode(v.node, tmp, encode.EncodeFormat(f))
	closeErr := tmp.Close()
	if encErr != nil {
		return encErr
	}
	if closeErr != nil {
		return fmt.Errorf("writing %s: %w", path, closeErr)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
