package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse  bool
	Encode bool
	Raw    bool
	Clean  bool
}

var d *debug

func init() {
	d = &debug{Clean: true}
	d.Parse = boolEnv("PLIST_DEBUG_PARSE")
	d.Encode = boolEnv("PLIST_DEBUG_ENCODE")
	d.Raw = boolEnv("PLIST_DEBUG_RAW")
	if d.Raw {
		d.Clean = false
	}
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Encode() bool {
	return d.Encode
}
func Raw() bool {
	return d.Raw
}

// Clean reports whether String renditions trim envelope noise. It is
// true unless PLIST_DEBUG_RAW is set or SetClean(false) was called.
func Clean() bool {
	return d.Clean
}

func SetClean(v bool) {
	d.Clean = v
	d.Raw = !v
}
