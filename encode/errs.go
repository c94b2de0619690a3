package encode

import (
	"errors"
	"fmt"
)

var (
	// ErrEncoding covers failures while writing a document.
	ErrEncoding = errors.New("encoding error")

	// ErrFormat indicates a node kind the target format cannot carry.
	ErrFormat = fmt.Errorf("%w: kind not representable", ErrEncoding)
)
