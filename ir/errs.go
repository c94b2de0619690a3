package ir

import (
	"errors"
)

var (
	// ErrPath is the cause of all GetPath failures.
	ErrPath = errors.New("bad path")
)
