package plist

import "github.com/plistkit/go-plist/ir"

// Kind identifies what a Value holds.
type Kind = ir.Kind

const (
	NullKind   = ir.NullKind
	BoolKind   = ir.BoolKind
	IntKind    = ir.IntKind
	RealKind   = ir.RealKind
	DateKind   = ir.DateKind
	DataKind   = ir.DataKind
	StringKind = ir.StringKind
	UIDKind    = ir.UIDKind
	ArrayKind  = ir.ArrayKind
	DictKind   = ir.DictKind
)
