package ir

import "fmt"

// Kind identifies the active variant of a Node.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	IntKind
	RealKind
	DateKind
	DataKind
	StringKind
	UIDKind
	KeyKind
	ArrayKind
	DictKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		NullKind:   "Null",
		BoolKind:   "Bool",
		IntKind:    "Int",
		RealKind:   "Real",
		DateKind:   "Date",
		DataKind:   "Data",
		StringKind: "String",
		UIDKind:    "UID",
		KeyKind:    "Key",
		ArrayKind:  "Array",
		DictKind:   "Dict",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, ok := map[string]Kind{
		"Null":   NullKind,
		"Bool":   BoolKind,
		"Int":    IntKind,
		"Real":   RealKind,
		"Date":   DateKind,
		"Data":   DataKind,
		"String": StringKind,
		"UID":    UIDKind,
		"Key":    KeyKind,
		"Array":  ArrayKind,
		"Dict":   DictKind,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized kind %q", d)
	}
	*k = kk
	return nil
}

func Kinds() []Kind {
	return []Kind{
		NullKind,
		BoolKind,
		IntKind,
		RealKind,
		DateKind,
		DataKind,
		StringKind,
		UIDKind,
		KeyKind,
		ArrayKind,
		DictKind,
	}
}

func (k Kind) IsLeaf() bool {
	switch k {
	case ArrayKind, DictKind:
		return false
	default:
		return true
	}
}
