package parse

import (
	"fmt"
	"strconv"

	"github.com/segmentio/encoding/json"

	"github.com/plistkit/go-plist/ir"
)

// parseJSON reads a JSON document into the plist data model. Object key
// order is preserved, and numbers become integers when they have no
// fractional part.
func parseJSON(d []byte) (*ir.Node, error) {
	tok := json.NewTokenizer(d)
	n, err := jsonValue(tok)
	if err != nil {
		return nil, err
	}
	if tok.Next() {
		return nil, fmt.Errorf("%w: trailing content after JSON value", ErrParse)
	}
	if tok.Err != nil {
		return nil, jsonErr(tok.Err)
	}
	return n, nil
}

func jsonValue(tok *json.Tokenizer) (*ir.Node, error) {
	if !tok.Next() {
		return nil, jsonStop(tok)
	}
	return jsonFromToken(tok)
}

// jsonFromToken converts the token the tokenizer is positioned on,
// recursing into containers.
func jsonFromToken(tok *json.Tokenizer) (*ir.Node, error) {
	switch tok.Delim {
	case '{':
		return jsonObject(tok)
	case '[':
		return jsonArray(tok)
	case 0:
	default:
		return nil, fmt.Errorf("%w: unexpected %q in JSON value", ErrParse, rune(tok.Delim))
	}
	switch tok.Kind().Class() {
	case json.Null:
		return ir.Null(), nil
	case json.Bool:
		return ir.FromBool(tok.Bool()), nil
	case json.String:
		return ir.FromString(string(tok.String())), nil
	case json.Num:
		return jsonNumber(string(tok.Value))
	}
	return nil, fmt.Errorf("%w: unexpected JSON token %q", ErrParse, tok.Value)
}

func jsonObject(tok *json.Tokenizer) (*ir.Node, error) {
	res := &ir.Node{Kind: ir.DictKind}
	for n := 0; ; n++ {
		if !tok.Next() {
			return nil, jsonStop(tok)
		}
		if tok.Delim == '}' {
			return res, nil
		}
		if n > 0 {
			if tok.Delim != ',' {
				return nil, fmt.Errorf("%w: missing comma in JSON object", ErrParse)
			}
			if !tok.Next() {
				return nil, jsonStop(tok)
			}
		}
		if tok.Delim != 0 || !tok.Value.String() {
			return nil, fmt.Errorf("%w: object key must be a string", ErrParse)
		}
		key := string(tok.String())
		if !tok.Next() {
			return nil, jsonStop(tok)
		}
		if tok.Delim != ':' {
			return nil, fmt.Errorf("%w: missing ':' after object key %q", ErrParse, key)
		}
		val, err := jsonValue(tok)
		if err != nil {
			return nil, err
		}
		res.SetKey(key, val)
	}
}

func jsonArray(tok *json.Tokenizer) (*ir.Node, error) {
	res := &ir.Node{Kind: ir.ArrayKind, Values: []*ir.Node{}}
	for n := 0; ; n++ {
		if !tok.Next() {
			return nil, jsonStop(tok)
		}
		if tok.Delim == ']' {
			return res, nil
		}
		if n > 0 {
			if tok.Delim != ',' {
				return nil, fmt.Errorf("%w: missing comma in JSON array", ErrParse)
			}
			if !tok.Next() {
				return nil, jsonStop(tok)
			}
		}
		v, err := jsonFromToken(tok)
		if err != nil {
			return nil, err
		}
		res.Append(v)
	}
}

func jsonNumber(s string) (*ir.Node, error) {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ir.FromInt(v), nil
	}
	if v, err := strconv.ParseUint(s, 10, 64); err == nil {
		return ir.FromUint(v), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: number %q", ErrParse, s)
	}
	return ir.FromFloat(v), nil
}

// jsonStop maps a tokenizer halt to an error: a clean halt means the
// input ran out mid-value, anything else is a syntax error.
func jsonStop(tok *json.Tokenizer) error {
	if tok.Err != nil {
		return jsonErr(tok.Err)
	}
	return ErrTruncated
}

func jsonErr(err error) error {
	return fmt.Errorf("%w: %v", ErrParse, err)
}
