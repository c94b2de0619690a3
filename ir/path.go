package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Path returns the path of this node's position in the tree, using dotted
// dictionary keys and bracketed array indices, e.g. "Animals.pets[0]".
// Keys containing separator characters are double-quoted.
func (node *Node) Path() string {
	if node.Parent == nil {
		return ""
	}
	switch node.Parent.Kind {
	case DictKind:
		f := node.ParentKey
		prefix := node.Parent.Path()
		quoted := f
		if pathQuoteKey(f) {
			quoted = strconv.Quote(f)
		}
		if prefix == "" {
			return quoted
		}
		return prefix + "." + quoted

	case ArrayKind:
		indexStr := strconv.Itoa(node.ParentIndex)
		prefix := node.Parent.Path()
		return prefix + "[" + indexStr + "]"

	default:
		panic("parent but not in container")
	}
}

func pathQuoteKey(key string) bool {
	if key == "" {
		return true
	}
	return strings.ContainsAny(key, ".[]\" \t\n")
}

// GetPath navigates the tree using the syntax produced by Path.
//
// Example:
//
//	node.GetPath(`Animals.pets[0]`)
//
// returns an error if the path does not resolve or is malformed.
func (y *Node) GetPath(path string) (*Node, error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	cur := y
	for _, seg := range segs {
		if seg.isIndex {
			if cur.Kind != ArrayKind {
				return nil, fmt.Errorf("%w: index into %s at %q", ErrPath, cur.Kind, path)
			}
			if seg.index < 0 || seg.index >= len(cur.Values) {
				return nil, fmt.Errorf("%w: index %d out of range at %q", ErrPath, seg.index, path)
			}
			cur = cur.Values[seg.index]
			continue
		}
		if cur.Kind != DictKind {
			return nil, fmt.Errorf("%w: key into %s at %q", ErrPath, cur.Kind, path)
		}
		next := Get(cur, seg.key)
		if next == nil {
			return nil, fmt.Errorf("%w: no key %q at %q", ErrPath, seg.key, path)
		}
		cur = next
	}
	return cur, nil
}

type pathSeg struct {
	key     string
	index   int
	isIndex bool
}

func splitPath(path string) ([]pathSeg, error) {
	var segs []pathSeg
	i := 0
	expectKey := true
	for i < len(path) {
		switch {
		case path[i] == '[':
			j := strings.IndexByte(path[i:], ']')
			if j < 0 {
				return nil, fmt.Errorf("%w: unterminated index in %q", ErrPath, path)
			}
			idx, err := strconv.Atoi(path[i+1 : i+j])
			if err != nil {
				return nil, fmt.Errorf("%w: bad index in %q", ErrPath, path)
			}
			segs = append(segs, pathSeg{index: idx, isIndex: true})
			i += j + 1
			expectKey = false
		case path[i] == '.':
			if expectKey {
				return nil, fmt.Errorf("%w: empty key in %q", ErrPath, path)
			}
			i++
			expectKey = true
		case path[i] == '"':
			rest := path[i:]
			q, err := unquotePrefix(rest)
			if err != nil {
				return nil, fmt.Errorf("%w: bad quoted key in %q", ErrPath, path)
			}
			segs = append(segs, pathSeg{key: q.val})
			i += q.n
			expectKey = false
		default:
			j := strings.IndexAny(path[i:], ".[")
			if j < 0 {
				j = len(path) - i
			}
			if j == 0 {
				return nil, fmt.Errorf("%w: empty key in %q", ErrPath, path)
			}
			segs = append(segs, pathSeg{key: path[i : i+j]})
			i += j
			expectKey = false
		}
	}
	if expectKey && len(path) > 0 {
		return nil, fmt.Errorf("%w: trailing separator in %q", ErrPath, path)
	}
	return segs, nil
}

type quoted struct {
	val string
	n   int
}

func unquotePrefix(s string) (quoted, error) {
	// s starts with '"'; find the matching unescaped close quote.
	for j := 1; j < len(s); j++ {
		if s[j] == '\\' {
			j++
			continue
		}
		if s[j] == '"' {
			val, err := strconv.Unquote(s[:j+1])
			if err != nil {
				return quoted{}, err
			}
			return quoted{val: val, n: j + 1}, nil
		}
	}
	return quoted{}, fmt.Errorf("unterminated quote")
}
