package parse

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/plistkit/go-plist/ir"
)

// parseOpenStep reads a NeXTSTEP-style ASCII property list. Containers
// are {key = value; ...} and (a, b, ...), data is <hex bytes>, strings
// are quoted or bare words. Unquoted tokens that look numeric become
// integers or reals, matching how step plists are read back by Apple
// tooling.
func parseOpenStep(d []byte) (*ir.Node, error) {
	s := &stepScanner{d: d, line: 1, col: 1}
	s.skipSpace()
	if s.eof() {
		return nil, ErrTruncated
	}
	n, err := s.value()
	if err != nil {
		return nil, err
	}
	s.skipSpace()
	if !s.eof() {
		return nil, s.errf("trailing content")
	}
	return n, nil
}

type stepScanner struct {
	d    []byte
	pos  int
	line int
	col  int
}

func (s *stepScanner) eof() bool { return s.pos >= len(s.d) }

func (s *stepScanner) peek() byte { return s.d[s.pos] }

func (s *stepScanner) next() byte {
	c := s.d[s.pos]
	s.pos++
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c
}

func (s *stepScanner) errf(msg string, args ...any) error {
	return fmt.Errorf("%w: %s at line %d col %d", ErrParse, fmt.Sprintf(msg, args...), s.line, s.col)
}

// skipSpace consumes whitespace and both comment styles.
func (s *stepScanner) skipSpace() {
	for !s.eof() {
		c := s.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			s.next()
		case c == '/' && s.pos+1 < len(s.d) && s.d[s.pos+1] == '/':
			for !s.eof() && s.peek() != '\n' {
				s.next()
			}
		case c == '/' && s.pos+1 < len(s.d) && s.d[s.pos+1] == '*':
			s.next()
			s.next()
			for !s.eof() {
				if s.peek() == '*' && s.pos+1 < len(s.d) && s.d[s.pos+1] == '/' {
					s.next()
					s.next()
					break
				}
				s.next()
			}
		default:
			return
		}
	}
}

func (s *stepScanner) value() (*ir.Node, error) {
	if s.eof() {
		return nil, ErrTruncated
	}
	switch s.peek() {
	case '{':
		return s.dict()
	case '(':
		return s.array()
	case '<':
		return s.data()
	case '"':
		str, err := s.quoted()
		if err != nil {
			return nil, err
		}
		return ir.FromString(str), nil
	default:
		return s.bare()
	}
}

func (s *stepScanner) dict() (*ir.Node, error) {
	s.next() // {
	res := &ir.Node{Kind: ir.DictKind}
	for {
		s.skipSpace()
		if s.eof() {
			return nil, ErrTruncated
		}
		if s.peek() == '}' {
			s.next()
			return res, nil
		}
		var key string
		var err error
		if s.peek() == '"' {
			key, err = s.quoted()
		} else {
			key, err = s.word()
		}
		if err != nil {
			return nil, err
		}
		s.skipSpace()
		if s.eof() {
			return nil, ErrTruncated
		}
		if s.peek() != '=' {
			return nil, s.errf("expected '=' after key %q", key)
		}
		s.next()
		s.skipSpace()
		val, err := s.value()
		if err != nil {
			return nil, err
		}
		res.SetKey(key, val)
		s.skipSpace()
		if s.eof() {
			return nil, ErrTruncated
		}
		if s.peek() != ';' {
			return nil, s.errf("expected ';' after value for %q", key)
		}
		s.next()
	}
}

func (s *stepScanner) array() (*ir.Node, error) {
	s.next() // (
	res := &ir.Node{Kind: ir.ArrayKind, Values: []*ir.Node{}}
	for {
		s.skipSpace()
		if s.eof() {
			return nil, ErrTruncated
		}
		if s.peek() == ')' {
			s.next()
			return res, nil
		}
		v, err := s.value()
		if err != nil {
			return nil, err
		}
		res.Append(v)
		s.skipSpace()
		if s.eof() {
			return nil, ErrTruncated
		}
		switch s.peek() {
		case ',':
			s.next()
		case ')':
		default:
			return nil, s.errf("expected ',' or ')' in array")
		}
	}
}

func (s *stepScanner) data() (*ir.Node, error) {
	s.next() // <
	var buf []byte
	var hi byte
	have := false
	for {
		if s.eof() {
			return nil, ErrTruncated
		}
		c := s.next()
		switch {
		case c == '>':
			if have {
				return nil, s.errf("odd hex digit count in data")
			}
			return ir.FromBytes(buf), nil
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
		default:
			v, ok := hexVal(c)
			if !ok {
				return nil, s.errf("bad hex digit %q in data", c)
			}
			if have {
				buf = append(buf, hi<<4|v)
				have = false
			} else {
				hi = v
				have = true
			}
		}
	}
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// quoted reads a double-quoted string, handling backslash escapes
// including \Uxxxx and octal byte escapes.
func (s *stepScanner) quoted() (string, error) {
	s.next() // "
	var b strings.Builder
	for {
		if s.eof() {
			return "", ErrTruncated
		}
		c := s.next()
		switch c {
		case '"':
			return b.String(), nil
		case '\\':
			if s.eof() {
				return "", ErrTruncated
			}
			e := s.next()
			switch e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case 'a':
				b.WriteByte('\a')
			case 'b':
				b.WriteByte('\b')
			case 'f':
				b.WriteByte('\f')
			case 'v':
				b.WriteByte('\v')
			case '"', '\\', '\'', '/':
				b.WriteByte(e)
			case 'U', 'u':
				r, err := s.unicodeEscape()
				if err != nil {
					return "", err
				}
				b.WriteRune(r)
			case '0', '1', '2', '3', '4', '5', '6', '7':
				v := int(e - '0')
				for i := 0; i < 2 && !s.eof() && s.peek() >= '0' && s.peek() <= '7'; i++ {
					v = v<<3 | int(s.next()-'0')
				}
				b.WriteByte(byte(v))
			default:
				return "", s.errf("bad escape \\%c", e)
			}
		default:
			b.WriteByte(c)
		}
	}
}

// unicodeEscape reads the four hex digits of a \Uxxxx escape, pairing
// surrogate halves when a second escape follows.
func (s *stepScanner) unicodeEscape() (rune, error) {
	u, err := s.hex4()
	if err != nil {
		return 0, err
	}
	if utf16.IsSurrogate(rune(u)) && s.pos+1 < len(s.d) && s.d[s.pos] == '\\' &&
		(s.d[s.pos+1] == 'U' || s.d[s.pos+1] == 'u') {
		save := *s
		s.next()
		s.next()
		u2, err := s.hex4()
		if err != nil {
			return 0, err
		}
		if r := utf16.DecodeRune(rune(u), rune(u2)); r != utf8.RuneError {
			return r, nil
		}
		*s = save
	}
	if utf16.IsSurrogate(rune(u)) {
		return utf8.RuneError, nil
	}
	return rune(u), nil
}

func (s *stepScanner) hex4() (uint16, error) {
	var v uint16
	for i := 0; i < 4; i++ {
		if s.eof() {
			return 0, ErrTruncated
		}
		h, ok := hexVal(s.next())
		if !ok {
			return 0, s.errf("bad hex digit in unicode escape")
		}
		v = v<<4 | uint16(h)
	}
	return v, nil
}

// word reads an unquoted token.
func (s *stepScanner) word() (string, error) {
	start := s.pos
	for !s.eof() && isWordByte(s.peek()) {
		s.next()
	}
	if s.pos == start {
		return "", s.errf("unexpected character %q", s.peek())
	}
	return string(s.d[start:s.pos]), nil
}

func isWordByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_' || c == '$' || c == '.' || c == '/' || c == ':' || c == '-' || c == '+':
		return true
	}
	return false
}

// bare reads an unquoted token and types it: integer and real tokens
// become numbers, everything else a string.
func (s *stepScanner) bare() (*ir.Node, error) {
	w, err := s.word()
	if err != nil {
		return nil, err
	}
	if v, err := strconv.ParseInt(w, 10, 64); err == nil {
		return ir.FromInt(v), nil
	}
	if v, err := strconv.ParseUint(w, 10, 64); err == nil {
		return ir.FromUint(v), nil
	}
	if looksReal(w) {
		if v, err := strconv.ParseFloat(w, 64); err == nil {
			return ir.FromFloat(v), nil
		}
	}
	return ir.FromString(w), nil
}

// looksReal reports whether a token is digits with a single decimal
// point, so version-like strings such as 1.2.3 stay strings.
func looksReal(w string) bool {
	dot := false
	digits := 0
	for i, c := range w {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' && !dot:
			dot = true
		case (c == '-' || c == '+') && i == 0:
		default:
			return false
		}
	}
	return dot && digits > 0
}
