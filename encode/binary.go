package encode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"time"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/plistkit/go-plist/ir"
)

// seconds from 1970-01-01 to the plist epoch 2001-01-01
const macEpochOffset = 978307200

// encodeBinary writes a bplist00 document. Equal subtrees are
// flattened to a single object record and shared by reference.
func encodeBinary(node *ir.Node, w io.Writer) error {
	bw := &binWriter{
		byHash: map[uint64][]int{},
	}
	if _, err := bw.flatten(node); err != nil {
		return err
	}
	return bw.write(w)
}

type binWriter struct {
	objs   []*ir.Node
	kids   [][]int
	byHash map[uint64][]int
}

// flatten assigns an object id to n, reusing the id of any previously
// seen equal object. Container children are flattened after their
// parent so the top object keeps id 0.
func (bw *binWriter) flatten(n *ir.Node) (int, error) {
	h := n.Hash()
	for _, id := range bw.byHash[h] {
		if ir.Equal(bw.objs[id], n) {
			return id, nil
		}
	}
	id := len(bw.objs)
	bw.objs = append(bw.objs, n)
	bw.kids = append(bw.kids, nil)
	bw.byHash[h] = append(bw.byHash[h], id)

	switch n.Kind {
	case ir.ArrayKind:
		refs := make([]int, 0, len(n.Values))
		for _, v := range n.Values {
			r, err := bw.flatten(v)
			if err != nil {
				return 0, err
			}
			refs = append(refs, r)
		}
		bw.kids[id] = refs
	case ir.DictKind:
		refs := make([]int, 0, 2*len(n.Fields))
		for _, f := range n.Fields {
			r, err := bw.flatten(ir.FromString(f.String))
			if err != nil {
				return 0, err
			}
			refs = append(refs, r)
		}
		for _, v := range n.Values {
			r, err := bw.flatten(v)
			if err != nil {
				return 0, err
			}
			refs = append(refs, r)
		}
		bw.kids[id] = refs
	}
	return id, nil
}

func (bw *binWriter) write(w io.Writer) error {
	refSize := minByteLen(uint64(len(bw.objs) - 1))
	var body bytes.Buffer
	body.WriteString("bplist00")

	offsets := make([]uint64, len(bw.objs))
	for id, n := range bw.objs {
		offsets[id] = uint64(body.Len())
		if err := bw.object(&body, n, bw.kids[id], refSize); err != nil {
			return err
		}
	}

	tableOff := uint64(body.Len())
	offSize := minByteLen(tableOff)
	for _, off := range offsets {
		putSized(&body, off, offSize)
	}

	var trailer [32]byte
	trailer[6] = byte(offSize)
	trailer[7] = byte(refSize)
	binary.BigEndian.PutUint64(trailer[8:], uint64(len(bw.objs)))
	binary.BigEndian.PutUint64(trailer[16:], 0)
	binary.BigEndian.PutUint64(trailer[24:], tableOff)
	body.Write(trailer[:])

	return writeBytes(w, body.Bytes())
}

func (bw *binWriter) object(b *bytes.Buffer, n *ir.Node, kids []int, refSize int) error {
	switch n.Kind {
	case ir.NullKind:
		b.WriteByte(0x00)

	case ir.BoolKind:
		if n.Bool {
			b.WriteByte(0x09)
		} else {
			b.WriteByte(0x08)
		}

	case ir.IntKind:
		putInt(b, n)

	case ir.RealKind:
		b.WriteByte(0x23)
		putSized(b, math.Float64bits(n.Real), 8)

	case ir.DateKind:
		b.WriteByte(0x33)
		putSized(b, math.Float64bits(macSeconds(n.Time)), 8)

	case ir.DataKind:
		putCount(b, 0x40, len(n.Bytes))
		b.Write(n.Bytes)

	case ir.StringKind, ir.KeyKind:
		putString(b, n.String)

	case ir.UIDKind:
		sz := minByteLen(n.UID)
		b.WriteByte(0x80 | byte(sz-1))
		putSized(b, n.UID, sz)

	case ir.ArrayKind:
		putCount(b, 0xA0, len(kids))
		for _, r := range kids {
			putSized(b, uint64(r), refSize)
		}

	case ir.DictKind:
		putCount(b, 0xD0, len(n.Fields))
		for _, r := range kids {
			putSized(b, uint64(r), refSize)
		}

	default:
		return fmt.Errorf("%w: %s in binary plist", ErrFormat, n.Kind)
	}
	return nil
}

// putInt writes an integer record at the smallest width that holds the
// value. Negative values always use the signed 8-byte form and values
// above the int64 range take the 16-byte form.
func putInt(b *bytes.Buffer, n *ir.Node) {
	if n.Unsigned {
		b.WriteByte(0x14)
		putSized(b, 0, 8)
		putSized(b, uint64(n.Int), 8)
		return
	}
	if n.Int < 0 {
		b.WriteByte(0x13)
		putSized(b, uint64(n.Int), 8)
		return
	}
	switch sz := minByteLen(uint64(n.Int)); sz {
	case 1:
		b.WriteByte(0x10)
		putSized(b, uint64(n.Int), 1)
	case 2:
		b.WriteByte(0x11)
		putSized(b, uint64(n.Int), 2)
	case 4:
		b.WriteByte(0x12)
		putSized(b, uint64(n.Int), 4)
	default:
		b.WriteByte(0x13)
		putSized(b, uint64(n.Int), 8)
	}
}

// putString writes an ASCII record when possible, falling back to
// UTF-16BE code units.
func putString(b *bytes.Buffer, s string) {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		putCount(b, 0x50, len(s))
		b.WriteString(s)
		return
	}
	units := utf16.Encode([]rune(s))
	putCount(b, 0x60, len(units))
	for _, u := range units {
		putSized(b, uint64(u), 2)
	}
}

// putCount writes a marker byte, spilling counts of 15 and above into a
// following integer record.
func putCount(b *bytes.Buffer, marker byte, count int) {
	if count < 0xF {
		b.WriteByte(marker | byte(count))
		return
	}
	b.WriteByte(marker | 0xF)
	switch sz := minByteLen(uint64(count)); sz {
	case 1:
		b.WriteByte(0x10)
		putSized(b, uint64(count), 1)
	case 2:
		b.WriteByte(0x11)
		putSized(b, uint64(count), 2)
	case 4:
		b.WriteByte(0x12)
		putSized(b, uint64(count), 4)
	default:
		b.WriteByte(0x13)
		putSized(b, uint64(count), 8)
	}
}

func putSized(b *bytes.Buffer, v uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		b.WriteByte(byte(v >> (8 * i)))
	}
}

func minByteLen(v uint64) int {
	switch {
	case v <= 0xFF:
		return 1
	case v <= 0xFFFF:
		return 2
	case v <= 0xFFFFFFFF:
		return 4
	default:
		return 8
	}
}

func macSeconds(t time.Time) float64 {
	return float64(t.Unix()-macEpochOffset) + float64(t.Nanosecond())/1e9
}
