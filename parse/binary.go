package parse

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"time"
	"unicode/utf16"

	"github.com/plistkit/go-plist/format"
	"github.com/plistkit/go-plist/ir"
)

const (
	binTrailerSize = 32
	// seconds from 1970-01-01 to the plist epoch 2001-01-01
	macEpochOffset = 978307200
)

// parseBinary reads a bplist00/bplist01 document.
func parseBinary(d []byte) (*ir.Node, error) {
	if len(d) < 8+binTrailerSize {
		return nil, ErrTruncated
	}
	if !bytes.HasPrefix(d, format.BinaryMagic) {
		return nil, fmt.Errorf("%w: missing bplist magic", ErrParse)
	}
	version := string(d[6:8])
	switch version {
	case "00", "01":
	default:
		return nil, fmt.Errorf("%w: bplist%s", ErrUnsupportedVersion, version)
	}

	tr := d[len(d)-binTrailerSize:]
	offSize := int(tr[6])
	refSize := int(tr[7])
	numObjects := binary.BigEndian.Uint64(tr[8:16])
	topObject := binary.BigEndian.Uint64(tr[16:24])
	tableOff := binary.BigEndian.Uint64(tr[24:32])

	if offSize < 1 || offSize > 8 || refSize < 1 || refSize > 8 {
		return nil, fmt.Errorf("%w: trailer offset/ref sizes %d/%d", ErrParse, offSize, refSize)
	}
	if numObjects == 0 {
		return nil, fmt.Errorf("%w: zero objects", ErrParse)
	}
	if topObject >= numObjects {
		return nil, fmt.Errorf("%w: top object %d of %d", ErrParse, topObject, numObjects)
	}
	bodyLen := uint64(len(d) - binTrailerSize)
	if numObjects > bodyLen || tableOff >= bodyLen || tableOff+numObjects*uint64(offSize) > bodyLen {
		return nil, ErrTruncated
	}

	p := &binParser{
		d:        d[:bodyLen],
		refSize:  refSize,
		offsets:  make([]uint64, numObjects),
		inFlight: make(map[uint64]bool),
	}
	for i := range p.offsets {
		off := tableOff + uint64(i*offSize)
		v, err := p.sizedUint(off, offSize)
		if err != nil {
			return nil, err
		}
		if v < 8 || v >= bodyLen {
			return nil, ErrTruncated
		}
		p.offsets[i] = v
	}
	return p.object(topObject)
}

type binParser struct {
	d        []byte
	refSize  int
	offsets  []uint64
	inFlight map[uint64]bool
}

// sizedUint reads an n-byte big-endian unsigned integer at off.
func (p *binParser) sizedUint(off uint64, n int) (uint64, error) {
	end := off + uint64(n)
	if end > uint64(len(p.d)) || end < off {
		return 0, ErrTruncated
	}
	var v uint64
	for _, b := range p.d[off:end] {
		v = v<<8 | uint64(b)
	}
	return v, nil
}

// count decodes the record length for the marker at off. A low nibble of
// 0xF means the length follows as an inline integer record. It returns
// the length and the offset of the record payload.
func (p *binParser) count(off uint64, low byte) (uint64, uint64, error) {
	if low != 0xF {
		return uint64(low), off + 1, nil
	}
	if off+1 >= uint64(len(p.d)) {
		return 0, 0, ErrTruncated
	}
	m := p.d[off+1]
	if m>>4 != 0x1 {
		return 0, 0, fmt.Errorf("%w: bad length record marker 0x%02x", ErrParse, m)
	}
	n := 1 << (m & 0xF)
	if n > 8 {
		return 0, 0, fmt.Errorf("%w: %d-byte length record", ErrParse, n)
	}
	v, err := p.sizedUint(off+2, n)
	if err != nil {
		return 0, 0, err
	}
	return v, off + 2 + uint64(n), nil
}

func (p *binParser) ref(off uint64) (uint64, error) {
	v, err := p.sizedUint(off, p.refSize)
	if err != nil {
		return 0, err
	}
	if v >= uint64(len(p.offsets)) {
		return 0, fmt.Errorf("%w: object reference %d of %d", ErrParse, v, len(p.offsets))
	}
	return v, nil
}

func (p *binParser) object(ref uint64) (*ir.Node, error) {
	if p.inFlight[ref] {
		return nil, fmt.Errorf("%w: object %d references itself", ErrParse, ref)
	}
	off := p.offsets[ref]
	marker := p.d[off]
	switch marker >> 4 {
	case 0x0:
		switch marker {
		case 0x00:
			return ir.Null(), nil
		case 0x08:
			return ir.FromBool(false), nil
		case 0x09:
			return ir.FromBool(true), nil
		default:
			return nil, fmt.Errorf("%w: marker 0x%02x", ErrParse, marker)
		}

	case 0x1:
		n := 1 << (marker & 0xF)
		switch {
		case n <= 4:
			v, err := p.sizedUint(off+1, n)
			if err != nil {
				return nil, err
			}
			return ir.FromInt(int64(v)), nil
		case n == 8:
			v, err := p.sizedUint(off+1, 8)
			if err != nil {
				return nil, err
			}
			return ir.FromInt(int64(v)), nil
		case n == 16:
			// 128-bit record carrying a uint64 in its low half
			lo, err := p.sizedUint(off+9, 8)
			if err != nil {
				return nil, err
			}
			if _, err := p.sizedUint(off+1, 8); err != nil {
				return nil, err
			}
			return ir.FromUint(lo), nil
		default:
			return nil, fmt.Errorf("%w: %d-byte integer", ErrParse, n)
		}

	case 0x2:
		n := 1 << (marker & 0xF)
		switch n {
		case 4:
			v, err := p.sizedUint(off+1, 4)
			if err != nil {
				return nil, err
			}
			return ir.FromFloat(float64(math.Float32frombits(uint32(v)))), nil
		case 8:
			v, err := p.sizedUint(off+1, 8)
			if err != nil {
				return nil, err
			}
			return ir.FromFloat(math.Float64frombits(v)), nil
		default:
			return nil, fmt.Errorf("%w: %d-byte real", ErrParse, n)
		}

	case 0x3:
		if marker != 0x33 {
			return nil, fmt.Errorf("%w: marker 0x%02x", ErrParse, marker)
		}
		v, err := p.sizedUint(off+1, 8)
		if err != nil {
			return nil, err
		}
		return ir.FromTime(timeFromMac(math.Float64frombits(v))), nil

	case 0x4:
		n, payload, err := p.count(off, marker&0xF)
		if err != nil {
			return nil, err
		}
		if payload+n > uint64(len(p.d)) || payload+n < payload {
			return nil, ErrTruncated
		}
		return ir.FromBytes(p.d[payload : payload+n]), nil

	case 0x5:
		n, payload, err := p.count(off, marker&0xF)
		if err != nil {
			return nil, err
		}
		if payload+n > uint64(len(p.d)) || payload+n < payload {
			return nil, ErrTruncated
		}
		return ir.FromString(string(p.d[payload : payload+n])), nil

	case 0x6:
		n, payload, err := p.count(off, marker&0xF)
		if err != nil {
			return nil, err
		}
		end := payload + 2*n
		if end > uint64(len(p.d)) || end < payload {
			return nil, ErrTruncated
		}
		units := make([]uint16, n)
		for i := range units {
			units[i] = binary.BigEndian.Uint16(p.d[payload+2*uint64(i):])
		}
		return ir.FromString(string(utf16.Decode(units))), nil

	case 0x8:
		n := int(marker&0xF) + 1
		if n > 8 {
			return nil, fmt.Errorf("%w: %d-byte uid", ErrParse, n)
		}
		v, err := p.sizedUint(off+1, n)
		if err != nil {
			return nil, err
		}
		return ir.FromUID(v), nil

	case 0xA:
		n, payload, err := p.count(off, marker&0xF)
		if err != nil {
			return nil, err
		}
		p.inFlight[ref] = true
		defer delete(p.inFlight, ref)
		res := &ir.Node{Kind: ir.ArrayKind, Values: []*ir.Node{}}
		for i := uint64(0); i < n; i++ {
			r, err := p.ref(payload + i*uint64(p.refSize))
			if err != nil {
				return nil, err
			}
			child, err := p.object(r)
			if err != nil {
				return nil, err
			}
			res.Append(child)
		}
		return res, nil

	case 0xD:
		n, payload, err := p.count(off, marker&0xF)
		if err != nil {
			return nil, err
		}
		p.inFlight[ref] = true
		defer delete(p.inFlight, ref)
		res := &ir.Node{Kind: ir.DictKind}
		for i := uint64(0); i < n; i++ {
			kr, err := p.ref(payload + i*uint64(p.refSize))
			if err != nil {
				return nil, err
			}
			vr, err := p.ref(payload + (n+i)*uint64(p.refSize))
			if err != nil {
				return nil, err
			}
			key, err := p.object(kr)
			if err != nil {
				return nil, err
			}
			if key.Kind != ir.StringKind {
				return nil, fmt.Errorf("%w: %s dictionary key", ErrParse, key.Kind)
			}
			val, err := p.object(vr)
			if err != nil {
				return nil, err
			}
			res.SetKey(key.String, val)
		}
		return res, nil

	default:
		return nil, fmt.Errorf("%w: marker 0x%02x", ErrParse, marker)
	}
}

// timeFromMac converts seconds since the 2001-01-01 epoch to a time.Time,
// keeping sub-second precision to the microsecond.
func timeFromMac(sec float64) time.Time {
	whole := math.Floor(sec)
	frac := sec - whole
	return time.Unix(int64(whole)+macEpochOffset, int64(math.Round(frac*1e9))).UTC()
}
