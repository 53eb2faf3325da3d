package dcbor

import (
	"encoding/binary"
	"math"
)

// Major types, per RFC 8949 §3.
const (
	majorUnsigned = 0
	majorNegative = 1
	majorBytes    = 2
	majorText     = 3
	majorArray    = 4
	majorMap      = 5
	majorTag      = 6
	majorSimple   = 7
)

// Encode returns the canonical encoding of the value. It always succeeds.
func (c CBOR) Encode() []byte {
	var buf []byte
	return c.appendTo(buf)
}

func (c CBOR) appendTo(buf []byte) []byte {
	switch c.kind {
	case KindUnsigned:
		return appendHead(buf, majorUnsigned, c.num)
	case KindNegative:
		return appendHead(buf, majorNegative, c.num)
	case KindBytes:
		buf = appendHead(buf, majorBytes, uint64(len(c.byts)))
		return append(buf, c.byts...)
	case KindText:
		buf = appendHead(buf, majorText, uint64(len(c.byts)))
		return append(buf, c.byts...)
	case KindArray:
		buf = appendHead(buf, majorArray, uint64(len(c.arr)))
		for _, item := range c.arr {
			buf = item.appendTo(buf)
		}
		return buf
	case KindMap:
		n := 0
		if c.m != nil {
			n = len(c.m.entries)
		}
		buf = appendHead(buf, majorMap, uint64(n))
		if c.m != nil {
			for _, e := range c.m.entries {
				buf = append(buf, e.keyBytes...)
				buf = e.value.appendTo(buf)
			}
		}
		return buf
	case KindTagged:
		buf = appendHead(buf, majorTag, c.num)
		return c.arr[0].appendTo(buf)
	case KindSimple:
		return append(buf, byte(majorSimple<<5|c.num))
	case KindFloat:
		return appendFloat(buf, c.f)
	default:
		panic("dcbor: invalid value kind")
	}
}

// appendHead writes the shortest head form for (major, value).
func appendHead(buf []byte, major byte, value uint64) []byte {
	switch {
	case value <= 23:
		return append(buf, major<<5|byte(value))
	case value <= math.MaxUint8:
		return append(buf, major<<5|24, byte(value))
	case value <= math.MaxUint16:
		buf = append(buf, major<<5|25)
		return binary.BigEndian.AppendUint16(buf, uint16(value))
	case value <= math.MaxUint32:
		buf = append(buf, major<<5|26)
		return binary.BigEndian.AppendUint32(buf, uint32(value))
	default:
		buf = append(buf, major<<5|27)
		return binary.BigEndian.AppendUint64(buf, value)
	}
}

// Canonical short encodings for the non-finite floats.
var (
	encNaN    = []byte{0xf9, 0x7e, 0x00}
	encPosInf = []byte{0xf9, 0x7c, 0x00}
	encNegInf = []byte{0xf9, 0xfc, 0x00}
)

func appendFloat(buf []byte, f float64) []byte {
	switch {
	case math.IsNaN(f):
		return append(buf, encNaN...)
	case math.IsInf(f, 1):
		return append(buf, encPosInf...)
	case math.IsInf(f, -1):
		return append(buf, encNegInf...)
	default:
		buf = append(buf, 0xfb)
		return binary.BigEndian.AppendUint64(buf, math.Float64bits(f))
	}
}
