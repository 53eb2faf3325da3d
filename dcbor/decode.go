package dcbor

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
)

// Decode parses the canonical encoding of a single value, consuming the
// whole input. Any encoding that is not the unique canonical form of the
// decoded value is rejected.
func Decode(data []byte) (CBOR, error) {
	d := decoder{data: data}
	v, err := d.decodeValue()
	if err != nil {
		return CBOR{}, err
	}
	if d.pos != len(d.data) {
		return CBOR{}, fmt.Errorf("%w: %d bytes remain", ErrTrailingData, len(d.data)-d.pos)
	}
	return v, nil
}

type decoder struct {
	data []byte
	pos  int
}

func (d *decoder) readByte() (byte, error) {
	if d.pos >= len(d.data) {
		return 0, ErrUnexpectedEnd
	}
	b := d.data[d.pos]
	d.pos++
	return b, nil
}

func (d *decoder) readBytes(n uint64) ([]byte, error) {
	if uint64(len(d.data)-d.pos) < n {
		return nil, ErrUnexpectedEnd
	}
	b := d.data[d.pos : d.pos+int(n)]
	d.pos += int(n)
	return b, nil
}

// readHead decodes a head, enforcing the shortest-form rule.
func (d *decoder) readHead() (major byte, value uint64, err error) {
	ib, err := d.readByte()
	if err != nil {
		return 0, 0, err
	}
	major = ib >> 5
	info := ib & 0x1f
	switch {
	case info <= 23:
		return major, uint64(info), nil
	case info == 24:
		b, err := d.readByte()
		if err != nil {
			return 0, 0, err
		}
		if b <= 23 {
			return 0, 0, fmt.Errorf("%w: one-byte head for value %d", ErrNonCanonical, b)
		}
		return major, uint64(b), nil
	case info == 25:
		b, err := d.readBytes(2)
		if err != nil {
			return 0, 0, err
		}
		v := uint64(binary.BigEndian.Uint16(b))
		if v <= math.MaxUint8 {
			return 0, 0, fmt.Errorf("%w: two-byte head for value %d", ErrNonCanonical, v)
		}
		return major, v, nil
	case info == 26:
		b, err := d.readBytes(4)
		if err != nil {
			return 0, 0, err
		}
		v := uint64(binary.BigEndian.Uint32(b))
		if v <= math.MaxUint16 {
			return 0, 0, fmt.Errorf("%w: four-byte head for value %d", ErrNonCanonical, v)
		}
		return major, v, nil
	case info == 27:
		b, err := d.readBytes(8)
		if err != nil {
			return 0, 0, err
		}
		v := binary.BigEndian.Uint64(b)
		if v <= math.MaxUint32 {
			return 0, 0, fmt.Errorf("%w: eight-byte head for value %d", ErrNonCanonical, v)
		}
		return major, v, nil
	default:
		// 28..30 are reserved, 31 is indefinite length.
		return 0, 0, fmt.Errorf("%w: head info %d", ErrNonCanonical, info)
	}
}

func (d *decoder) decodeValue() (CBOR, error) {
	// Peek the initial byte so the simple/float cases can see the raw info
	// value before readHead applies the integer shortest-form rule.
	if d.pos >= len(d.data) {
		return CBOR{}, ErrUnexpectedEnd
	}
	ib := d.data[d.pos]
	if ib>>5 == majorSimple {
		return d.decodeSimple()
	}

	major, value, err := d.readHead()
	if err != nil {
		return CBOR{}, err
	}
	switch major {
	case majorUnsigned:
		return NewUint(value), nil
	case majorNegative:
		return NewNegative(value), nil
	case majorBytes:
		b, err := d.readBytes(value)
		if err != nil {
			return CBOR{}, err
		}
		return NewBytes(b), nil
	case majorText:
		b, err := d.readBytes(value)
		if err != nil {
			return CBOR{}, err
		}
		if !utf8.Valid(b) {
			return CBOR{}, ErrInvalidUTF8
		}
		return CBOR{kind: KindText, byts: append([]byte(nil), b...)}, nil
	case majorArray:
		items := make([]CBOR, 0, int(min(value, 64)))
		for range value {
			item, err := d.decodeValue()
			if err != nil {
				return CBOR{}, err
			}
			items = append(items, item)
		}
		return CBOR{kind: KindArray, arr: items}, nil
	case majorMap:
		return d.decodeMap(value)
	case majorTag:
		inner, err := d.decodeValue()
		if err != nil {
			return CBOR{}, err
		}
		return NewTagged(value, inner), nil
	default:
		panic("unreachable")
	}
}

func (d *decoder) decodeMap(count uint64) (CBOR, error) {
	m := &Map{}
	var prevKey []byte
	for range count {
		keyStart := d.pos
		key, err := d.decodeValue()
		if err != nil {
			return CBOR{}, err
		}
		keyBytes := append([]byte(nil), d.data[keyStart:d.pos]...)
		if prevKey != nil {
			switch bytes.Compare(prevKey, keyBytes) {
			case 0:
				return CBOR{}, fmt.Errorf("%w: %w", ErrNonCanonical, ErrDuplicateMapKey)
			case 1:
				return CBOR{}, fmt.Errorf("%w: map keys out of order", ErrNonCanonical)
			}
		}
		prevKey = keyBytes
		value, err := d.decodeValue()
		if err != nil {
			return CBOR{}, err
		}
		m.entries = append(m.entries, mapEntry{keyBytes: keyBytes, key: key, value: value})
	}
	return m.CBOR(), nil
}

func (d *decoder) decodeSimple() (CBOR, error) {
	ib, _ := d.readByte()
	info := ib & 0x1f
	switch info {
	case simpleFalse:
		return False, nil
	case simpleTrue:
		return True, nil
	case simpleNull:
		return Null, nil
	case 25: // half precision: only the canonical NaN and infinities
		b, err := d.readBytes(2)
		if err != nil {
			return CBOR{}, err
		}
		switch binary.BigEndian.Uint16(b) {
		case 0x7e00:
			return CBOR{kind: KindFloat, f: math.NaN()}, nil
		case 0x7c00:
			return CBOR{kind: KindFloat, f: math.Inf(1)}, nil
		case 0xfc00:
			return CBOR{kind: KindFloat, f: math.Inf(-1)}, nil
		default:
			return CBOR{}, fmt.Errorf("%w: half-precision float", ErrNonCanonical)
		}
	case 26:
		return CBOR{}, fmt.Errorf("%w: single-precision float", ErrNonCanonical)
	case 27:
		b, err := d.readBytes(8)
		if err != nil {
			return CBOR{}, err
		}
		f := math.Float64frombits(binary.BigEndian.Uint64(b))
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return CBOR{}, fmt.Errorf("%w: non-finite float in binary64 form", ErrNonCanonical)
		}
		if reduced := NewFloat(f); reduced.kind != KindFloat {
			return CBOR{}, fmt.Errorf("%w: float %v must encode as an integer", ErrNonCanonical, f)
		}
		return CBOR{kind: KindFloat, f: f}, nil
	default:
		// undefined (23), unassigned simple values, reserved forms and
		// the break code are all rejected.
		return CBOR{}, fmt.Errorf("%w: simple value %d", ErrNonCanonical, info)
	}
}
