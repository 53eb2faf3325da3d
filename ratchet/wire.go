package ratchet

import (
	"encoding/binary"
	"fmt"

	"github.com/paritytech/bcts-go/primitives"
)

// Ciphertext version window.
const (
	CurrentVersion      = 4
	MinimumVersion      = 3
	plaintextContentTag = 8
)

// Wire key serialization: a type byte in front of the raw point.
const djbKeyType = 0x05

// Truncated MAC width at the end of every SignalMessage.
const macSize = 8

// Protobuf field numbers of the message body.
const (
	fieldRatchetKey      = 1
	fieldCounter         = 2
	fieldPreviousCounter = 3
	fieldCiphertext      = 4
)

// SignalMessage is the parsed form of a ratchet wire message.
type SignalMessage struct {
	Version         int
	RatchetKey      []byte // 32-byte X25519 point
	Counter         uint32
	PreviousCounter uint32
	Ciphertext      []byte

	// serialized retains the exact bytes that were MACed, through the
	// version byte and body but not the trailing MAC.
	serialized []byte
	mac        []byte
}

// encodeSignalMessage assembles version byte, protobuf-shaped body and
// truncated MAC.
func encodeSignalMessage(version int, ratchetKey []byte, counter, previousCounter uint32, ciphertext, macKey, senderIdentity, receiverIdentity []byte) []byte {
	body := []byte{byte(version<<4) | CurrentVersion}
	body = appendBytesField(body, fieldRatchetKey, prefixKey(ratchetKey))
	body = appendVarintField(body, fieldCounter, uint64(counter))
	body = appendVarintField(body, fieldPreviousCounter, uint64(previousCounter))
	body = appendBytesField(body, fieldCiphertext, ciphertext)
	mac := computeWireMAC(macKey, senderIdentity, receiverIdentity, body)
	return append(body, mac...)
}

// computeWireMAC binds the message to both identities.
func computeWireMAC(macKey, senderIdentity, receiverIdentity, headerAndBody []byte) []byte {
	var msg []byte
	msg = append(msg, prefixKey(senderIdentity)...)
	msg = append(msg, prefixKey(receiverIdentity)...)
	msg = append(msg, headerAndBody...)
	return primitives.HMACSHA256(macKey, msg)[:macSize]
}

// verifyMAC recomputes the truncated MAC in constant time.
func (m *SignalMessage) verifyMAC(macKey, senderIdentity, receiverIdentity []byte) error {
	want := computeWireMAC(macKey, senderIdentity, receiverIdentity, m.serialized)
	if !primitives.HMACEqual(want, m.mac) {
		return ErrMacMismatch
	}
	return nil
}

// ParseSignalMessage reads the wire form, rejecting versions outside the
// supported window and unsupported protobuf wire types.
func ParseSignalMessage(wire []byte) (*SignalMessage, error) {
	if len(wire) < 1+macSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidMessage, len(wire))
	}
	version := int(wire[0] >> 4)
	if version < MinimumVersion || version > CurrentVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	body := wire[1 : len(wire)-macSize]
	msg := &SignalMessage{
		Version:    version,
		serialized: append([]byte(nil), wire[:len(wire)-macSize]...),
		mac:        append([]byte(nil), wire[len(wire)-macSize:]...),
	}

	for pos := 0; pos < len(body); {
		tag, n := binary.Uvarint(body[pos:])
		if n <= 0 {
			return nil, fmt.Errorf("%w: bad field tag", ErrInvalidMessage)
		}
		pos += n
		fieldNumber := tag >> 3
		wireType := tag & 0x7
		switch wireType {
		case 0: // varint
			value, n := binary.Uvarint(body[pos:])
			if n <= 0 {
				return nil, fmt.Errorf("%w: bad varint", ErrInvalidMessage)
			}
			pos += n
			switch fieldNumber {
			case fieldCounter:
				msg.Counter = uint32(value)
			case fieldPreviousCounter:
				msg.PreviousCounter = uint32(value)
			}
		case 2: // length-delimited
			length, n := binary.Uvarint(body[pos:])
			if n <= 0 || pos+n+int(length) > len(body) {
				return nil, fmt.Errorf("%w: bad length", ErrInvalidMessage)
			}
			pos += n
			value := body[pos : pos+int(length)]
			pos += int(length)
			switch fieldNumber {
			case fieldRatchetKey:
				key, err := stripKeyPrefix(value)
				if err != nil {
					return nil, err
				}
				msg.RatchetKey = key
			case fieldCiphertext:
				msg.Ciphertext = append([]byte(nil), value...)
			}
		default:
			return nil, fmt.Errorf("%w: wire type %d", ErrInvalidMessage, wireType)
		}
	}
	if msg.RatchetKey == nil || msg.Ciphertext == nil {
		return nil, fmt.Errorf("%w: missing required fields", ErrInvalidMessage)
	}
	return msg, nil
}

// prefixKey serializes an X25519 point with the wire type byte.
func prefixKey(key []byte) []byte {
	return append([]byte{djbKeyType}, key...)
}

func stripKeyPrefix(value []byte) ([]byte, error) {
	if len(value) != 1+primitives.X25519KeySize || value[0] != djbKeyType {
		return nil, fmt.Errorf("%w: key serialization", ErrInvalidKey)
	}
	return append([]byte(nil), value[1:]...), nil
}

func appendBytesField(buf []byte, fieldNumber int, value []byte) []byte {
	buf = binary.AppendUvarint(buf, uint64(fieldNumber)<<3|2)
	buf = binary.AppendUvarint(buf, uint64(len(value)))
	return append(buf, value...)
}

func appendVarintField(buf []byte, fieldNumber int, value uint64) []byte {
	buf = binary.AppendUvarint(buf, uint64(fieldNumber)<<3|0)
	return binary.AppendUvarint(buf, value)
}

// PlaintextContent is the decryption-error channel: a single version
// byte (8<<4)|8 followed by the body, decoded without any key.
type PlaintextContent struct {
	Body []byte
}

// EncodePlaintextContent renders the wire form.
func EncodePlaintextContent(p PlaintextContent) []byte {
	out := []byte{plaintextContentTag<<4 | plaintextContentTag}
	return append(out, p.Body...)
}

// ParsePlaintextContent reads the wire form.
func ParsePlaintextContent(wire []byte) (PlaintextContent, error) {
	if len(wire) < 1 || wire[0] != plaintextContentTag<<4|plaintextContentTag {
		return PlaintextContent{}, fmt.Errorf("%w: not plaintext content", ErrInvalidMessage)
	}
	return PlaintextContent{Body: append([]byte(nil), wire[1:]...)}, nil
}
