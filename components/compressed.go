package components

import (
	"fmt"
	"hash/crc32"

	"github.com/paritytech/bcts-go/dcbor"
	"github.com/paritytech/bcts-go/primitives"
)

// Compressed is a DEFLATE container. The compressed buffer is stored only
// when it is strictly smaller than the input; otherwise the original
// bytes are stored as-is. The original length and CRC32 are always
// recorded, and an optional digest preserves envelope identity.
type Compressed struct {
	checksum     uint32
	originalSize int
	data         []byte
	stored       bool // data is compressed, not the original
	digest       Digest
	hasDigest    bool
}

// NewCompressedFromDecompressed runs DEFLATE at the default level.
func NewCompressedFromDecompressed(data []byte) (Compressed, error) {
	return NewCompressedFromDecompressedLevel(data, primitives.DefaultCompressionLevel)
}

// NewCompressedFromDecompressedLevel runs DEFLATE at an explicit level.
func NewCompressedFromDecompressedLevel(data []byte, level int) (Compressed, error) {
	packed, err := primitives.Deflate(data, level)
	if err != nil {
		return Compressed{}, err
	}
	c := Compressed{
		checksum:     crc32.ChecksumIEEE(data),
		originalSize: len(data),
	}
	if len(packed) < len(data) {
		c.data = packed
		c.stored = true
	} else {
		c.data = append([]byte(nil), data...)
	}
	return c, nil
}

// WithDigest attaches an identity digest.
func (c Compressed) WithDigest(d Digest) Compressed {
	c.digest = d
	c.hasDigest = true
	return c
}

// Digest returns the attached identity digest, if any.
func (c Compressed) Digest() (Digest, bool) { return c.digest, c.hasDigest }

// OriginalSize returns the length of the decompressed content.
func (c Compressed) OriginalSize() int { return c.originalSize }

// CompressedSize returns the stored buffer length.
func (c Compressed) CompressedSize() int { return len(c.data) }

// Decompress inverts the container, verifying length and CRC32.
func (c Compressed) Decompress() ([]byte, error) {
	data := c.data
	if c.stored {
		out, err := primitives.Inflate(c.data)
		if err != nil {
			return nil, err
		}
		data = out
	} else {
		data = append([]byte(nil), data...)
	}
	if len(data) != c.originalSize {
		return nil, fmt.Errorf("%w: length %d, recorded %d", ErrCompression, len(data), c.originalSize)
	}
	if crc32.ChecksumIEEE(data) != c.checksum {
		return nil, fmt.Errorf("%w: crc32 mismatch", ErrCompression)
	}
	return data, nil
}

func (c Compressed) String() string {
	return fmt.Sprintf("Compressed(%d/%d)", len(c.data), c.originalSize)
}

func (c Compressed) UntaggedCBOR() dcbor.CBOR {
	items := []dcbor.CBOR{
		dcbor.NewUint(uint64(c.checksum)),
		dcbor.NewUint(uint64(c.originalSize)),
		dcbor.NewBytes(c.data),
	}
	if c.hasDigest {
		items = append(items, c.digest.TaggedCBOR())
	}
	return dcbor.NewArray(items...)
}

func (c Compressed) TaggedCBOR() dcbor.CBOR {
	return dcbor.NewTagged(TagCompressed, c.UntaggedCBOR())
}

// CompressedFromTaggedCBOR reads the tag-40003 form.
func CompressedFromTaggedCBOR(cb dcbor.CBOR) (Compressed, error) {
	inner, err := cb.ExpectTagged(TagCompressed)
	if err != nil {
		return Compressed{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return CompressedFromUntaggedCBOR(inner)
}

// CompressedFromUntaggedCBOR reads the array form.
func CompressedFromUntaggedCBOR(cb dcbor.CBOR) (Compressed, error) {
	items, err := cb.Array()
	if err != nil || len(items) < 3 || len(items) > 4 {
		return Compressed{}, fmt.Errorf("%w: compressed shape", ErrTypeMismatch)
	}
	checksum, err := items[0].Uint()
	if err != nil || checksum > 0xffffffff {
		return Compressed{}, fmt.Errorf("%w: compressed checksum", ErrTypeMismatch)
	}
	size, err := items[1].Uint()
	if err != nil {
		return Compressed{}, fmt.Errorf("%w: compressed size", ErrTypeMismatch)
	}
	data, err := items[2].Bytes()
	if err != nil {
		return Compressed{}, fmt.Errorf("%w: compressed data", ErrTypeMismatch)
	}
	c := Compressed{
		checksum:     uint32(checksum),
		originalSize: int(size),
		data:         data,
		stored:       len(data) < int(size),
	}
	if len(items) == 4 {
		d, err := DigestFromTaggedCBOR(items[3])
		if err != nil {
			return Compressed{}, err
		}
		c.digest = d
		c.hasDigest = true
	}
	return c, nil
}
