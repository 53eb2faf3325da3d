package envelope

import (
	"github.com/paritytech/bcts-go/components"
)

// CompressSubject stores the subject's canonical CBOR as a Compressed
// container, preserving the envelope digest.
func (e *Envelope) CompressSubject() (*Envelope, error) {
	subject := e.Subject()
	if subject.IsObscured() {
		return nil, ErrAlreadyObscured
	}
	compressed, err := compressEnvelope(subject)
	if err != nil {
		return nil, err
	}
	return e.ReplaceSubject(compressed), nil
}

func compressEnvelope(target *Envelope) (*Envelope, error) {
	container, err := components.NewCompressedFromDecompressed(target.Encode())
	if err != nil {
		return nil, err
	}
	return newCompressed(container.WithDigest(target.Digest()))
}

// UncompressSubject inverts CompressSubject, checking the recovered
// digest.
func (e *Envelope) UncompressSubject() (*Envelope, error) {
	subject := e.Subject()
	if subject.kind != CaseCompressed {
		return nil, ErrNotCompressed
	}
	recovered, err := uncompressEnvelope(subject)
	if err != nil {
		return nil, err
	}
	return e.ReplaceSubject(recovered), nil
}

func uncompressEnvelope(target *Envelope) (*Envelope, error) {
	raw, err := target.compressed.Decompress()
	if err != nil {
		return nil, err
	}
	recovered, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	if !recovered.Digest().Equal(target.digest) {
		return nil, ErrInvalidDigest
	}
	return recovered, nil
}

// Compress stores the whole envelope as a Compressed container with the
// same digest.
func (e *Envelope) Compress() (*Envelope, error) {
	if e.IsObscured() {
		return nil, ErrAlreadyObscured
	}
	return compressEnvelope(e)
}

// Uncompress inverts Compress.
func (e *Envelope) Uncompress() (*Envelope, error) {
	if e.kind != CaseCompressed {
		return nil, ErrNotCompressed
	}
	return uncompressEnvelope(e)
}
