package provenance

import (
	"time"

	"github.com/paritytech/bcts-go/dcbor"
	"github.com/paritytech/bcts-go/primitives"
)

// MarkGenerator produces the marks of one chain in order. It holds the
// key the previous mark committed to; callers keep it private and
// persist it between marks.
type MarkGenerator struct {
	resolution Resolution
	chainID    []byte
	nextKey    []byte
	seq        uint32
	lastDate   time.Time
	rng        primitives.RandomNumberGenerator
}

// NewMarkGenerator opens a new chain: the genesis key is the chain id.
func NewMarkGenerator(resolution Resolution, rng primitives.RandomNumberGenerator) *MarkGenerator {
	chainID := rng.RandomBytes(resolution.KeyWidth())
	return &MarkGenerator{
		resolution: resolution,
		chainID:    chainID,
		nextKey:    append([]byte(nil), chainID...),
		rng:        rng,
	}
}

// ChainID identifies the chain this generator extends.
func (g *MarkGenerator) ChainID() []byte { return append([]byte(nil), g.chainID...) }

// Next emits the chain's next mark, dated no earlier than its
// predecessor.
func (g *MarkGenerator) Next(date time.Time, info *dcbor.CBOR) Mark {
	if date.Before(g.lastDate) {
		date = g.lastDate
	}
	m := Mark{
		resolution: g.resolution,
		key:        g.nextKey,
		chainID:    append([]byte(nil), g.chainID...),
		seq:        g.seq,
		date:       date.UTC().Truncate(time.Second),
		info:       info,
	}
	successor := g.rng.RandomBytes(g.resolution.KeyWidth())
	m.hash = markHash(m, successor)

	g.nextKey = successor
	g.seq++
	g.lastDate = m.date
	return m
}
