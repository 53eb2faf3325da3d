package provenance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paritytech/bcts-go/dcbor"
	"github.com/paritytech/bcts-go/primitives"
)

func generateChain(t *testing.T, res Resolution, n int) []Mark {
	t.Helper()
	rng := primitives.SeededRNG([]byte("provenance"))
	g := NewMarkGenerator(res, rng)
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	marks := make([]Mark, n)
	for i := range n {
		marks[i] = g.Next(start.Add(time.Duration(i)*time.Hour), nil)
	}
	return marks
}

func TestGeneratedChainValidates(t *testing.T) {
	for _, res := range []Resolution{ResolutionLow, ResolutionMedium, ResolutionQuartile, ResolutionHigh} {
		t.Run(res.String(), func(t *testing.T) {
			marks := generateChain(t, res, 6)
			assert.True(t, marks[0].IsGenesis())
			assert.Len(t, marks[0].Key(), res.KeyWidth())

			for i := range len(marks) - 1 {
				assert.True(t, marks[i].Precedes(marks[i+1]), "link %d", i)
			}

			report := Validate(marks)
			require.Len(t, report.Chains, 1)
			assert.True(t, report.Chains[0].HasGenesis)
			assert.True(t, report.Chains[0].IsValid())
		})
	}
}

func TestValidateFindsDefects(t *testing.T) {
	marks := generateChain(t, ResolutionMedium, 6)

	t.Run("sequence gap", func(t *testing.T) {
		gapped := append([]Mark{}, marks[0], marks[1], marks[3], marks[4])
		report := Validate(gapped)
		require.Len(t, report.Chains, 1)
		assert.Contains(t, issueKinds(report.Chains[0]), IssueSequenceGap)
	})

	t.Run("missing genesis", func(t *testing.T) {
		report := Validate(marks[2:])
		assert.Contains(t, issueKinds(report.Chains[0]), IssueNoGenesis)
		assert.False(t, report.Chains[0].HasGenesis)
	})

	t.Run("tampered key breaks the hash chain", func(t *testing.T) {
		tampered := append([]Mark{}, marks...)
		key := tampered[2].Key()
		key[0] ^= 1
		tampered[2].key = key
		report := Validate(tampered)
		assert.Contains(t, issueKinds(report.Chains[0]), IssueHashMismatch)
	})

	t.Run("date regression", func(t *testing.T) {
		regressed := append([]Mark{}, marks...)
		regressed[3].date = regressed[0].date.Add(-time.Hour)
		report := Validate(regressed)
		assert.Contains(t, issueKinds(report.Chains[0]), IssueDateOrder)
	})
}

func issueKinds(cr ChainReport) []IssueKind {
	kinds := make([]IssueKind, len(cr.Issues))
	for i, issue := range cr.Issues {
		kinds[i] = issue.Kind
	}
	return kinds
}

func TestValidateGroupsByChain(t *testing.T) {
	a := generateChain(t, ResolutionLow, 3)
	rng := primitives.SeededRNG([]byte("other chain"))
	g := NewMarkGenerator(ResolutionLow, rng)
	b := []Mark{
		g.Next(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), nil),
		g.Next(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), nil),
	}

	report := Validate(append(append([]Mark{}, a...), b...))
	require.Len(t, report.Chains, 2)
	for _, cr := range report.Chains {
		assert.True(t, cr.HasGenesis)
		assert.True(t, cr.IsValid())
	}
}

func TestMarkCBORAndURRoundTrip(t *testing.T) {
	rng := primitives.SeededRNG([]byte("roundtrip"))
	g := NewMarkGenerator(ResolutionQuartile, rng)
	info := dcbor.NewText("edition 1")
	m := g.Next(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), &info)

	back, err := MarkFromTaggedCBOR(m.TaggedCBOR())
	require.NoError(t, err)
	assert.Equal(t, m.TaggedCBOR().Encode(), back.TaggedCBOR().Encode())
	gotInfo, ok := back.Info()
	require.True(t, ok)
	assert.True(t, gotInfo.Equal(info))

	fromUR, err := MarkFromUR(m.UR())
	require.NoError(t, err)
	assert.Equal(t, m.TaggedCBOR().Encode(), fromUR.TaggedCBOR().Encode())

	// Width mismatch between key and resolution is typed.
	short := m
	short.key = m.key[:4]
	_, err = MarkFromTaggedCBOR(short.TaggedCBOR())
	assert.ErrorIs(t, err, ErrInvalidSize)
}
