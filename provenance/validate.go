package provenance

import (
	"bytes"
	"encoding/hex"
	"sort"

	"github.com/sirupsen/logrus"
)

// IssueKind classifies a chain defect found during validation.
type IssueKind int

const (
	IssueSequenceGap IssueKind = iota
	IssueHashMismatch
	IssueDateOrder
	IssueNoGenesis
	IssueInvalidGenesisKey
	IssueDuplicateSeq
)

func (k IssueKind) String() string {
	switch k {
	case IssueSequenceGap:
		return "sequence gap"
	case IssueHashMismatch:
		return "hash mismatch"
	case IssueDateOrder:
		return "date ordering violation"
	case IssueNoGenesis:
		return "chain does not start at a genesis mark"
	case IssueInvalidGenesisKey:
		return "genesis key does not equal the chain id"
	default:
		return "duplicate sequence number"
	}
}

// Issue is one defect, anchored at a sequence number.
type Issue struct {
	Kind IssueKind
	Seq  uint32
}

// ChainReport summarizes the validation of one chain id.
type ChainReport struct {
	ChainID    []byte
	HasGenesis bool
	Marks      []Mark // sorted by seq
	Issues     []Issue
}

// IsValid reports whether the chain validated cleanly.
func (r ChainReport) IsValid() bool { return len(r.Issues) == 0 }

// Report is the result of validating a set of marks.
type Report struct {
	Chains []ChainReport
}

// Validate groups marks by chain id, sorts each group by sequence and
// checks the hash chain, sequence contiguity, date ordering and genesis
// conditions.
func Validate(marks []Mark) Report {
	byChain := map[string][]Mark{}
	var order []string
	for _, m := range marks {
		key := string(m.chainID)
		if _, ok := byChain[key]; !ok {
			order = append(order, key)
		}
		byChain[key] = append(byChain[key], m)
	}
	sort.Strings(order)

	var report Report
	for _, key := range order {
		chain := byChain[key]
		sort.Slice(chain, func(i, j int) bool { return chain[i].seq < chain[j].seq })
		cr := ChainReport{ChainID: []byte(key), Marks: chain}

		first := chain[0]
		switch {
		case first.seq != 0:
			cr.Issues = append(cr.Issues, Issue{Kind: IssueNoGenesis, Seq: first.seq})
		case !first.IsGenesis():
			cr.Issues = append(cr.Issues, Issue{Kind: IssueInvalidGenesisKey, Seq: 0})
		default:
			cr.HasGenesis = true
		}

		for i := 1; i < len(chain); i++ {
			prev, cur := chain[i-1], chain[i]
			switch {
			case cur.seq == prev.seq:
				cr.Issues = append(cr.Issues, Issue{Kind: IssueDuplicateSeq, Seq: cur.seq})
				continue
			case cur.seq != prev.seq+1:
				cr.Issues = append(cr.Issues, Issue{Kind: IssueSequenceGap, Seq: cur.seq})
				continue
			}
			if cur.date.Before(prev.date) {
				cr.Issues = append(cr.Issues, Issue{Kind: IssueDateOrder, Seq: cur.seq})
			}
			if !bytes.Equal(prev.hash, markHash(prev, cur.key)) {
				cr.Issues = append(cr.Issues, Issue{Kind: IssueHashMismatch, Seq: cur.seq})
			}
		}

		logrus.WithFields(logrus.Fields{
			"chain":  hex.EncodeToString(cr.ChainID),
			"marks":  len(cr.Marks),
			"issues": len(cr.Issues),
		}).Debug("provenance chain validated")
		report.Chains = append(report.Chains, cr)
	}
	return report
}
