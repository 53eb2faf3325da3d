package dcbor

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DiagnosticOptions controls the diagnostic printer.
type DiagnosticOptions struct {
	// Flat suppresses newlines and indentation.
	Flat bool
	// Tags resolves tag names and summarizers; nil prints bare numbers.
	Tags *TagsStore
}

// Diagnostic renders the value in CBOR diagnostic notation, multi-line.
func (c CBOR) Diagnostic() string {
	return c.DiagnosticOpt(DiagnosticOptions{Tags: GlobalTags()})
}

// DiagnosticFlat renders the value on a single line.
func (c CBOR) DiagnosticFlat() string {
	return c.DiagnosticOpt(DiagnosticOptions{Flat: true, Tags: GlobalTags()})
}

// DiagnosticOpt renders with explicit options.
func (c CBOR) DiagnosticOpt(opts DiagnosticOptions) string {
	var sb strings.Builder
	writeDiag(&sb, c, opts, 0)
	return sb.String()
}

func writeDiag(sb *strings.Builder, c CBOR, opts DiagnosticOptions, level int) {
	switch c.kind {
	case KindUnsigned:
		fmt.Fprintf(sb, "%d", c.num)
	case KindNegative:
		// -1-n, printed without overflow for the full range.
		if c.num == math.MaxUint64 {
			sb.WriteString("-18446744073709551616")
		} else {
			fmt.Fprintf(sb, "-%d", c.num+1)
		}
	case KindBytes:
		fmt.Fprintf(sb, "h'%s'", hex.EncodeToString(c.byts))
	case KindText:
		sb.WriteString(strconv.Quote(string(c.byts)))
	case KindSimple:
		switch c.num {
		case simpleTrue:
			sb.WriteString("true")
		case simpleFalse:
			sb.WriteString("false")
		default:
			sb.WriteString("null")
		}
	case KindFloat:
		writeDiagFloat(sb, c.f)
	case KindArray:
		writeDiagSeq(sb, opts, level, "[", "]", len(c.arr), func(i int, pad string) {
			sb.WriteString(pad)
			writeDiag(sb, c.arr[i], opts, level+1)
		})
	case KindMap:
		n := 0
		if c.m != nil {
			n = len(c.m.entries)
		}
		writeDiagSeq(sb, opts, level, "{", "}", n, func(i int, pad string) {
			e := c.m.entries[i]
			sb.WriteString(pad)
			writeDiag(sb, e.key, opts, level+1)
			sb.WriteString(": ")
			writeDiag(sb, e.value, opts, level+1)
		})
	case KindTagged:
		name := fmt.Sprintf("%d", c.num)
		if opts.Tags != nil {
			if f := opts.Tags.summarizer(c.num); f != nil {
				if summary, err := f(c.arr[0]); err == nil {
					fmt.Fprintf(sb, "%s(%s)", opts.Tags.Name(c.num), summary)
					return
				}
			}
			name = opts.Tags.Name(c.num)
		}
		fmt.Fprintf(sb, "%s(", name)
		writeDiag(sb, c.arr[0], opts, level)
		sb.WriteString(")")
	}
}

func writeDiagFloat(sb *strings.Builder, f float64) {
	switch {
	case math.IsNaN(f):
		sb.WriteString("NaN")
	case math.IsInf(f, 1):
		sb.WriteString("Infinity")
	case math.IsInf(f, -1):
		sb.WriteString("-Infinity")
	default:
		s := strconv.FormatFloat(f, 'g', -1, 64)
		// A reduced value never reaches here as an integer string, but the
		// notation still needs a decimal point to read back as a float.
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		sb.WriteString(s)
	}
}

func writeDiagSeq(sb *strings.Builder, opts DiagnosticOptions, level int, open, close string, n int, item func(i int, pad string)) {
	if n == 0 {
		sb.WriteString(open + close)
		return
	}
	if opts.Flat {
		sb.WriteString(open)
		for i := range n {
			if i > 0 {
				sb.WriteString(", ")
			}
			item(i, "")
		}
		sb.WriteString(close)
		return
	}
	indent := strings.Repeat("    ", level+1)
	sb.WriteString(open + "\n")
	for i := range n {
		item(i, indent)
		if i < n-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(strings.Repeat("    ", level) + close)
}
