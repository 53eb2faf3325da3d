package dcbor

import (
	"math"
	"testing"

	"gotest.tools/v3/assert"
)

func TestDiagnosticFlat(t *testing.T) {
	m := NewMap()
	m.Insert(NewUint(1), NewUint(2))
	tests := []struct {
		name string
		v    CBOR
		want string
	}{
		{"uint", NewUint(42), "42"},
		{"nint", NewInt(-42), "-42"},
		{"min negative", NewNegative(math.MaxUint64), "-18446744073709551616"},
		{"text", NewText("hi"), `"hi"`},
		{"bytes", NewBytes([]byte{0xde, 0xad}), "h'dead'"},
		{"float", NewFloat(1.5), "1.5"},
		{"nan", NewFloat(math.NaN()), "NaN"},
		{"inf", NewFloat(math.Inf(-1)), "-Infinity"},
		{"bool", True, "true"},
		{"null", Null, "null"},
		{"empty array", NewArray(), "[]"},
		{"array", NewArray(NewUint(1), NewText("a")), `[1, "a"]`},
		{"map", m.CBOR(), "{1: 2}"},
		{"tag", NewTagged(37, NewBytes([]byte{1})), "37(h'01')"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.DiagnosticOpt(DiagnosticOptions{Flat: true}))
		})
	}
}

func TestDiagnosticTagNames(t *testing.T) {
	tags := NewTagsStore(Tag{Number: 40001, Name: "digest"})
	v := NewTagged(40001, NewBytes([]byte{0xab}))
	got := v.DiagnosticOpt(DiagnosticOptions{Flat: true, Tags: tags})
	assert.Equal(t, "digest(h'ab')", got)

	tags.SetSummarizer(40001, func(c CBOR) (string, error) {
		return "Digest(ab)", nil
	})
	got = v.DiagnosticOpt(DiagnosticOptions{Flat: true, Tags: tags})
	assert.Equal(t, "digest(Digest(ab))", got)
}

func TestParseDiagnosticRoundTrip(t *testing.T) {
	inputs := []string{
		"42",
		"-42",
		`"hello"`,
		"h'00ff'",
		"1.5",
		"true",
		"false",
		"null",
		"NaN",
		"Infinity",
		"-Infinity",
		`[1, "a", h'02']`,
		"{1: 2}",
		"37(h'0102')",
		"[]",
		"{}",
	}
	for _, in := range inputs {
		v, err := ParseDiagnostic(in)
		assert.NilError(t, err, "parse %q", in)
		back, err := ParseDiagnostic(v.DiagnosticFlat())
		assert.NilError(t, err)
		assert.Assert(t, v.Equal(back), "round trip %q", in)
	}
}

func TestParseDiagnosticLenient(t *testing.T) {
	// Whitespace, comments and trailing commas are tolerated; the result
	// is canonical regardless.
	v, err := ParseDiagnostic("{ \"b\" : 2 , /note/ \"a\" : 1 , }")
	assert.NilError(t, err)
	w, err := ParseDiagnostic(`{"a": 1, "b": 2}`)
	assert.NilError(t, err)
	assert.Assert(t, v.Equal(w))

	// Floats that name integers parse to integers.
	v, err = ParseDiagnostic("1.0")
	assert.NilError(t, err)
	assert.Assert(t, v.Equal(NewUint(1)))
}

func TestParseDiagnosticErrors(t *testing.T) {
	for _, in := range []string{"", "[1", `"unterminated`, "h'0g'", "bogus", "1 2"} {
		_, err := ParseDiagnostic(in)
		assert.ErrorIs(t, err, ErrDiagnostic)
	}
}
