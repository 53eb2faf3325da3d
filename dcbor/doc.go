package dcbor

/*

# Deterministic CBOR

This package implements the dCBOR profile: a subset of CBOR (RFC 8949) in
which every value has exactly one valid encoding. Encoding always succeeds
and always produces the canonical form; decoding rejects any input that is
not the canonical encoding of the value it describes.

The canonical-form rules:

 1. Integer heads use the shortest of the 1/2/3/5/9 byte forms.
 2. Strings, arrays and maps are definite-length only.
 3. Map keys are sorted by the byte-lexicographic order of their encoded
    form. Duplicate keys are rejected.
 4. A float whose value is mathematically an integer in [-2^64, 2^64-1]
    is encoded as that integer. Negative zero encodes as 0. NaN encodes
    as the canonical quiet NaN f97e00, and the infinities as f97c00 and
    f9fc00. All other floats encode as binary64.
 5. `undefined`, indefinite-length items and non-minimal heads are
    rejected on decode.

Because of (1)-(5), two values are equal exactly when their encoded bytes
are equal, and Encode/Decode are mutual inverses over the canonical set.

The diagnostic notation printer and parser are for inspection and test
authoring only. The parser is deliberately lenient; its output is always
a canonical value.

*/
