package compiler

import "github.com/txpull/verifier/metadata"

// locateMetadataOffset finds the byte offset at which a trailing CBOR
// metadata blob begins in raw, by walking backward from the end and
// attempting to decode a CBOR map that reaches exactly to raw's end once its
// 2-byte length suffix is accounted for.
//
// This generalizes crytic-medusa's approach of searching for a fixed set of
// known CBOR prefixes ("bzzr0", "bzzr1", "ipfs"): rather than matching a
// prefix byte pattern, it asks the decoder itself whether a valid,
// self-consistent metadata tail starts here, so any forward-compatible key
// the compiler emits is still recognized.
//
// Returns -1 if no such tail exists (pre-0.6 compilers, or metadata
// disabled).
func locateMetadataOffset(raw []byte) int {
	// Metadata tails are small (tens to low hundreds of bytes); scanning
	// backward from the end finds them in a handful of iterations in
	// practice, since every other offset fails cbor's type check almost
	// immediately.
	for offset := len(raw) - 1; offset >= 0; offset-- {
		_, consumed, err := metadata.Decode(raw[offset:])
		if err != nil {
			continue
		}
		if offset+consumed+2 == len(raw) {
			return offset
		}
	}
	return -1
}
