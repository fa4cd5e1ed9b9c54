// Package bytecode models a compiled contract's bytecode as an ordered
// sequence of parts: executable regions interleaved with the CBOR metadata
// tail compilers append.
package bytecode

import "github.com/txpull/verifier/metadata"

// Part is a tagged variant of a bytecode region: either Main (executable,
// must compare byte-identical) or Metadata (the CBOR tail, compared
// semantically by the verifier package). Implementations are MainPart and
// MetadataPart.
type Part interface {
	// Size returns the number of raw bytes this part occupies in its parent
	// bytecode.
	Size() int

	isPart()
}

// MainPart is an executable region of bytecode.
type MainPart struct {
	Raw []byte
}

func (p MainPart) Size() int { return len(p.Raw) }
func (MainPart) isPart()     {}

// MetadataPart is the CBOR-encoded metadata blob plus its 2-byte big-endian
// length suffix.
type MetadataPart struct {
	Metadata metadata.Hash

	// RawCBOR is the undecoded CBOR encoding, exactly EncodedLength bytes.
	// Kept alongside the decoded Metadata so the part can reproduce its
	// parent bytecode byte-for-byte.
	RawCBOR []byte

	// LengthRaw is the 2-byte big-endian length suffix as it appeared in the
	// bytecode.
	LengthRaw [2]byte

	// EncodedLength is the number of bytes the CBOR encoding occupied,
	// excluding the 2-byte suffix.
	EncodedLength int
}

func (p MetadataPart) Size() int { return p.EncodedLength + 2 }
func (MetadataPart) isPart()     {}
