package bytecode

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/txpull/verifier/metadata"
)

// LocalBytecode is the paired, structured output of parsing one compiled
// contract's creation and deployed bytecode into an ordered sequence of
// Parts. It is created once per candidate contract per compilation, is
// immutable thereafter, and is discarded once the comparator finishes with
// it.
type LocalBytecode struct {
	CreationTxInput      []byte
	CreationTxInputParts []Part

	DeployedBytecode      []byte
	DeployedBytecodeParts []Part
}

// NewLocalBytecode hex-decodes creationHex/deployedHex and splits each into
// an ordered sequence of Parts, using metadataOffset (the byte offset, within
// the decoded bytecode, at which the CBOR metadata tail begins) reported by
// the compiler. A negative offset means the compiler reported no metadata
// tail for that bytecode (pre-0.6 compilers, or metadata disabled), in which
// case the whole bytecode is a single Main part.
//
// Returns ErrEmptyCreationTxInput / ErrEmptyDeployedBytecode when the
// corresponding bytecode is empty (the contract is abstract), or
// *InvalidCreationTxInputError / *InvalidDeployedBytecodeError when the
// bytecode still contains an unresolved library link placeholder, is not
// valid hex, or has a malformed metadata tail at the given offset.
func NewLocalBytecode(
	creationHex string, creationMetadataOffset int,
	deployedHex string, deployedMetadataOffset int,
) (*LocalBytecode, error) {
	creationHex = strings.TrimPrefix(creationHex, "0x")
	deployedHex = strings.TrimPrefix(deployedHex, "0x")

	if creationHex == "" {
		return nil, ErrEmptyCreationTxInput
	}
	if deployedHex == "" {
		return nil, ErrEmptyDeployedBytecode
	}

	if reason, found := unresolvedLibraryPlaceholder(creationHex); found {
		return nil, &InvalidCreationTxInputError{Reason: reason}
	}
	if reason, found := unresolvedLibraryPlaceholder(deployedHex); found {
		return nil, &InvalidDeployedBytecodeError{Reason: reason}
	}

	creationRaw, err := hex.DecodeString(creationHex)
	if err != nil {
		return nil, &InvalidCreationTxInputError{Reason: err.Error()}
	}
	deployedRaw, err := hex.DecodeString(deployedHex)
	if err != nil {
		return nil, &InvalidDeployedBytecodeError{Reason: err.Error()}
	}

	creationParts, err := splitParts(creationRaw, creationMetadataOffset)
	if err != nil {
		return nil, &InvalidCreationTxInputError{Reason: err.Error()}
	}
	deployedParts, err := splitParts(deployedRaw, deployedMetadataOffset)
	if err != nil {
		return nil, &InvalidDeployedBytecodeError{Reason: err.Error()}
	}

	return &LocalBytecode{
		CreationTxInput:       creationRaw,
		CreationTxInputParts:  creationParts,
		DeployedBytecode:      deployedRaw,
		DeployedBytecodeParts: deployedParts,
	}, nil
}

// splitParts splits raw into an ordered sequence of Parts: a Main part
// covering everything before metadataOffset, followed by exactly one
// Metadata part covering the CBOR tail and its length suffix, when
// metadataOffset is within range. A negative or out-of-range offset yields a
// single Main part covering the entire input.
func splitParts(raw []byte, metadataOffset int) ([]Part, error) {
	if metadataOffset < 0 || metadataOffset >= len(raw) {
		return []Part{MainPart{Raw: raw}}, nil
	}

	hash, consumed, err := metadata.Decode(raw[metadataOffset:])
	if err != nil {
		return nil, fmt.Errorf("parse metadata tail at offset %d: %w", metadataOffset, err)
	}

	suffixStart := metadataOffset + consumed
	suffixEnd := suffixStart + 2
	if suffixEnd != len(raw) {
		return nil, fmt.Errorf("metadata tail at offset %d does not reach the end of the bytecode (consumed %d bytes, %d remain)",
			metadataOffset, consumed, len(raw)-suffixEnd)
	}

	var lengthRaw [2]byte
	copy(lengthRaw[:], raw[suffixStart:suffixEnd])
	if int(lengthRaw[0])<<8|int(lengthRaw[1]) != consumed {
		return nil, fmt.Errorf("metadata length suffix mismatch: suffix says %d, cbor consumed %d",
			int(lengthRaw[0])<<8|int(lengthRaw[1]), consumed)
	}

	parts := []Part{
		MainPart{Raw: raw[:metadataOffset]},
		MetadataPart{
			Metadata:      hash,
			RawCBOR:       append([]byte(nil), raw[metadataOffset:suffixStart]...),
			LengthRaw:     lengthRaw,
			EncodedLength: consumed,
		},
	}
	return parts, nil
}
