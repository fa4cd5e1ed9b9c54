// Package metadata decodes the CBOR-encoded metadata blob the Solidity and
// Yul compilers append to the end of creation and deployed bytecode.
//
// Reference: https://docs.soliditylang.org/en/latest/metadata.html
package metadata

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Hash is the decoded CBOR metadata map. The only field the comparator
// inspects for equality is Solc; IPFS and Bzzr1 are preserved but never
// compared, since non-offending tooling routinely strips or rewrites them.
type Hash struct {
	// Solc is the compiler-version tag, typically 3 bytes (major.minor.patch).
	Solc []byte

	// IPFS and Bzzr1 carry the source/metadata content hash under the
	// corresponding encoding, when present.
	IPFS  []byte
	Bzzr1 []byte

	// Raw holds every key the compiler emitted, including ones this type
	// doesn't special-case, so unknown keys are tolerated rather than
	// rejected.
	Raw map[string]interface{}
}

// Decode reads a single CBOR map from the start of input and returns the
// decoded Hash along with the exact number of bytes the CBOR encoding
// occupied.
//
// It does not read the 2-byte length suffix that follows the blob on-chain;
// that suffix isn't part of the CBOR encoding itself and validating it is the
// comparator's job (it needs both the local and remote consumed lengths to
// compare them).
func Decode(input []byte) (Hash, int, error) {
	reader := bytes.NewReader(input)
	dec := cbor.NewDecoder(reader)

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return Hash{}, 0, fmt.Errorf("decode cbor metadata: %w", err)
	}

	hash := Hash{Raw: raw}

	if v, ok := raw["solc"]; ok {
		b, err := asBytes(v)
		if err != nil {
			return Hash{}, 0, fmt.Errorf("decode cbor metadata: solc field: %w", err)
		}
		hash.Solc = b
	}
	if v, ok := raw["ipfs"]; ok {
		if b, err := asBytes(v); err == nil {
			hash.IPFS = b
		}
	}
	if v, ok := raw["bzzr1"]; ok {
		if b, err := asBytes(v); err == nil {
			hash.Bzzr1 = b
		}
	}

	return hash, dec.NumBytesRead(), nil
}

func asBytes(v interface{}) ([]byte, error) {
	b, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("expected a byte string, got %T", v)
	}
	return b, nil
}
