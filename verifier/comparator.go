package verifier

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/txpull/verifier/bytecode"
	"github.com/txpull/verifier/metadata"
	"github.com/txpull/verifier/mismatch"
)

// compareCreationTxInputs is the entry point for comparing a contract's
// creation transaction input: remote.CreationTxInput must be at least as
// long as local.CreationTxInput (the excess, if any, is constructor
// arguments), and every part of local.CreationTxInputParts must agree with
// the corresponding remote bytes.
func compareCreationTxInputs(remote *bytecode.RemoteBytecode, local *bytecode.LocalBytecode) Kind {
	if len(remote.CreationTxInput) < len(local.CreationTxInput) {
		return BytecodeLengthMismatchError{
			Part: mismatch.New(len(local.CreationTxInput), len(remote.CreationTxInput)),
			Raw:  mismatch.New(local.CreationTxInput, remote.CreationTxInput),
		}
	}
	return compareBytecodeParts(remote.CreationTxInput, local.CreationTxInput, local.CreationTxInputParts)
}

// compareBytecodeParts walks localRaw's parts in order against the
// corresponding region of remoteRaw: Main parts must match byte-for-byte,
// Metadata parts are decoded independently on both sides and only their solc
// compiler-version tag is compared (the content hash they carry is never
// compared, since unrelated tooling routinely rewrites it without changing
// the compiled code).
func compareBytecodeParts(remoteRaw, localRaw []byte, parts []bytecode.Part) Kind {
	offset := 0
	for _, part := range parts {
		switch p := part.(type) {
		case bytecode.MainPart:
			end := offset + len(p.Raw)
			if end > len(remoteRaw) {
				return BytecodeMismatchError{
					Part: mismatch.New(p.Raw, remoteRaw[min(offset, len(remoteRaw)):]),
					Raw:  mismatch.New(localRaw, remoteRaw),
				}
			}
			remoteSlice := remoteRaw[offset:end]
			if !bytes.Equal(p.Raw, remoteSlice) {
				return BytecodeMismatchError{
					Part: mismatch.New(p.Raw, append([]byte(nil), remoteSlice...)),
					Raw:  mismatch.New(localRaw, remoteRaw),
				}
			}

		case bytecode.MetadataPart:
			if offset >= len(remoteRaw) {
				return MetadataParseError{Reason: "remote bytecode ends before the metadata tail begins"}
			}
			remoteHash, consumed, err := metadata.Decode(remoteRaw[offset:])
			if err != nil {
				return MetadataParseError{Reason: err.Error()}
			}

			suffixStart := offset + consumed
			suffixEnd := suffixStart + 2
			if suffixEnd > len(remoteRaw) {
				return MetadataParseError{Reason: "remote metadata tail is truncated"}
			}
			if remoteRaw[suffixStart] != p.LengthRaw[0] || remoteRaw[suffixStart+1] != p.LengthRaw[1] {
				return MetadataParseError{Reason: "remote metadata length suffix disagrees with the decoded CBOR length"}
			}

			if !bytes.Equal(p.Metadata.Solc, remoteHash.Solc) {
				return CompilerVersionMismatchError{
					Mismatch: mismatch.New(solcTagString(p.Metadata.Solc), solcTagString(remoteHash.Solc)),
				}
			}
		}

		offset += part.Size()
	}

	return nil
}

func solcTagString(tag []byte) string {
	if tag == nil {
		return ""
	}
	return hexutil.Encode(tag)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
