// Package verifier implements the bytecode-equivalence comparator: it walks
// a locally compiled contract's parsed bytecode against the caller-supplied
// remote bytes, extracts constructor arguments once the code matches, and
// sweeps the small set of metadata-hash settings a compiler may have used.
package verifier

import (
	"errors"
	"fmt"

	"github.com/txpull/verifier/mismatch"
)

// ErrNoMatchingContracts is returned by Sweep once every candidate
// metadata-hash setting has been tried without finding a matching contract.
var ErrNoMatchingContracts = errors.New("no matching contracts")

// Kind is a tagged variant of the reasons verification can fail for a single
// candidate contract. Callers discriminate with a type switch or errors.As.
type Kind interface {
	error
	isVerificationErrorKind()
}

// AbstractContractError means the compiled contract has empty bytecode
// (it's an interface-like contract and cannot be deployed).
type AbstractContractError struct{}

func (AbstractContractError) Error() string        { return "the contract is abstract and cannot be deployed" }
func (AbstractContractError) isVerificationErrorKind() {}

// LibraryMissedError means the compiled bytecode still contains one or more
// unlinked library placeholders; the caller must supply library addresses.
type LibraryMissedError struct{}

func (LibraryMissedError) Error() string        { return "bytecode contains unlinked library placeholders" }
func (LibraryMissedError) isVerificationErrorKind() {}

// BytecodeLengthMismatchError means the remote creation input is shorter
// than the locally compiled creation code.
type BytecodeLengthMismatchError struct {
	Part mismatch.Mismatch[int]
	Raw  mismatch.Mismatch[[]byte]
}

func (e BytecodeLengthMismatchError) Error() string {
	return fmt.Sprintf("bytecode length mismatch: expected at least %d bytes, found %d", e.Part.Expected, e.Part.Found)
}
func (BytecodeLengthMismatchError) isVerificationErrorKind() {}

// BytecodeMismatchError means a Main (executable) region disagreed with the
// corresponding remote bytes.
type BytecodeMismatchError struct {
	Part mismatch.Mismatch[[]byte]
	Raw  mismatch.Mismatch[[]byte]
}

func (e BytecodeMismatchError) Error() string {
	return fmt.Sprintf("bytecode mismatch at diverging region (expected %d bytes, found %d bytes)",
		len(e.Part.Expected), len(e.Part.Found))
}
func (BytecodeMismatchError) isVerificationErrorKind() {}

// MetadataParseError means the CBOR metadata tail could not be decoded from
// the remote bytes, or its length suffix disagreed with what was decoded.
type MetadataParseError struct {
	Reason string
}

func (e MetadataParseError) Error() string             { return "metadata parse error: " + e.Reason }
func (MetadataParseError) isVerificationErrorKind() {}

// CompilerVersionMismatchError means the metadata's solc tag differs between
// the local and remote bytecode.
type CompilerVersionMismatchError struct {
	Mismatch mismatch.Mismatch[string]
}

func (e CompilerVersionMismatchError) Error() string {
	return fmt.Sprintf("compiler version mismatch: expected %s, found %s", e.Mismatch.Expected, e.Mismatch.Found)
}
func (CompilerVersionMismatchError) isVerificationErrorKind() {}

// InvalidConstructorArgumentsError means trailing bytes were present but
// unexpected, expected but absent, or present and undecodable against the
// ABI constructor.
type InvalidConstructorArgumentsError struct {
	Encoded []byte
}

func (e InvalidConstructorArgumentsError) Error() string {
	return fmt.Sprintf("invalid constructor arguments (%d bytes)", len(e.Encoded))
}
func (InvalidConstructorArgumentsError) isVerificationErrorKind() {}

// InternalError means a pipeline inconsistency was found (a missing ABI, or
// a contract absent from the modified compiler output). These are logged and
// collected, never swallowed, but are not user-actionable the way the other
// kinds are.
type InternalError struct {
	Reason string
}

func (e InternalError) Error() string             { return "internal error: " + e.Reason }
func (InternalError) isVerificationErrorKind() {}

// Error pairs a Kind with the candidate contract it was produced for.
type Error struct {
	FilePath     string
	ContractName string
	Kind         Kind
}

func (e Error) Error() string {
	if e.ContractName == "" {
		return fmt.Sprintf("%s: %s", e.FilePath, e.Kind)
	}
	return fmt.Sprintf("%s:%s: %s", e.FilePath, e.ContractName, e.Kind)
}

func (e Error) Unwrap() error { return e.Kind }
