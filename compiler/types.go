// Package compiler invokes the solc binary (in both its Solidity and Yul
// "strict assembly" modes) and renders its output into the shape the
// bytecode, metadata, and verifier packages operate on.
//
// This is the "external collaborator" spec.md calls compiler invocation and
// input construction; it lives in its own package so the core verifier
// depends only on the small Compiler capability interface, never on solc
// itself.
package compiler

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// BytecodeHash selects which content hash (if any) the compiler embeds in
// its CBOR metadata tail. Candidates are tried in probability order by the
// settings-metadata sweep (package verifier).
type BytecodeHash int

const (
	BytecodeHashIPFS BytecodeHash = iota
	BytecodeHashNone
	BytecodeHashBzzr1
)

// String renders the setting the way solc's standard-json input expects it.
func (h BytecodeHash) String() string {
	switch h {
	case BytecodeHashIPFS:
		return "ipfs"
	case BytecodeHashNone:
		return "none"
	case BytecodeHashBzzr1:
		return "bzzr1"
	default:
		return "ipfs"
	}
}

// Input is the language-agnostic compiler input: source files, EVM target,
// optimizer settings, library addresses, and the metadata-hash setting the
// sweep mutates between rounds. Construction from user-supplied parameters is
// out of this package's scope (spec.md §1); Input is the boundary that
// construction feeds.
type Input struct {
	// Sources maps file path to file content. A Yul input has exactly one
	// entry; a Solidity multi-file input may have several.
	Sources map[string]string

	EVMVersion       string
	OptimizerEnabled bool
	OptimizerRuns    int

	// Libraries maps file path -> library name -> address. Since the caller
	// usually doesn't know which file declares which library, input
	// construction is expected to list every library under every file, the
	// way the reference verifier's MultiFileContent conversion does.
	Libraries map[string]map[string]string

	// Metadata selects the bytecode-hash setting. Nil means "let the
	// compiler default" (used for the <0.6.0 sweep, which has no metadata
	// setting at all).
	Metadata *BytecodeHash
}

// Contract is one compiled contract: its ABI, its creation/deployed
// bytecode (as hex, which may still carry unresolved library placeholders),
// and the byte offset within each at which the CBOR metadata tail begins.
// A negative offset means no metadata tail was found for that bytecode.
type Contract struct {
	ABI *abi.ABI

	CreationBytecodeHex string
	DeployedBytecodeHex string

	CreationMetadataOffset int
	DeployedMetadataOffset int
}

// Output maps file path -> contract name -> Contract, mirroring solc's
// standard-json "contracts" section.
type Output struct {
	Contracts map[string]map[string]Contract
}

// Compiler is the capability the verifier package depends on: compile an
// Input, get an Output back. SolidityCompiler and YulCompiler are the two
// concrete implementations, one per supported language flavor (spec.md §1's
// "general high-level EVM language" and "low-level EVM dialect").
type Compiler interface {
	Compile(ctx context.Context, input Input) (Output, error)
}
