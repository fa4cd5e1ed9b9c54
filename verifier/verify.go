package verifier

import (
	"errors"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/txpull/verifier/bytecode"
	"github.com/txpull/verifier/compiler"
)

// VerificationSuccess is returned the moment any candidate contract in a
// compiler.Output compares equal to the Verifier's remote bytecode. Only one
// is ever produced per Verify call, since a matching contract is proof
// enough that the supplied source reproduces the on-chain bytes.
type VerificationSuccess struct {
	FilePath     string
	ContractName string
	ABI          abi.ABI
	ConstructorArgs []byte
}

// Verifier owns the on-chain bytes a compiler.Output is checked against. One
// Verifier serves exactly one verification request; it holds no compiler
// state and can be reused across Verify calls against different outputs.
type Verifier struct {
	remote *bytecode.RemoteBytecode
}

// New builds a Verifier from the caller-supplied on-chain creation
// transaction input and deployed bytecode, both optionally "0x"-prefixed.
func New(creationTxInput, deployedBytecode string) (*Verifier, error) {
	remote, err := bytecode.NewRemoteBytecode(creationTxInput, deployedBytecode)
	if err != nil {
		return nil, err
	}
	return &Verifier{remote: remote}, nil
}

// Verify walks every contract in output (in file-path, then contract-name
// order, so results are reproducible), comparing each against the Verifier's
// remote bytecode. It returns the first contract that matches along with its
// ABI and extracted constructor arguments, or every per-contract failure
// reason if none did.
//
// outputModified is a second compile of the same sources with an innocuous
// trailing comment appended to each file. compare parses the matching
// contract from it and rejects the candidate with an InternalError when the
// two compiles split the creation or deployed bytecode into a different
// number of parts; only the parts of output are compared against the remote
// bytes, and the bytes of the modified compile are not compared at all.
func (v *Verifier) Verify(output, outputModified compiler.Output) (*VerificationSuccess, []Error) {
	var errs []Error

	for _, path := range sortedKeys(output.Contracts) {
		contracts := output.Contracts[path]
		modifiedContracts, pathOK := outputModified.Contracts[path]

		for _, name := range sortedKeys(contracts) {
			contract := contracts[name]

			if !pathOK {
				errs = append(errs, Error{FilePath: path, ContractName: name,
					Kind: InternalError{Reason: "file not present in modified compiler output"}})
				continue
			}
			modifiedContract, ok := modifiedContracts[name]
			if !ok {
				errs = append(errs, Error{FilePath: path, ContractName: name,
					Kind: InternalError{Reason: "contract not present in modified compiler output"}})
				continue
			}

			contractABI, ctorArgs, kind := v.compare(contract, modifiedContract)
			if kind == nil {
				return &VerificationSuccess{
					FilePath:        path,
					ContractName:    name,
					ABI:             *contractABI,
					ConstructorArgs: ctorArgs,
				}, nil
			}
			errs = append(errs, Error{FilePath: path, ContractName: name, Kind: kind})
		}
	}

	return nil, errs
}

// compare runs one candidate contract through the full comparison: bytecode
// parsing (of both creation and deployed bytecode, so the metadata-boundary
// cross-check against the modified compile can run on each), creation
// transaction input part comparison against the remote bytes, and
// constructor argument extraction. Deployed bytecode is never compared
// against the remote bytes directly: the creation input is the spec's actual
// verification criterion, and contracts using immutable variables legitimately
// have deployed bytecode that differs from the compiler's reported deployed
// bytecode at the immutable's storage slot. A nil Kind means contract matches
// the Verifier's remote bytes.
func (v *Verifier) compare(contract, contractModified compiler.Contract) (*abi.ABI, []byte, Kind) {
	if contract.ABI == nil {
		return nil, nil, InternalError{Reason: "compiler output has no ABI for this contract"}
	}

	local, err := bytecode.NewLocalBytecode(
		contract.CreationBytecodeHex, contract.CreationMetadataOffset,
		contract.DeployedBytecodeHex, contract.DeployedMetadataOffset,
	)
	if err != nil {
		return nil, nil, mapBytecodeError(err)
	}

	localModified, err := bytecode.NewLocalBytecode(
		contractModified.CreationBytecodeHex, contractModified.CreationMetadataOffset,
		contractModified.DeployedBytecodeHex, contractModified.DeployedMetadataOffset,
	)
	if err != nil {
		return nil, nil, InternalError{Reason: "modified compile: " + err.Error()}
	}
	if len(local.CreationTxInputParts) != len(localModified.CreationTxInputParts) ||
		len(local.DeployedBytecodeParts) != len(localModified.DeployedBytecodeParts) {
		return nil, nil, InternalError{Reason: "metadata boundaries disagree between the two compiles"}
	}

	if kind := compareCreationTxInputs(v.remote, local); kind != nil {
		return nil, nil, kind
	}

	ctorArgs, kind := extractConstructorArgs(v.remote.CreationTxInput, local.CreationTxInput, contract.ABI.Constructor)
	if kind != nil {
		return nil, nil, kind
	}

	return contract.ABI, ctorArgs, nil
}

// mapBytecodeError translates a bytecode.NewLocalBytecode error into the
// verification error kind a caller should see for it.
func mapBytecodeError(err error) Kind {
	if errors.Is(err, bytecode.ErrEmptyCreationTxInput) || errors.Is(err, bytecode.ErrEmptyDeployedBytecode) {
		return AbstractContractError{}
	}

	var creationErr *bytecode.InvalidCreationTxInputError
	var deployedErr *bytecode.InvalidDeployedBytecodeError
	if errors.As(err, &creationErr) || errors.As(err, &deployedErr) {
		return LibraryMissedError{}
	}

	return InternalError{Reason: err.Error()}
}
