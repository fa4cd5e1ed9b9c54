package bytecode

import (
	"errors"
	"fmt"
)

// Init errors returned by NewLocalBytecode / NewRemoteBytecode. The comparator
// (package verifier) maps each of these onto a verifier.Kind.
var (
	// ErrEmptyCreationTxInput is returned when a contract artifact's creation
	// bytecode is empty, meaning the contract is abstract (uninstantiable).
	ErrEmptyCreationTxInput = errors.New("creation tx input is empty")

	// ErrEmptyDeployedBytecode is returned when a contract artifact's
	// deployed bytecode is empty, meaning the contract is abstract.
	ErrEmptyDeployedBytecode = errors.New("deployed bytecode is empty")
)

// InvalidCreationTxInputError indicates the creation bytecode cannot be
// parsed: it still contains an unresolved library link placeholder, it is not
// valid hex, or (for local bytecode) the metadata tail at the reported offset
// is malformed. Reason says which.
type InvalidCreationTxInputError struct {
	Reason string
}

func (e *InvalidCreationTxInputError) Error() string {
	return fmt.Sprintf("invalid creation tx input: %s", e.Reason)
}

// InvalidDeployedBytecodeError indicates the deployed bytecode cannot be
// parsed, for the same reasons as InvalidCreationTxInputError.
type InvalidDeployedBytecodeError struct {
	Reason string
}

func (e *InvalidDeployedBytecodeError) Error() string {
	return fmt.Sprintf("invalid deployed bytecode: %s", e.Reason)
}
