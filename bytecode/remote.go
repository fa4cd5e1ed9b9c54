package bytecode

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// RemoteBytecode is the opaque, caller-supplied bytes the verifier compares
// locally compiled output against: the on-chain creation transaction input
// and deployed runtime bytecode. The verifier exclusively owns its
// RemoteBytecode; it is immutable for the lifetime of a verification request.
type RemoteBytecode struct {
	CreationTxInput  []byte
	DeployedBytecode []byte
}

// NewRemoteBytecode hex-decodes creationTxInput and deployedBytecode (each
// accepting an optional "0x" prefix) and rejects either if it decodes to an
// empty byte string. The creation input may legitimately be longer than the
// locally compiled creation code; the trailing bytes are constructor
// arguments (see verifier.extractConstructorArgs).
func NewRemoteBytecode(creationTxInput, deployedBytecode string) (*RemoteBytecode, error) {
	creation, err := decodeHex(creationTxInput)
	if err != nil {
		return nil, &InvalidCreationTxInputError{Reason: err.Error()}
	}
	if len(creation) == 0 {
		return nil, ErrEmptyCreationTxInput
	}

	deployed, err := decodeHex(deployedBytecode)
	if err != nil {
		return nil, &InvalidDeployedBytecodeError{Reason: err.Error()}
	}
	if len(deployed) == 0 {
		return nil, ErrEmptyDeployedBytecode
	}

	return &RemoteBytecode{
		CreationTxInput:  creation,
		DeployedBytecode: deployed,
	}, nil
}

func decodeHex(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}
