package verifier

import "github.com/ethereum/go-ethereum/accounts/abi"

// extractConstructorArgs returns the ABI-encoded constructor arguments
// trailing remoteCreation once localCreation's bytes are accounted for, or a
// Kind describing why that tail is invalid: present but unexpected, expected
// but absent, or present and undecodable against ctor.
func extractConstructorArgs(remoteCreation, localCreation []byte, ctor abi.Method) ([]byte, Kind) {
	encoded := remoteCreation[len(localCreation):]
	expectsArgs := len(ctor.Inputs) > 0

	switch {
	case len(encoded) == 0 && !expectsArgs:
		return nil, nil

	case len(encoded) == 0 && expectsArgs:
		return nil, InvalidConstructorArgumentsError{Encoded: encoded}

	case len(encoded) > 0 && !expectsArgs:
		return nil, InvalidConstructorArgumentsError{Encoded: encoded}

	default:
		if _, err := ctor.Inputs.UnpackValues(encoded); err != nil {
			return nil, InvalidConstructorArgumentsError{Encoded: encoded}
		}
		return encoded, nil
	}
}
