package bytecode

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixtures below are lifted from the reference verifier's test suite: a
// minimal ownable-style contract compiled with solc 0.8.14, its CBOR
// metadata tail, and 32 bytes of ABI-encoded constructor arguments.
const (
	fixtureCreationMain = "608060405234801561001057600080fd5b5060405161022038038061022083398101604081905261002f91610074565b600080546001600160a01b0319163390811782556040519091907f342827c97908e5e2f71151c08502a66d44b6f758e3ac2f1de95f02eb95f0a735908290a35061008d565b60006020828403121561008657600080fd5b5051919050565b6101848061009c6000396000f3fe608060405234801561001057600080fd5b50600436106100365760003560e01c8063893d20e81461003b578063a6f9dae11461005a575b600080fd5b600054604080516001600160a01b039092168252519081900360200190f35b61006d61006836600461011e565b61006f565b005b6000546001600160a01b031633146100c35760405162461bcd60e51b815260206004820152601360248201527221b0b63632b91034b9903737ba1037bbb732b960691b604482015260640160405180910390fd5b600080546040516001600160a01b03808516939216917f342827c97908e5e2f71151c08502a66d44b6f758e3ac2f1de95f02eb95f0a73591a3600080546001600160a01b0319166001600160a01b0392909216919091179055565b60006020828403121561013057600080fd5b81356001600160a01b038116811461014757600080fd5b939250505056fe"
	fixtureDeployedMain  = "608060405234801561001057600080fd5b50600436106100365760003560e01c8063893d20e81461003b578063a6f9dae11461005a575b600080fd5b600054604080516001600160a01b039092168252519081900360200190f35b61006d61006836600461011e565b61006f565b005b6000546001600160a01b031633146100c35760405162461bcd60e51b815260206004820152601360248201527221b0b63632b91034b9903737ba1037bbb732b960691b604482015260640160405180910390fd5b600080546040516001600160a01b03808516939216917f342827c97908e5e2f71151c08502a66d44b6f758e3ac2f1de95f02eb95f0a73591a3600080546001600160a01b0319166001600160a01b0392909216919091179055565b60006020828403121561013057600080fd5b81356001600160a01b038116811461014757600080fd5b939250505056fe"
	fixtureMetadataHash  = "a2646970667358221220eb23ce2c13ea8739368f952f6c6a4b1f0623d147d2a19b6d4d26a61ab03fcd3e64736f6c634300080e0033"
	fixtureCtorArgs      = "0000000000000000000000000000000000000000000000000000000000000fff"
)

func TestNewLocalBytecode_ParseRoundTrip(t *testing.T) {
	tAssert := assert.New(t)

	creationHex := fixtureCreationMain + fixtureMetadataHash
	deployedHex := fixtureDeployedMain + fixtureMetadataHash

	lb, err := NewLocalBytecode(
		creationHex, len(fixtureCreationMain)/2,
		deployedHex, len(fixtureDeployedMain)/2,
	)
	require.NoError(t, err)

	tAssert.Equal(reconstruct(lb.CreationTxInputParts), lb.CreationTxInput)
	tAssert.Equal(reconstruct(lb.DeployedBytecodeParts), lb.DeployedBytecode)

	require.Len(t, lb.CreationTxInputParts, 2)
	meta, ok := lb.CreationTxInputParts[1].(MetadataPart)
	require.True(t, ok)
	tAssert.Equal([]byte{0x00, 0x08, 0x0e}, meta.Metadata.Solc)
}

func TestNewLocalBytecode_NoMetadataOffset(t *testing.T) {
	tAssert := assert.New(t)

	lb, err := NewLocalBytecode(fixtureCreationMain, -1, fixtureDeployedMain, -1)
	require.NoError(t, err)

	require.Len(t, lb.CreationTxInputParts, 1)
	_, ok := lb.CreationTxInputParts[0].(MainPart)
	tAssert.True(ok)
}

func TestNewLocalBytecode_EmptyCreationRejected(t *testing.T) {
	_, err := NewLocalBytecode("", -1, fixtureDeployedMain, -1)
	assert.ErrorIs(t, err, ErrEmptyCreationTxInput)
}

func TestNewLocalBytecode_EmptyDeployedRejected(t *testing.T) {
	_, err := NewLocalBytecode(fixtureCreationMain, -1, "", -1)
	assert.ErrorIs(t, err, ErrEmptyDeployedBytecode)
}

func TestNewLocalBytecode_UnresolvedLibraryPlaceholder(t *testing.T) {
	tAssert := assert.New(t)

	withPlaceholder := fixtureCreationMain[:100] + "__$1234567890abcdef1234567890abcdef12$__" + fixtureCreationMain[100:]

	_, err := NewLocalBytecode(withPlaceholder, -1, fixtureDeployedMain, -1)
	require.Error(t, err)

	var invalidErr *InvalidCreationTxInputError
	tAssert.ErrorAs(err, &invalidErr)
}

func TestNewLocalBytecode_MetadataLengthSuffixMismatch(t *testing.T) {
	raw, err := hex.DecodeString(fixtureCreationMain + fixtureMetadataHash)
	require.NoError(t, err)

	// Corrupt the length suffix's last byte.
	raw[len(raw)-1] ^= 0xFF
	corrupted := hex.EncodeToString(raw)

	_, err = NewLocalBytecode(corrupted, len(fixtureCreationMain)/2, fixtureDeployedMain, -1)
	assert.Error(t, err)
}

func TestNewRemoteBytecode(t *testing.T) {
	tAssert := assert.New(t)

	creation := fixtureCreationMain + fixtureMetadataHash + fixtureCtorArgs
	deployed := fixtureDeployedMain + fixtureMetadataHash

	rb, err := NewRemoteBytecode("0x"+creation, deployed)
	require.NoError(t, err)
	tAssert.Equal(len(creation)/2, len(rb.CreationTxInput))
	tAssert.Equal(len(deployed)/2, len(rb.DeployedBytecode))
}

func TestNewRemoteBytecode_EmptyRejected(t *testing.T) {
	_, err := NewRemoteBytecode("", "0x"+fixtureDeployedMain)
	assert.ErrorIs(t, err, ErrEmptyCreationTxInput)

	_, err = NewRemoteBytecode("0x"+fixtureCreationMain, "")
	assert.ErrorIs(t, err, ErrEmptyDeployedBytecode)
}

func reconstruct(parts []Part) []byte {
	var out []byte
	for _, p := range parts {
		switch v := p.(type) {
		case MainPart:
			out = append(out, v.Raw...)
		case MetadataPart:
			out = append(out, v.RawCBOR...)
			out = append(out, v.LengthRaw[0], v.LengthRaw[1])
		}
	}
	return out
}
