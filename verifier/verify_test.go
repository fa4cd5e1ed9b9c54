package verifier

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/txpull/verifier/compiler"
)

func fixtureContract(t *testing.T, jsonABI string, creationHex, deployedHex string) compiler.Contract {
	t.Helper()
	parsed := mustABI(t, jsonABI)
	return compiler.Contract{
		ABI:                    &parsed,
		CreationBytecodeHex:    creationHex,
		DeployedBytecodeHex:    deployedHex,
		CreationMetadataOffset: len(fixtureCreationMain) / 2,
		DeployedMetadataOffset: len(fixtureDeployedMain) / 2,
	}
}

func singleContractOutput(path, name string, c compiler.Contract) compiler.Output {
	return compiler.Output{Contracts: map[string]map[string]compiler.Contract{path: {name: c}}}
}

func TestVerify_Success(t *testing.T) {
	creation := fixtureCreationMain + fixtureMetadataHash
	deployed := fixtureDeployedMain + fixtureMetadataHash

	contract := fixtureContract(t, fixtureABIWithConstructor, creation, deployed)
	output := singleContractOutput("A.sol", "Owned", contract)

	v, err := New("0x"+creation+fixtureCtorArgs, "0x"+deployed)
	require.NoError(t, err)

	success, errs := v.Verify(output, output)
	require.Nil(t, errs)
	require.NotNil(t, success)

	assert.Equal(t, "A.sol", success.FilePath)
	assert.Equal(t, "Owned", success.ContractName)

	wantArgs, err := hex.DecodeString(fixtureCtorArgs)
	require.NoError(t, err)
	assert.Equal(t, wantArgs, success.ConstructorArgs)
}

func TestVerify_BytecodeMismatch(t *testing.T) {
	creation := fixtureCreationMain + fixtureMetadataHash
	deployed := fixtureDeployedMain + fixtureMetadataHash

	contract := fixtureContract(t, fixtureABIWithConstructor, creation, deployed)
	output := singleContractOutput("A.sol", "Owned", contract)

	raw, err := hex.DecodeString(creation)
	require.NoError(t, err)
	raw[10] ^= 0xFF
	remoteCreation := hex.EncodeToString(raw)

	v, err := New("0x"+remoteCreation, "0x"+deployed)
	require.NoError(t, err)

	success, errs := v.Verify(output, output)
	assert.Nil(t, success)
	require.Len(t, errs, 1)

	var mismatchErr BytecodeMismatchError
	require.ErrorAs(t, errs[0].Kind, &mismatchErr)
}

func TestVerify_AbstractContract(t *testing.T) {
	contract := fixtureContract(t, fixtureABINoConstructor, "", "")
	output := singleContractOutput("A.sol", "Interfaceish", contract)

	v, err := New("0x"+fixtureCreationMain, "0x"+fixtureDeployedMain)
	require.NoError(t, err)

	success, errs := v.Verify(output, output)
	assert.Nil(t, success)
	require.Len(t, errs, 1)

	var abstractErr AbstractContractError
	require.ErrorAs(t, errs[0].Kind, &abstractErr)
}

func TestVerify_LibraryMissed(t *testing.T) {
	withPlaceholder := fixtureCreationMain[:100] + "__$1234567890abcdef1234567890abcdef12$__" + fixtureCreationMain[100:]
	contract := fixtureContract(t, fixtureABINoConstructor, withPlaceholder, fixtureDeployedMain)
	contract.CreationMetadataOffset = -1
	output := singleContractOutput("A.sol", "UsesLibrary", contract)

	v, err := New("0x"+fixtureCreationMain, "0x"+fixtureDeployedMain)
	require.NoError(t, err)

	success, errs := v.Verify(output, output)
	assert.Nil(t, success)
	require.Len(t, errs, 1)

	var libErr LibraryMissedError
	require.ErrorAs(t, errs[0].Kind, &libErr)
}

func TestVerify_NotFoundInModifiedOutput(t *testing.T) {
	creation := fixtureCreationMain + fixtureMetadataHash
	deployed := fixtureDeployedMain + fixtureMetadataHash

	contract := fixtureContract(t, fixtureABIWithConstructor, creation, deployed)
	output := singleContractOutput("A.sol", "Owned", contract)
	emptyModified := compiler.Output{Contracts: map[string]map[string]compiler.Contract{}}

	v, err := New("0x"+creation+fixtureCtorArgs, "0x"+deployed)
	require.NoError(t, err)

	success, errs := v.Verify(output, emptyModified)
	assert.Nil(t, success)
	require.Len(t, errs, 1)

	var internalErr InternalError
	require.ErrorAs(t, errs[0].Kind, &internalErr)
}

func TestVerify_MissingABI(t *testing.T) {
	creation := fixtureCreationMain + fixtureMetadataHash
	deployed := fixtureDeployedMain + fixtureMetadataHash

	contract := compiler.Contract{
		ABI:                    nil,
		CreationBytecodeHex:    creation,
		DeployedBytecodeHex:    deployed,
		CreationMetadataOffset: len(fixtureCreationMain) / 2,
		DeployedMetadataOffset: len(fixtureDeployedMain) / 2,
	}
	output := singleContractOutput("A.sol", "Owned", contract)

	v, err := New("0x"+creation, "0x"+deployed)
	require.NoError(t, err)

	success, errs := v.Verify(output, output)
	assert.Nil(t, success)
	require.Len(t, errs, 1)

	var internalErr InternalError
	require.ErrorAs(t, errs[0].Kind, &internalErr)
}
