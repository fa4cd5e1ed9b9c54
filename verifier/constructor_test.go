package verifier

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustABI(t *testing.T, jsonABI string) abi.ABI {
	t.Helper()
	parsed, err := abi.JSON(bytes.NewReader([]byte(jsonABI)))
	require.NoError(t, err)
	return parsed
}

func TestExtractConstructorArgs_NoneExpectedNoneFound(t *testing.T) {
	parsed := mustABI(t, fixtureABINoConstructor)
	args, kind := extractConstructorArgs([]byte{1, 2, 3}, []byte{1, 2, 3}, parsed.Constructor)
	assert.Nil(t, kind)
	assert.Nil(t, args)
}

func TestExtractConstructorArgs_NoneExpectedSomeFound(t *testing.T) {
	parsed := mustABI(t, fixtureABINoConstructor)
	extra, err := hex.DecodeString(fixtureCtorArgs)
	require.NoError(t, err)

	_, kind := extractConstructorArgs(append([]byte{1, 2, 3}, extra...), []byte{1, 2, 3}, parsed.Constructor)
	require.NotNil(t, kind)
	var argErr InvalidConstructorArgumentsError
	require.ErrorAs(t, kind, &argErr)
}

func TestExtractConstructorArgs_ExpectedNoneFound(t *testing.T) {
	parsed := mustABI(t, fixtureABIWithConstructor)
	_, kind := extractConstructorArgs([]byte{1, 2, 3}, []byte{1, 2, 3}, parsed.Constructor)
	require.NotNil(t, kind)
	var argErr InvalidConstructorArgumentsError
	require.ErrorAs(t, kind, &argErr)
}

func TestExtractConstructorArgs_ExpectedAndDecodable(t *testing.T) {
	parsed := mustABI(t, fixtureABIWithConstructor)
	encoded, err := hex.DecodeString(fixtureCtorArgs)
	require.NoError(t, err)

	args, kind := extractConstructorArgs(append([]byte{1, 2, 3}, encoded...), []byte{1, 2, 3}, parsed.Constructor)
	assert.Nil(t, kind)
	assert.Equal(t, encoded, args)
}

func TestExtractConstructorArgs_ExpectedButUndecodable(t *testing.T) {
	parsed := mustABI(t, fixtureABIWithConstructor)
	// 5 bytes: not a valid 32-byte-word ABI encoding.
	junk := []byte{0xde, 0xad, 0xbe, 0xef, 0x01}

	_, kind := extractConstructorArgs(append([]byte{1, 2, 3}, junk...), []byte{1, 2, 3}, parsed.Constructor)
	require.NotNil(t, kind)
	var argErr InvalidConstructorArgumentsError
	require.ErrorAs(t, kind, &argErr)
}
