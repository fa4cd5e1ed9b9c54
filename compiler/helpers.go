package compiler

import "encoding/hex"

// hexDecodeLenient decodes s (no "0x" prefix expected, solc's standard-json
// output never adds one) and returns an error if it contains non-hex
// characters, which happens when the bytecode still carries an unresolved
// library link placeholder.
func hexDecodeLenient(s string) ([]byte, error) {
	return hex.DecodeString(s)
}
