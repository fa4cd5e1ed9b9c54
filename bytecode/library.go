package bytecode

import "regexp"

// librarySolidity05Placeholder matches the placeholder solc >=0.5 emits in
// the *hex string* for an unlinked library: "__$" followed by 34 hex
// characters (the first 17 bytes of keccak256(fully qualified library name))
// followed by "$__". Placeholders live in the hex representation, not the
// decoded bytes, since underscores and '$' aren't valid hex digits.
var librarySolidity05Placeholder = regexp.MustCompile(`__\$[0-9a-fA-F]{34}\$__`)

// librarySolidityLegacyPlaceholder matches the legacy placeholder format used
// before solc 0.5: "__" followed by the (truncated/padded) library name
// followed by "__", 40 characters wide in total.
var librarySolidityLegacyPlaceholder = regexp.MustCompile(`__[0-9a-zA-Z_$]{36}__`)

// unresolvedLibraryPlaceholder reports whether hexBytecode (the compiler's
// raw hex string, not yet decoded) still contains a library link placeholder,
// and if so returns a human-readable reason.
func unresolvedLibraryPlaceholder(hexBytecode string) (reason string, found bool) {
	if m := librarySolidity05Placeholder.FindString(hexBytecode); m != "" {
		return "unresolved library placeholder " + m, true
	}
	if m := librarySolidityLegacyPlaceholder.FindString(hexBytecode); m != "" {
		return "unresolved library placeholder " + m, true
	}
	return "", false
}
