package verifier

import (
	"context"

	"github.com/Masterminds/semver"
	"github.com/txpull/verifier/compiler"
)

// bytecodeHashSweepOrder is the order settings-metadata candidates are tried
// in, chosen by how commonly solc projects leave the default untouched:
// "ipfs" is solc's default from 0.6.0 onward, "none" disables the content
// hash outright, "bzzr1" is the swarm hash tried last. Compilers below 0.6.0
// never use this list (see candidateSettings).
var bytecodeHashSweepOrder = []compiler.BytecodeHash{
	compiler.BytecodeHashIPFS,
	compiler.BytecodeHashNone,
	compiler.BytecodeHashBzzr1,
}

var preMetadataSettingConstraint = mustConstraint("<0.6.0")

func mustConstraint(c string) semver.Constraints {
	parsed, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return parsed
}

// candidateSettings returns the bytecode-hash settings to sweep for a given
// solc version: pre-0.6.0 compilers accept no --metadata-hash setting at
// all, so there is exactly one candidate, a nil one, standing in for "don't
// pass the setting".
func candidateSettings(version *semver.Version) []*compiler.BytecodeHash {
	if version != nil && preMetadataSettingConstraint.Check(version) {
		return []*compiler.BytecodeHash{nil}
	}

	candidates := make([]*compiler.BytecodeHash, len(bytecodeHashSweepOrder))
	for i := range bytecodeHashSweepOrder {
		h := bytecodeHashSweepOrder[i]
		candidates[i] = &h
	}
	return candidates
}

// Sweep tries every plausible settings.metadata.bytecodeHash value for the
// given compiler version, compiling baseInput twice per candidate (once
// as-is, once with an innocuous trailing comment appended to every source
// file) and running Verify against the Verifier built from remote. It
// returns the first success found; if every candidate's Verify call comes
// back with only per-contract errors (no outright compile failure), Sweep
// reports ErrNoMatchingContracts alongside the errors produced by the last
// candidate tried.
func Sweep(
	ctx context.Context,
	compile compiler.Compiler,
	version *semver.Version,
	remoteCreationTxInput, remoteDeployedBytecode string,
	baseInput compiler.Input,
) (*VerificationSuccess, []Error, error) {
	v, err := New(remoteCreationTxInput, remoteDeployedBytecode)
	if err != nil {
		return nil, nil, err
	}

	var lastErrs []Error
	for _, hash := range candidateSettings(version) {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		input := baseInput
		input.Metadata = hash

		output, err := compile.Compile(ctx, input)
		if err != nil {
			return nil, nil, err
		}

		modifiedInput := input
		modifiedInput.Sources = perturbSources(input.Sources)
		outputModified, err := compile.Compile(ctx, modifiedInput)
		if err != nil {
			return nil, nil, err
		}

		success, errs := v.Verify(output, outputModified)
		if success != nil {
			return success, nil, nil
		}
		lastErrs = errs
	}

	return nil, lastErrs, ErrNoMatchingContracts
}

// perturbSources appends a trailing no-op comment to every source file,
// changing the metadata content hash the compiler embeds without touching a
// single executable opcode, so the two compiles it produces differ only in
// their Metadata parts.
func perturbSources(sources map[string]string) map[string]string {
	modified := make(map[string]string, len(sources))
	for path, content := range sources {
		modified[path] = content + "\n// metadata-perturbation\n"
	}
	return modified
}
