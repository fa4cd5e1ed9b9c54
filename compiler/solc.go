package compiler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"go.uber.org/zap"
)

// solcVersionPattern extracts the dotted version triplet out of `solc
// --version`'s output, the same way crytic-medusa's
// GetSystemSolcVersion parses it.
var solcVersionPattern = regexp.MustCompile(`\d+\.\d+\.\d+`)

// SystemSolcVersion shells out to `solc --version` and parses the result.
func SystemSolcVersion(binary string) (*semver.Version, error) {
	if binary == "" {
		binary = "solc"
	}
	out, err := exec.Command(binary, "--version").CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("error while executing %s --version:\nOUTPUT:\n%s\nERROR: %s", binary, string(out), err)
	}

	return parseSolcVersionOutput(string(out))
}

// parseSolcVersionOutput extracts and parses the dotted version triplet out
// of `solc --version`'s combined output, e.g. "Version: 0.8.14+commit...".
func parseSolcVersionOutput(output string) (*semver.Version, error) {
	versionStr := solcVersionPattern.FindString(output)
	if versionStr == "" {
		return nil, fmt.Errorf("could not parse solc version from %q", output)
	}

	return semver.NewVersion(versionStr)
}

// SolidityCompiler invokes solc's standard-json interface for the general
// high-level EVM language flavor.
type SolidityCompiler struct {
	// Binary is the path to the solc executable. Defaults to "solc" on PATH.
	Binary string
}

// standardJSONInput/standardJSONOutput mirror the subset of solc's
// --standard-json schema this verifier needs.
// Reference: https://docs.soliditylang.org/en/latest/using-the-compiler.html#input-description

type standardJSONInput struct {
	Language string                      `json:"language"`
	Sources  map[string]standardJSONFile `json:"sources"`
	Settings standardJSONSettings        `json:"settings"`
}

type standardJSONFile struct {
	Content string `json:"content"`
}

type standardJSONSettings struct {
	Optimizer       standardJSONOptimizer        `json:"optimizer"`
	EVMVersion      string                       `json:"evmVersion,omitempty"`
	Libraries       map[string]map[string]string `json:"libraries,omitempty"`
	Metadata        *standardJSONMetadata        `json:"metadata,omitempty"`
	OutputSelection map[string]map[string][]string `json:"outputSelection"`
}

type standardJSONOptimizer struct {
	Enabled bool `json:"enabled"`
	Runs    int  `json:"runs,omitempty"`
}

type standardJSONMetadata struct {
	BytecodeHash string `json:"bytecodeHash"`
}

type standardJSONOutput struct {
	Errors []struct {
		Severity string `json:"severity"`
		Message  string `json:"formattedMessage"`
	} `json:"errors"`
	Contracts map[string]map[string]standardJSONContract `json:"contracts"`
}

type standardJSONContract struct {
	ABI json.RawMessage `json:"abi"`
	EVM struct {
		Bytecode struct {
			Object string `json:"object"`
		} `json:"bytecode"`
		DeployedBytecode struct {
			Object string `json:"object"`
		} `json:"deployedBytecode"`
	} `json:"evm"`
}

func buildStandardJSONInput(language string, input Input) standardJSONInput {
	sources := make(map[string]standardJSONFile, len(input.Sources))
	for path, content := range input.Sources {
		sources[path] = standardJSONFile{Content: content}
	}

	settings := standardJSONSettings{
		Optimizer: standardJSONOptimizer{
			Enabled: input.OptimizerEnabled,
			Runs:    input.OptimizerRuns,
		},
		EVMVersion: input.EVMVersion,
		Libraries:  input.Libraries,
		OutputSelection: map[string]map[string][]string{
			"*": {"*": {"abi", "evm.bytecode.object", "evm.deployedBytecode.object"}},
		},
	}
	if input.Metadata != nil {
		settings.Metadata = &standardJSONMetadata{BytecodeHash: input.Metadata.String()}
	}

	return standardJSONInput{
		Language: language,
		Sources:  sources,
		Settings: settings,
	}
}

// Compile runs solc --standard-json over input and renders the result into
// an Output, locating each bytecode's metadata tail offset along the way.
func (c SolidityCompiler) Compile(ctx context.Context, input Input) (Output, error) {
	return runStandardJSON(ctx, c.Binary, "Solidity", input)
}

func runStandardJSON(ctx context.Context, binary, language string, input Input) (Output, error) {
	if binary == "" {
		binary = "solc"
	}

	payload, err := json.Marshal(buildStandardJSONInput(language, input))
	if err != nil {
		return Output{}, fmt.Errorf("marshal standard-json input: %w", err)
	}

	var args []string
	if language == "Yul" {
		args = append(args, "--strict-assembly")
	}
	args = append(args, "--standard-json")

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return Output{}, ctx.Err()
		}
		return Output{}, fmt.Errorf("error while executing %s:\n%s\nstderr:\n%s", binary, err, stderr.String())
	}

	var parsed standardJSONOutput
	if err := json.Unmarshal(stdout.Bytes(), &parsed); err != nil {
		return Output{}, fmt.Errorf("unmarshal standard-json output: %w", err)
	}

	for _, e := range parsed.Errors {
		if e.Severity == "error" {
			return Output{}, fmt.Errorf("compilation failed: %s", e.Message)
		}
		zap.L().Warn("compiler diagnostic", zap.String("message", e.Message))
	}

	output := Output{Contracts: make(map[string]map[string]Contract, len(parsed.Contracts))}
	for path, contracts := range parsed.Contracts {
		output.Contracts[path] = make(map[string]Contract, len(contracts))
		for name, c := range contracts {
			output.Contracts[path][name] = toContract(c)
		}
	}

	return output, nil
}

func toContract(c standardJSONContract) Contract {
	contract := Contract{
		CreationBytecodeHex: strings.TrimPrefix(c.EVM.Bytecode.Object, "0x"),
		DeployedBytecodeHex: strings.TrimPrefix(c.EVM.DeployedBytecode.Object, "0x"),
		CreationMetadataOffset: -1,
		DeployedMetadataOffset: -1,
	}

	if len(c.ABI) > 0 && string(c.ABI) != "null" {
		if parsedABI, err := abi.JSON(bytes.NewReader(c.ABI)); err == nil {
			contract.ABI = &parsedABI
		}
	}

	if raw, err := hexDecodeLenient(contract.CreationBytecodeHex); err == nil {
		contract.CreationMetadataOffset = locateMetadataOffset(raw)
	}
	if raw, err := hexDecodeLenient(contract.DeployedBytecodeHex); err == nil {
		contract.DeployedMetadataOffset = locateMetadataOffset(raw)
	}

	return contract
}
