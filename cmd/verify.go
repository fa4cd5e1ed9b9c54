package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Masterminds/semver"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/txpull/verifier/chainfetch"
	"github.com/txpull/verifier/compiler"
	"github.com/txpull/verifier/config"
	"github.com/txpull/verifier/verifier"
	"go.uber.org/zap"
)

var (
	verifySourcePaths  []string
	verifyLanguage     string
	verifyEVMVersion   string
	verifyOptimizer    bool
	verifyOptimizerRuns int
	verifySolcVersion  string

	verifyCreationTxInput string
	verifyDeployedBytecode string

	verifyAddress        string
	verifyCreationTxHash string
	verifyNetwork        string
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify that a compiled contract reproduces an on-chain deployment",
	RunE:  runVerify,
}

func initVerifyCmd(root *cobra.Command) {
	verifyCmd.Flags().StringSliceVar(&verifySourcePaths, "source", nil, "source file(s), path=content pairs not supported from the CLI; pass a single file path per --source")
	verifyCmd.Flags().StringVar(&verifyLanguage, "language", "solidity", `compiler flavor: "solidity" or "yul"`)
	verifyCmd.Flags().StringVar(&verifyEVMVersion, "evm-version", "", "solc --evm-version value")
	verifyCmd.Flags().BoolVar(&verifyOptimizer, "optimizer", false, "enable the solc optimizer")
	verifyCmd.Flags().IntVar(&verifyOptimizerRuns, "optimizer-runs", 200, "solc optimizer runs")
	verifyCmd.Flags().StringVar(&verifySolcVersion, "solc-version", "", "pin the solc version instead of detecting it from the binary")

	verifyCmd.Flags().StringVar(&verifyCreationTxInput, "creation-tx-input", "", "on-chain creation transaction input, hex-encoded")
	verifyCmd.Flags().StringVar(&verifyDeployedBytecode, "deployed-bytecode", "", "on-chain deployed bytecode, hex-encoded")

	verifyCmd.Flags().StringVar(&verifyAddress, "address", "", "contract address to fetch deployed bytecode for, instead of --deployed-bytecode")
	verifyCmd.Flags().StringVar(&verifyCreationTxHash, "creation-tx-hash", "", "creation transaction hash to fetch creation input for, instead of --creation-tx-input")
	verifyCmd.Flags().StringVar(&verifyNetwork, "network", "", "configured network name to fetch on-chain bytes from (see rpc.networks in the config file)")

	root.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sources, err := loadSources(verifySourcePaths)
	if err != nil {
		return err
	}

	creationTxInput, deployedBytecode, err := resolveRemoteBytes(ctx)
	if err != nil {
		return err
	}

	cfg := config.Get()

	var compile compiler.Compiler
	switch verifyLanguage {
	case "yul":
		compile = compiler.YulCompiler{Binary: cfg.Solc.BinaryPath}
	default:
		compile = compiler.SolidityCompiler{Binary: cfg.Solc.BinaryPath}
	}

	version, err := resolveSolcVersion(cfg.Solc.BinaryPath)
	if err != nil {
		return fmt.Errorf("determine solc version: %w", err)
	}

	input := compiler.Input{
		Sources:          sources,
		EVMVersion:       verifyEVMVersion,
		OptimizerEnabled: verifyOptimizer,
		OptimizerRuns:    verifyOptimizerRuns,
	}

	success, errs, err := verifier.Sweep(ctx, compile, version, creationTxInput, deployedBytecode, input)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	if success == nil {
		for _, e := range errs {
			zap.L().Warn("candidate did not match", zap.String("reason", e.Error()))
		}
		return fmt.Errorf("no compiled contract matched the supplied bytecode")
	}

	fmt.Printf("match: %s:%s\n", success.FilePath, success.ContractName)
	if len(success.ConstructorArgs) > 0 {
		fmt.Printf("constructor arguments: 0x%x\n", success.ConstructorArgs)
	}
	return nil
}

func loadSources(paths []string) (map[string]string, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("at least one --source is required")
	}
	sources := make(map[string]string, len(paths))
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read source %s: %w", p, err)
		}
		sources[p] = string(content)
	}
	return sources, nil
}

func resolveRemoteBytes(ctx context.Context) (creationTxInput, deployedBytecode string, err error) {
	if verifyCreationTxInput != "" && verifyDeployedBytecode != "" {
		return verifyCreationTxInput, verifyDeployedBytecode, nil
	}

	if verifyNetwork == "" || verifyAddress == "" || verifyCreationTxHash == "" {
		return "", "", fmt.Errorf("supply either --creation-tx-input and --deployed-bytecode, or --network, --address and --creation-tx-hash")
	}

	net, ok := config.Get().RPC.Networks[verifyNetwork]
	if !ok {
		return "", "", fmt.Errorf("network %q is not configured", verifyNetwork)
	}

	pool, err := chainfetch.NewPool(ctx, net)
	if err != nil {
		return "", "", fmt.Errorf("connect to network %q: %w", verifyNetwork, err)
	}
	defer pool.Close()

	remote, err := chainfetch.Fetch(ctx, pool, common.HexToAddress(verifyAddress), common.HexToHash(verifyCreationTxHash))
	if err != nil {
		return "", "", err
	}

	return fmt.Sprintf("0x%x", remote.CreationTxInput), fmt.Sprintf("0x%x", remote.DeployedBytecode), nil
}

func resolveSolcVersion(binary string) (*semver.Version, error) {
	if verifySolcVersion != "" {
		return semver.NewVersion(verifySolcVersion)
	}
	if v := viper.GetString("solc.version"); v != "" {
		return semver.NewVersion(v)
	}
	return compiler.SystemSolcVersion(binary)
}
