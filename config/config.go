// Package config loads this verifier's runtime settings: which JSON-RPC
// endpoints to dial for on-chain bytecode, where the solc binary lives, and
// how long a verification request is allowed to run.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the full set of settings read from the configuration file and
// environment, unmarshaled via mapstructure the way the teacher's Options
// struct was.
type Config struct {
	RPC          RPC          `mapstructure:"rpc"`
	Solc         Solc         `mapstructure:"solc"`
	Verification Verification `mapstructure:"verification"`
}

// RPC holds one JSON-RPC node pool per chain the verifier can fetch
// on-chain bytecode from, keyed by a short network name ("ethereum",
// "bsc", ...).
type RPC struct {
	Networks map[string]Network `mapstructure:"networks"`
}

// Network is one chain's node pool settings.
type Network struct {
	URL                     string `mapstructure:"url"`
	ConcurrentClientsNumber int    `mapstructure:"concurrent_clients_number"`
}

// Solc holds the local solc toolchain settings.
type Solc struct {
	// BinaryPath is the path to the solc executable. Empty means "solc" on
	// PATH.
	BinaryPath string `mapstructure:"binary_path"`
}

// Verification holds per-request limits read from the configuration.
// Timeout is loaded but no command in this module applies it.
type Verification struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// global is populated once by Load and read thereafter via Get, the same
// global-options pattern the teacher's options package used.
var global Config

// Get returns a pointer to the process-wide Config populated by Load.
func Get() *Config {
	return &global
}

// Load reads settings from cfgFile (or, if empty, "$HOME/.verifier/config.yaml")
// plus any matching environment variables, and unmarshals them into the
// process-wide Config. Environment variables take precedence, the same way
// the teacher's viper.AutomaticEnv() loader worked.
func Load(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		home = filepath.Join(home, ".verifier")
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return err
	}

	if err := viper.Unmarshal(&global); err != nil {
		return fmt.Errorf("unable to decode configuration into struct: %w", err)
	}

	return nil
}
