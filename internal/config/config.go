// Package config loads proofctl settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is a proofctl configuration. Every field can be overridden by the
// environment variable named in its comment.
type Config struct {
	RPCEndpoint string        `toml:"rpc_endpoint"` // PROOFCTL_RPC_ENDPOINT
	DialTimeout time.Duration `toml:"dial_timeout"` // PROOFCTL_DIAL_TIMEOUT (default 10s)

	Wallet         string `toml:"wallet"`  // PROOFCTL_WALLET
	Account        string `toml:"account"` // PROOFCTL_ACCOUNT (default wallet account otherwise)
	WalletPassword string `toml:"-"`       // PROOFCTL_WALLET_PASSWORD (never read from file)

	Contract    string `toml:"contract"`     // PROOFCTL_CONTRACT (address or LE hash)
	ContractDir string `toml:"contract_dir"` // PROOFCTL_CONTRACT_DIR (default "contracts/proofs")
	BaseIPFS    string `toml:"base_ipfs"`    // PROOFCTL_BASE_IPFS (deploy only, empty = contract default)
}

const (
	envPrefix = "PROOFCTL_"

	defaultDialTimeout = 10 * time.Second
	defaultContractDir = "contracts/proofs"
)

// Default returns configuration with default values.
func Default() *Config {
	return &Config{
		DialTimeout: defaultDialTimeout,
		ContractDir: defaultContractDir,
	}
}

// DefaultPath returns path of the configuration file used when no explicit
// one is given. It's empty if user config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "proofctl", "config.toml")
}

// Load reads configuration from the TOML file and applies environment
// overrides. Empty path means DefaultPath, which is allowed to be missing.
func Load(path string) (*Config, error) {
	c := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, c); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) applyEnv() error {
	for _, v := range []struct {
		name string
		dst  *string
	}{
		{"RPC_ENDPOINT", &c.RPCEndpoint},
		{"WALLET", &c.Wallet},
		{"ACCOUNT", &c.Account},
		{"WALLET_PASSWORD", &c.WalletPassword},
		{"CONTRACT", &c.Contract},
		{"CONTRACT_DIR", &c.ContractDir},
		{"BASE_IPFS", &c.BaseIPFS},
	} {
		if s, ok := os.LookupEnv(envPrefix + v.name); ok {
			*v.dst = s
		}
	}

	if s := os.Getenv(envPrefix + "DIAL_TIMEOUT"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("%sDIAL_TIMEOUT: %w", envPrefix, err)
		}
		c.DialTimeout = d
	}

	return nil
}
