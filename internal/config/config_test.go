package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), c)
}

func TestLoad_File(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(p, []byte(`
rpc_endpoint = "http://localhost:30333"
dial_timeout = "3s"
wallet = "/tmp/wallet.json"
account = "NfgHwwTi3wHAS8aFAN243C5vGbkYDpqLHP"
contract = "NZcuGiwRu1QscpmCyxj5XwQBUf6sk7dJJN"
base_ipfs = "https://x/ipfs"
`), 0o600))

	c, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, &Config{
		RPCEndpoint: "http://localhost:30333",
		DialTimeout: 3 * time.Second,
		Wallet:      "/tmp/wallet.json",
		Account:     "NfgHwwTi3wHAS8aFAN243C5vGbkYDpqLHP",
		Contract:    "NZcuGiwRu1QscpmCyxj5XwQBUf6sk7dJJN",
		ContractDir: defaultContractDir,
		BaseIPFS:    "https://x/ipfs",
	}, c)

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("PROOFCTL_RPC_ENDPOINT", "http://remote:30333")
		t.Setenv("PROOFCTL_DIAL_TIMEOUT", "1m")
		t.Setenv("PROOFCTL_WALLET_PASSWORD", "secret")
		t.Setenv("PROOFCTL_BASE_IPFS", "")

		c, err := Load(p)
		require.NoError(t, err)
		require.Equal(t, "http://remote:30333", c.RPCEndpoint)
		require.Equal(t, time.Minute, c.DialTimeout)
		require.Equal(t, "secret", c.WalletPassword)
		require.Empty(t, c.BaseIPFS)
		require.Equal(t, "/tmp/wallet.json", c.Wallet)
	})

	t.Run("invalid env duration", func(t *testing.T) {
		t.Setenv("PROOFCTL_DIAL_TIMEOUT", "soon")

		_, err := Load(p)
		require.ErrorContains(t, err, "PROOFCTL_DIAL_TIMEOUT")
	})
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	p := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(p, []byte(`rpc_endpoint = `), 0o600))

	_, err = Load(p)
	require.Error(t, err)
}
