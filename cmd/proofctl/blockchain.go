package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/eueno-io/proofs-contract/internal/config"
	"github.com/eueno-io/proofs-contract/internal/registry"
	rpcproofs "github.com/eueno-io/proofs-contract/rpc/proofs"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// wrapper over Neo RPC client providing services needed for current command.
type remoteBlockchain struct {
	rpc *rpcclient.Client

	// set only if the command signs transactions.
	account *wallet.Account
	actor   *actor.Actor
}

// dialBlockchain connects to the Neo RPC server from configuration. If
// withAccount is set, wallet account is opened for transaction signing.
func dialBlockchain(ctx context.Context, c *config.Config, withAccount bool) (*remoteBlockchain, error) {
	if c.RPCEndpoint == "" {
		return nil, errors.New("missing Neo RPC endpoint")
	}

	cli, err := rpcclient.New(ctx, c.RPCEndpoint, rpcclient.Options{
		DialTimeout:    c.DialTimeout,
		RequestTimeout: c.DialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	b := &remoteBlockchain{rpc: cli}

	if !withAccount {
		return b, nil
	}

	b.account, err = openAccount(c)
	if err != nil {
		cli.Close()
		return nil, err
	}

	b.actor, err = actor.NewSimple(cli, b.account)
	if err != nil {
		cli.Close()
		return nil, fmt.Errorf("init actor: %w", err)
	}

	return b, nil
}

func (x *remoteBlockchain) close() {
	x.rpc.Close()
}

// registry returns proofs registry bound to the configured contract. The
// registry is read-only if the blockchain is opened without an account.
func (x *remoteBlockchain) registry(c *config.Config, l *zap.Logger) (*registry.Registry, error) {
	h, err := parseContract(c.Contract)
	if err != nil {
		return nil, err
	}

	if x.actor == nil {
		return registry.New(registry.Prm{
			Logger: l,
			Reader: rpcproofs.NewReader(invoker.New(x.rpc, nil), h),
		}), nil
	}

	return registry.New(registry.Prm{
		Logger:   l,
		Contract: rpcproofs.New(x.actor, h),
		Waiter:   x.actor,
		Signer:   x.account.ScriptHash(),
	}), nil
}

// parseContract accepts Neo address or hex-encoded (LE, optionally
// 0x-prefixed) contract hash.
func parseContract(s string) (util.Uint160, error) {
	if s == "" {
		return util.Uint160{}, errors.New("missing proofs contract")
	}

	if h, err := address.StringToUint160(s); err == nil {
		return h, nil
	}

	h, err := util.Uint160DecodeStringLE(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return util.Uint160{}, fmt.Errorf("invalid contract %q: neither address nor hash", s)
	}

	return h, nil
}

// openAccount opens configured wallet and decrypts the account. Password is
// taken from the configuration or prompted from the terminal.
func openAccount(c *config.Config) (*wallet.Account, error) {
	if c.Wallet == "" {
		return nil, errors.New("missing wallet")
	}

	w, err := wallet.NewWalletFromFile(c.Wallet)
	if err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}
	defer w.Close()

	h := w.GetChangeAddress()
	if c.Account != "" {
		h, err = address.StringToUint160(c.Account)
		if err != nil {
			return nil, fmt.Errorf("invalid account address %q: %w", c.Account, err)
		}
	}

	acc := w.GetAccount(h)
	if acc == nil {
		return nil, fmt.Errorf("account %s not found in the wallet", address.Uint160ToString(h))
	}

	pass := c.WalletPassword
	if pass == "" {
		pass, err = readPassword(fmt.Sprintf("Password for %s: ", acc.Address))
		if err != nil {
			return nil, err
		}
	}

	if err = acc.Decrypt(pass, w.Scrypt); err != nil {
		return nil, fmt.Errorf("decrypt account: %w", err)
	}

	return acc, nil
}

func readPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("wallet password is not set and stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	pass, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	return string(pass), nil
}
