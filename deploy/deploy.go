// Package deploy synchronizes the proofs contract with Neo blockchain.
package deploy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/eueno-io/proofs-contract/contracts"
	"github.com/eueno-io/proofs-contract/internal/msg"
	rpcproofs "github.com/eueno-io/proofs-contract/rpc/proofs"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for the contract deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions to the
	// blockchain.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by its
	// address. GetContractStateByHash returns error with 'Unknown contract'
	// substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// Prm groups all parameters of the proofs contract deployment procedure.
type Prm struct {
	// Writes progress into the log. Optional.
	Logger *zap.Logger

	// Particular Neo blockchain instance to deploy the contract to.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	// It becomes the contract owner on the first deployment, and it must be
	// the owner to update the contract.
	LocalAccount *wallet.Account

	// Address of the already deployed contract. Zero value means the contract
	// has not been deployed yet, then the address is derived from the local
	// account and the local contract.
	Address util.Uint160

	// Compiled contract.
	Contract contracts.Contract

	// Initial contract configuration, used on the first deployment only.
	Instantiate msg.InstantiateMsg
}

type syncAction uint8

const (
	actionNone syncAction = iota
	actionDeploy
	actionUpdate
)

// txSender sends contract management transactions and awaits their results.
type txSender interface {
	deploy(n *nef.File, m *manifest.Manifest, data any) (util.Uint256, uint32, error)
	update(contract util.Uint160, bNEF, jManifest []byte) (util.Uint256, uint32, error)
	waitAny(ctx context.Context, vub uint32, hashes ...util.Uint256) (*state.AppExecResult, error)
}

type actorSender struct {
	act *actor.Actor
}

func (x actorSender) deploy(n *nef.File, m *manifest.Manifest, data any) (util.Uint256, uint32, error) {
	return management.New(x.act).Deploy(n, m, data)
}

func (x actorSender) update(contract util.Uint160, bNEF, jManifest []byte) (util.Uint256, uint32, error) {
	return rpcproofs.New(x.act, contract).Update(bNEF, jManifest, nil)
}

func (x actorSender) waitAny(ctx context.Context, vub uint32, hashes ...util.Uint256) (*state.AppExecResult, error) {
	return x.act.WaitAny(ctx, vub, hashes...)
}

// Deploy synchronizes the proofs contract with the chain: it deploys the
// contract if it is missing, updates it if code or manifest on the chain
// differs from the local ones and does nothing otherwise. Deploy returns
// address of the contract.
//
// Contract address is fixed on the first deployment. Later runs must pass it
// in Prm.Address since the address derived from the changed code points
// nowhere. Deploy waits for the sent transaction to be accepted and aborts
// only by context or on error.
func Deploy(ctx context.Context, prm Prm) (util.Uint160, error) {
	return syncContract(ctx, prm, func() (txSender, error) {
		act, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
		if err != nil {
			return nil, err
		}
		return actorSender{act: act}, nil
	})
}

func syncContract(ctx context.Context, prm Prm, newSender func() (txSender, error)) (util.Uint160, error) {
	if prm.LocalAccount == nil {
		return util.Uint160{}, errors.New("missing local account")
	}

	if prm.Logger == nil {
		prm.Logger = zap.NewNop()
	}

	localNEF := prm.Contract.NEF
	localManifest := prm.Contract.Manifest

	addr := prm.Address
	known := !addr.Equals(util.Uint160{})
	if !known {
		addr = state.CreateContractHash(prm.LocalAccount.ScriptHash(), localNEF.Checksum, localManifest.Name)
	}

	l := prm.Logger.With(zap.String("contract", localManifest.Name), zap.Stringer("address", addr))

	onChain, err := prm.Blockchain.GetContractStateByHash(addr)
	if err != nil {
		if !isErrContractNotFound(err) {
			return addr, fmt.Errorf("get contract state: %w", err)
		}
		if known {
			return addr, fmt.Errorf("contract %s is missing on the chain", addr.StringLE())
		}
		onChain = nil
	}

	action, err := chooseAction(onChain, localNEF, localManifest)
	if err != nil {
		return addr, err
	}

	if action == actionNone {
		l.Info("contract is up to date, skip")
		return addr, nil
	}

	sender, err := newSender()
	if err != nil {
		return addr, fmt.Errorf("init transaction sender from local account: %w", err)
	}

	var (
		txHash util.Uint256
		vub    uint32
	)

	switch action {
	case actionDeploy:
		l.Info("contract is missing on the chain, deploying...")

		txHash, vub, err = sender.deploy(&localNEF, &localManifest, prm.Instantiate.DeployData())
		if err != nil {
			return addr, fmt.Errorf("send deployment transaction: %w", err)
		}
	case actionUpdate:
		l.Info("contract on the chain is outdated, updating...",
			zap.Uint32("on-chain checksum", onChain.NEF.Checksum),
			zap.Uint32("local checksum", localNEF.Checksum))

		bNEF, err := localNEF.Bytes()
		if err != nil {
			return addr, fmt.Errorf("encode NEF: %w", err)
		}

		jManifest, err := json.Marshal(localManifest)
		if err != nil {
			return addr, fmt.Errorf("encode manifest: %w", err)
		}

		txHash, vub, err = sender.update(addr, bNEF, jManifest)
		if err != nil {
			return addr, fmt.Errorf("send update transaction: %w", err)
		}
	}

	l.Info("transaction sent, waiting for acceptance...", zap.String("tx", txHash.StringLE()), zap.Uint32("vub", vub))

	res, err := sender.waitAny(ctx, vub, txHash)
	if err != nil {
		return addr, fmt.Errorf("wait for transaction %s: %w", txHash.StringLE(), err)
	}

	if res.VMState != vmstate.Halt {
		return addr, fmt.Errorf("transaction %s failed: %s", txHash.StringLE(), res.FaultException)
	}

	l.Info("contract successfully synchronized with the chain")

	return addr, nil
}

// chooseAction compares contract state on the chain (nil if missing) with
// the local one.
func chooseAction(onChain *state.Contract, localNEF nef.File, localManifest manifest.Manifest) (syncAction, error) {
	if onChain == nil {
		return actionDeploy, nil
	}

	if onChain.Manifest.Name != localManifest.Name {
		return actionNone, fmt.Errorf("unexpected contract %q at the address", onChain.Manifest.Name)
	}

	if onChain.NEF.Checksum != localNEF.Checksum {
		return actionUpdate, nil
	}

	jOnChain, err := json.Marshal(onChain.Manifest)
	if err != nil {
		return actionNone, fmt.Errorf("encode on-chain manifest: %w", err)
	}

	jLocal, err := json.Marshal(localManifest)
	if err != nil {
		return actionNone, fmt.Errorf("encode local manifest: %w", err)
	}

	if !bytes.Equal(jOnChain, jLocal) {
		return actionUpdate, nil
	}

	return actionNone, nil
}

func isErrContractNotFound(err error) bool {
	return strings.Contains(err.Error(), "Unknown contract")
}
