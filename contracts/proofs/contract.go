package proofs

import (
	"github.com/eueno-io/proofs-contract/common"
	cst "github.com/eueno-io/proofs-contract/contracts/proofs/proofsconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type (
	// Configuration is a contract-wide settings record.
	Configuration struct {
		Owner    interop.Hash160
		BaseIPFS string
	}

	// ProofRecord describes an AI report registered in the contract.
	ProofRecord struct {
		// Seconds since epoch taken from the block the proof was saved in.
		CreatedTime int
		AIProvider  string
		ReportLink  string
	}
)

const (
	configKey   = "config"
	proofPrefix = 'p'
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	baseIPFS := cst.DefaultBaseIPFS
	if data != nil {
		args := data.([]any)
		if len(args) > 0 && args[0] != nil {
			baseIPFS = args[0].(string)
		}
	}

	ctx := storage.GetContext()

	common.SetSerialized(ctx, configKey, Configuration{
		Owner:    runtime.GetScriptContainer().Sender,
		BaseIPFS: baseIPFS,
	})

	runtime.Log("proofs contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the contract owner.
func Update(script []byte, manifest []byte, data any) {
	ctx := storage.GetReadOnlyContext()
	common.CheckOwnerWitness(getConfig(ctx).Owner)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("proofs contract updated")
}

// UpdateConfig method sets a new contract owner and, if baseIPFS is not nil,
// a new base link prefix for proofs registered afterwards. Links of existing
// proofs are kept as is. It can be invoked only by the current owner.
//
// UpdateConfig produces UpdateConfig notification.
func UpdateConfig(owner interop.Hash160, baseIPFS any) {
	ctx := storage.GetContext()

	cfg := getConfig(ctx)
	common.CheckOwnerWitness(cfg.Owner)

	if len(owner) != interop.Hash160Len {
		panic(cst.InvalidOwnerError)
	}

	cfg.Owner = owner
	if baseIPFS != nil {
		cfg.BaseIPFS = baseIPFS.(string)
	}

	common.SetSerialized(ctx, configKey, cfg)

	runtime.Notify("UpdateConfig", cfg.Owner, cfg.BaseIPFS)
}

// UpdateProof method saves proof of the AI report with the given hash. The
// report hash is used as is, its format is not checked. A proof saved before
// with the same hash is overwritten. It can be invoked only by the owner.
//
// UpdateProof produces UpdateProof notification.
func UpdateProof(reportHash string, aiProvider string) {
	ctx := storage.GetContext()

	cfg := getConfig(ctx)
	common.CheckOwnerWitness(cfg.Owner)

	if len(reportHash) > cst.MaxReportHashLength {
		panic(cst.ReportHashTooLongError)
	}

	proof := ProofRecord{
		CreatedTime: runtime.GetTime() / 1000,
		AIProvider:  aiProvider,
		ReportLink:  cfg.BaseIPFS + "/" + reportHash,
	}

	common.SetSerialized(ctx, proofKey(reportHash), proof)

	runtime.Notify("UpdateProof", reportHash, proof.AIProvider, proof.ReportLink, proof.CreatedTime)
}

// Config method returns current contract configuration.
func Config() Configuration {
	return getConfig(storage.GetReadOnlyContext())
}

// Proof method returns proof of the report with the given hash. It panics
// if there is no such proof.
func Proof(reportHash string) ProofRecord {
	ctx := storage.GetReadOnlyContext()

	proof := common.GetSerialized(ctx, proofKey(reportHash))
	if proof == nil {
		panic(cst.ProofNotFoundError)
	}

	return proof.(ProofRecord)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func getConfig(ctx storage.Context) Configuration {
	cfg := common.GetSerialized(ctx, configKey)
	if cfg == nil {
		panic(cst.ConfigNotFoundError)
	}

	return cfg.(Configuration)
}

func proofKey(reportHash string) []byte {
	return append([]byte{proofPrefix}, []byte(reportHash)...)
}
