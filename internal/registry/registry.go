// Package registry provides message-driven access to the proofs contract.
package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eueno-io/proofs-contract/common"
	cst "github.com/eueno-io/proofs-contract/contracts/proofs/proofsconst"
	"github.com/eueno-io/proofs-contract/internal/msg"
	rpcproofs "github.com/eueno-io/proofs-contract/rpc/proofs"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"go.uber.org/zap"
)

var (
	// ErrUnauthorized is returned when the caller is not the registry owner.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when requested record is missing.
	ErrNotFound = errors.New("not found")

	// ErrUnknownMessage is returned for message types outside of the
	// supported set.
	ErrUnknownMessage = errors.New("unknown message")

	errReadOnly = errors.New("registry is read-only")
)

// Reader is a read-only proofs contract client. *rpcproofs.ContractReader
// implements it.
type Reader interface {
	Config() (*rpcproofs.ProofsConfiguration, error)
	Proof(reportHash string) (*rpcproofs.ProofsProofRecord, error)
}

// Contract is a proofs contract client. *rpcproofs.Contract implements it.
type Contract interface {
	Reader
	UpdateConfig(owner util.Uint160, baseIPFS any) (util.Uint256, uint32, error)
	UpdateProof(reportHash string, aiProvider string) (util.Uint256, uint32, error)
}

// Waiter awaits transaction results. *actor.Actor implements it.
type Waiter interface {
	Wait(h util.Uint256, vub uint32, err error) (*state.AppExecResult, error)
}

// Prm groups Registry parameters.
type Prm struct {
	// Writes operation results into the log. Optional.
	Logger *zap.Logger

	// Contract and Waiter are required for Execute. Reader is used when
	// Contract is not set.
	Contract Contract
	Waiter   Waiter
	Reader   Reader

	// Address conversion rules. Defaults to NeoAddresser.
	Addresser Addresser

	// Account which signs transactions sent by the Registry.
	Signer util.Uint160
}

// Registry executes and queries proofs registry messages.
type Registry struct {
	log       *zap.Logger
	reader    Reader
	contract  Contract
	waiter    Waiter
	addresser Addresser
	signer    util.Uint160
}

// New constructs Registry from the given parameters.
func New(prm Prm) *Registry {
	r := &Registry{
		log:       prm.Logger,
		reader:    prm.Reader,
		contract:  prm.Contract,
		waiter:    prm.Waiter,
		addresser: prm.Addresser,
		signer:    prm.Signer,
	}

	if r.log == nil {
		r.log = zap.NewNop()
	}
	if r.addresser == nil {
		r.addresser = NeoAddresser{}
	}
	if r.contract != nil {
		r.reader = r.contract
	}

	return r
}

// Authorize checks that caller is the stored owner.
func Authorize(stored, caller util.Uint160) error {
	if !stored.Equals(caller) {
		return ErrUnauthorized
	}
	return nil
}

// Execute sends state-changing message to the contract and waits for the
// transaction to be accepted. Signer is checked against the stored owner
// before sending, so unauthorized requests cost nothing.
func (r *Registry) Execute(m msg.ExecuteMsg) (msg.Response, error) {
	if r.contract == nil || r.waiter == nil {
		return msg.Response{}, errReadOnly
	}

	var (
		h   util.Uint256
		vub uint32
		err error
	)

	switch v := m.(type) {
	case msg.UpdateConfig:
		owner, cErr := r.addresser.Canonicalize(v.Owner)
		if cErr != nil {
			return msg.Response{}, fmt.Errorf("%w: owner: %w", msg.ErrInvalidMessage, cErr)
		}

		var baseIPFS any
		if v.BaseIPFS != nil {
			baseIPFS = *v.BaseIPFS
		}

		if err = r.authorize(); err != nil {
			return msg.Response{}, err
		}

		h, vub, err = r.contract.UpdateConfig(owner, baseIPFS)
	case msg.UpdateProof:
		if len(v.ReportHash) > cst.MaxReportHashLength {
			return msg.Response{}, fmt.Errorf("%w: report hash is longer than %d bytes",
				msg.ErrInvalidMessage, cst.MaxReportHashLength)
		}

		if err = r.authorize(); err != nil {
			return msg.Response{}, err
		}

		h, vub, err = r.contract.UpdateProof(v.ReportHash, v.AIProvider)
	default:
		return msg.Response{}, fmt.Errorf("%w: %T", ErrUnknownMessage, m)
	}

	aer, err := r.waiter.Wait(h, vub, err)
	if err != nil {
		return msg.Response{}, fmt.Errorf("%s: %w", m.Action(), mapError(err))
	}

	if aer.VMState != vmstate.Halt {
		return msg.Response{}, fmt.Errorf("%s: %w", m.Action(), mapFault(aer.FaultException))
	}

	r.log.Info("transaction accepted",
		zap.String("action", m.Action()),
		zap.String("tx", h.StringLE()))

	return msg.NewResponse(h, m), nil
}

// Query reads the contract state requested by m. Result is either
// msg.ConfigResponse or msg.ProofResponse.
func (r *Registry) Query(m msg.QueryMsg) (any, error) {
	switch v := m.(type) {
	case msg.ConfigQuery:
		return r.Config()
	case msg.ProofQuery:
		return r.Proof(v.ReportHash)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownMessage, m)
	}
}

// Config returns current registry configuration.
func (r *Registry) Config() (msg.ConfigResponse, error) {
	cfg, err := r.reader.Config()
	if err != nil {
		return msg.ConfigResponse{}, fmt.Errorf("config: %w", mapError(err))
	}

	return msg.ConfigResponse{
		Owner:    r.addresser.Humanize(cfg.Owner),
		BaseIPFS: cfg.BaseIPFS,
	}, nil
}

// Proof returns proof of the report with the given hash.
func (r *Registry) Proof(reportHash string) (msg.ProofResponse, error) {
	p, err := r.reader.Proof(reportHash)
	if err != nil {
		return msg.ProofResponse{}, fmt.Errorf("proof %q: %w", reportHash, mapError(err))
	}

	if p.CreatedTime == nil || !p.CreatedTime.IsUint64() {
		return msg.ProofResponse{}, fmt.Errorf("proof %q: invalid created time %v", reportHash, p.CreatedTime)
	}

	return msg.ProofResponse{
		CreatedTime: p.CreatedTime.Uint64(),
		AIProvider:  p.AIProvider,
		ReportLink:  p.ReportLink,
	}, nil
}

func (r *Registry) authorize() error {
	cfg, err := r.contract.Config()
	if err != nil {
		return fmt.Errorf("config: %w", mapError(err))
	}

	if err := Authorize(cfg.Owner, r.signer); err != nil {
		r.log.Debug("signer is not the registry owner",
			zap.String("signer", r.addresser.Humanize(r.signer)),
			zap.String("owner", r.addresser.Humanize(cfg.Owner)))
		return err
	}

	return nil
}

func mapError(err error) error {
	if sentinel := faultSentinel(err.Error()); sentinel != nil {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return err
}

func mapFault(exception string) error {
	if sentinel := faultSentinel(exception); sentinel != nil {
		return fmt.Errorf("%w: %s", sentinel, exception)
	}
	return fmt.Errorf("transaction failed: %s", exception)
}

func faultSentinel(s string) error {
	switch {
	case strings.Contains(s, common.ErrUnauthorized):
		return ErrUnauthorized
	case strings.Contains(s, cst.ConfigNotFoundError),
		strings.Contains(s, cst.ProofNotFoundError):
		return ErrNotFound
	default:
		return nil
	}
}
