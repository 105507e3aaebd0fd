// Package proofs contains RPC wrappers for AI Report Proofs contract.
package proofs

import (
	"errors"
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// ProofsConfiguration is a contract-specific proofs.Configuration type used by its methods.
type ProofsConfiguration struct {
	Owner    util.Uint160
	BaseIPFS string
}

// ProofsProofRecord is a contract-specific proofs.ProofRecord type used by its methods.
type ProofsProofRecord struct {
	CreatedTime *big.Int
	AIProvider  string
	ReportLink  string
}

// UpdateConfigEvent represents "UpdateConfig" event emitted by the contract.
type UpdateConfigEvent struct {
	Owner    util.Uint160
	BaseIPFS string
}

// UpdateProofEvent represents "UpdateProof" event emitted by the contract.
type UpdateProofEvent struct {
	ReportHash  string
	AIProvider  string
	ReportLink  string
	CreatedTime *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// Config invokes `config` method of contract.
func (c *ContractReader) Config() (*ProofsConfiguration, error) {
	return itemToProofsConfiguration(unwrap.Item(c.invoker.Call(c.hash, "config")))
}

// Proof invokes `proof` method of contract.
func (c *ContractReader) Proof(reportHash string) (*ProofsProofRecord, error) {
	return itemToProofsProofRecord(unwrap.Item(c.invoker.Call(c.hash, "proof", reportHash)))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// UpdateConfig creates a transaction invoking `updateConfig` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) UpdateConfig(owner util.Uint160, baseIPFS any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "updateConfig", owner, baseIPFS)
}

// UpdateConfigTransaction creates a transaction invoking `updateConfig` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateConfigTransaction(owner util.Uint160, baseIPFS any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "updateConfig", owner, baseIPFS)
}

// UpdateConfigUnsigned creates a transaction invoking `updateConfig` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateConfigUnsigned(owner util.Uint160, baseIPFS any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "updateConfig", nil, owner, baseIPFS)
}

// UpdateProof creates a transaction invoking `updateProof` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) UpdateProof(reportHash string, aiProvider string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "updateProof", reportHash, aiProvider)
}

// UpdateProofTransaction creates a transaction invoking `updateProof` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateProofTransaction(reportHash string, aiProvider string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "updateProof", reportHash, aiProvider)
}

// UpdateProofUnsigned creates a transaction invoking `updateProof` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateProofUnsigned(reportHash string, aiProvider string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "updateProof", nil, reportHash, aiProvider)
}

// itemToProofsConfiguration converts stack item into *ProofsConfiguration.
func itemToProofsConfiguration(item stackitem.Item, err error) (*ProofsConfiguration, error) {
	if err != nil {
		return nil, err
	}
	var res = new(ProofsConfiguration)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of ProofsConfiguration from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *ProofsConfiguration) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	res.Owner, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	index++
	res.BaseIPFS, err = itemToUTF8String(arr[index])
	if err != nil {
		return fmt.Errorf("field BaseIPFS: %w", err)
	}

	return nil
}

// itemToProofsProofRecord converts stack item into *ProofsProofRecord.
func itemToProofsProofRecord(item stackitem.Item, err error) (*ProofsProofRecord, error) {
	if err != nil {
		return nil, err
	}
	var res = new(ProofsProofRecord)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of ProofsProofRecord from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *ProofsProofRecord) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	res.CreatedTime, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field CreatedTime: %w", err)
	}

	index++
	res.AIProvider, err = itemToUTF8String(arr[index])
	if err != nil {
		return fmt.Errorf("field AIProvider: %w", err)
	}

	index++
	res.ReportLink, err = itemToUTF8String(arr[index])
	if err != nil {
		return fmt.Errorf("field ReportLink: %w", err)
	}

	return nil
}

// UpdateConfigEventsFromApplicationLog retrieves a set of all emitted events
// with "UpdateConfig" name from the provided [result.ApplicationLog].
func UpdateConfigEventsFromApplicationLog(log *result.ApplicationLog) ([]*UpdateConfigEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*UpdateConfigEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "UpdateConfig" {
				continue
			}
			event := new(UpdateConfigEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize UpdateConfigEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to UpdateConfigEvent or
// returns an error if it's not possible to do to so.
func (e *UpdateConfigEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.Owner, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	index++
	e.BaseIPFS, err = itemToUTF8String(arr[index])
	if err != nil {
		return fmt.Errorf("field BaseIPFS: %w", err)
	}

	return nil
}

// UpdateProofEventsFromApplicationLog retrieves a set of all emitted events
// with "UpdateProof" name from the provided [result.ApplicationLog].
func UpdateProofEventsFromApplicationLog(log *result.ApplicationLog) ([]*UpdateProofEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*UpdateProofEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "UpdateProof" {
				continue
			}
			event := new(UpdateProofEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize UpdateProofEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to UpdateProofEvent or
// returns an error if it's not possible to do to so.
func (e *UpdateProofEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.ReportHash, err = itemToUTF8String(arr[index])
	if err != nil {
		return fmt.Errorf("field ReportHash: %w", err)
	}

	index++
	e.AIProvider, err = itemToUTF8String(arr[index])
	if err != nil {
		return fmt.Errorf("field AIProvider: %w", err)
	}

	index++
	e.ReportLink, err = itemToUTF8String(arr[index])
	if err != nil {
		return fmt.Errorf("field ReportLink: %w", err)
	}

	index++
	e.CreatedTime, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field CreatedTime: %w", err)
	}

	return nil
}

func itemToUint160(item stackitem.Item) (util.Uint160, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint160{}, err
	}
	u, err := util.Uint160DecodeBytesBE(b)
	if err != nil {
		return util.Uint160{}, err
	}
	return u, nil
}

func itemToUTF8String(item stackitem.Item) (string, error) {
	b, err := item.TryBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.New("not a UTF-8 string")
	}
	return string(b), nil
}
