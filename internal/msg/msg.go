// Package msg defines request and response envelopes of the proofs registry
// in their JSON wire form.
//
// Execute and query requests are closed sets of variants. Every variant is
// encoded as a single-key object where the key names the variant:
//
//	{"update_config":{"owner":"N...","base_ipfs":"https://..."}}
//	{"update_proof":{"report_hash":"Qm...","ai_provider":"airi"}}
//	{"config":{}}
//	{"proof":{"report_hash":"Qm..."}}
package msg

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	cst "github.com/eueno-io/proofs-contract/contracts/proofs/proofsconst"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// ErrInvalidMessage is returned when a message can't be decoded.
var ErrInvalidMessage = errors.New("invalid message")

const (
	keyUpdateConfig = cst.ActionUpdateConfig
	keyUpdateProof  = cst.ActionUpdateProof
	keyConfig       = "config"
	keyProof        = "proof"
)

// InstantiateMsg is passed to the contract on deployment.
type InstantiateMsg struct {
	BaseIPFS *string `json:"base_ipfs,omitempty"`
}

// DeployData returns contract deployment data for the message.
func (m InstantiateMsg) DeployData() []any {
	if m.BaseIPFS == nil {
		return []any{nil}
	}
	return []any{*m.BaseIPFS}
}

// ExecuteMsg is a state-changing request. Implemented by UpdateConfig and
// UpdateProof only.
type ExecuteMsg interface {
	// Action returns the tag attached to a successful execution result.
	Action() string

	executeMsg()
}

// UpdateConfig transfers ownership and optionally sets a new base link.
type UpdateConfig struct {
	Owner    string  `json:"owner"`
	BaseIPFS *string `json:"base_ipfs,omitempty"`
}

// UpdateProof registers (or overwrites) a proof of the report.
type UpdateProof struct {
	ReportHash string `json:"report_hash"`
	AIProvider string `json:"ai_provider"`
}

// Action implements ExecuteMsg.
func (UpdateConfig) Action() string { return cst.ActionUpdateConfig }

// Action implements ExecuteMsg.
func (UpdateProof) Action() string { return cst.ActionUpdateProof }

func (UpdateConfig) executeMsg() {}
func (UpdateProof) executeMsg()  {}

// QueryMsg is a read-only request. Implemented by ConfigQuery and ProofQuery
// only.
type QueryMsg interface {
	queryMsg()
}

// ConfigQuery requests current registry configuration.
type ConfigQuery struct{}

// ProofQuery requests a proof by report hash.
type ProofQuery struct {
	ReportHash string `json:"report_hash"`
}

func (ConfigQuery) queryMsg() {}
func (ProofQuery) queryMsg()  {}

// ConfigResponse is a result of ConfigQuery.
type ConfigResponse struct {
	Owner    string `json:"owner"`
	BaseIPFS string `json:"base_ipfs"`
}

// ProofResponse is a result of ProofQuery.
type ProofResponse struct {
	CreatedTime uint64 `json:"created_time"`
	AIProvider  string `json:"ai_provider"`
	ReportLink  string `json:"report_link"`
}

// Attribute is a key-value pair describing execution result.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Response acknowledges successful execution.
type Response struct {
	TxHash     string      `json:"tx_hash"`
	Attributes []Attribute `json:"attributes"`
}

// NewResponse returns Response of the transaction with the given hash
// tagged with the action of m.
func NewResponse(txHash util.Uint256, m ExecuteMsg) Response {
	return Response{
		TxHash:     txHash.StringLE(),
		Attributes: []Attribute{{Key: "action", Value: m.Action()}},
	}
}

// MarshalExecute encodes m into its wire form.
func MarshalExecute(m ExecuteMsg) ([]byte, error) {
	switch v := m.(type) {
	case UpdateConfig:
		return marshalVariant(keyUpdateConfig, v)
	case UpdateProof:
		return marshalVariant(keyUpdateProof, v)
	default:
		return nil, fmt.Errorf("%w: unexpected execute message %T", ErrInvalidMessage, m)
	}
}

// UnmarshalExecute decodes ExecuteMsg from its wire form.
func UnmarshalExecute(data []byte) (ExecuteMsg, error) {
	key, body, err := splitVariant(data)
	if err != nil {
		return nil, err
	}

	switch key {
	case keyUpdateConfig:
		var m UpdateConfig
		if err := decodeBody(body, &m, "owner"); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		return m, nil
	case keyUpdateProof:
		var m UpdateProof
		if err := decodeBody(body, &m, "report_hash", "ai_provider"); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: unknown execute variant %q", ErrInvalidMessage, key)
	}
}

// MarshalQuery encodes m into its wire form.
func MarshalQuery(m QueryMsg) ([]byte, error) {
	switch v := m.(type) {
	case ConfigQuery:
		return marshalVariant(keyConfig, v)
	case ProofQuery:
		return marshalVariant(keyProof, v)
	default:
		return nil, fmt.Errorf("%w: unexpected query message %T", ErrInvalidMessage, m)
	}
}

// UnmarshalQuery decodes QueryMsg from its wire form.
func UnmarshalQuery(data []byte) (QueryMsg, error) {
	key, body, err := splitVariant(data)
	if err != nil {
		return nil, err
	}

	switch key {
	case keyConfig:
		var m ConfigQuery
		if err := decodeBody(body, &m); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		return m, nil
	case keyProof:
		var m ProofQuery
		if err := decodeBody(body, &m, "report_hash"); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: unknown query variant %q", ErrInvalidMessage, key)
	}
}

func marshalVariant(key string, v any) ([]byte, error) {
	return json.Marshal(map[string]any{key: v})
}

func splitVariant(data []byte) (string, json.RawMessage, error) {
	var envelope map[string]json.RawMessage

	if err := json.Unmarshal(data, &envelope); err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}

	if len(envelope) != 1 {
		return "", nil, fmt.Errorf("%w: expected exactly one variant, got %d", ErrInvalidMessage, len(envelope))
	}

	for k, v := range envelope {
		return k, v, nil
	}

	panic("unreachable")
}

func decodeBody(body json.RawMessage, v any, required ...string) error {
	var fields map[string]json.RawMessage

	if err := json.Unmarshal(body, &fields); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	if fields == nil {
		return fmt.Errorf("%w: variant body must be an object", ErrInvalidMessage)
	}

	for _, name := range required {
		if raw, ok := fields[name]; !ok || bytes.Equal(raw, []byte("null")) {
			return fmt.Errorf("%w: missing field %q", ErrInvalidMessage, name)
		}
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}

	return nil
}
