package proofsconst

const (
	// DefaultBaseIPFS is a base link prefix used when the contract is deployed
	// without an explicit one.
	DefaultBaseIPFS = "https://node1-gateway-ipfs.eueno.io/ipfs"

	// MaxReportHashLength is the longest report hash that fits a storage key
	// together with the proof prefix byte.
	MaxReportHashLength = 63

	// ConfigNotFoundError is returned if the contract configuration is missing.
	ConfigNotFoundError = "config not found"

	// ProofNotFoundError is returned if there is no proof for the requested
	// report hash.
	ProofNotFoundError = "proof not found"

	// InvalidOwnerError is returned on attempt to set an owner which is not
	// a valid script hash.
	InvalidOwnerError = "invalid owner"

	// ReportHashTooLongError is returned if the report hash does not fit
	// a storage key.
	ReportHashTooLongError = "report hash is too long"
)

// Actions reported for successful state transitions.
const (
	ActionUpdateConfig = "update_config"
	ActionUpdateProof  = "update_proof"
)
