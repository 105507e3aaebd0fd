package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

// ErrUnauthorized appears when the method must be called by the owner
// of the contract but was not.
const ErrUnauthorized = "unauthorized"

// CheckOwnerWitness checks witness of the passed owner.
// It panics with ErrUnauthorized message on fail.
func CheckOwnerWitness(owner interop.Hash160) {
	if !runtime.CheckWitness(owner) {
		panic(ErrUnauthorized)
	}
}
