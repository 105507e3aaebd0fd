package registry

import (
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// Addresser converts between human-readable and canonical account addresses.
type Addresser interface {
	// Canonicalize parses human-readable address. It returns an error if the
	// address is malformed.
	Canonicalize(addr string) (util.Uint160, error)

	// Humanize returns human-readable form of the canonical address.
	Humanize(addr util.Uint160) string
}

// NeoAddresser is an Addresser for base58check Neo N3 addresses.
type NeoAddresser struct{}

// Canonicalize implements Addresser.
func (NeoAddresser) Canonicalize(addr string) (util.Uint160, error) {
	return address.StringToUint160(addr)
}

// Humanize implements Addresser.
func (NeoAddresser) Humanize(addr util.Uint160) string {
	return address.Uint160ToString(addr)
}
