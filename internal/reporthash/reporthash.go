// Package reporthash derives IPFS content identifiers of AI reports.
//
// Report is hashed as a single raw block, which matches
//
//	ipfs add --cid-version=1 --raw-leaves
//
// for files that fit into one chunk of the default IPFS chunker. Larger
// files are split by IPFS into a DAG with a different root, so they are
// rejected.
package reporthash

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// ChunkSize is the size of the default IPFS chunker.
const ChunkSize = 256 << 10

// ErrTooLarge is returned for reports which don't fit into a single chunk.
var ErrTooLarge = fmt.Errorf("report is larger than %d bytes", ChunkSize)

// FromBytes returns CIDv1 (raw codec, sha2-256) of the single-block report.
// It returns ErrTooLarge if data exceeds ChunkSize.
func FromBytes(data []byte) (string, error) {
	if len(data) > ChunkSize {
		return "", ErrTooLarge
	}

	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return "", fmt.Errorf("hash report: %w", err)
	}

	return cid.NewCidV1(cid.Raw, sum).String(), nil
}

// FromFile is the same as FromBytes applied to the file contents.
func FromFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, ChunkSize+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	s, err := FromBytes(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// Check returns an error if s is not a valid CID of any version.
func Check(s string) error {
	if s == "" {
		return errors.New("empty CID")
	}

	_, err := cid.Decode(s)
	return err
}
