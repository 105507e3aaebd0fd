package reporthash

import (
	"bytes"
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/mr-tron/base58"
	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/require"
)

func TestFromBytes(t *testing.T) {
	// Same as 'ipfs add --cid-version=1 --raw-leaves' output.
	for data, exp := range map[string]string{
		"":            "bafkreihdwdcefgh4dqkjv67uzcmw7ojee6xedzdetojuzjevtenxquvyku",
		"hello world": "bafkreifzjut3te2nhyekklss27nh3k72ysco7y32koao5eei66wof36n5e",
	} {
		s, err := FromBytes([]byte(data))
		require.NoError(t, err, data)
		require.Equal(t, exp, s, data)
	}

	s, err := FromBytes([]byte("report"))
	require.NoError(t, err)

	c, err := cid.Decode(s)
	require.NoError(t, err)
	require.EqualValues(t, 1, c.Version())
	require.EqualValues(t, cid.Raw, c.Type())

	t.Run("chunk limit", func(t *testing.T) {
		_, err := FromBytes(bytes.Repeat([]byte{1}, ChunkSize))
		require.NoError(t, err)

		_, err = FromBytes(bytes.Repeat([]byte{1}, ChunkSize+1))
		require.ErrorIs(t, err, ErrTooLarge)
	})
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	p := filepath.Join(dir, "report.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"score":1}`), 0o600))

	exp, err := FromBytes([]byte(`{"score":1}`))
	require.NoError(t, err)

	s, err := FromFile(p)
	require.NoError(t, err)
	require.Equal(t, exp, s)

	_, err = FromFile(filepath.Join(dir, "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)

	large := filepath.Join(dir, "large.bin")
	require.NoError(t, os.WriteFile(large, make([]byte, 2*ChunkSize), 0o600))

	_, err = FromFile(large)
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestCheck(t *testing.T) {
	s, err := FromBytes([]byte("report"))
	require.NoError(t, err)
	require.NoError(t, Check(s))

	b := make([]byte, 32)
	_, _ = rand.Read(b)

	mh, err := multihash.Encode(b, multihash.SHA2_256)
	require.NoError(t, err)
	require.NoError(t, Check(base58.Encode(mh)))

	for _, s := range []string{"", "Qm123", "not a CID"} {
		require.Error(t, Check(s), s)
	}
}
