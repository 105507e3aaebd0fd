package contracts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/stretchr/testify/require"
)

func TestReadMissingFiles(t *testing.T) {
	_fs := fstest.MapFS{}

	// Missing NEF
	_, err := read(_fs, "proofs")
	require.Error(t, err)

	// Missing manifest.
	_fs["proofs/"+nefName] = &fstest.MapFile{}
	_, err = read(_fs, "proofs")
	require.Error(t, err)
}

func TestReadInvalidFormat(t *testing.T) {
	var (
		_fs          = fstest.MapFS{}
		nefPath      = "proofs/" + nefName
		manifestPath = "proofs/" + manifestName
	)

	_nef, validNEF := anyValidNEF(t)
	_manifest, validManifest := anyValidManifest(t, "AI Report Proofs")

	_fs[nefPath] = &fstest.MapFile{Data: validNEF}
	_fs[manifestPath] = &fstest.MapFile{Data: validManifest}

	c, err := read(_fs, "proofs")
	require.NoError(t, err)
	require.Equal(t, _nef.Checksum, c.NEF.Checksum)
	require.Equal(t, _manifest.Name, c.Manifest.Name)

	_fs[nefPath] = &fstest.MapFile{Data: []byte("not a NEF")}
	_fs[manifestPath] = &fstest.MapFile{Data: validManifest}

	_, err = read(_fs, "proofs")
	require.ErrorIs(t, err, errInvalidNEF)

	_fs[nefPath] = &fstest.MapFile{Data: validNEF}
	_fs[manifestPath] = &fstest.MapFile{Data: []byte("not a manifest")}

	_, err = read(_fs, "proofs")
	require.ErrorIs(t, err, errInvalidManifest)

	_, invalidManifest := anyValidManifest(t, "")
	_fs[manifestPath] = &fstest.MapFile{Data: invalidManifest}

	_, err = read(_fs, "proofs")
	require.ErrorIs(t, err, errInvalidManifest)
}

func TestReadDir(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadDir(dir)
	require.Error(t, err)

	_, validNEF := anyValidNEF(t)
	_, validManifest := anyValidManifest(t, "AI Report Proofs")

	require.NoError(t, os.WriteFile(filepath.Join(dir, nefName), validNEF, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, manifestName), validManifest, 0o600))

	c, err := ReadDir(dir)
	require.NoError(t, err)
	require.Equal(t, "AI Report Proofs", c.Manifest.Name)
}

func anyValidNEF(tb testing.TB) (nef.File, []byte) {
	script := make([]byte, 32)

	_nef, err := nef.NewFile(script)
	require.NoError(tb, err)

	bNEF, err := _nef.Bytes()
	require.NoError(tb, err)

	return *_nef, bNEF
}

func anyValidManifest(tb testing.TB, name string) (manifest.Manifest, []byte) {
	_manifest := manifest.NewManifest(name)

	jManifest, err := json.Marshal(_manifest)
	require.NoError(tb, err)

	return *_manifest, jManifest
}
