package location

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	p, err := Resolve("/srv/isos/f16.iso")
	require.NoError(t, err)
	assert.Equal(t, "/srv/isos/f16.iso", p)

	p, err = Resolve("file:///srv/isos/f16.iso")
	require.NoError(t, err)
	assert.Equal(t, "/srv/isos/f16.iso", p)

	_, err = Resolve("http://mirror.example.com/f16.iso")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)

	_, err = Resolve("file://mirror.example.com/f16.iso")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)

	_, err = Resolve("")
	assert.ErrorIs(t, err, ErrEmptyLocation)
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "/srv/tree/.treeinfo", Join("/srv/tree/", ".treeinfo"))
	assert.Equal(t, "file:///srv/tree/.treeinfo", Join("file:///srv/tree/", ".treeinfo"))
}

func TestOpen(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/srv/a", []byte("x"), 0o644))

	f, err := Open(fs, "file:///srv/a")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = Open(fs, "/srv/missing")
	assert.Error(t, err)

	_, err = Open(fs, "")
	assert.ErrorIs(t, err, ErrEmptyLocation)
}
