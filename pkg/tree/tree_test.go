package tree

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nainya/osinfodb/internal/location"
	"github.com/nainya/osinfodb/internal/metrics"
)

const fedoraTreeinfo = `[general]
family = Fedora
timestamp = 1320265838.92
variant = Fedora
version = 16
packagedir =
arch = x86_64

[stage2]
mainimage = LiveOS/squashfs.img

[images-x86_64]
kernel = images/pxeboot/vmlinuz
initrd = images/pxeboot/initrd.img
boot.iso = images/boot.iso

[images-xen]
kernel = images/pxeboot/vmlinuz
initrd = images/pxeboot/initrd.img
`

func TestParseTreeinfo(t *testing.T) {
	ti, err := ParseTreeinfo([]byte(fedoraTreeinfo))
	require.NoError(t, err)

	assert.Equal(t, "Fedora", ti.Family)
	assert.Equal(t, "Fedora", ti.Variant)
	assert.Equal(t, "16", ti.Version)
	assert.Equal(t, "x86_64", ti.Arch)
	assert.Equal(t, "images/pxeboot/vmlinuz", ti.Kernel)
	assert.Equal(t, "images/pxeboot/initrd.img", ti.Initrd)
	assert.Equal(t, "images/boot.iso", ti.BootISO)
}

func TestParseTreeinfoMissingKeys(t *testing.T) {
	ti, err := ParseTreeinfo([]byte("[general]\nfamily = CentOS\n"))
	require.NoError(t, err)

	assert.Equal(t, "CentOS", ti.Family)
	assert.Empty(t, ti.Version)
	assert.Empty(t, ti.Kernel)

	tr := New("file:///srv/centos", "")
	ti.Apply(tr)
	assert.Equal(t, "CentOS", tr.TreeinfoFamily())
	assert.True(t, tr.HasTreeinfo())
	_, ok := tr.GetParam(ParamTreeinfoVersion)
	assert.False(t, ok)
}

func TestParseTreeinfoMalformed(t *testing.T) {
	_, err := ParseTreeinfo([]byte("[general\nfamily = Fedora\n"))
	assert.ErrorIs(t, err, ErrMalformedTreeinfo)
}

func TestCreateFromLocation(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/srv/f16/.treeinfo", []byte(fedoraTreeinfo), 0o644))

	reg := prometheus.NewRegistry()
	mx := metrics.NewMetrics(reg)

	tr, err := CreateFromLocation(context.Background(), "file:///srv/f16", WithFs(fs), WithMetrics(mx))
	require.NoError(t, err)

	assert.Equal(t, "file:///srv/f16", tr.ID())
	assert.Equal(t, "file:///srv/f16", tr.URL())
	assert.Equal(t, "Fedora", tr.TreeinfoFamily())
	assert.Equal(t, "x86_64", tr.TreeinfoArch())
	assert.Equal(t, "images/boot.iso", tr.BootISO())
	assert.True(t, tr.HasTreeinfo())
	assert.Empty(t, tr.OsID())

	assert.Equal(t, 1.0, testutil.ToFloat64(mx.ProbeTotal.WithLabelValues("tree", "none")))
}

func TestCreateFromLocationFallback(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/srv/rhel/treeinfo", []byte(fedoraTreeinfo), 0o644))

	tr, err := CreateFromLocation(context.Background(), "/srv/rhel", WithFs(fs))
	require.NoError(t, err)
	assert.Equal(t, "16", tr.TreeinfoVersion())
}

func TestCreateFromLocationErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/srv/empty", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/srv/bad/.treeinfo", []byte("[general\n"), 0o644))

	_, err := CreateFromLocation(context.Background(), "/srv/empty", WithFs(fs))
	assert.ErrorIs(t, err, ErrNoTreeinfo)

	_, err = CreateFromLocation(context.Background(), "/srv/bad", WithFs(fs))
	assert.ErrorIs(t, err, ErrMalformedTreeinfo)

	_, err = CreateFromLocation(context.Background(), "ftp://mirror/f16", WithFs(fs))
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = CreateFromLocation(ctx, "/srv/empty", WithFs(fs))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCreateFromLocationEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, ".treeinfo", []byte(fedoraTreeinfo), 0o644))

	reg := prometheus.NewRegistry()
	mx := metrics.NewMetrics(reg)

	var tr *Tree
	var err error
	require.NotPanics(t, func() {
		tr, err = CreateFromLocation(context.Background(), "", WithFs(fs), WithMetrics(mx))
	})
	assert.Nil(t, tr)
	assert.ErrorIs(t, err, location.ErrEmptyLocation)
	assert.Equal(t, 1.0, testutil.ToFloat64(mx.ProbeTotal.WithLabelValues("tree", "io")))
}
