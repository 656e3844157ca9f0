package catalog

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nainya/osinfodb/internal/metrics"
	"github.com/nainya/osinfodb/pkg/datamap"
	"github.com/nainya/osinfodb/pkg/media"
	"github.com/nainya/osinfodb/pkg/tree"
)

func fedoraCatalog(opts ...Option) *Db {
	db := New(opts...)
	f16 := NewOs("fedora16")
	f16.SetParam(ParamFamily, "linux")

	dvd := media.New("fedora16:dvd-i686", "i686")
	dvd.SetParam(media.ParamVolumeID, "Fedora-16-.*")
	dvd.SetParam(media.ParamSystemID, "LINUX")
	dvd.SetParamInt64(media.ParamVolumeSize, 3806375936)
	dvd.SetParam(media.ParamKernel, "isolinux/vmlinuz")
	dvd.SetParam(media.ParamInitrd, "isolinux/initrd.img")
	f16.AddMedia(dvd)

	net := tree.New("fedora16:tree-x86_64", "x86_64")
	net.SetParam(tree.ParamTreeinfoFamily, "Fedora")
	net.SetParam(tree.ParamTreeinfoVersion, "16")
	net.SetParam(tree.ParamTreeinfoArch, "x86_64")
	net.SetParam(tree.ParamKernel, "images/pxeboot/vmlinuz")
	net.SetParam(tree.ParamURL, "http://download.fedoraproject.org/pub/fedora/16")
	f16.AddTree(net)

	db.AddOs(f16)
	return db
}

func fedoraCandidate(size int64) *media.Media {
	m := media.New("file:///isos/Fedora-16-i386-DVD.iso", "")
	m.SetParam(media.ParamVolumeID, "Fedora-16-i386-DVD")
	m.SetParam(media.ParamSystemID, "LINUX")
	m.SetParamInt64(media.ParamVolumeSize, size)
	return m
}

func TestIdentifyMedia(t *testing.T) {
	db := fedoraCatalog()
	m := fedoraCandidate(3806375936)

	require.True(t, db.IdentifyMedia(m))
	assert.Equal(t, "fedora16", m.OsID())
	assert.Equal(t, "fedora16:dvd-i686", m.ID())
	assert.Equal(t, "i686", m.Architecture())
	assert.Equal(t, "isolinux/vmlinuz", m.Kernel())
	assert.Equal(t, "isolinux/initrd.img", m.Initrd())
	assert.Equal(t, "Fedora-16-i386-DVD", m.VolumeID(), "probed fields are kept")

	// catalog entry is not touched
	entry, ok := db.GetOs("fedora16").MediaList().Find("fedora16:dvd-i686")
	require.True(t, ok)
	assert.Equal(t, "Fedora-16-.*", entry.VolumeID())
}

func TestIdentifyMediaSizeMismatch(t *testing.T) {
	db := fedoraCatalog()
	m := fedoraCandidate(999)
	keys := m.GetParamKeys()

	assert.False(t, db.IdentifyMedia(m))
	assert.Equal(t, "file:///isos/Fedora-16-i386-DVD.iso", m.ID())
	assert.Empty(t, m.OsID())
	assert.Equal(t, keys, m.GetParamKeys())
}

func TestIdentifyMediaIsDeterministic(t *testing.T) {
	db := fedoraCatalog()
	m := fedoraCandidate(3806375936)

	require.True(t, db.IdentifyMedia(m))
	first := m.OsID()
	require.True(t, db.IdentifyMedia(m))
	assert.Equal(t, first, m.OsID())
}

func TestIdentifyMediaUnsizedEntryIgnoresSize(t *testing.T) {
	db := New()
	o := NewOs("generic")
	e := media.New("generic:cd", "")
	e.SetParam(media.ParamVolumeID, "Fedora")
	o.AddMedia(e)
	db.AddOs(o)

	assert.True(t, db.IdentifyMedia(fedoraCandidate(999)))
}

func TestIdentifyMediaFieldRules(t *testing.T) {
	tests := []struct {
		name    string
		pattern map[string]string
		want    bool
	}{
		{"absent patterns match", map[string]string{media.ParamVolumeID: "Fedora"}, true},
		{"anchored at start", map[string]string{media.ParamVolumeID: "16-i386"}, false},
		{"pattern against absent value", map[string]string{media.ParamVolumeID: "Fedora", media.ParamPublisherID: ".*"}, false},
		{"invalid pattern never matches", map[string]string{media.ParamVolumeID: "Fedora-(16"}, false},
		{"all fields", map[string]string{media.ParamVolumeID: "Fedora", media.ParamSystemID: "LIN"}, true},
		{"system mismatch", map[string]string{media.ParamVolumeID: "Fedora", media.ParamSystemID: "Win32"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := New()
			o := NewOs("os")
			e := media.New("os:media", "")
			for k, v := range tt.pattern {
				e.SetParam(k, v)
			}
			o.AddMedia(e)
			db.AddOs(o)

			assert.Equal(t, tt.want, db.IdentifyMedia(fedoraCandidate(1)))
		})
	}
}

func TestIdentifyMediaWithoutVolumeID(t *testing.T) {
	db := New()
	o := NewOs("any")
	o.AddMedia(media.New("any:media", ""))
	db.AddOs(o)

	m := media.New("file:///blank.iso", "")
	assert.False(t, db.IdentifyMedia(m))
}

func TestIdentifyMediaFirstOsWins(t *testing.T) {
	db := New()
	for _, id := range []string{"first", "second"} {
		o := NewOs(id)
		e := media.New(id+":dvd", "")
		e.SetParam(media.ParamVolumeID, "Fedora")
		o.AddMedia(e)
		db.AddOs(o)
	}

	os, entry := db.GuessOsFromMedia(fedoraCandidate(1))
	require.NotNil(t, os)
	assert.Equal(t, "first", os.ID())
	assert.Equal(t, "first:dvd", entry.ID())
}

func TestIdentifyMediaPrefersLiteralSubstring(t *testing.T) {
	db := New()
	o := NewOs("fedora16")
	generic := media.New("fedora16:generic", "")
	generic.SetParam(media.ParamVolumeID, "Fedora.*")
	o.AddMedia(generic)
	exact := media.New("fedora16:i386", "")
	exact.SetParam(media.ParamVolumeID, "Fedora-16-i386")
	o.AddMedia(exact)
	db.AddOs(o)

	m := fedoraCandidate(1)
	require.True(t, db.IdentifyMedia(m))
	assert.Equal(t, "fedora16:i386", m.ID())
}

func TestGuessOsFromMediaLeavesCandidate(t *testing.T) {
	db := fedoraCatalog()
	m := fedoraCandidate(3806375936)

	os, entry := db.GuessOsFromMedia(m)
	require.NotNil(t, os)
	assert.Equal(t, "fedora16", os.ID())
	assert.Equal(t, "fedora16:dvd-i686", entry.ID())
	assert.Equal(t, "file:///isos/Fedora-16-i386-DVD.iso", m.ID())
	assert.Empty(t, m.OsID())

	os, entry = db.GuessOsFromMedia(fedoraCandidate(999))
	assert.Nil(t, os)
	assert.Nil(t, entry)
}

func windowsCatalog() *Db {
	db := New()
	langs := datamap.New("http://microsoft.com/win/xp/lang")
	langs.Insert("EN", "en_US")
	langs.Insert("DE", "de_DE")
	db.AddDatamap(langs)

	xp := NewOs("winxp")
	e := media.New("winxp:cd", "i386")
	e.SetParam(media.ParamVolumeID, "WXP[A-Z]+_")
	e.SetParam(media.ParamLanguageRegex, "WXP[A-Z]+_([A-Z]+)")
	e.SetParam(media.ParamLanguageMap, langs.ID())
	e.SetLanguages([]string{"en_US", "de_DE", "fr_FR"})
	e.SetParamBool(media.ParamEjectAfterInstall, false)
	e.SetParamInt64(media.ParamInstallerReboots, 2)
	xp.AddMedia(e)
	db.AddOs(xp)
	return db
}

func TestIdentifyMediaLanguages(t *testing.T) {
	tests := []struct {
		volumeID string
		want     []string
	}{
		{"WXPFPP_EN", []string{"en_US"}},
		{"WXPFPP_DE", []string{"de_DE"}},
		{"WXPFPP_PT", []string{"PT"}},
		{"WXPFPP_", []string{"en_US", "de_DE", "fr_FR"}},
	}

	for _, tt := range tests {
		t.Run(tt.volumeID, func(t *testing.T) {
			db := windowsCatalog()
			m := media.New("file:///xp.iso", "")
			m.SetParam(media.ParamVolumeID, tt.volumeID)

			require.True(t, db.IdentifyMedia(m))
			assert.Equal(t, tt.want, m.Languages())
			assert.Equal(t, 2, m.InstallerReboots())
			assert.False(t, m.EjectAfterInstall())
		})
	}
}

func TestGuessOsFromTree(t *testing.T) {
	db := fedoraCatalog()
	candidate := tree.New("file:///srv/f16", "")
	candidate.SetParam(tree.ParamURL, "file:///srv/f16")
	candidate.SetParam(tree.ParamTreeinfoFamily, "Fedora")
	candidate.SetParam(tree.ParamTreeinfoVariant, "Fedora")
	candidate.SetParam(tree.ParamTreeinfoVersion, "16")
	candidate.SetParam(tree.ParamTreeinfoArch, "x86_64")

	os, entry := db.GuessOsFromTree(candidate)
	require.NotNil(t, os)
	assert.Equal(t, "fedora16", os.ID())
	assert.Equal(t, "fedora16:tree-x86_64", entry.ID())
	assert.Empty(t, candidate.OsID())

	require.True(t, db.IdentifyTree(candidate))
	assert.Equal(t, "fedora16:tree-x86_64", candidate.ID())
	assert.Equal(t, "fedora16", candidate.OsID())
	assert.Equal(t, "file:///srv/f16", candidate.URL())
	assert.Equal(t, "images/pxeboot/vmlinuz", candidate.Kernel())
	assert.Equal(t, "x86_64", candidate.Architecture())

	other := tree.New("file:///srv/f17", "")
	other.SetParam(tree.ParamTreeinfoFamily, "Fedora")
	other.SetParam(tree.ParamTreeinfoVersion, "17")
	other.SetParam(tree.ParamTreeinfoArch, "x86_64")
	assert.False(t, db.IdentifyTree(other))
	assert.Equal(t, "file:///srv/f17", other.ID())
}

func TestIdentifyMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	mx := metrics.NewMetrics(reg)
	db := fedoraCatalog(WithMetrics(mx))

	db.IdentifyMedia(fedoraCandidate(3806375936))
	db.IdentifyMedia(fedoraCandidate(999))
	db.IdentifyMedia(fedoraCandidate(3806375936))

	assert.Equal(t, 2.0, testutil.ToFloat64(mx.IdentifyTotal.WithLabelValues("media", "match")))
	assert.Equal(t, 1.0, testutil.ToFloat64(mx.IdentifyTotal.WithLabelValues("media", "miss")))
	// two patterns, each compiled once
	assert.Equal(t, 2.0, testutil.ToFloat64(mx.RegexCacheTotal.WithLabelValues("miss")))
	assert.Equal(t, 4.0, testutil.ToFloat64(mx.RegexCacheTotal.WithLabelValues("hit")))
}
