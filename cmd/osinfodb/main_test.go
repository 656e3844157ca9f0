package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nainya/osinfodb/pkg/iso9660"
)

const testCatalog = `
devices:
  - id: http://pcisig.com/pci/1af4/1000
    params: {class: net}
oses:
  - id: http://fedoraproject.org/fedora/16
    params:
      family: linux
      distro: fedora
    media:
      - id: http://fedoraproject.org/fedora/16:dvd
        arch: i686
        params:
          volume-id: Fedora-16-.*
          system-id: LINUX
    trees:
      - id: http://fedoraproject.org/fedora/16:tree
        arch: x86_64
        params:
          treeinfo-family: Fedora
          treeinfo-version: "16"
  - id: http://microsoft.com/win/xp
    params:
      family: winnt
`

type fixture struct {
	dir    string
	config string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{dir: dir, config: filepath.Join(dir, "osinfodb.yaml")}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.yaml"), []byte(testCatalog), 0o644))
	require.NoError(t, os.WriteFile(f.config, []byte(
		"catalog:\n  paths: ["+filepath.Join(dir, "catalog.yaml")+"]\n"+
			"metrics:\n  textfile: "+filepath.Join(dir, "osinfodb.prom")+"\n"), 0o644))

	var img bytes.Buffer
	img.Write(make([]byte, iso9660.SystemAreaSize))
	pvd := &iso9660.PrimaryVolumeDescriptor{System: "LINUX", Volume: "Fedora-16-i386-DVD"}
	img.Write(pvd.Encode())
	img.Write((&iso9660.SupplementaryVolumeDescriptor{System: iso9660.ElToritoTag}).Encode())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f16.iso"), img.Bytes(), 0o644))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tree"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tree", ".treeinfo"),
		[]byte("[general]\nfamily = Fedora\nversion = 16\narch = x86_64\n"), 0o644))
	return f
}

func (f *fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&app{})
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", f.config}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestDetectMedia(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "detect", filepath.Join(f.dir, "f16.iso"))
	require.NoError(t, err)
	assert.Contains(t, out, "os: http://fedoraproject.org/fedora/16")
	assert.Contains(t, out, "media: http://fedoraproject.org/fedora/16:dvd")

	prom, err := os.ReadFile(filepath.Join(f.dir, "osinfodb.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(prom), `osinfodb_identify_total{kind="media",result="match"} 1`)
}

func TestDetectTree(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "detect", "--type", "tree", "file://"+filepath.Join(f.dir, "tree"))
	require.NoError(t, err)
	assert.Contains(t, out, "tree: http://fedoraproject.org/fedora/16:tree")
}

func TestDetectFailures(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "detect", filepath.Join(f.dir, "f16.iso"), filepath.Join(f.dir, "missing.iso"))
	assert.Error(t, err)
	assert.Contains(t, out, "missing.iso: error:")
	assert.Contains(t, out, "os: http://fedoraproject.org/fedora/16")

	_, err = f.run(t, "detect", "--type", "floppy", filepath.Join(f.dir, "f16.iso"))
	assert.ErrorContains(t, err, "--type must be media or tree")
}

func TestQuery(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "query", "os", "family=linux")
	require.NoError(t, err)
	assert.Equal(t, "http://fedoraproject.org/fedora/16\n", out)

	out, err = f.run(t, "query", "device", "class=net")
	require.NoError(t, err)
	assert.Equal(t, "http://pcisig.com/pci/1af4/1000\n", out)

	_, err = f.run(t, "query", "os", "family")
	assert.ErrorContains(t, err, "expected key=value")

	_, err = f.run(t, "query", "widgets")
	assert.ErrorContains(t, err, "unknown collection")
}
