package pkginfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fooPkginfo = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>name</key>
	<string>Foo</string>
	<key>version</key>
	<string>1.2.3</string>
	<key>installer_item_hash</key>
	<string>deadbeef</string>
</dict>
</plist>
`

func writePkginfo(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Foo-1.2.3.plist")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead(t *testing.T) {
	info, err := Read(writePkginfo(t, fooPkginfo))
	require.NoError(t, err)
	assert.Equal(t, "Foo", info.Name)
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "deadbeef", info.InstallerItemHash)
	assert.Empty(t, info.IconName)
}

func TestReadMissingVersion(t *testing.T) {
	content := `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>name</key>
	<string>Foo</string>
</dict>
</plist>
`
	_, err := Read(writePkginfo(t, content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version not found")
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.plist"))
	assert.Error(t, err)
}

func TestFindIconByConvention(t *testing.T) {
	repo := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(repo, "icons"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(repo, "icons", "Foo.png"), []byte("png"), 0o644))

	info := &PkgInfo{Name: "Foo", Version: "1.0"}
	assert.Equal(t, filepath.Join(repo, "icons", "Foo.png"), info.FindIcon(repo))
}

func TestFindIconExplicitName(t *testing.T) {
	repo := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(repo, "icons"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(repo, "icons", "Foo_special.png"), []byte("png"), 0o644))

	info := &PkgInfo{Name: "Foo", Version: "1.0", IconName: "Foo_special.png"}
	assert.Equal(t, filepath.Join(repo, "icons", "Foo_special.png"), info.FindIcon(repo))
}

func TestFindIconMissing(t *testing.T) {
	info := &PkgInfo{Name: "Foo", Version: "1.0"}
	assert.Empty(t, info.FindIcon(t.TempDir()))
	assert.Empty(t, info.FindIcon(""))
}

func TestSHA256File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payload")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	sum, err := SHA256File(path)
	require.NoError(t, err)
	// Well-known SHA-256 of "abc".
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", sum)

	_, err = SHA256File(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
