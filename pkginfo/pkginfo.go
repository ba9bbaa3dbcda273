package pkginfo

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/groob/plist"
	"github.com/pkg/errors"
	"github.com/ws1importer/ws1importer/log"
)

// PkgInfo is the subset of a Munki pkginfo plist the importer needs.
type PkgInfo struct {
	Name              string `plist:"name"`
	Version           string `plist:"version"`
	IconName          string `plist:"icon_name"`
	InstallerItemHash string `plist:"installer_item_hash"`
}

// Read loads and validates a pkginfo plist.
func Read(path string) (*PkgInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading pkginfo file [%s]", path)
	}

	var info PkgInfo
	if err := plist.Unmarshal(data, &info); err != nil {
		return nil, errors.Wrapf(err, "parsing pkginfo file [%s]", path)
	}

	if info.Name == "" {
		return nil, errors.Errorf("name not found in pkginfo [%s]", path)
	}
	if info.Version == "" {
		return nil, errors.Errorf("version not found in pkginfo [%s]", path)
	}

	return &info, nil
}

// FindIcon looks for an icon to attach to the app record. An icon named in
// the pkginfo takes precedence over the conventional <name>.png in the
// repo's icons directory. Returns an empty string when nothing usable is
// found; a missing icon never blocks the import.
func (p *PkgInfo) FindIcon(munkiRepo string) string {
	if munkiRepo == "" {
		return ""
	}

	name := p.IconName
	if name == "" {
		name = p.Name + ".png"
	}
	iconPath := filepath.Join(munkiRepo, "icons", name)
	if _, err := os.Stat(iconPath); err != nil {
		log.Infof("could not read icon file [%s] - skipping", iconPath)
		return ""
	}
	return iconPath
}

// SHA256File returns the SHA-256 of a file as a hex string, hashing in
// 64 KiB chunks.
func SHA256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "opening [%s] for hashing", path)
	}
	defer f.Close()

	hasher := sha256.New()
	buf := make([]byte, 1<<16)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			hasher.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.Wrapf(err, "hashing [%s]", path)
		}
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
