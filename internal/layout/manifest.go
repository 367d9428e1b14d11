package layout

import (
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
)

// ManifestName is the file the target configuration is read from.
const ManifestName = "cedar.toml"

// Manifest mirrors the cedar.toml schema.
//
//	[target]
//	triple = "i686-linux-gnu"
//	pointer_align = 4   # optional override
type Manifest struct {
	Target ManifestTarget `toml:"target"`
}

// ManifestTarget is the [target] section.
type ManifestTarget struct {
	Triple       string `toml:"triple"`
	PointerAlign int64  `toml:"pointer_align"`
}

// LoadManifest reads and resolves a manifest file.
func LoadManifest(path string) (Target, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return Target{}, fmt.Errorf("read %s: %w", path, err)
	}
	return m.Resolve()
}

// Resolve turns the decoded manifest into a Target.
func (m Manifest) Resolve() (Target, error) {
	target, ok := Lookup(m.Target.Triple)
	if !ok {
		return Target{}, fmt.Errorf("unknown target triple %q", m.Target.Triple)
	}
	if m.Target.PointerAlign != 0 {
		align, err := safecast.Conv[uint64](m.Target.PointerAlign)
		if err != nil {
			return Target{}, fmt.Errorf("pointer_align: %w", err)
		}
		target.PtrAlign = align
	}
	return target, nil
}

// FindManifest walks from dir upward and returns the first cedar.toml.
func FindManifest(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// ResolveTarget picks the target for a checked path: an explicit triple
// wins, then a manifest found near the path, then the default.
func ResolveTarget(triple, near string) (Target, error) {
	if triple != "" {
		target, ok := Lookup(triple)
		if !ok {
			return Target{}, fmt.Errorf("unknown target triple %q", triple)
		}
		return target, nil
	}
	dir := near
	if dir != "" {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			dir = filepath.Dir(dir)
		}
		if path, ok := FindManifest(dir); ok {
			return LoadManifest(path)
		}
	}
	return X86_64LinuxGNU(), nil
}
