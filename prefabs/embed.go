package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

// Dir is the on-disk prefab directory. Files found there take precedence
// over the embedded copies, which is what makes hot reloading work.
var Dir = "prefabs"

// Load returns the named prefab, preferring the copy on disk.
func Load(name string) ([]byte, error) {
	return readOverride(PrefabsFS, cleanPrefabPath(name))
}

// LoadScript returns the named script, preferring the copy on disk.
func LoadScript(name string) ([]byte, error) {
	return readOverride(ScriptsFS, cleanScriptPath(name))
}

func readOverride(embedded fs.ReadFileFS, clean string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return embedded.ReadFile(clean)
}

// cleanPrefabPath accepts names with or without the prefabs/ prefix.
func cleanPrefabPath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

// cleanScriptPath maps "x.tengo", "scripts/x.tengo" and
// "prefabs/scripts/x.tengo" to the embedded "scripts/x.tengo".
func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}
	s := strings.TrimPrefix(filepath.ToSlash(path), "prefabs/")
	return "scripts/" + strings.TrimPrefix(s, "scripts/")
}
