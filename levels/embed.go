package levels

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed *.yaml
var LevelsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Dir is where on-disk overrides are looked up before the embedded copies.
var Dir = "levels"

// Load reads a level file, preferring the disk copy so edits are picked up
// without a rebuild.
func Load(name string) ([]byte, error) {
	clean := cleanLevelPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return LevelsFS.ReadFile(clean)
}

func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPath(cleanLevelPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanLevelPath(path string) string {
	if path == "" {
		return "default.yaml"
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		s = after
	}
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "levels/scripts/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	return fmt.Sprintf("scripts/%s", s)
}

func diskPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
