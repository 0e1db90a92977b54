package program

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LatestFile returns the most recently modified file in dir whose name
// matches the glob pattern. Subdirectories are not descended into.
func LatestFile(dir, pattern string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("program: scan %s: %w", dir, err)
	}
	var (
		latest    string
		latestMod time.Time
	)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ok, err := filepath.Match(pattern, e.Name())
		if err != nil {
			return "", fmt.Errorf("program: bad pattern %q: %w", pattern, err)
		}
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestMod) {
			latest = e.Name()
			latestMod = info.ModTime()
		}
	}
	if latest == "" {
		return "", fmt.Errorf("program: no files matching %q in %s", pattern, dir)
	}
	return filepath.Join(dir, latest), nil
}
