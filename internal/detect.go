package internal

import (
	"fmt"
	"os"
	"path/filepath"
)

// DetectArchive locates a HAR capture when none was given explicitly.
// A lone *.har in the working directory wins; otherwise the newest *.har
// under ~/Downloads, which is where browsers drop exported captures.
func DetectArchive() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	local, err := filepath.Glob(filepath.Join(cwd, "*.har"))
	if err != nil {
		return "", fmt.Errorf("failed to scan %s: %w", cwd, err)
	}
	switch len(local) {
	case 0:
		// fall through to Downloads
	case 1:
		return local[0], nil
	default:
		return "", fmt.Errorf("%d .har files in %s, pick one with --archive", len(local), cwd)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	downloads := filepath.Join(home, "Downloads")
	candidates, err := filepath.Glob(filepath.Join(downloads, "*.har"))
	if err != nil {
		return "", fmt.Errorf("failed to scan %s: %w", downloads, err)
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no .har capture found in %s or %s, pass one with --archive", cwd, downloads)
	}

	newest := ""
	var newestMod int64
	for _, path := range candidates {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); newest == "" || mod > newestMod {
			newest = path
			newestMod = mod
		}
	}
	if newest == "" {
		return "", fmt.Errorf("no readable .har capture in %s", downloads)
	}

	Log().Debug().Str("path", newest).Msg("detected archive")
	return newest, nil
}
