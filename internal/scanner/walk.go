package scanner

import (
	"os"
	"path/filepath"

	"github.com/mms8452/baby/internal/logging"
)

// walkEntry is one regular file found during traversal.
type walkEntry struct {
	path string
	info os.FileInfo
}

// collectFiles recursively lists every regular file under root, following
// symbolic links. Directories are descended into but never emitted.
//
// Per-entry failures (unreadable directory, entry removed between listing
// and stat, dangling symlink) are skipped silently: one bad entry must not
// abort the whole traversal. A visited set of resolved directory paths
// guards against symlink cycles.
func collectFiles(root string) []walkEntry {
	var entries []walkEntry
	visited := make(map[string]bool)

	var walk func(dir string)
	walk = func(dir string) {
		resolved, err := filepath.EvalSymlinks(dir)
		if err != nil {
			logging.Debug("Skipping unresolvable directory %s: %v", dir, err)
			return
		}
		if visited[resolved] {
			logging.Debug("Skipping already-visited directory %s", dir)
			return
		}
		visited[resolved] = true

		dirEntries, err := os.ReadDir(dir)
		if err != nil {
			logging.Warn("Error reading directory %s: %v", dir, err)
			return
		}

		for _, entry := range dirEntries {
			path := filepath.Join(dir, entry.Name())

			// Stat (not Lstat): symlinked files and directories are
			// treated as their targets.
			info, err := os.Stat(path)
			if err != nil {
				logging.Debug("Skipping unreadable entry %s: %v", path, err)
				continue
			}

			switch {
			case info.IsDir():
				walk(path)
			case info.Mode().IsRegular():
				entries = append(entries, walkEntry{path: path, info: info})
			}
		}
	}

	walk(root)
	return entries
}
