package scanner

import (
	"fmt"
	"os"
)

// ResolveTimestamp returns the best-effort creation time of the file at
// path, in epoch seconds with sub-second precision discarded.
//
// Platforms that expose a filesystem birth time (darwin, windows) use it;
// everywhere else the last-modified time stands in. An error is returned
// only when the path cannot be stat'd at all, which during a scan usually
// means the file vanished between traversal and read.
func ResolveTimestamp(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read file metadata for %s: %w", path, err)
	}
	return creationTime(info), nil
}
