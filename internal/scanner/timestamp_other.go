//go:build !darwin && !windows

package scanner

import "os"

// creationTime falls back to the modification time on platforms whose
// stat structure carries no birth time (notably linux).
func creationTime(info os.FileInfo) int64 {
	return info.ModTime().Unix()
}
