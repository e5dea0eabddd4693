//go:build darwin

package scanner

import (
	"os"
	"syscall"
)

// creationTime reads the file birth time from the underlying stat
// structure, falling back to the modification time if unavailable.
func creationTime(info os.FileInfo) int64 {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return stat.Birthtimespec.Sec
	}
	return info.ModTime().Unix()
}
