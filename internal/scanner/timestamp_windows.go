//go:build windows

package scanner

import (
	"os"
	"syscall"
)

// creationTime reads the file creation time from the Win32 attribute
// data, falling back to the modification time if unavailable.
func creationTime(info os.FileInfo) int64 {
	if attrs, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		return attrs.CreationTime.Nanoseconds() / 1e9
	}
	return info.ModTime().Unix()
}
