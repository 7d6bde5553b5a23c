//go:build linux

package lib

import "golang.org/x/sys/unix"

// Memorysize return total physical memory in bytes.
func Memorysize() int64 {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		panicerr("sysinfo: %v", err)
	}
	return int64(info.Totalram) * int64(info.Unit)
}
