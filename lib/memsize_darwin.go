//go:build darwin

package lib

import "golang.org/x/sys/unix"

// Memorysize return total physical memory in bytes.
func Memorysize() int64 {
	size, err := unix.SysctlUint64("hw.memsize")
	if err != nil {
		panicerr("sysctl hw.memsize: %v", err)
	}
	return int64(size)
}
