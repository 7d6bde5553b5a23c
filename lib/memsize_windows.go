//go:build windows

package lib

import "unsafe"

import "golang.org/x/sys/windows"

// Memorysize return total physical memory in bytes.
func Memorysize() int64 {
	var status windows.MemoryStatusEx
	status.Length = uint32(unsafe.Sizeof(status))
	if err := windows.GlobalMemoryStatusEx(&status); err != nil {
		panicerr("GlobalMemoryStatusEx: %v", err)
	}
	return int64(status.TotalPhys)
}
