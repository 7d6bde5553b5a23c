// Package cas16 supplies a double-width (16-byte) atomic
// compare-and-swap, the primitive behind the lock-free structures in
// gomem/malloc.
//
// The operation is backed by a native instruction sequence selected at
// build time: LOCK CMPXCHG16B on amd64, an LDAXP/STLXP loop on arm64.
// There is no portable substitute with the same atomicity, so on any
// other architecture Compareandswap is simply not declared and
// packages depending on it fail to compile.
package cas16

import "unsafe"

// Alignedpair allocate a [2]uint64 aligned to a 16-byte boundary.
// The Go heap guarantees only 8-byte alignment, while the backing
// instructions fault on an unaligned operand.
func Alignedpair() *[2]uint64 {
	words := make([]uint64, 3)
	ptr := unsafe.Pointer(&words[0])
	if uintptr(ptr)&15 != 0 {
		ptr = unsafe.Pointer(&words[1])
	}
	return (*[2]uint64)(ptr)
}
