package api

import "unsafe"

// Mallocer interface for pooled memory management. Large chunks are
// 64-byte aligned, small blocks are at least 8-byte aligned.
type Mallocer interface {
	// Slabs return the configured bucket sizes, in ascending order.
	Slabs() (sizes []int64)

	// Alloc a chunk of `n` bytes. Ownership of the chunk transfers
	// exclusively to the caller until it is returned via Free.
	Alloc(n int64) unsafe.Pointer

	// Free a chunk obtained from Alloc. `n` shall be the same size
	// that was passed to the matching Alloc call.
	Free(ptr unsafe.Pointer, n int64)

	// Reserve pre-allocates and touches enough slabs to cover
	// `bytes`, forcing physical pages in, and gives them all back.
	Reserve(bytes int64)

	// Clear drains recycled chunks back to the OS. Shall not be
	// called with Alloc or Free in flight.
	Clear()

	// Stats return an unsynchronized snapshot of memory accounting.
	Stats() map[string]interface{}
}

// Slaballocator is the sub-allocator servicing one small bucket: a
// per-size-class slab allocator handing out fixed size blocks.
type Slaballocator interface {
	// Alloc one block. Block size is fixed at construction.
	Alloc() unsafe.Pointer

	// Free a block back to the sub-allocator.
	Free(ptr unsafe.Pointer)

	// Reserve grows capacity to cover `bytes` worth of blocks.
	Reserve(bytes int64)

	// Clear releases every slab back to the OS. Shall not be called
	// with Alloc or Free in flight.
	Clear()

	// Blocksize return the fixed block size in bytes.
	Blocksize() int64

	// Allocblocks return the number of blocks carved out of slabs.
	Allocblocks() int64

	// Usedblocks return the number of blocks held by callers.
	Usedblocks() int64
}
