package malloc

import "github.com/bnclabs/gomem/lib"

// Alignment of large chunks; OS allocations are rounded up to a
// multiple of this.
const Alignment = int64(64)

// Largethreshold bucket sizes at or above this are serviced by a
// shared lock-free stack instead of a per bucket sub-allocator.
const Largethreshold = int64(1 << 20)

// Slabbytes default byte budget of one sub-allocator slab, also the
// unit used by Reserve to page memory in.
const Slabbytes = int64(1 << 20)

// Pagesize assumed OS page size, Reserve touches one byte per page.
const Pagesize = int64(1 << 12)

// Defaultsettings for NewPoolalloc.
//
// "large.threshold" (int64, default: Largethreshold)
//	Bucket sizes at or above this are large buckets.
//
// "small.slabbytes" (int64, default: Slabbytes - 64)
//	Byte budget of a single sub-allocator slab.
//
// "small.freelist" (int64, default: 0)
//	Hint of expected free blocks per sub-allocator shard.
//
// "allocator" (string, default: "block")
//	Sub-allocator algorithm servicing small buckets.
func Defaultsettings() lib.Settings {
	return lib.Settings{
		"large.threshold": Largethreshold,
		"small.slabbytes": Slabbytes - 64,
		"small.freelist":  int64(0),
		"allocator":       "block",
	}
}

// Defaultsizes return power of two bucket sizes from 16 up to
// 2^log2up(physical-memory/64), the size list used by the process
// wide default pool.
func Defaultsizes() []int64 {
	logmax := log2up(lib.Memorysize() / 64)
	sizes := make([]int64, 0, logmax)
	for shift := 4; shift <= logmax; shift++ {
		sizes = append(sizes, int64(1)<<uint(shift))
	}
	return sizes
}
