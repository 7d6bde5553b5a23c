// Blockalloc methods are safe to call concurrently, except Clear().

package malloc

//#include <stdlib.h>
import "C"

import "runtime"
import "sync"
import "sync/atomic"
import "unsafe"

import "github.com/bnclabs/gomem/api"

var _ api.Slaballocator = (*Blockalloc)(nil)

// Blockalloc is a slab allocator for one fixed block size. Slabs are
// C.malloc-ed and carved into equal sized blocks; freed blocks park
// in per-shard lists so that allocating goroutines mostly stay out of
// each other's way. One Blockalloc services one small bucket of a
// Poolalloc.
type Blockalloc struct {
	// 64-bit aligned stats
	nallocated int64
	nused      int64
	rr         uint64

	blocksize int64
	slabsize  int64
	shards    []*blockshard
}

type blockshard struct {
	mu    sync.Mutex
	free  []unsafe.Pointer
	slabs []unsafe.Pointer
}

// NewBlockalloc create a slab allocator handing out blocks of
// `blocksize` bytes, at least 8. freelist hints the expected number
// of free blocks per shard, slabsize is the byte budget of a single
// slab, <= 0 picks the default.
func NewBlockalloc(blocksize, freelist, slabsize int64) *Blockalloc {
	if blocksize < 8 {
		panicerr("blocksize %v below minimum 8", blocksize)
	}
	if slabsize <= 0 {
		slabsize = Slabbytes - 64
	}
	ba := &Blockalloc{blocksize: blocksize, slabsize: slabsize}
	ba.shards = make([]*blockshard, runtime.GOMAXPROCS(0))
	for i := range ba.shards {
		ba.shards[i] = &blockshard{
			free: make([]unsafe.Pointer, 0, freelist),
		}
	}
	return ba
}

// Alloc one block.
func (ba *Blockalloc) Alloc() unsafe.Pointer {
	shard := ba.pick()
	shard.mu.Lock()
	if len(shard.free) == 0 {
		ba.grow(shard)
	}
	ptr := shard.free[len(shard.free)-1]
	shard.free = shard.free[:len(shard.free)-1]
	shard.mu.Unlock()
	atomic.AddInt64(&ba.nused, 1)
	if (ba.blocksize&7) == 0 && (uintptr(ptr)&7) != 0 {
		panicerr("allocated block is not 8 byte aligned")
	}
	return ptr
}

// Free a block back. Blocks can be freed from any goroutine, not
// necessarily the one that allocated them.
func (ba *Blockalloc) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		panicerr("Free(): nil pointer")
	}
	shard := ba.pick()
	shard.mu.Lock()
	shard.free = append(shard.free, ptr)
	shard.mu.Unlock()
	atomic.AddInt64(&ba.nused, -1)
}

// Reserve grow capacity upfront to cover `bytes` worth of blocks.
func (ba *Blockalloc) Reserve(bytes int64) {
	nslabs := (bytes + ba.slabsize - 1) / ba.slabsize
	for i := int64(0); i < nslabs; i++ {
		shard := ba.shards[i%int64(len(ba.shards))]
		shard.mu.Lock()
		ba.grow(shard)
		shard.mu.Unlock()
	}
}

// Clear release every slab to the OS. Caller makes sure no block is
// still in use and no Alloc/Free is in flight.
func (ba *Blockalloc) Clear() {
	if used := atomic.LoadInt64(&ba.nused); used > 0 {
		warnf("malloc.block: Clear() with %v blocks in use\n", used)
	}
	for _, shard := range ba.shards {
		shard.mu.Lock()
		for _, slab := range shard.slabs {
			C.free(slab)
		}
		shard.slabs, shard.free = nil, nil
		shard.mu.Unlock()
	}
	atomic.StoreInt64(&ba.nallocated, 0)
	atomic.StoreInt64(&ba.nused, 0)
}

// Blocksize return the fixed block size in bytes.
func (ba *Blockalloc) Blocksize() int64 {
	return ba.blocksize
}

// Allocblocks return the number of blocks carved out of slabs.
func (ba *Blockalloc) Allocblocks() int64 {
	return atomic.LoadInt64(&ba.nallocated)
}

// Usedblocks return the number of blocks held by callers.
func (ba *Blockalloc) Usedblocks() int64 {
	return atomic.LoadInt64(&ba.nused)
}

//---- local functions

func (ba *Blockalloc) pick() *blockshard {
	n := atomic.AddUint64(&ba.rr, 1)
	return ba.shards[n%uint64(len(ba.shards))]
}

// grow carve one more slab into blocks, shard.mu is held.
func (ba *Blockalloc) grow(shard *blockshard) {
	nblocks := ba.slabsize / ba.blocksize
	if nblocks < 1 {
		nblocks = 1
	}
	base := C.malloc(C.size_t(nblocks * ba.blocksize))
	if base == nil {
		panic(ErrorOutofMemory)
	}
	shard.slabs = append(shard.slabs, base)
	for i := int64(0); i < nblocks; i++ {
		shard.free = append(shard.free, unsafe.Add(base, i*ba.blocksize))
	}
	atomic.AddInt64(&ba.nallocated, nblocks)
}
