// Poolalloc methods are safe to call concurrently, except Clear().

package malloc

//#include <stdlib.h>
import "C"

import "sync/atomic"
import "unsafe"

import "github.com/bnclabs/gomem/api"
import "github.com/bnclabs/gomem/lib"

// Slabfactory builds the sub-allocator servicing one small bucket.
type Slabfactory func(blocksize, freelist, slabbytes int64) api.Slaballocator

// Poolalloc manages memory as an ascending list of bucket sizes.
// Buckets below the large threshold are small, each serviced by its
// own sub-allocator. Buckets at or above the threshold are large,
// each serviced by one lock-free stack recycling freed chunks process
// wide, with the OS as the miss path. Requests above the largest
// bucket go straight to the OS with no pooling.
//
// A Poolalloc shall not be copied after first use, goroutines hold
// references into its buckets and stacks.
type Poolalloc struct {
	// 64-bit aligned stats
	largeheld int64 // bytes of large memory currently held from OS

	sizes    []int64
	numsmall int
	maxsmall int64 // 0 when there are no small buckets
	maxsize  int64

	small []api.Slaballocator
	large []*Stack[unsafe.Pointer]

	// settings
	threshold int64
	slabbytes int64
	allocator string
}

// NewPoolalloc create a pool allocator over the given bucket sizes.
// Sizes must be strictly increasing and small bucket sizes must be at
// least 8, else construction panics with ErrorBucketsizes.
func NewPoolalloc(sizes []int64, setts lib.Settings) *Poolalloc {
	setts = Defaultsettings().Mixin(setts)
	pool := &Poolalloc{
		sizes:     append(make([]int64, 0, len(sizes)), sizes...),
		threshold: setts.Int64("large.threshold"),
		slabbytes: setts.Int64("small.slabbytes"),
		allocator: setts.String("allocator"),
	}
	if len(pool.sizes) == 0 {
		panic(ErrorBucketsizes)
	}
	prev := int64(0)
	for _, size := range pool.sizes {
		if size <= prev {
			panic(ErrorBucketsizes)
		}
		prev = size
	}
	pool.maxsize = pool.sizes[len(pool.sizes)-1]
	for pool.numsmall < len(pool.sizes) {
		if pool.sizes[pool.numsmall] >= pool.threshold {
			break
		}
		pool.numsmall++
	}
	if pool.numsmall > 0 {
		pool.maxsmall = pool.sizes[pool.numsmall-1]
	}

	var factory Slabfactory
	switch pool.allocator {
	case "block":
		factory = blockfactory()
	default:
		panicerr("unknown allocator %q", pool.allocator)
	}
	freelist := setts.Int64("small.freelist")
	for i := 0; i < pool.numsmall; i++ {
		if pool.sizes[i] < 8 {
			panic(ErrorBucketsizes)
		}
		sa := factory(pool.sizes[i], freelist, pool.slabbytes)
		pool.small = append(pool.small, sa)
	}
	for i := pool.numsmall; i < len(pool.sizes); i++ {
		pool.large = append(pool.large, NewStack[unsafe.Pointer]())
	}
	infof("malloc.pool: %v buckets (%v small), threshold %v\n",
		len(pool.sizes), pool.numsmall, pool.threshold)
	return pool
}

func blockfactory() Slabfactory {
	return func(blocksize, freelist, slabbytes int64) api.Slaballocator {
		return NewBlockalloc(blocksize, freelist, slabbytes)
	}
}

// Slabs implement api.Mallocer interface.
func (pool *Poolalloc) Slabs() []int64 {
	return pool.sizes
}

// Alloc a chunk of `n` bytes from the smallest bucket that fits it.
// Ownership of the chunk transfers exclusively to the caller until it
// is returned via Free with the same `n`.
func (pool *Poolalloc) Alloc(n int64) unsafe.Pointer {
	if pool.numsmall == 0 || n > pool.maxsmall {
		return pool.alloclarge(n)
	}
	bucket := suitable(pool.sizes[:pool.numsmall], n)
	return pool.small[bucket].Alloc()
}

// Free a chunk. `n` shall be the same size that was passed to the
// matching Alloc call.
func (pool *Poolalloc) Free(ptr unsafe.Pointer, n int64) {
	if ptr == nil {
		panicerr("Free(): nil pointer")
	}
	if pool.numsmall == 0 || n > pool.maxsmall {
		pool.freelarge(ptr, n)
		return
	}
	bucket := suitable(pool.sizes[:pool.numsmall], n)
	pool.small[bucket].Free(ptr)
}

// Reserve allocate, touch and free `bytes` worth of slabs, forcing
// the backing pages in before the parallel phase that needs them. Net
// outstanding allocations are zero, the freed slabs stay pooled.
func (pool *Poolalloc) Reserve(bytes int64) {
	nslabs := bytes / pool.slabbytes
	if nslabs <= 0 {
		return
	}
	debugf("malloc.pool: reserve %v slabs of %v bytes\n", nslabs, pool.slabbytes)
	ptrs := make([]unsafe.Pointer, nslabs)
	lib.Parfor(0, nslabs, 1, func(i int64) {
		ptrs[i] = pool.Alloc(pool.slabbytes)
	})
	lib.Parfor(0, nslabs, 1, func(i int64) {
		for off := int64(0); off < pool.slabbytes; off += Pagesize {
			*(*byte)(unsafe.Add(ptrs[i], off)) = 0
		}
	})
	for _, ptr := range ptrs {
		pool.Free(ptr, pool.slabbytes)
	}
}

// Clear drain every large bucket, returning recycled chunks to the
// OS. Small buckets are their sub-allocators' responsibility. Caller
// makes sure no Alloc or Free is in flight.
func (pool *Poolalloc) Clear() {
	for i, stack := range pool.large {
		size := alignup(pool.sizes[pool.numsmall+i], Alignment)
		for {
			ptr, ok := stack.Pop()
			if !ok {
				break
			}
			C.free(ptr)
			atomic.AddInt64(&pool.largeheld, -size)
		}
		stack.Clear()
	}
	infof("malloc.pool: cleared, %v large bytes with callers\n",
		atomic.LoadInt64(&pool.largeheld))
}

//---- local functions

func (pool *Poolalloc) alloclarge(n int64) unsafe.Pointer {
	if n > pool.maxsize {
		return pool.sysalloc(n)
	}
	idx := suitable(pool.sizes[pool.numsmall:], n)
	if ptr, ok := pool.large[idx].Pop(); ok {
		return ptr
	}
	return pool.sysalloc(pool.sizes[pool.numsmall+idx])
}

func (pool *Poolalloc) freelarge(ptr unsafe.Pointer, n int64) {
	if n > pool.maxsize {
		C.free(ptr)
		atomic.AddInt64(&pool.largeheld, -alignup(n, Alignment))
		return
	}
	idx := suitable(pool.sizes[pool.numsmall:], n)
	pool.large[idx].Push(ptr)
}

// sysalloc allocate from the OS, rounded up to the next Alignment
// multiple as aligned_alloc requires.
func (pool *Poolalloc) sysalloc(n int64) unsafe.Pointer {
	size := alignup(n, Alignment)
	ptr := C.aligned_alloc(C.size_t(Alignment), C.size_t(size))
	if ptr == nil {
		errorf("malloc.pool: sysalloc of %v bytes failed\n", size)
		panic(ErrorOutofMemory)
	}
	atomic.AddInt64(&pool.largeheld, size)
	return ptr
}
