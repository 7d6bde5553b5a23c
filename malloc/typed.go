package malloc

import "sync"
import "unsafe"

var defaultonce sync.Once
var defaultpool *Poolalloc

// Defaultpool return the process wide pool allocator over the default
// bucket sizes, constructed once on first use and alive for the rest
// of the process.
func Defaultpool() *Poolalloc {
	defaultonce.Do(func() {
		defaultpool = NewPoolalloc(Defaultsizes(), nil)
	})
	return defaultpool
}

// Typedalloc binds one dedicated sub-allocator to T's exact size,
// bypassing bucket search. T shall not hold Go pointers, the blocks
// live on the C heap.
type Typedalloc[T any] struct {
	block *Blockalloc
}

// NewTypedalloc create an allocator handing out single items of T.
func NewTypedalloc[T any]() *Typedalloc[T] {
	var zero T
	size := int64(unsafe.Sizeof(zero))
	if size < 8 {
		size = 8
	}
	return &Typedalloc[T]{block: NewBlockalloc(size, 0, Slabbytes-64)}
}

// Alloc one item.
func (ta *Typedalloc[T]) Alloc() *T {
	return (*T)(ta.block.Alloc())
}

// Free an item obtained from Alloc.
func (ta *Typedalloc[T]) Free(ptr *T) {
	ta.block.Free(unsafe.Pointer(ptr))
}

// Reserve capacity for `bytes` worth of items upfront.
func (ta *Typedalloc[T]) Reserve(bytes int64) {
	ta.block.Reserve(bytes)
}

// Clear release all slabs. Caller makes sure no item is in use.
func (ta *Typedalloc[T]) Clear() {
	ta.block.Clear()
}

// Blocksize return the per item allocation size.
func (ta *Typedalloc[T]) Blocksize() int64 {
	return ta.block.Blocksize()
}

// Allocblocks return the number of items carved out of slabs.
func (ta *Typedalloc[T]) Allocblocks() int64 {
	return ta.block.Allocblocks()
}

// Usedblocks return the number of items held by callers.
func (ta *Typedalloc[T]) Usedblocks() int64 {
	return ta.block.Usedblocks()
}

// Allocator is a drop-in array allocator over the process wide
// default pool. All instances of the same T are interchangeable,
// chunks allocated through one can be freed through another.
type Allocator[T any] struct{}

// Allocate a chunk of `n` items of T.
func (a Allocator[T]) Allocate(n int64) *T {
	var zero T
	return (*T)(Defaultpool().Alloc(n * int64(unsafe.Sizeof(zero))))
}

// Deallocate a chunk obtained from Allocate, `n` shall be the same
// item count.
func (a Allocator[T]) Deallocate(ptr *T, n int64) {
	var zero T
	Defaultpool().Free(unsafe.Pointer(ptr), n*int64(unsafe.Sizeof(zero)))
}

// Equal reports whether chunks can move between the two allocators,
// always true, instances compare equal by type alone.
func (a Allocator[T]) Equal(other Allocator[T]) bool {
	return true
}
