// Package malloc supplies concurrent memory management for parallel
// algorithms, with a limited scope:
//
//   - Chunks are headerless; callers pass the allocation size back to
//     Free, the same value they passed to Alloc.
//   - Chunk memory comes from the C heap. It never moves and is
//     invisible to the garbage collector, so chunks shall not hold Go
//     pointers.
//   - Large chunks are recycled through lock-free stacks shared by
//     all goroutines; allocate and free never block on the hot path.
//   - Small chunks are serviced by per size-class slab sub-allocators
//     behind the api.Slaballocator interface.
//   - Large chunks are always 64-byte aligned.
//   - Clear() on a pool, stack or sub-allocator assumes no concurrent
//     mutator is in flight; the caller owns that guarantee.
//
// The lock-free stacks ride on a 16-byte compare-and-swap, see
// package cas16. Architectures without a double-width CAS backend
// fail at build time.
package malloc
