package malloc

import "sync"
import "sync/atomic"
import "unsafe"

import "github.com/bnclabs/gomem/cas16"

// node shell holding one stacked value. length memoizes the list
// length below and including this node, captured at push time, so
// Size() is O(1).
type node[T any] struct {
	value  T
	next   *node[T]
	length int64
}

// primstack is a single lock-free LIFO of node shells. The head is a
// (pointer, counter) pair swapped as one 16-byte unit; the counter
// increments on every successful swap and defeats ABA reuse of a
// shell between read and retry. Counter exhaustion needs 2^64
// sequential updates.
type primstack[T any] struct {
	head *[2]uint64
}

func newprimstack[T any]() primstack[T] {
	return primstack[T]{head: cas16.Alignedpair()}
}

func (s *primstack[T]) top() *node[T] {
	ptr := atomic.LoadUint64(&s.head[0])
	return (*node[T])(unsafe.Pointer(uintptr(ptr)))
}

func (s *primstack[T]) size() int64 {
	if nd := s.top(); nd != nil {
		return nd.length
	}
	return 0
}

func (s *primstack[T]) push(nd *node[T]) {
	for {
		old0 := atomic.LoadUint64(&s.head[0])
		old1 := atomic.LoadUint64(&s.head[1])
		top := (*node[T])(unsafe.Pointer(uintptr(old0)))
		// top may be racing with a pop, a stale length or next is
		// corrected by the failing swap below.
		nd.next = top
		nd.length = 1
		if top != nil {
			nd.length = top.length + 1
		}
		new0 := uint64(uintptr(unsafe.Pointer(nd)))
		if cas16.Compareandswap(s.head, old0, old1, new0, old1+1) {
			return
		}
	}
}

func (s *primstack[T]) pop() *node[T] {
	for {
		old0 := atomic.LoadUint64(&s.head[0])
		old1 := atomic.LoadUint64(&s.head[1])
		nd := (*node[T])(unsafe.Pointer(uintptr(old0)))
		if nd == nil {
			return nil
		}
		new0 := uint64(uintptr(unsafe.Pointer(nd.next)))
		if cas16.Compareandswap(s.head, old0, old1, new0, old1+1) {
			return nd
		}
	}
}

// Stack is a linearizable lock-free LIFO. Push and Pop never block:
// they are wait-free without contention and lock-free under it, some
// goroutine always makes progress. Two primitive stacks share one
// shell pool, "live" holds stored values and "free" holds retired
// shells for reuse, so popping never hands memory back to the very
// allocator a Stack may be backing.
type Stack[T any] struct {
	live primstack[T]
	free primstack[T]

	// shells minted for this stack. The head words above hold node
	// addresses as plain integers, this registry is what keeps the
	// shells visible to the garbage collector.
	mintlk sync.Mutex
	shells []*node[T]
}

// NewStack create an empty lock-free stack.
func NewStack[T any]() *Stack[T] {
	return &Stack[T]{
		live: newprimstack[T](),
		free: newprimstack[T](),
	}
}

// Size return a point-in-time count of stacked values. The result is
// not synchronized with concurrent Push/Pop and can be stale the
// instant it returns.
func (s *Stack[T]) Size() int64 {
	return s.live.size()
}

// Push value as the new top of the stack.
func (s *Stack[T]) Push(value T) {
	nd := s.free.pop()
	if nd == nil {
		nd = &node[T]{}
		s.mintlk.Lock()
		s.shells = append(s.shells, nd)
		s.mintlk.Unlock()
	}
	nd.value = value
	s.live.push(nd)
}

// Pop remove and return the value at the top of the stack, ok is
// false when the stack is empty.
func (s *Stack[T]) Pop() (value T, ok bool) {
	nd := s.live.pop()
	if nd == nil {
		return value, false
	}
	var zero T
	value, nd.value = nd.value, zero
	s.free.push(nd)
	return value, true
}

// Clear reclaim every shell, live and retired. Caller makes sure no
// Push or Pop is in flight.
func (s *Stack[T]) Clear() {
	for s.live.pop() != nil {
	}
	for s.free.pop() != nil {
	}
	s.mintlk.Lock()
	s.shells = nil
	s.mintlk.Unlock()
}
