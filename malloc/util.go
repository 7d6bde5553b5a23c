package malloc

import "errors"
import "fmt"

// ErrorOutofMemory when the OS fails a large or oversized allocation.
var ErrorOutofMemory = errors.New("malloc.outofmemory")

// ErrorBucketsizes when bucket sizes are not strictly increasing, or
// a small bucket size is below the minimum of 8.
var ErrorBucketsizes = errors.New("malloc.bucketsizes")

// suitable return the index of the smallest size >= n. Callers make
// sure n <= sizes[len(sizes)-1].
func suitable(sizes []int64, n int64) int {
	lo, hi := 0, len(sizes)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if sizes[mid] < n {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// alignup round n up to the next multiple of align, a power of two.
func alignup(n, align int64) int64 {
	return (n + align - 1) &^ (align - 1)
}

// log2up smallest k such that 1<<k >= n.
func log2up(n int64) int {
	k := 0
	for v := int64(1); v < n; v <<= 1 {
		k++
	}
	return k
}

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}
