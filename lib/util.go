package lib

import "fmt"
import "unsafe"

// Memcpy copy memory block of length `ln` from `src` to `dst`. Useful
// when either block is obtained outside the golang runtime.
func Memcpy(dst, src unsafe.Pointer, ln int) int {
	copy(unsafe.Slice((*byte)(dst), ln), unsafe.Slice((*byte)(src), ln))
	return ln
}

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}
