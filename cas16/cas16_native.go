//go:build amd64 || arm64

package cas16

// Compareandswap compare the 16-byte value at *addr with {old0, old1}
// and, if equal, replace it with {new0, new1}, all in one atomic step.
// Return whether the swap happened. addr must be aligned to a 16-byte
// boundary, see Alignedpair().
//
//go:noescape
func Compareandswap(addr *[2]uint64, old0, old1, new0, new1 uint64) bool
