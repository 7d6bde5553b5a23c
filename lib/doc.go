// Package lib provide small self-contained helpers shared by the
// allocator packages: configuration settings, a chunked parallel-for,
// raw memory copy and platform probes. Nothing here depends on the
// allocators themselves.
package lib
