// Package arena implements a bump allocator that backs the node-held slices
// the parser builds and the bytes of interned strings; AST node structs
// themselves are ordinary Go allocations. Individual allocations are
// never freed; the whole arena is dropped at once when the containing
// compile unit goes out of scope.
package arena

import "unsafe"

// defaultChunkSize is the byte size of the first chunk. Later chunks double,
// mirroring the growth policy of Go's own slice append.
const defaultChunkSize = 4096

// alignment every arena allocation respects; enough for any struct field a
// parser node would hold, including pointers and int64s.
const alignment = 8

// Arena is a bump allocator over a chain of byte chunks. It is not safe for
// concurrent use; each compile unit owns exactly one Arena from a single
// goroutine.
type Arena struct {
	chunks    [][]byte
	cur       []byte // unused remainder of the tail chunk
	allocated int
	reserved  int
	nodeCount int
}

// New creates an empty arena. The first chunk is allocated lazily.
func New() *Arena {
	return &Arena{}
}

// Stats reports allocator introspection used by debug tooling.
type Stats struct {
	ChunkCount int
	Reserved   int
	Allocated  int
	NodeCount  int
}

// Stats returns a snapshot of the arena's current bookkeeping.
func (a *Arena) Stats() Stats {
	return Stats{
		ChunkCount: len(a.chunks),
		Reserved:   a.reserved,
		Allocated:  a.allocated,
		NodeCount:  a.nodeCount,
	}
}

// Bytes returns n freshly zeroed, alignment-padded bytes carved from the
// arena's current chunk, growing the chunk chain if necessary.
func (a *Arena) Bytes(n int) []byte {
	if n == 0 {
		return nil
	}
	a.ensure(n)
	out := a.cur[:n:n]
	a.cur = a.cur[alignUp(n):]
	a.allocated += n
	return out
}

func alignUp(n int) int {
	return (n + alignment - 1) &^ (alignment - 1)
}

func (a *Arena) ensure(n int) {
	need := alignUp(n)
	if len(a.cur) >= need {
		return
	}
	size := defaultChunkSize
	if len(a.chunks) > 0 {
		size = cap(a.chunks[len(a.chunks)-1]) * 2
	}
	for size < need {
		size *= 2
	}
	chunk := make([]byte, size)
	a.chunks = append(a.chunks, chunk)
	a.reserved += size
	a.cur = chunk
}

// Alloc copies value into arena-owned storage and returns a pointer to the
// copy. The arena, not the garbage collector, owns the copy's lifetime for
// as long as the arena is alive.
func Alloc[T any](a *Arena, value T) *T {
	var zero T
	buf := a.Bytes(int(unsafe.Sizeof(zero)))
	a.nodeCount++
	ptr := (*T)(unsafe.Pointer(unsafe.SliceData(buf)))
	*ptr = value
	return ptr
}

// AllocSlice copies values into a single arena-owned backing array and
// returns a slice over it. Appending past len(values) is undefined; callers
// that need growth should build a Go slice first and call AllocSlice once
// with the final contents.
func AllocSlice[T any](a *Arena, values []T) []T {
	if len(values) == 0 {
		return nil
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	buf := a.Bytes(elemSize * len(values))
	out := unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(buf))), len(values))
	copy(out, values)
	return out
}
