// Package intern implements a byte-exact string interner. Interned strings
// are arena-owned and compared by handle identity, never by content, after
// the initial lookup.
package intern

import (
	"unsafe"

	"github.com/cxylang/frontend/internal/arena"
)

// Handle identifies an interned string. The zero Handle is never produced by
// Intern and can be used as a "not yet interned" sentinel by callers.
type Handle uint32

// Interner is a hash set keyed by byte content. No normalization (NFC/NFKC,
// case folding) is performed; two strings intern to the same Handle only if
// they are byte-for-byte identical.
type Interner struct {
	arena   *arena.Arena
	byBytes map[string]Handle
	strings []string
}

// New creates an empty interner backed by a. Strings live as long as a does.
func New(a *arena.Arena) *Interner {
	return &Interner{
		arena:   a,
		byBytes: make(map[string]Handle),
		strings: []string{""}, // index 0 reserved so Handle(0) is never valid
	}
}

// Intern returns the Handle for s, copying s into arena-owned storage on
// first insertion. Subsequent calls with byte-identical content return the
// same Handle without copying.
func (in *Interner) Intern(s []byte) Handle {
	if h, ok := in.byBytes[string(s)]; ok {
		return h
	}

	copied := arena.AllocSlice(in.arena, s)
	key := unsafe.String(unsafe.SliceData(copied), len(copied))
	h := Handle(len(in.strings))
	in.strings = append(in.strings, key)
	in.byBytes[key] = h
	return h
}

// InternString is a convenience wrapper over Intern for string inputs.
func (in *Interner) InternString(s string) Handle {
	return in.Intern([]byte(s))
}

// View returns the read-only byte content for h. It panics if h was never
// produced by this interner, since that indicates a programming error.
func (in *Interner) View(h Handle) []byte {
	if h == 0 || int(h) >= len(in.strings) {
		panic("intern: invalid handle")
	}
	return []byte(in.strings[h])
}

// String returns the interned string for h as a string, not a byte slice.
func (in *Interner) String(h Handle) string {
	if h == 0 || int(h) >= len(in.strings) {
		panic("intern: invalid handle")
	}
	return in.strings[h]
}

// Len returns the number of distinct strings interned so far.
func (in *Interner) Len() int {
	return len(in.strings) - 1
}
