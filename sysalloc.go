package pool

import "unsafe"

// PoolAlignment is the alignment used for every block. pmemalign-backed
// large allocations use the caller's alignment instead. Mirrors nginx's
// NGX_POOL_ALIGNMENT.
const PoolAlignment = 16

// WordAlignment is the platform's natural pointer alignment, used by the
// aligned small-path allocation variant.
var WordAlignment = int(unsafe.Sizeof(uintptr(0)))

// alignedAlloc returns a zeroed byte slice of exactly size bytes whose
// backing address is aligned to alignment. Go's runtime allocator already
// aligns allocations of this size class reasonably well, but the guarantee
// isn't part of the language spec, so this pads and slices to be certain,
// the same way ngx_palloc_block aligns each new block to NGX_POOL_ALIGNMENT.
//
// Go's allocator reports failure by panicking rather than returning an
// error; alignedAlloc recovers from that panic and reports ErrOOM instead,
// standing in for malloc's NULL return in the original.
func alignedAlloc(size int, alignment int) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf, err = nil, ErrOOM
		}
	}()
	if alignment <= 1 {
		return make([]byte, size), nil
	}
	raw := make([]byte, size+alignment)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(raw)))
	mask := uintptr(alignment) - 1
	aligned := (base + mask) &^ mask
	offset := int(aligned - base)
	return raw[offset : offset+size : offset+size], nil
}

// plainAlloc returns a zeroed byte slice of exactly size bytes with no
// special alignment beyond what Go's allocator already provides. Used
// for the large path, mirroring ngx_palloc_large's plain ngx_alloc call
// with no alignment requirement.
func plainAlloc(size int) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf, err = nil, ErrOOM
		}
	}()
	return make([]byte, size), nil
}

// zeroFill zero-fills b. Go's make() already zero-fills fresh memory;
// this exists for Calloc's use on memory that may have been reused from
// elsewhere in the pool, mirroring ngx_pcalloc's explicit ngx_memzero
// call after ngx_palloc.
func zeroFill(b []byte) {
	clear(b)
}

// samePointer reports whether a and b share the same backing address,
// which is how Free identifies a previously-returned large allocation -
// Go slices aren't comparable with ==, so identity is checked through the
// underlying data pointer instead.
func samePointer(a, b []byte) bool {
	return unsafe.SliceData(a) == unsafe.SliceData(b)
}
