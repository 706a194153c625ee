package pool

// allocLarge implements ngx_palloc_large: obtain size bytes from the
// system heap, then scan at most the first four descriptors for a
// vacant slot to reuse before allocating a fresh descriptor.
func (p *Pool) allocLarge(size int) ([]byte, error) {
	buf, err := plainAlloc(size)
	if err != nil {
		return nil, err
	}

	n := 0
	for l := p.largeHead; l != nil; l = l.next {
		if l.alloc == nil {
			l.alloc = buf
			p.debugf("large reuse", "bytes", size)
			return buf, nil
		}
		n++
		if n > largeScanCap-1 {
			break
		}
	}

	desc := &largeDescriptor{alloc: buf, next: p.largeHead}
	p.largeHead = desc
	p.debugf("large alloc", "bytes", size)
	return buf, nil
}

// allocAligned implements ngx_pmemalign: always takes the large path
// with an aligned system allocation and always allocates a fresh
// descriptor - it never scans for a vacant slot.
func (p *Pool) allocAligned(size, alignment int) ([]byte, error) {
	buf, err := alignedAlloc(size, alignment)
	if err != nil {
		return nil, err
	}

	desc := &largeDescriptor{alloc: buf, next: p.largeHead}
	p.largeHead = desc
	p.debugf("large alloc aligned", "bytes", size, "alignment", alignment)
	return buf, nil
}

// Free implements ngx_pfree: scan the entire large list for a
// descriptor whose alloc matches ptr, clear it, and return nil. The
// descriptor itself is never unlinked, matching ngx_pfree exactly, so
// its slot becomes reusable again only if it lands within the first
// four positions scanned by a future large-path allocation.
func (p *Pool) Free(ptr []byte) error {
	p.mustNotBeDestroyed()
	for l := p.largeHead; l != nil; l = l.next {
		if l.alloc != nil && samePointer(l.alloc, ptr) {
			p.debugf("free large explicit", "bytes", len(l.alloc))
			l.alloc = nil
			return nil
		}
	}
	return ErrNotFound
}
