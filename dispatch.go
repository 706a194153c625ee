package pool

// Alloc implements ngx_palloc: requests at or below MaxSmall are served
// aligned from the block chain; larger requests go to the large path.
func (p *Pool) Alloc(size int) ([]byte, error) {
	p.mustNotBeDestroyed()
	if size <= p.maxSmall {
		return p.allocSmall(size, true)
	}
	return p.allocLarge(size)
}

// AllocUnaligned implements ngx_pnalloc: identical to Alloc except the
// small path returns the raw bump cursor without rounding up to
// WordAlignment.
func (p *Pool) AllocUnaligned(size int) ([]byte, error) {
	p.mustNotBeDestroyed()
	if size <= p.maxSmall {
		return p.allocSmall(size, false)
	}
	return p.allocLarge(size)
}

// Calloc implements ngx_pcalloc: dispatches like Alloc, then
// unconditionally zero-fills the result on success.
func (p *Pool) Calloc(size int) ([]byte, error) {
	buf, err := p.Alloc(size)
	if err != nil {
		return nil, err
	}
	zeroFill(buf)
	return buf, nil
}

// AllocAligned implements ngx_pmemalign: always takes the large path
// with the given alignment, bypassing MaxSmall entirely even for small
// sizes.
func (p *Pool) AllocAligned(size, alignment int) ([]byte, error) {
	p.mustNotBeDestroyed()
	return p.allocAligned(size, alignment)
}
