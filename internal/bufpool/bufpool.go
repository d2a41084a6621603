// Package bufpool provides an explicit pool of fixed-size byte slabs.
// Writers that want allocation reuse take a *Pool at construction time;
// there is deliberately no package-level ambient pool, so ownership of
// recycled memory is always visible at the call site.
package bufpool

import "sync"

// SlabSize is the size in bytes of every pooled slab. It is also the base
// allocation of the growable-array writer and the block size used for
// temp-file reads.
const SlabSize = 4096

// Pool recycles SlabSize byte slices. The zero value is not usable; create
// one with New. A nil *Pool is valid and falls back to plain allocation,
// which keeps pooling strictly opt-in.
type Pool struct {
	p sync.Pool
}

// New creates an empty pool.
func New() *Pool {
	pool := &Pool{}
	pool.p.New = func() any {
		return make([]byte, SlabSize)
	}
	return pool
}

// Get returns a slab of exactly SlabSize bytes. Contents are undefined.
func (p *Pool) Get() []byte {
	if p == nil {
		return make([]byte, SlabSize)
	}
	return p.p.Get().([]byte)
}

// Put returns a slab to the pool. Slabs of any other size are dropped, so
// callers may hand back whatever buffer they ended up with.
func (p *Pool) Put(b []byte) {
	if p == nil || len(b) != SlabSize {
		return
	}
	p.p.Put(b)
}
