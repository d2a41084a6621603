package buffer

import "sync/atomic"

// textCache memoizes a result's string conversion. Multiple goroutines may
// race to compute the value; the first store wins and every reader observes
// that single value. Losing computations are discarded, never torn.
type textCache struct {
	p atomic.Pointer[string]
}

func (c *textCache) load() (string, bool) {
	if s := c.p.Load(); s != nil {
		return *s, true
	}
	return "", false
}

// publish installs s unless another goroutine got there first, and returns
// the winning value.
func (c *textCache) publish(s string) string {
	if c.p.CompareAndSwap(nil, &s) {
		return s
	}
	return *c.p.Load()
}

// trimCache memoizes a result's trimmed form with the same
// single-assignment semantics as textCache.
type trimCache struct {
	p atomic.Pointer[Result]
}

func (c *trimCache) load() (Result, bool) {
	if r := c.p.Load(); r != nil {
		return *r, true
	}
	return nil, false
}

func (c *trimCache) publish(r Result) Result {
	if c.p.CompareAndSwap(nil, &r) {
		return r
	}
	return *c.p.Load()
}

// prime seeds the cache of a freshly constructed, not yet shared result so
// that trimming an already-trimmed result is instance-stable.
func (c *trimCache) prime(r Result) {
	c.p.Store(&r)
}
