//go:build !wasm

package execctx

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// newPool sizes the pool to hardware concurrency when threads==0, else to
// the caller-specified cap. This is the native, multi-threaded build.
func newPool(threads uint16) *Pool {
	n := int(threads)
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n < 1 {
		n = 1
	}
	return &Pool{workers: n}
}

// forEach dispatches across a bounded errgroup: the standard idiom for
// fan-out with a concurrency cap, rather than an unbounded goroutine-per-
// element burst. Per-element panics are not recovered here; callers that
// can fail per-element must surface errors via their own return type, per
// the execution abstraction's failure contract.
func (p *Pool) forEach(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	workers := p.workers
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}
