//go:build wasm

package execctx

// newPool ignores threads entirely: the WASM build never spins up a
// thread pool, matching the "Sequential" scheduling model in which every
// abstraction primitive becomes a direct loop.
func newPool(threads uint16) *Pool {
	return &Pool{workers: 1}
}

func (p *Pool) forEach(n int, fn func(i int)) {
	for i := 0; i < n; i++ {
		fn(i)
	}
}
