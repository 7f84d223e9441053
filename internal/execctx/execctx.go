// Package execctx is the backend-neutral parallelism facade described in
// the execution abstraction component: parallel_for_each, parallel_map,
// parallel_filter_map, parallel_chunks, and a deterministic reduction
// primitive. Every stage in this repository goes through this package
// instead of spawning goroutines directly, so the parallel/sequential
// split is a single compile-time decision (see execctx_parallel.go and
// execctx_sequential.go, selected by the `wasm` build tag).
package execctx

// Pool is the process-wide parallelism resource. It is cheap to construct
// and safe for concurrent use; the zero value behaves like a sequential
// pool with one worker.
type Pool struct {
	workers int
}

// New returns a Pool sized to threads. threads==0 means "auto" (hardware
// concurrency, capped); the concrete cap is resolved by the build-tagged
// implementation.
func New(threads uint16) *Pool {
	return newPool(threads)
}

// Workers reports how many concurrent workers this pool will use.
func (p *Pool) Workers() int { return p.workers }

// ForEach runs fn once per index in [0,n). In the parallel build this
// dispatches across the pool; in the sequential build it is a plain loop.
// fn must not assume any ordering relative to other indices.
func (p *Pool) ForEach(n int, fn func(i int)) {
	p.forEach(n, fn)
}

// Map runs fn once per element of s and returns results in input order.
func Map[T, U any](p *Pool, s []T, fn func(T) U) []U {
	out := make([]U, len(s))
	p.forEach(len(s), func(i int) {
		out[i] = fn(s[i])
	})
	return out
}

// FilterMap runs fn once per element of s; elements for which ok is false
// are dropped. The surviving outputs preserve the input order of s.
func FilterMap[T, U any](p *Pool, s []T, fn func(T) (U, bool)) []U {
	type slot struct {
		val U
		ok  bool
	}
	slots := make([]slot, len(s))
	p.forEach(len(s), func(i int) {
		v, ok := fn(s[i])
		slots[i] = slot{v, ok}
	})
	out := make([]U, 0, len(s))
	for _, sl := range slots {
		if sl.ok {
			out = append(out, sl.val)
		}
	}
	return out
}

// ChunksMut partitions s into disjoint chunks of at most chunkSize
// elements and runs fn once per chunk, passing the chunk's start index so
// callers can mutate a backing slice in place without races.
func ChunksMut[T any](p *Pool, s []T, chunkSize int, fn func(start int, chunk []T)) {
	if chunkSize <= 0 {
		chunkSize = len(s)
		if chunkSize == 0 {
			return
		}
	}
	nChunks := (len(s) + chunkSize - 1) / chunkSize
	p.forEach(nChunks, func(ci int) {
		start := ci * chunkSize
		end := start + chunkSize
		if end > len(s) {
			end = len(s)
		}
		fn(start, s[start:end])
	})
}

// Reduce folds s down to a single value. combine must be associative;
// when it is also commutative the result is fully deterministic, and even
// when it is not, this implementation folds chunk-local partials in input
// order, so two runs over the same input always produce the same result
// regardless of how many workers process it.
func Reduce[T, A any](p *Pool, s []T, identity A, fn func(A, T) A, combine func(A, A) A) A {
	workers := p.workers
	if workers < 1 {
		workers = 1
	}
	if len(s) == 0 {
		return identity
	}
	if workers > len(s) {
		workers = len(s)
	}
	chunkSize := (len(s) + workers - 1) / workers
	nChunks := (len(s) + chunkSize - 1) / chunkSize
	partials := make([]A, nChunks)
	p.forEach(nChunks, func(ci int) {
		start := ci * chunkSize
		end := start + chunkSize
		if end > len(s) {
			end = len(s)
		}
		acc := identity
		for _, v := range s[start:end] {
			acc = fn(acc, v)
		}
		partials[ci] = acc
	})
	acc := identity
	for _, part := range partials {
		acc = combine(acc, part)
	}
	return acc
}
