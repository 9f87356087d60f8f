package parcel

// Limiter wraps a [Runtime] and bounds the number of tasks in flight on
// it. Unlike [Pool] it spawns no goroutines of its own: submission blocks
// until one of the in-flight tasks finishes and frees a slot.
//
// Partitioned calls never create cycles between tasks submitted to the
// same runtime (chunk tasks are independent, and scan output phases are
// only issued once their carry exists), so bounding them cannot deadlock.
type Limiter struct {
	rt  Runtime
	ch  chan struct{}
	cap int
}

// NewLimiter wraps rt with a bound of n in-flight tasks. A nil rt uses the
// default goroutine-per-task runtime. Panics if n <= 0.
func NewLimiter(rt Runtime, n int) *Limiter {
	if n <= 0 {
		panic("parcel: NewLimiter requires n > 0")
	}
	if rt == nil {
		rt = defaultRuntime
	}
	return &Limiter{
		rt:  rt,
		ch:  make(chan struct{}, n),
		cap: n,
	}
}

// Go implements [Runtime]. It blocks until a slot is available, then
// submits fn to the wrapped runtime. The slot is released when fn
// finishes, even if it panics.
func (l *Limiter) Go(fn func()) {
	l.ch <- struct{}{}
	l.rt.Go(func() {
		defer func() { <-l.ch }()
		fn()
	})
}

// TryGo submits fn only if a slot is immediately available.
// Returns true if the task was submitted.
func (l *Limiter) TryGo(fn func()) bool {
	select {
	case l.ch <- struct{}{}:
	default:
		return false
	}
	l.rt.Go(func() {
		defer func() { <-l.ch }()
		fn()
	})
	return true
}

// Available returns the number of free slots.
// The value may be stale in concurrent contexts.
func (l *Limiter) Available() int {
	return l.cap - len(l.ch)
}
