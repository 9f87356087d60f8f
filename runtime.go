package parcel

// Runtime schedules chunk tasks for partitioned calls. Implementations
// must run every submitted function exactly once; Go may block (a bounded
// queue, for instance) but must not drop work.
//
// The default runtime spawns one goroutine per task. [Pool] and [Limiter]
// are the provided alternatives.
type Runtime interface {
	Go(fn func())
}

type goRuntime struct{}

func (goRuntime) Go(fn func()) { go fn() }

var defaultRuntime Runtime = goRuntime{}
