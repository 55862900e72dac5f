package media

import (
	"sync"
	"sync/atomic"
)

var defaultFrameRate atomic.Pointer[FrameRateFunc]

// SetDefaultFrameRate sets the animation rate provider used by the shared
// image cache. It affects images decoded after the call; a nil fn restores
// DefaultFramesPerSecond.
func SetDefaultFrameRate(fn FrameRateFunc) {
	if fn == nil {
		defaultFrameRate.Store(nil)
		return
	}
	defaultFrameRate.Store(&fn)
}

// FrameRate returns the process-wide animation rate: the value of the
// provider set by SetDefaultFrameRate, or DefaultFramesPerSecond.
func FrameRate() float64 {
	if fn := defaultFrameRate.Load(); fn != nil {
		return (*fn)()
	}
	return DefaultFramesPerSecond
}

var (
	images = sync.OnceValue(func() *Cache {
		return NewImageCache(WithFrameRate(FrameRate))
	})
	icons = sync.OnceValue(func() *Cache {
		return NewIconCache()
	})
)

// Images returns the process-wide image cache.
//
// The cache is created on first call; every later call returns the same
// instance, so search paths and entries are shared by all callers.
func Images() *Cache {
	return images()
}

// Icons returns the process-wide icon cache.
func Icons() *Cache {
	return icons()
}
