package media

import (
	"github.com/jmgilman/go/fs/core"
)

// DefaultFramesPerSecond is the animation rate used when no frame-rate
// provider is configured.
const DefaultFramesPerSecond = 30.0

// FrameRateFunc returns the process-wide animation rate in frames per second.
// It is consulted each time an animated vector image is decoded.
type FrameRateFunc func() float64

// Option configures Cache creation.
type Option func(*options)

type options struct {
	fs          core.ReadFS
	logger      *Logger
	frameRate   FrameRateFunc
	searchPaths []string
}

// WithFilesystem sets the filesystem used to resolve and read resources.
// If not provided, defaults to the local filesystem rooted at "/".
//
// This option is primarily useful for testing, allowing use of an in-memory
// filesystem.
//
// Example:
//
//	cache := media.NewImageCache(media.WithFilesystem(billy.NewMemory()))
func WithFilesystem(fs core.ReadFS) Option {
	return func(opts *options) {
		opts.fs = fs
	}
}

// WithLogger sets the logger for cache events.
// If not provided, events are discarded.
func WithLogger(logger *Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// WithFrameRate sets the provider of the animation rate applied to animated
// vector images.
//
// Example:
//
//	cache := media.NewImageCache(media.WithFrameRate(func() float64 { return 60 }))
func WithFrameRate(fn FrameRateFunc) Option {
	return func(opts *options) {
		opts.frameRate = fn
	}
}

// WithSearchPaths adds search directories in order, as if by AddSearchPath.
func WithSearchPaths(dirs ...string) Option {
	return func(opts *options) {
		opts.searchPaths = append(opts.searchPaths, dirs...)
	}
}

// GetOption configures a single Get call.
type GetOption func(*getOptions)

type getOptions struct {
	untracked bool
}

// Untracked performs a peek: the caller borrows the resource for immediate
// use without being counted as a holder.
func Untracked() GetOption {
	return func(opts *getOptions) {
		opts.untracked = true
	}
}

// ReleaseOption configures a single Release call.
type ReleaseOption func(*releaseOptions)

type releaseOptions struct {
	keep bool
}

// KeepEntry leaves an entry in place when its last holder releases it.
// It can still be evicted later by Clear.
func KeepEntry() ReleaseOption {
	return func(opts *releaseOptions) {
		opts.keep = true
	}
}

// ClearOption configures a Clear call.
type ClearOption func(*clearOptions)

type clearOptions struct {
	force bool
}

// Force removes every entry regardless of its holders.
//
// Holders keep their references, but later lookups decode a new object and
// releases for stranded names fail with CodeResourceNotTracked.
func Force() ClearOption {
	return func(opts *clearOptions) {
		opts.force = true
	}
}
