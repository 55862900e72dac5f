// Package media provides reference-counted caches of decoded images.
//
// # Overview
//
// A Cache resolves a symbolic resource name (a file name such as
// "loading.svg") to a decoded, render-ready Resource. Resolution searches an
// ordered list of directories, most recently added first. The first lookup of
// a name decodes the file; every later lookup returns the same object until the
// entry is evicted.
//
// Resources come in two kinds:
//
//   - *StaticImage: a decoded raster image (PNG, JPEG, ICNS)
//   - *ScalableImage: a parsed SVG document, optionally animated, carrying a
//     frame rate when it is
//
// # Usage
//
// Configure the shared image cache once and look resources up anywhere:
//
//	images := media.Images()
//	images.AddSearchPath("/opt/app/media")
//
//	res, ok, err := images.Get(ctx, "spinner.svg")
//	if err != nil {
//	    return err // unsupported extension or malformed file
//	}
//	if !ok {
//	    return nil // not on any search path yet
//	}
//	defer images.Release("spinner.svg")
//
// # Holders and Eviction
//
// Each entry counts its holders. Get adds a holder, Release removes one and, by
// default, evicts the entry when none remain. Peek (Get with Untracked) borrows
// a resource for a single use without becoming a holder; renderers use it on
// every paint. Clear evicts entries without holders; Clear(Force()) evicts
// everything.
//
// # Errors
//
// Failures are github.com/jmgilman/go/errors PlatformErrors with one of the
// codes CodeUnsupportedResourceKind, CodeDecodeFailure or
// CodeResourceNotTracked. A name that exists on no search path is not an
// error: Get returns ok == false.
//
// # Thread Safety
//
// Cache instances are safe for concurrent use by multiple goroutines.
// Resources must be treated as read-only.
package media
