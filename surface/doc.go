// Package surface provides drawing targets for the render package.
//
// Image draws into an in-memory *image.RGBA: raster images are scaled with
// bild and vector images are rasterized with oksvg and rasterx. It lets hosts
// without a windowing toolkit produce thumbnails, previews or test snapshots.
//
// Recorder keeps a log of draw calls instead of pixels and is meant for tests
// that assert what was drawn where.
//
// Neither type is safe for concurrent draws; a paint pass owns its surface.
package surface
