package surface

import (
	"bytes"
	"context"
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/transform"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/jmgilman/go/media"
)

// Option configures an Image surface.
type Option func(*Image)

// WithLogger sets the logger used to report vector images that fail to
// rasterize.
func WithLogger(logger *media.Logger) Option {
	return func(s *Image) {
		s.logger = logger
	}
}

// WithResampleFilter sets the filter used when raster images are scaled.
// Defaults to transform.Linear.
func WithResampleFilter(filter transform.ResampleFilter) Option {
	return func(s *Image) {
		s.filter = filter
	}
}

// Image is a Surface backed by an *image.RGBA.
//
// Image is not safe for concurrent use. It memoizes one parsed document per
// resource path; a re-decoded resource replaces the stale entry.
type Image struct {
	dst    *image.RGBA
	origin image.Point
	filter transform.ResampleFilter
	logger *media.Logger

	icons map[string]parsedIcon
}

// New creates a transparent surface of the given size.
func New(width, height int, opts ...Option) *Image {
	return Wrap(image.NewRGBA(image.Rect(0, 0, width, height)), opts...)
}

// Wrap creates a surface drawing into dst.
func Wrap(dst *image.RGBA, opts ...Option) *Image {
	s := &Image{
		dst:    dst,
		filter: transform.Linear,
		icons:  make(map[string]parsedIcon),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = media.NopLogger()
	}
	return s
}

// RGBA returns the backing image.
func (s *Image) RGBA() *image.RGBA {
	return s.dst
}

// Origin returns the current translation.
func (s *Image) Origin() image.Point {
	return s.origin
}

// Translate moves the origin by offset.
func (s *Image) Translate(offset image.Point) {
	s.origin = s.origin.Add(offset)
}

// DrawImage draws img scaled to fill dst, relative to the current origin.
func (s *Image) DrawImage(img image.Image, dst image.Rectangle) {
	r := dst.Add(s.origin)
	if img == nil || r.Empty() {
		return
	}

	src := img
	if img.Bounds().Size() != r.Size() {
		src = transform.Resize(img, r.Dx(), r.Dy(), s.filter)
	}
	draw.Draw(s.dst, r, src, src.Bounds().Min, draw.Over)
}

// DrawScalable rasterizes img with its view box fitted to dst, relative to
// the current origin. Documents that cannot be rasterized draw nothing.
func (s *Image) DrawScalable(img *media.ScalableImage, dst image.Rectangle) {
	r := dst.Add(s.origin)
	if img == nil || r.Empty() {
		return
	}

	icon, err := s.icon(img)
	if err != nil {
		s.logger.Warn(context.Background(), "failed to rasterize vector image",
			"path", img.Path,
			"error", err,
		)
		return
	}

	icon.SetTarget(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))

	bounds := s.dst.Bounds()
	scanner := rasterx.NewScannerGV(bounds.Dx(), bounds.Dy(), s.dst, bounds.Intersect(r))
	raster := rasterx.NewDasher(bounds.Dx(), bounds.Dy(), scanner)
	icon.Draw(raster, 1.0)
}

// Reset drops every memoized vector document.
func (s *Image) Reset() {
	clear(s.icons)
}

// parsedIcon is a rasterizable document and the resource it was parsed from.
type parsedIcon struct {
	source *media.ScalableImage
	icon   *oksvg.SvgIcon
}

func (s *Image) icon(img *media.ScalableImage) (*oksvg.SvgIcon, error) {
	if p, ok := s.icons[img.Path]; ok && p.source == img {
		return p.icon, nil
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(img.Source), oksvg.IgnoreErrorMode)
	if err != nil {
		delete(s.icons, img.Path)
		return nil, err
	}
	s.icons[img.Path] = parsedIcon{source: img, icon: icon}
	return icon, nil
}
