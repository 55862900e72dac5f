package media

import "image"

// Kind identifies the variant of a decoded resource.
type Kind int

const (
	// KindStatic is a decoded raster image.
	KindStatic Kind = iota
	// KindScalable is a parsed vector image, possibly animated.
	KindScalable
)

// String returns a string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindScalable:
		return "scalable"
	default:
		return "unknown"
	}
}

// Resource is a decoded, render-ready object owned by a Cache.
//
// The set of implementations is closed: *StaticImage and *ScalableImage.
// Callers receive shared, read-only views and must not mutate them.
type Resource interface {
	// Kind returns the resource variant.
	Kind() Kind
	// SourcePath returns the file the resource was decoded from.
	SourcePath() string

	resource()
}

// StaticImage is a decoded raster image.
type StaticImage struct {
	Path   string      // Resolved file path
	Format string      // Decoder format name (png, jpeg, icns)
	Image  image.Image // Decoded pixels
}

// Kind returns KindStatic.
func (s *StaticImage) Kind() Kind { return KindStatic }

// SourcePath returns the file the image was decoded from.
func (s *StaticImage) SourcePath() string { return s.Path }

func (*StaticImage) resource() {}

// ViewBox is the user coordinate system declared by a vector image.
type ViewBox struct {
	MinX, MinY    float64
	Width, Height float64
}

// Empty reports whether the view box has no area.
func (v ViewBox) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// ScalableImage is a parsed vector image.
//
// Source holds the original document so a surface can rasterize it at any
// target size. FramesPerSecond is set only when Animated is true.
type ScalableImage struct {
	Path            string
	Source          []byte
	ViewBox         ViewBox
	Width           float64 // Intrinsic width, zero if undeclared
	Height          float64 // Intrinsic height, zero if undeclared
	Animated        bool
	FramesPerSecond *float64
}

// Kind returns KindScalable.
func (s *ScalableImage) Kind() Kind { return KindScalable }

// SourcePath returns the file the image was parsed from.
func (s *ScalableImage) SourcePath() string { return s.Path }

func (*ScalableImage) resource() {}

// Size returns the intrinsic size, falling back to the view box.
func (s *ScalableImage) Size() (float64, float64) {
	w, h := s.Width, s.Height
	if w <= 0 {
		w = s.ViewBox.Width
	}
	if h <= 0 {
		h = s.ViewBox.Height
	}
	return w, h
}
