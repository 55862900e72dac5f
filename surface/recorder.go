package surface

import (
	"image"

	"github.com/jmgilman/go/media"
)

// OpKind identifies a recorded surface call.
type OpKind int

const (
	OpTranslate OpKind = iota
	OpDrawImage
	OpDrawScalable
)

// String returns a string representation of the OpKind.
func (k OpKind) String() string {
	switch k {
	case OpTranslate:
		return "translate"
	case OpDrawImage:
		return "draw_image"
	case OpDrawScalable:
		return "draw_scalable"
	default:
		return "unknown"
	}
}

// Op is one recorded surface call.
type Op struct {
	Kind OpKind

	// Offset is the translation requested by an OpTranslate.
	Offset image.Point

	// Origin is the surface origin when the call was made.
	Origin image.Point

	// Rect is the destination rectangle as passed to a draw call.
	Rect image.Rectangle

	Image    image.Image
	Scalable *media.ScalableImage
}

// Abs returns the destination rectangle in surface coordinates.
func (o Op) Abs() image.Rectangle {
	return o.Rect.Add(o.Origin)
}

// Recorder is a Surface that records calls instead of drawing.
type Recorder struct {
	origin image.Point
	ops    []Op
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Translate records an origin change.
func (r *Recorder) Translate(offset image.Point) {
	r.ops = append(r.ops, Op{Kind: OpTranslate, Offset: offset, Origin: r.origin})
	r.origin = r.origin.Add(offset)
}

// DrawImage records a raster draw.
func (r *Recorder) DrawImage(img image.Image, dst image.Rectangle) {
	r.ops = append(r.ops, Op{Kind: OpDrawImage, Origin: r.origin, Rect: dst, Image: img})
}

// DrawScalable records a vector draw.
func (r *Recorder) DrawScalable(img *media.ScalableImage, dst image.Rectangle) {
	r.ops = append(r.ops, Op{Kind: OpDrawScalable, Origin: r.origin, Rect: dst, Scalable: img})
}

// Origin returns the current translation.
func (r *Recorder) Origin() image.Point {
	return r.origin
}

// Ops returns a copy of every recorded call.
func (r *Recorder) Ops() []Op {
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Draws returns the recorded draw calls, skipping translations.
func (r *Recorder) Draws() []Op {
	var out []Op
	for _, op := range r.ops {
		if op.Kind != OpTranslate {
			out = append(out, op)
		}
	}
	return out
}

// Reset discards recorded calls and the origin.
func (r *Recorder) Reset() {
	r.ops = nil
	r.origin = image.Point{}
}
