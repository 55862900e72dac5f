package render

import (
	"cmp"
	"context"
	"image"

	"github.com/jmgilman/go/media"
)

// CellID identifies one rendered cell of a list or table view.
type CellID struct {
	Row    int
	Column int
}

// Compare orders cells by row, then column.
func (c CellID) Compare(other CellID) int {
	if r := cmp.Compare(c.Row, other.Row); r != 0 {
		return r
	}
	return cmp.Compare(c.Column, other.Column)
}

// Role selects one value slot of a cell.
type Role int

const (
	// DecayRole holds the cell's remaining animation budget (a number).
	DecayRole Role = iota
	// ResourceNameRole holds the name of the resource drawn in the cell (a string).
	ResourceNameRole
)

// String returns a string representation of the Role.
func (r Role) String() string {
	switch r {
	case DecayRole:
		return "decay"
	case ResourceNameRole:
		return "resource_name"
	default:
		return "unknown"
	}
}

// CellAccessor reads and writes per-cell values by role.
// The renderer treats the values as opaque slots owned by the host model.
type CellAccessor interface {
	// Data returns the value stored for role, or nil if none.
	Data(cell CellID, role Role) any

	// SetData stores value for role.
	SetData(cell CellID, role Role, value any)
}

// Surface is the drawing target of a paint pass.
// Implementations own the pixels; the renderer only issues draw calls.
type Surface interface {
	// Translate moves the origin by offset for subsequent draw calls.
	Translate(offset image.Point)

	// DrawImage draws img scaled into dst.
	DrawImage(img image.Image, dst image.Rectangle)

	// DrawScalable renders img with its view box fitted to dst.
	DrawScalable(img *media.ScalableImage, dst image.Rectangle)
}

// Repainter receives repaint requests for cells whose content is still
// animating.
type Repainter interface {
	RepaintNeeded(cell CellID)
}

// RepainterFunc adapts a function to the Repainter interface.
type RepainterFunc func(cell CellID)

// RepaintNeeded calls f(cell).
func (f RepainterFunc) RepaintNeeded(cell CellID) {
	f(cell)
}

// Resources looks up resources without taking ownership.
// *media.Cache implements Resources.
type Resources interface {
	Peek(ctx context.Context, name string) (media.Resource, bool, error)
}

// PaintFunc paints a single cell.
type PaintFunc func(ctx context.Context, cell CellID) error
