package render

import (
	"context"
	"image"

	"github.com/jmgilman/go/media"
)

// ImageDelegate paints the resource named by a cell into that cell's
// rectangle.
//
// Static images are drawn directly. Scalable images are drawn with the
// surface origin moved to the cell, then the repaint protocol is advanced: as
// long as the cell's decay is positive a repaint is requested, so animated
// content keeps moving for a bounded number of frames.
type ImageDelegate struct {
	resources Resources
	cells     CellAccessor
	repainter Repainter
	logger    *media.Logger
	onError   ErrorHandler
}

// NewImageDelegate creates a delegate reading cell values from cells and
// resources from resources. A nil resources makes every paint a no-op.
func NewImageDelegate(resources Resources, cells CellAccessor, opts ...DelegateOption) *ImageDelegate {
	o := &delegateOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = media.NopLogger()
	}

	return &ImageDelegate{
		resources: resources,
		cells:     cells,
		repainter: o.repainter,
		logger:    o.logger,
		onError:   o.onError,
	}
}

// Paint draws cell into rect on s.
//
// Cells without a resource name, or whose resource is not found on any search
// path, draw nothing. Load failures go to the error handler when one is
// installed and are returned otherwise.
func (d *ImageDelegate) Paint(ctx context.Context, s Surface, rect image.Rectangle, cell CellID) error {
	if d.resources == nil {
		d.logger.Warn(ctx, "no resource cache configured, skipping paint", "row", cell.Row, "column", cell.Column)
		return nil
	}

	name := resourceNameOf(d.cells, cell)
	if name == "" {
		return nil
	}

	res, ok, err := d.resources.Peek(ctx, name)
	if err != nil {
		d.logger.Error(ctx, "failed to load cell resource",
			"resource", name,
			"row", cell.Row,
			"column", cell.Column,
			"error", err,
		)
		if d.onError != nil {
			d.onError(ctx, s, rect, cell, err)
			return nil
		}
		return err
	}
	if !ok {
		d.logger.Debug(ctx, "cell resource not found", "resource", name)
		return nil
	}

	switch r := res.(type) {
	case *media.ScalableImage:
		d.paintScalable(s, rect, cell, r)
	case *media.StaticImage:
		s.DrawImage(r.Image, rect)
	}

	return nil
}

func (d *ImageDelegate) paintScalable(s Surface, rect image.Rectangle, cell CellID, img *media.ScalableImage) {
	s.Translate(rect.Min)
	s.DrawScalable(img, image.Rectangle{Max: rect.Size()})
	s.Translate(rect.Min.Mul(-1))

	if d.repainter != nil && ShouldRepaint(decayOf(d.cells, cell), img.Kind()) {
		d.repainter.RepaintNeeded(cell)
	}
}
