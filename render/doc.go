// Package render draws cached media resources into list and table cells and
// keeps animated vector images moving for a bounded number of frames.
//
// # Repaint Protocol
//
// Every cell carries two values, read through a CellAccessor: the name of the
// resource to draw (ResourceNameRole) and a decay budget (DecayRole). When an
// ImageDelegate paints a cell holding a *media.ScalableImage and the cell's
// decay is positive, it asks its Repainter for another paint pass. The
// Animator, the stock Repainter, spends one step of decay per request and
// queues the cell for the next frame. A cell populated with decay N is
// therefore repainted N times after its first paint and then stays on its last
// frame. Static images never request repaints.
//
// Step and ShouldRepaint expose the protocol as pure functions for hosts that
// drive their own loop.
//
// # Usage
//
//	model := render.NewModel()
//	model.Populate(render.CellID{Row: 0}, "spinner.svg", 9)
//
//	animator := render.NewAnimator(model, render.DefaultDecayStep)
//	delegate := render.NewImageDelegate(media.Images(), model,
//	    render.WithRepainter(animator))
//
//	paint := func(ctx context.Context, cell render.CellID) error {
//	    return delegate.Paint(ctx, surf, rectFor(cell), cell)
//	}
//	for _, cell := range model.Cells() {
//	    _ = paint(ctx, cell)
//	}
//	// on every frame tick
//	_, err := animator.Frame(ctx, paint)
//
// Delegates borrow resources with Peek and never hold them, so paints do not
// change cache holder counts.
package render
