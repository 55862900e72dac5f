package render

import (
	"context"
	"sync"
)

// Animator is a Repainter that applies the decay protocol and batches repaint
// requests into frames.
//
// RepaintNeeded lowers the cell's decay by the configured step and queues the
// cell. The host calls Frame on its own schedule (typically once per
// 1/framesPerSecond) to repaint every queued cell. Animator starts no
// goroutines and owns no timers.
type Animator struct {
	cells CellAccessor
	step  float64

	mu      sync.Mutex
	pending []CellID
	queued  map[CellID]struct{}
}

// NewAnimator creates an Animator that stores decay through cells.
// A non-positive step selects DefaultDecayStep.
func NewAnimator(cells CellAccessor, step float64) *Animator {
	if step <= 0 {
		step = DefaultDecayStep
	}
	return &Animator{
		cells:  cells,
		step:   step,
		queued: make(map[CellID]struct{}),
	}
}

// RepaintNeeded records that cell must be painted again and spends one step
// of its decay.
func (a *Animator) RepaintNeeded(cell CellID) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.cells.SetData(cell, DecayRole, Decay(decayOf(a.cells, cell), a.step))

	if _, ok := a.queued[cell]; ok {
		return
	}
	a.queued[cell] = struct{}{}
	a.pending = append(a.pending, cell)
}

// Pending returns the number of cells waiting for the next frame.
func (a *Animator) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pending)
}

// Frame paints every cell queued before the call, in request order, and
// returns how many were painted. Cells queued while the frame runs wait for
// the next frame. The first paint error is returned after all cells are
// painted.
func (a *Animator) Frame(ctx context.Context, paint PaintFunc) (int, error) {
	a.mu.Lock()
	batch := a.pending
	a.pending = nil
	clear(a.queued)
	a.mu.Unlock()

	var firstErr error
	for i, cell := range batch {
		if err := ctx.Err(); err != nil {
			a.requeue(batch[i:])
			return i, err
		}
		if err := paint(ctx, cell); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return len(batch), firstErr
}

// requeue puts unpainted cells back at the front of the queue. Cells
// requested again while the frame ran keep their newer position.
func (a *Animator) requeue(cells []CellID) {
	a.mu.Lock()
	defer a.mu.Unlock()

	pending := make([]CellID, 0, len(cells)+len(a.pending))
	for _, cell := range cells {
		if _, ok := a.queued[cell]; ok {
			continue
		}
		a.queued[cell] = struct{}{}
		pending = append(pending, cell)
	}
	a.pending = append(pending, a.pending...)
}
