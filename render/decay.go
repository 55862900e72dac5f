package render

import (
	"github.com/jmgilman/go/media"
)

// DefaultDecayStep is the amount a cell's decay drops per repaint.
const DefaultDecayStep = 1.0

// ShouldRepaint reports whether a cell drawing a resource of the given kind
// with the given remaining decay needs another paint pass.
//
// Only scalable resources animate, and only while decay is positive. Once the
// budget is spent the last frame stays on screen and no more repaints are
// requested.
func ShouldRepaint(decay float64, kind media.Kind) bool {
	return kind == media.KindScalable && decay > 0
}

// Decay returns the budget left after one repaint.
func Decay(decay, step float64) float64 {
	return decay - step
}

// Step advances the repaint protocol by one paint pass. It returns whether a
// repaint must be requested and the decay the cell holds afterwards.
//
// Step is pure: the host loop applies next and schedules the repaint.
func Step(decay, step float64, kind media.Kind) (repaint bool, next float64) {
	if !ShouldRepaint(decay, kind) {
		return false, decay
	}
	return true, Decay(decay, step)
}

// decayOf reads a cell's decay as a float64. Missing or non-numeric values
// count as zero.
func decayOf(cells CellAccessor, cell CellID) float64 {
	switch v := cells.Data(cell, DecayRole).(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	default:
		return 0
	}
}

// resourceNameOf reads a cell's resource name. Missing values are empty.
func resourceNameOf(cells CellAccessor, cell CellID) string {
	name, _ := cells.Data(cell, ResourceNameRole).(string)
	return name
}
