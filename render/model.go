package render

import (
	"slices"
	"sync"
)

// Model is an in-memory CellAccessor.
// It is safe for concurrent use by multiple goroutines.
type Model struct {
	mu    sync.RWMutex
	cells map[CellID]map[Role]any
}

// NewModel creates an empty Model.
func NewModel() *Model {
	return &Model{cells: make(map[CellID]map[Role]any)}
}

// Data returns the value stored for role in cell, or nil.
func (m *Model) Data(cell CellID, role Role) any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cells[cell][role]
}

// SetData stores value for role in cell. A nil value clears the slot.
func (m *Model) SetData(cell CellID, role Role, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if value == nil {
		delete(m.cells[cell], role)
		if len(m.cells[cell]) == 0 {
			delete(m.cells, cell)
		}
		return
	}

	roles, ok := m.cells[cell]
	if !ok {
		roles = make(map[Role]any)
		m.cells[cell] = roles
	}
	roles[role] = value
}

// Populate assigns a resource and a starting decay to cell.
func (m *Model) Populate(cell CellID, resourceName string, decay float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cells[cell] = map[Role]any{
		ResourceNameRole: resourceName,
		DecayRole:        decay,
	}
}

// Cells returns every cell holding at least one value, ordered by row then
// column.
func (m *Model) Cells() []CellID {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]CellID, 0, len(m.cells))
	for cell := range m.cells {
		out = append(out, cell)
	}
	slices.SortFunc(out, CellID.Compare)
	return out
}
