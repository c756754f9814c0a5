package engine

import (
	"github.com/wricardo/mcp-training/pipeworks/game/grid"
)

// PipeNetwork holds per-cell pipe presence and the connectivity mask derived
// from it. Presence is written by the gesture interpreter; masks are written
// only by Resolve.
//
// version increments on every presence change that is actually observable.
// resolved is the version the masks were last computed for.
type PipeNetwork struct {
	size     grid.Size
	present  []bool
	mask     []grid.Mask
	count    int
	version  uint64
	resolved uint64
}

// NewPipeNetwork creates an empty network sized to the map
func NewPipeNetwork(size grid.Size) *PipeNetwork {
	return &PipeNetwork{
		size:    size,
		present: make([]bool, size.Len()),
		mask:    make([]grid.Mask, size.Len()),
	}
}

func (n *PipeNetwork) Size() grid.Size { return n.size }
func (n *PipeNetwork) Version() uint64 { return n.version }
func (n *PipeNetwork) Count() int      { return n.count }

// Has reports pipe presence. Off-map cells never have pipe.
func (n *PipeNetwork) Has(x, y int) bool {
	i, ok := n.size.Lookup(x, y)
	return ok && n.present[i]
}

// Mask returns the resolved connectivity of (x, y); 0 when absent or off-map.
func (n *PipeNetwork) Mask(x, y int) grid.Mask {
	i, ok := n.size.Lookup(x, y)
	if !ok {
		return 0
	}
	return n.mask[i]
}

// Set writes presence at (x, y) and reports whether it changed. Writing the
// current value is a no-op and does not bump the version.
func (n *PipeNetwork) Set(x, y int, v bool) bool {
	i, ok := n.size.Lookup(x, y)
	if !ok || n.present[i] == v {
		return false
	}
	n.present[i] = v
	if v {
		n.count++
	} else {
		n.count--
	}
	n.version++
	return true
}

// Dirty reports whether presence changed since the last Resolve
func (n *PipeNetwork) Dirty() bool {
	return n.resolved != n.version
}

// Resolve recomputes connectivity when presence changed since the last call.
// It reports whether any work was done.
func (n *PipeNetwork) Resolve() bool {
	if !n.Dirty() {
		return false
	}
	resolveConnectivity(n.size, n.present, n.mask)
	n.resolved = n.version
	return true
}

// Cells returns the present cells in index order
func (n *PipeNetwork) Cells() []grid.Cell {
	cells := make([]grid.Cell, 0, n.count)
	for i, p := range n.present {
		if p {
			cells = append(cells, n.size.CellAt(i))
		}
	}
	return cells
}
