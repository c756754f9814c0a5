package engine

import (
	"github.com/wricardo/mcp-training/pipeworks/game/grid"
)

// resolveConnectivity rewrites mask for every cell from a snapshot of
// present. Absent cells get 0; a present cell gets one bit per present
// in-bounds axis neighbor. Cells are independent, so order does not matter.
func resolveConnectivity(size grid.Size, present []bool, mask []grid.Mask) {
	for i := range present {
		if !present[i] {
			mask[i] = 0
			continue
		}
		c := size.CellAt(i)
		var m grid.Mask
		for _, nb := range grid.Neighbors {
			if j, ok := size.Lookup(c.X+nb.DX, c.Y+nb.DY); ok && present[j] {
				m |= nb.Bit
			}
		}
		mask[i] = m
	}
}
