package tilemap

import (
	"fmt"

	"github.com/wricardo/mcp-training/pipeworks/game/catalog"
	"github.com/wricardo/mcp-training/pipeworks/game/grid"
)

// Network is the read side of a pipe network as the sync pass sees it.
// Version must change whenever presence (and therefore any mask) changes.
type Network interface {
	Size() grid.Size
	Version() uint64
	Has(x, y int) bool
	Mask(x, y int) grid.Mask
}

// applied[i] sentinels; real values are masks 0..15.
const (
	noTile  uint8 = 0xff
	unknown uint8 = 0xfe
)

// SyncStats counts the visual edits made by one pass.
type SyncStats struct {
	Upserted int
	Removed  int
}

// PipeBinding keeps one visual layer in step with a pipe network. It records
// what it last applied per cell so a pass only touches cells whose presence
// flipped or whose mask changed.
type PipeBinding struct {
	layer   string
	color   catalog.Color
	applied []uint8
	version uint64
	synced  bool
	target  Layer // layer instance applied[] describes
}

// NewPipeBinding binds a freshly created (empty) layer
func NewPipeBinding(layer string, color catalog.Color, size grid.Size) *PipeBinding {
	applied := make([]uint8, size.Len())
	for i := range applied {
		applied[i] = noTile
	}
	return &PipeBinding{
		layer:   layer,
		color:   color,
		applied: applied,
	}
}

func (b *PipeBinding) Layer() string        { return b.layer }
func (b *PipeBinding) Color() catalog.Color { return b.color }

// SetColor restyles the binding; every present cell is re-upserted next pass.
func (b *PipeBinding) SetColor(c catalog.Color) {
	if c == b.color {
		return
	}
	b.color = c
	b.Invalidate()
}

// Invalidate forgets what was applied, so the next pass rewrites every cell.
// Use it when the layer behind the name may hold unrelated content.
func (b *PipeBinding) Invalidate() {
	for i := range b.applied {
		b.applied[i] = unknown
	}
	b.synced = false
}

// Stale reports whether the layer lags behind net.
func (b *PipeBinding) Stale(net Network) bool {
	return !b.synced || b.version != net.Version()
}

// Sync reconciles the bound layer with net. It is a no-op when nothing
// changed since the last successful pass. If the layer is missing or rejects
// an edit the pass stops, the binding stays stale and the next call resumes
// from what was actually applied. When the name resolves to a different
// layer instance than the last pass wrote to, every cell is rewritten.
func (b *PipeBinding) Sync(reg *Registry, net Network) (SyncStats, error) {
	var st SyncStats
	layer, ok := reg.Get(b.layer)
	if ok && b.target != nil && b.target != layer {
		b.Invalidate()
	}
	if !b.Stale(net) {
		return st, nil
	}
	if !ok {
		return st, fmt.Errorf("%w: %s", ErrLayerUnavailable, b.layer)
	}
	b.target = layer

	size := net.Size()
	for i := 0; i < size.Len(); i++ {
		cell := size.CellAt(i)
		prev := b.applied[i]

		if !net.Has(cell.X, cell.Y) {
			if prev == noTile {
				continue
			}
			if err := layer.Remove(cell); err != nil {
				return st, fmt.Errorf("layer %s remove %v: %w", b.layer, cell, err)
			}
			b.applied[i] = noTile
			st.Removed++
			continue
		}

		mask := net.Mask(cell.X, cell.Y)
		if prev == uint8(mask) {
			continue
		}
		if err := layer.Upsert(cell, mask, b.color); err != nil {
			return st, fmt.Errorf("layer %s upsert %v: %w", b.layer, cell, err)
		}
		b.applied[i] = uint8(mask)
		st.Upserted++
	}

	b.version = net.Version()
	b.synced = true
	return st, nil
}
