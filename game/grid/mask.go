package grid

// Mask is the 4-bit connectivity value of a cell. Each set bit means the
// neighbor in that direction is present.
type Mask uint8

const (
	North Mask = 1 << iota // y-1
	East                   // x+1
	South                  // y+1
	West                   // x-1

	// AllSides is the mask of a cell connected on every side
	AllSides = North | East | South | West
)

// Neighbor describes one axis neighbor offset and the bit it contributes.
type Neighbor struct {
	Bit    Mask
	DX, DY int
}

// Neighbors lists the four axis neighbors in bit order.
var Neighbors = [4]Neighbor{
	{Bit: North, DX: 0, DY: -1},
	{Bit: East, DX: 1, DY: 0},
	{Bit: South, DX: 0, DY: 1},
	{Bit: West, DX: -1, DY: 0},
}

// Has reports whether every bit of side is set.
func (m Mask) Has(side Mask) bool {
	return m&side == side
}

// Opposite returns the bit pointing back from the neighbor on that side.
func (m Mask) Opposite() Mask {
	var out Mask
	if m&North != 0 {
		out |= South
	}
	if m&East != 0 {
		out |= West
	}
	if m&South != 0 {
		out |= North
	}
	if m&West != 0 {
		out |= East
	}
	return out
}

// String renders the mask as the set of compass letters, e.g. "NE-W".
func (m Mask) String() string {
	b := []byte("----")
	for i, c := range "NESW" {
		if m&(1<<uint(i)) != 0 {
			b[i] = byte(c)
		}
	}
	return string(b)
}
