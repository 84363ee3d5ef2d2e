package dem

// Direction is a D8 flow-direction code, enumerated bottom-first: the code's
// offset applied to a cell's coordinate gives the downstream cell.
type Direction int8

const (
	South Direction = iota
	Southwest
	West
	Northwest
	North
	Northeast
	East
	Southeast
)

// Nodir marks a cell that is no-data or has no defined slope.
const Nodir Direction = -1

// Offset is a fixed row/column step between neighbouring cells.
type Offset struct{ Dr, Dc int }

// Offsets maps each direction code to its grid step. Rows grow southward.
// Pure lookup data; never mutated.
var Offsets = [8]Offset{
	{1, 0},   // south
	{1, -1},  // southwest
	{0, -1},  // west
	{-1, -1}, // northwest
	{-1, 0},  // north
	{-1, 1},  // northeast
	{0, 1},   // east
	{1, 1},   // southeast
}

// Opposite returns the code whose offset is the negation of d's, i.e. the
// direction an upstream neighbour must carry to flow into the current cell.
func (d Direction) Opposite() Direction { return (d + 4) % 8 }

// Defined reports whether d is one of the eight compass codes.
func (d Direction) Defined() bool { return d >= 0 && d < 8 }

// Diagonal reports whether d steps diagonally (flow distance cw*sqrt2).
func (d Direction) Diagonal() bool { return d%2 == 1 }

func (d Direction) String() string {
	if !d.Defined() {
		return "nodir"
	}
	return [8]string{"S", "SW", "W", "NW", "N", "NE", "E", "SE"}[d]
}

// bitOffsets maps the standard bit-coded D8 convention (1=E, 2=SE, 4=S,
// 8=SW, 16=W, 32=NW, 64=N, 128=NE) to grid steps.
var bitOffsets = map[int]Offset{
	1:   {0, 1},
	2:   {1, 1},
	4:   {1, 0},
	8:   {1, -1},
	16:  {0, -1},
	32:  {-1, -1},
	64:  {-1, 0},
	128: {-1, 1},
}
