package dem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOppositePairing(t *testing.T) {
	// every code has exactly one opposite whose offset is the negation of its own
	for d := Direction(0); d < 8; d++ {
		o, op := Offsets[d], Offsets[d.Opposite()]
		assert.Equal(t, -o.Dr, op.Dr, "direction %s", d)
		assert.Equal(t, -o.Dc, op.Dc, "direction %s", d)
		assert.Equal(t, d, d.Opposite().Opposite())
	}
}

func TestDirectionOrdering(t *testing.T) {
	// bottom-first enumeration: south, southwest, west, northwest, north,
	// northeast, east, southeast
	assert.Equal(t, Offset{1, 0}, Offsets[South])
	assert.Equal(t, Offset{1, -1}, Offsets[Southwest])
	assert.Equal(t, Offset{0, -1}, Offsets[West])
	assert.Equal(t, Offset{-1, -1}, Offsets[Northwest])
	assert.Equal(t, Offset{-1, 0}, Offsets[North])
	assert.Equal(t, Offset{-1, 1}, Offsets[Northeast])
	assert.Equal(t, Offset{0, 1}, Offsets[East])
	assert.Equal(t, Offset{1, 1}, Offsets[Southeast])
}

func TestDiagonal(t *testing.T) {
	for _, d := range []Direction{South, West, North, East} {
		assert.False(t, d.Diagonal(), d.String())
	}
	for _, d := range []Direction{Southwest, Northwest, Northeast, Southeast} {
		assert.True(t, d.Diagonal(), d.String())
	}
}

func TestBitOffsets(t *testing.T) {
	assert.Len(t, bitOffsets, 8)
	assert.Equal(t, Offset{0, 1}, bitOffsets[1])    // east
	assert.Equal(t, Offset{1, 0}, bitOffsets[4])    // south
	assert.Equal(t, Offset{0, -1}, bitOffsets[16])  // west
	assert.Equal(t, Offset{-1, 0}, bitOffsets[64])  // north
	assert.Equal(t, Offset{-1, 1}, bitOffsets[128]) // northeast
}

func TestNodir(t *testing.T) {
	assert.False(t, Nodir.Defined())
	assert.Equal(t, "nodir", Nodir.String())
}
