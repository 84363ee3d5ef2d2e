package rivers

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/maseology/goHydro/grid"
	"github.com/maseology/mmio"

	"github.com/Serapieum-of-alex/digital-rivers/dem"
)

func writeFloats(gd *grid.Definition, fp string, f []float64) error {
	f32 := func() []float32 {
		o := make([]float32, len(f))
		for i, v := range f {
			if math.IsNaN(v) {
				o[i] = nodata
				continue
			}
			o[i] = float32(v)
		}
		return o
	}()
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, f32); err != nil {
		return fmt.Errorf("writeFloats failed: %v", err)
	}
	if err := os.WriteFile(fp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writeFloats failed: %v", err)
	}
	gd.ToHDRfloat(mmio.RemoveExtension(fp)+".hdr", 1, 32)
	return nil
}

func writeInts(gd *grid.Definition, fp string, i []int32) error {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, i); err != nil {
		return fmt.Errorf("writeInts failed: %v", err)
	}
	if err := os.WriteFile(fp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writeInts failed: %v", err)
	}
	gd.ToHDR(mmio.RemoveExtension(fp)+".hdr", 1, 32)
	return nil
}

// SaveBils writes every routing product as a bil raster under the prefix:
// sink-filled elevation, maximum slope, D8 direction and flow accumulation.
func (x *Routing) SaveBils(gd *grid.Definition, prfx string) error {
	if err := writeFloats(gd, prfx+"filled.bil", x.Filled.Z); err != nil {
		return fmt.Errorf("rivers.SaveBils: %v", err)
	}
	if err := writeFloats(gd, prfx+"slope.bil", x.Slopes.Max()); err != nil {
		return fmt.Errorf("rivers.SaveBils: %v", err)
	}

	fd := make([]int32, len(x.Dir.D))
	for i, d := range x.Dir.D {
		if !d.Defined() {
			fd[i] = dem.NoData
			continue
		}
		fd[i] = int32(d)
	}
	if err := writeInts(gd, prfx+"flowdir.bil", fd); err != nil {
		return fmt.Errorf("rivers.SaveBils: %v", err)
	}
	if err := writeInts(gd, prfx+"flowacc.bil", x.Acc.N); err != nil {
		return fmt.Errorf("rivers.SaveBils: %v", err)
	}
	return nil
}

// SaveUpslopeCounts writes, per cell, the number of direct upstream
// neighbours held in an adjacency table.
func SaveUpslopeCounts(gd *grid.Definition, fp string, tbl map[dem.Cell][]dem.Cell) error {
	nus := gd.NullInt32(-9999)
	for c, us := range tbl {
		nus[c.Row*gd.Ncol+c.Col] = int32(len(us))
	}
	if err := writeInts(gd, fp, nus); err != nil {
		return fmt.Errorf("rivers.SaveUpslopeCounts: %v", err)
	}
	return nil
}

// SaveIntGrid writes an integer raster (pruned basins, bit-coded directions).
func SaveIntGrid(gd *grid.Definition, fp string, g *dem.IntGrid) error {
	if err := writeInts(gd, fp, g.V); err != nil {
		return fmt.Errorf("rivers.SaveIntGrid: %v", err)
	}
	return nil
}
