package terrain

import (
	"math"
	"testing"

	"github.com/bsmit104/Reef/internal/config"
	"github.com/bsmit104/Reef/internal/noise"
	"github.com/bsmit104/Reef/internal/vec"
)

func assembleFixture(t *testing.T, formations, perimeter *Mask) *Grid {
	t.Helper()
	const w, h = 16, 16

	zcfg := testZonesConfig()
	field := noise.NewField(42, noise.OffsetZone, 60, 2, 0.5, 2.0)
	zones := ClassifyZones(field, zcfg, w, h)
	smoothed := SmoothHeights(zones.Heights, zones.Zones, w, h, 1, true)

	wallTop := noise.NewField(42, noise.OffsetWallTop, 10, 2, 0.5, 2.0)
	fcfg := testFormationsConfig()
	pcfg := config.PerimeterConfig{Thickness: 2, NoiseAmount: 0, WallHeight: 10}

	return AssembleGrid(zones, smoothed, formations, perimeter, wallTop, zcfg, fcfg, pcfg)
}

func TestAssemblePriorityPerimeterOverFormation(t *testing.T) {
	const w, h = 16, 16
	formations := NewMask(w, h)
	perimeter := NewMask(w, h)
	// Одна и та же ячейка и в формации, и в периметре
	formations.Set(1, 1)
	perimeter.Cells[1*w+1] = true

	grid := assembleFixture(t, formations, perimeter)
	cell, _ := grid.Cell(vec.Vec2{X: 1, Y: 1})

	zcfg := testZonesConfig()
	wantFloor := zcfg.DeepHeight - 2
	wantWall := 10 + math.Abs(zcfg.DeepHeight) + 2

	if !cell.IsWall {
		t.Fatal("Ячейка периметра обязана быть стеной")
	}
	if cell.FloorHeight != wantFloor {
		t.Errorf("Дно периметра %v, ожидалось %v", cell.FloorHeight, wantFloor)
	}
	if cell.WallHeight != wantWall {
		t.Errorf("Стена периметра %v, ожидалось %v", cell.WallHeight, wantWall)
	}
}

func TestAssembleFormationHeightInRange(t *testing.T) {
	const w, h = 16, 16
	formations := NewMask(w, h)
	perimeter := NewMask(w, h)
	formations.Set(8, 8)

	grid := assembleFixture(t, formations, perimeter)
	cell, _ := grid.Cell(vec.Vec2{X: 8, Y: 8})

	if !cell.IsWall {
		t.Fatal("Ячейка формации обязана быть стеной")
	}
	fcfg := testFormationsConfig()
	if cell.WallHeight < fcfg.WallHeightMin || cell.WallHeight > fcfg.WallHeightMax {
		t.Errorf("Высота стены формации %v вне [%v, %v]",
			cell.WallHeight, fcfg.WallHeightMin, fcfg.WallHeightMax)
	}
}

func TestAssembleWallHeightInvariant(t *testing.T) {
	// wallHeight >= 0 всегда; wallHeight == 0 тогда и только тогда,
	// когда ячейка — не стена.
	const w, h = 16, 16
	formations := NewMask(w, h)
	perimeter := NewMask(w, h)
	formations.Set(5, 5)
	formations.Set(6, 5)
	for x := 0; x < w; x++ {
		perimeter.Cells[x] = true
	}

	grid := assembleFixture(t, formations, perimeter)
	for i := range grid.Cells {
		cell := &grid.Cells[i]
		if cell.WallHeight < 0 {
			t.Fatalf("Отрицательная высота стены в ячейке %d", i)
		}
		if cell.IsWall && cell.WallHeight == 0 {
			t.Fatalf("Стена без высоты в ячейке %d", i)
		}
		if !cell.IsWall && cell.WallHeight != 0 {
			t.Fatalf("Пол с высотой стены в ячейке %d", i)
		}
	}
}

func TestAssembleFloorKeepsSmoothedHeight(t *testing.T) {
	const w, h = 16, 16
	grid := assembleFixture(t, NewMask(w, h), NewMask(w, h))

	zcfg := testZonesConfig()
	field := noise.NewField(42, noise.OffsetZone, 60, 2, 0.5, 2.0)
	zones := ClassifyZones(field, zcfg, w, h)
	smoothed := SmoothHeights(zones.Heights, zones.Zones, w, h, 1, true)

	for i := range grid.Cells {
		if grid.Cells[i].FloorHeight != smoothed[i] {
			t.Fatalf("Дно ячейки %d: %v, ожидалось %v", i, grid.Cells[i].FloorHeight, smoothed[i])
		}
	}
}
