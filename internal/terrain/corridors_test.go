package terrain

import (
	"math/rand"
	"testing"

	"github.com/bsmit104/Reef/internal/config"
	"github.com/bsmit104/Reef/internal/vec"
)

func testCorridorConfig() config.CorridorConfig {
	return config.CorridorConfig{
		Walkers:          4,
		WalkerSteps:      300,
		BrushMin:         2,
		BrushMax:         4,
		ErosionPasses:    3,
		MinWallNeighbors: 4,
	}
}

func TestCarveCorridorsConnectivity(t *testing.T) {
	mask := CarveCorridors(testCorridorConfig(), rand.New(rand.NewSource(42)), 96, 96)

	seed, ok := floorNearestCenter(mask)
	if !ok {
		t.Fatal("После прокладки не осталось пола")
	}

	// Заливка от стартовой ячейки должна накрыть весь пол
	reached := make([]bool, len(mask.Cells))
	queue := []vec.Vec2{seed}
	reached[seed.Y*mask.Width+seed.X] = true
	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]
		for _, n := range pos.Cardinals() {
			if n.X < 0 || n.X >= mask.Width || n.Y < 0 || n.Y >= mask.Height {
				continue
			}
			idx := n.Y*mask.Width + n.X
			if reached[idx] || mask.Cells[idx] {
				continue
			}
			reached[idx] = true
			queue = append(queue, n)
		}
	}

	for i := range mask.Cells {
		if !mask.Cells[i] && !reached[i] {
			t.Fatalf("Ячейка пола %d недостижима из основной полости", i)
		}
	}
}

func TestCarveCorridorsDeterministic(t *testing.T) {
	a := CarveCorridors(testCorridorConfig(), rand.New(rand.NewSource(11)), 64, 64)
	b := CarveCorridors(testCorridorConfig(), rand.New(rand.NewSource(11)), 64, 64)

	for i := range a.Cells {
		if a.Cells[i] != b.Cells[i] {
			t.Fatal("Маски коридоров разошлись при одинаковом сиде")
		}
	}
}

func TestErodeWallsRule(t *testing.T) {
	// Одиночная стена посреди пола: 0 стенных соседей < 4 — эрозия
	// обязана ее снять за один проход.
	mask := NewMask(9, 9)
	mask.Cells[4*9+4] = true

	eroded := erodeWalls(mask, 1, 4)
	if eroded.Cells[4*9+4] {
		t.Error("Одиночная стена пережила эрозию")
	}
}

func TestErodeWallsKeepsSolidBlock(t *testing.T) {
	// Внутренность сплошного блока 5x5 имеет 8 стенных соседей
	mask := NewMask(16, 16)
	for y := 5; y < 10; y++ {
		for x := 5; x < 10; x++ {
			mask.Cells[y*16+x] = true
		}
	}

	eroded := erodeWalls(mask, 1, 4)
	if !eroded.Cells[7*16+7] {
		t.Error("Центр сплошного блока не должен эродировать")
	}
}

func TestThinFloorsRemovesDeadEnds(t *testing.T) {
	// Одиночная ячейка пола в сплошной породе: 0 кардинальных соседей
	// пола < 2 — прореживание закрывает ее.
	mask := NewMask(9, 9)
	for i := range mask.Cells {
		mask.Cells[i] = true
	}
	mask.Cells[4*9+4] = false

	thinFloors(mask)
	if !mask.Cells[4*9+4] {
		t.Error("Одиночная ячейка пола пережила прореживание")
	}
}

func TestThinFloorsKeepsOpenArea(t *testing.T) {
	// Просторная полость 6x6 стабильна для прореживания
	mask := NewMask(16, 16)
	for i := range mask.Cells {
		mask.Cells[i] = true
	}
	for y := 5; y < 11; y++ {
		for x := 5; x < 11; x++ {
			mask.Cells[y*16+x] = false
		}
	}

	thinFloors(mask)
	if mask.Cells[8*16+8] {
		t.Error("Центр полости не должен зарастать")
	}
}

func TestRemoveIsolatedPockets(t *testing.T) {
	// Две полости: большая у центра и карман 2x2 в углу без прохода
	mask := NewMask(24, 24)
	for i := range mask.Cells {
		mask.Cells[i] = true
	}
	for y := 8; y < 16; y++ {
		for x := 8; x < 16; x++ {
			mask.Cells[y*24+x] = false
		}
	}
	mask.Cells[2*24+2] = false
	mask.Cells[2*24+3] = false
	mask.Cells[3*24+2] = false
	mask.Cells[3*24+3] = false

	removeIsolatedPockets(mask)

	if mask.Cells[12*24+12] {
		t.Error("Основная полость не должна зарастать")
	}
	if !mask.Cells[2*24+2] {
		t.Error("Недостижимый карман должен превратиться в породу")
	}
}
