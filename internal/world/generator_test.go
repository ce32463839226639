package world

import (
	"math"
	"testing"

	"github.com/bsmit104/Reef/internal/config"
	"github.com/bsmit104/Reef/internal/terrain"
	"github.com/bsmit104/Reef/internal/vec"
)

// smallConfig — быстрая конфигурация для тестов пайплайна
func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.World.Width = 48
	cfg.World.Height = 48
	cfg.World.Seed = 42
	cfg.Formations.Count = 4
	cfg.Formations.MinSpacing = 10
	cfg.Formations.RadiusMax = 5
	return cfg
}

func TestGenerateDeterminism(t *testing.T) {
	a, err := Generate(smallConfig())
	if err != nil {
		t.Fatalf("Первый прогон упал: %v", err)
	}
	b, err := Generate(smallConfig())
	if err != nil {
		t.Fatalf("Второй прогон упал: %v", err)
	}

	if a.Checksum != b.Checksum {
		t.Errorf("Свертки разошлись: %016x != %016x", a.Checksum, b.Checksum)
	}
	if len(a.Vertices.Vertices) != len(b.Vertices.Vertices) {
		t.Fatal("Разное число вершин")
	}
	for i := range a.Vertices.Vertices {
		if a.Vertices.Vertices[i] != b.Vertices.Vertices[i] {
			t.Fatalf("Вершина %d разошлась: %+v != %+v",
				i, a.Vertices.Vertices[i], b.Vertices.Vertices[i])
		}
	}
	// Версии-указатели при этом различны
	if a.Version == b.Version {
		t.Error("Версии двух прогонов обязаны различаться")
	}
}

func TestGenerateWallHeightInvariant(t *testing.T) {
	result, err := Generate(smallConfig())
	if err != nil {
		t.Fatalf("Прогон упал: %v", err)
	}

	for i := range result.Grid.Cells {
		cell := &result.Grid.Cells[i]
		if cell.WallHeight < 0 {
			t.Fatalf("Отрицательная высота стены в ячейке %d", i)
		}
		if (cell.WallHeight == 0) == cell.IsWall {
			t.Fatalf("Нарушение инварианта wallHeight==0 <=> !isWall в ячейке %d: %+v", i, cell)
		}
	}
}

func TestGenerateRejectsInvalidConfig(t *testing.T) {
	if _, err := Generate(nil); err == nil {
		t.Error("nil конфигурация должна быть ошибкой")
	}

	cfg := smallConfig()
	cfg.World.Width = 0
	if _, err := Generate(cfg); err == nil {
		t.Error("Нулевая ширина должна быть ошибкой")
	}
}

func TestGenerateCorridorStrategy(t *testing.T) {
	cfg := smallConfig()
	cfg.Formations.Strategy = "corridor"
	cfg.Corridor.Walkers = 4
	cfg.Corridor.WalkerSteps = 200

	result, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Прогон упал: %v", err)
	}

	floors := 0
	for i := range result.Grid.Cells {
		if !result.Grid.Cells[i].IsWall {
			floors++
		}
	}
	if floors == 0 {
		t.Error("Стратегия коридоров не оставила пола")
	}
}

// TestGenerateDeepOnlyScenario — сценарий: сид 42, сетка 10x10, всюду
// Deep, без формаций, периметр без шума толщиной 1, без сглаживания.
// Каждая внутренняя ячейка — пол на deep_height; внешнее кольцо —
// стены высотой perimeter_wall_height + |deep_height| + 2.
func TestGenerateDeepOnlyScenario(t *testing.T) {
	cfg := config.Default()
	cfg.World.Width = 10
	cfg.World.Height = 10
	cfg.World.Seed = 42
	cfg.World.ChunkSize = 10
	// Пороги выше максимума шума: вся сетка — Deep
	cfg.Zones.DeepThreshold = 2
	cfg.Zones.MidThreshold = 3
	cfg.Zones.DeepHeight = -12
	cfg.Zones.SmoothingPasses = 0
	cfg.Formations.Count = 0
	cfg.Perimeter.Thickness = 1
	cfg.Perimeter.NoiseAmount = 0
	cfg.Perimeter.WallHeight = 10

	result, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Прогон упал: %v", err)
	}

	wantWallHeight := 10 + math.Abs(-12.0) + 2
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			cell, _ := result.Grid.Cell(vec.Vec2{X: x, Y: y})
			if cell.Zone != terrain.ZoneDeep {
				t.Fatalf("Ячейка (%d,%d) не Deep: %v", x, y, cell.Zone)
			}

			outerRing := x == 0 || y == 0 || x == 9 || y == 9
			if outerRing {
				if !cell.IsWall {
					t.Fatalf("Внешнее кольцо (%d,%d) не стена", x, y)
				}
				if cell.WallHeight != wantWallHeight {
					t.Fatalf("Стена кольца (%d,%d): %v, ожидалось %v", x, y, cell.WallHeight, wantWallHeight)
				}
			} else {
				if cell.IsWall {
					t.Fatalf("Внутренняя ячейка (%d,%d) — стена", x, y)
				}
				if cell.FloorHeight != -12 {
					t.Fatalf("Дно (%d,%d): %v, ожидалось -12", x, y, cell.FloorHeight)
				}
			}
		}
	}
}

func TestGeneratorPublishesAtomically(t *testing.T) {
	gen := NewGenerator(smallConfig())
	if gen.Current() != nil {
		t.Fatal("До первого прогона результата быть не должно")
	}

	first, err := gen.Regenerate()
	if err != nil {
		t.Fatalf("Регенерация упала: %v", err)
	}
	if gen.Current() != first {
		t.Error("Current не вернул опубликованный результат")
	}

	second, err := gen.Regenerate()
	if err != nil {
		t.Fatalf("Повторная регенерация упала: %v", err)
	}
	if gen.Current() != second {
		t.Error("Повторная публикация не вытеснила предыдущий результат")
	}
	// Старый снимок остается согласованным для удерживающих его читателей
	if first.Checksum != second.Checksum {
		t.Error("Одинаковая конфигурация обязана давать одинаковую свертку")
	}
}

func TestGeneratorRegenerateWithSeed(t *testing.T) {
	gen := NewGenerator(smallConfig())
	a, err := gen.RegenerateWithSeed(1)
	if err != nil {
		t.Fatalf("Регенерация упала: %v", err)
	}
	b, err := gen.RegenerateWithSeed(2)
	if err != nil {
		t.Fatalf("Регенерация упала: %v", err)
	}
	if a.Checksum == b.Checksum {
		t.Error("Разные сиды дали одинаковую свертку")
	}
}
