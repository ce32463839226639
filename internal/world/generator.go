package world

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/bsmit104/Reef/internal/config"
	"github.com/bsmit104/Reef/internal/logging"
	"github.com/bsmit104/Reef/internal/mesh"
	"github.com/bsmit104/Reef/internal/noise"
	"github.com/bsmit104/Reef/internal/terrain"
	"github.com/google/uuid"
)

// Смещение сида генератора размещения формаций. Отдельно от смещений
// полей шума: перенастройка любого поля не меняет розыгрыш размещения.
const placementSeedOffset int64 = 4000

// Result — результат одного полного прогона генерации. После
// публикации неизменяем: потребители читают сетку и меши до следующей
// регенерации, которая заменяет весь Result целиком.
type Result struct {
	Version        string
	Seed           int64
	Grid           *terrain.Grid
	Vertices       *mesh.VertexGrid
	Chunks         []mesh.ChunkMesh
	Checksum       uint64
	FormationCount int
	GeneratedAt    time.Time
	Duration       time.Duration
}

// Generate выполняет один синхронный прогон пайплайна:
// шум → зоны → формации/периметр → сборка → вершины → тесселяция.
// Чистое детерминированное преобразование конфигурации: одинаковые
// конфигурация и сид дают бит-в-бит одинаковые сетку и высоты вершин.
func Generate(cfg *config.Config) (*Result, error) {
	if cfg == nil {
		return nil, fmt.Errorf("генерация: конфигурация отсутствует")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("генерация: %w", err)
	}

	start := time.Now()
	width, height := cfg.World.Width, cfg.World.Height
	seed := cfg.World.Seed

	// Именованные поля шума на независимых участках сидового пространства
	zoneField := newField(seed, noise.OffsetZone, cfg.Noise.Zone)
	detailField := newField(seed, noise.OffsetDetail, cfg.Noise.Detail)
	perimeterField := newField(seed, noise.OffsetPerimeter, cfg.Noise.Perimeter)
	wallTopField := newField(seed, noise.OffsetWallTop, cfg.Noise.WallTop)

	zones := terrain.ClassifyZones(zoneField, cfg.Zones, width, height)
	smoothed := terrain.SmoothHeights(zones.Heights, zones.Zones, width, height, cfg.Zones.SmoothingPasses, true)

	rng := rand.New(rand.NewSource(seed + placementSeedOffset))

	var (
		formations *terrain.Mask
		placements []terrain.Placement
	)
	if cfg.Formations.Strategy == "corridor" {
		formations = terrain.CarveCorridors(cfg.Corridor, rng, width, height)
	} else {
		formations, placements = terrain.PlaceMesas(cfg.Formations, cfg.Perimeter.Thickness, rng, width, height)
		if len(placements) < cfg.Formations.Count {
			// Недобор при исчерпании бюджета попыток — штатный исход
			logging.Warn("Размещено %d формаций из %d: дистанционное ограничение исчерпало бюджет попыток",
				len(placements), cfg.Formations.Count)
		}
	}

	perimeter := terrain.BuildPerimeter(perimeterField, cfg.Perimeter.Thickness, cfg.Perimeter.NoiseAmount, width, height)

	grid := terrain.AssembleGrid(zones, smoothed, formations, perimeter, wallTopField,
		cfg.Zones, cfg.Formations, cfg.Perimeter)

	vertices := mesh.ResolveVertices(grid, detailField, cfg.Mesh)
	chunks := mesh.Tessellate(grid, vertices, cfg.World.ChunkSize, cfg.World.CellSize)

	result := &Result{
		Version:        uuid.NewString(),
		Seed:           seed,
		Grid:           grid,
		Vertices:       vertices,
		Chunks:         chunks,
		Checksum:       grid.Checksum(),
		FormationCount: len(placements),
		GeneratedAt:    start,
		Duration:       time.Since(start),
	}

	observeGeneration(result)
	logging.Info("🌊 Генерация завершена: %dx%d, сид %d, %d формаций, %d чанков, checksum %016x, %s",
		width, height, seed, result.FormationCount, len(chunks), result.Checksum, result.Duration)

	return result, nil
}

// newField строит поле шума из конфигурации
func newField(seed, offset int64, fc config.FieldConfig) *noise.Field {
	return noise.NewField(seed, offset, fc.Scale, fc.Octaves, fc.Persistence, fc.Lacunarity)
}

// Generator владеет опубликованным результатом. Публикация — замена
// указателя целиком: читатель всегда видит либо старый, либо новый
// согласованный снимок, никогда — наполовину записанный.
type Generator struct {
	cfg     *config.Config
	current atomic.Pointer[Result]
}

// NewGenerator создает генератор без опубликованного результата
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{cfg: cfg}
}

// Regenerate выполняет полный прогон и атомарно публикует результат.
// Повторный вызов полностью вытесняет предыдущий результат.
func (g *Generator) Regenerate() (*Result, error) {
	result, err := Generate(g.cfg)
	if err != nil {
		return nil, err
	}
	g.current.Store(result)
	return result, nil
}

// RegenerateWithSeed меняет сид и регенерирует
func (g *Generator) RegenerateWithSeed(seed int64) (*Result, error) {
	g.cfg.World.Seed = seed
	return g.Regenerate()
}

// Current возвращает опубликованный результат (nil до первого прогона)
func (g *Generator) Current() *Result {
	return g.current.Load()
}

// Config возвращает конфигурацию генератора
func (g *Generator) Config() *config.Config {
	return g.cfg
}
