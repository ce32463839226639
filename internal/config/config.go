package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации приложения.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Noise      NoiseConfig      `yaml:"noise"`
	Zones      ZonesConfig      `yaml:"zones"`
	Formations FormationsConfig `yaml:"formations"`
	Corridor   CorridorConfig   `yaml:"corridor"`
	Perimeter  PerimeterConfig  `yaml:"perimeter"`
	Mesh       MeshConfig       `yaml:"mesh"`
	Server     ServerConfig     `yaml:"server"`
	Storage    StorageConfig    `yaml:"storage"`
}

// WorldConfig задает размеры сетки и сид генерации
type WorldConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Seed      int64   `yaml:"seed"`
	CellSize  float64 `yaml:"cell_size"`
	ChunkSize int     `yaml:"chunk_size"`
}

// FieldConfig параметры одного именованного поля шума
type FieldConfig struct {
	Scale       float64 `yaml:"scale"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity"`
}

// NoiseConfig именованные поля шума пайплайна.
// Каждое поле получает собственное смещение от сида, поэтому
// изменение параметров одного поля не сдвигает остальные.
type NoiseConfig struct {
	Zone      FieldConfig `yaml:"zone"`
	Detail    FieldConfig `yaml:"detail"`
	Perimeter FieldConfig `yaml:"perimeter"`
	WallTop   FieldConfig `yaml:"wall_top"`
}

// ZonesConfig пороги зон глубины и базовые высоты дна
type ZonesConfig struct {
	DeepThreshold   float64 `yaml:"deep_threshold"`
	MidThreshold    float64 `yaml:"mid_threshold"`
	ShallowHeight   float64 `yaml:"shallow_height"`
	MidHeight       float64 `yaml:"mid_height"`
	DeepHeight      float64 `yaml:"deep_height"`
	SmoothingPasses int     `yaml:"smoothing_passes"`
}

// ShapeWeights вероятности пяти видов формаций.
// Предусловие: сумма равна 1.0 (не проверяется во время выполнения,
// переполнение отдается последнему виду — Boulders).
type ShapeWeights struct {
	Round     float64 `yaml:"round"`
	Hourglass float64 `yaml:"hourglass"`
	Canyon    float64 `yaml:"canyon"`
	Chunky    float64 `yaml:"chunky"`
	Boulders  float64 `yaml:"boulders"`
}

// FormationsConfig параметры размещения скальных формаций
type FormationsConfig struct {
	Strategy      string       `yaml:"strategy"` // "mesa" или "corridor"
	Count         int          `yaml:"count"`
	RadiusMin     float64      `yaml:"radius_min"`
	RadiusMax     float64      `yaml:"radius_max"`
	MinSpacing    float64      `yaml:"min_spacing"`
	WallHeightMin float64      `yaml:"wall_height_min"`
	WallHeightMax float64      `yaml:"wall_height_max"`
	Weights       ShapeWeights `yaml:"weights"`
}

// CorridorConfig параметры альтернативной стратегии прокладки коридоров
type CorridorConfig struct {
	Walkers          int     `yaml:"walkers"`
	WalkerSteps      int     `yaml:"walker_steps"`
	BrushMin         float64 `yaml:"brush_min"`
	BrushMax         float64 `yaml:"brush_max"`
	ErosionPasses    int     `yaml:"erosion_passes"`
	MinWallNeighbors int     `yaml:"min_wall_neighbors"`
}

// PerimeterConfig параметры сплошной границы карты
type PerimeterConfig struct {
	Thickness   float64 `yaml:"thickness"`
	NoiseAmount float64 `yaml:"noise_amount"`
	WallHeight  float64 `yaml:"wall_height"`
}

// MeshConfig параметры разрешения вершин и тесселяции
type MeshConfig struct {
	WallSmoothPasses  int     `yaml:"wall_smooth_passes"`
	FloorSmoothPasses int     `yaml:"floor_smooth_passes"`
	WallBoost         float64 `yaml:"wall_boost"`
}

// ServerConfig порты preview-сервера
type ServerConfig struct {
	RESTPort int `yaml:"rest_port"`
}

// StorageConfig путь к хранилищу снапшотов
type StorageConfig struct {
	Path string `yaml:"path"`
}

// GetRESTPort возвращает REST порт с приоритетом: config -> env -> default
func (s *ServerConfig) GetRESTPort() int {
	if s.RESTPort > 0 {
		return s.RESTPort
	}
	if envVal := os.Getenv("REEF_REST_PORT"); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}
	return 8088
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV REEF_CONFIG, иначе возвращает дефолт.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("REEF_CONFIG")
	}
	if path == "" {
		cfg := Default()
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения конфигурации %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора YAML %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default возвращает конфигурацию по умолчанию (пригодную для генерации)
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Width:     200,
			Height:    200,
			Seed:      1337,
			CellSize:  1.0,
			ChunkSize: 16,
		},
		Noise: NoiseConfig{
			Zone:      FieldConfig{Scale: 60, Octaves: 2, Persistence: 0.5, Lacunarity: 2.0},
			Detail:    FieldConfig{Scale: 8, Octaves: 3, Persistence: 0.5, Lacunarity: 2.0},
			Perimeter: FieldConfig{Scale: 20, Octaves: 2, Persistence: 0.5, Lacunarity: 2.0},
			WallTop:   FieldConfig{Scale: 10, Octaves: 2, Persistence: 0.5, Lacunarity: 2.0},
		},
		Zones: ZonesConfig{
			DeepThreshold:   0.35,
			MidThreshold:    0.60,
			ShallowHeight:   -2,
			MidHeight:       -6,
			DeepHeight:      -12,
			SmoothingPasses: 3,
		},
		Formations: FormationsConfig{
			Strategy:      "mesa",
			Count:         12,
			RadiusMin:     3,
			RadiusMax:     8,
			MinSpacing:    14,
			WallHeightMin: 3,
			WallHeightMax: 7,
			Weights: ShapeWeights{
				Round:     0.35,
				Hourglass: 0.15,
				Canyon:    0.15,
				Chunky:    0.20,
				Boulders:  0.15,
			},
		},
		Corridor: CorridorConfig{
			Walkers:          6,
			WalkerSteps:      400,
			BrushMin:         2,
			BrushMax:         5,
			ErosionPasses:    3,
			MinWallNeighbors: 4,
		},
		Perimeter: PerimeterConfig{
			Thickness:   3,
			NoiseAmount: 2,
			WallHeight:  10,
		},
		Mesh: MeshConfig{
			WallSmoothPasses:  2,
			FloorSmoothPasses: 2,
			WallBoost:         0.5,
		},
		Server:  ServerConfig{RESTPort: 0},
		Storage: StorageConfig{Path: "data"},
	}
}

// Validate проверяет конфигурацию перед генерацией.
// Вырожденная конфигурация — ошибка, а не молчаливый пустой результат.
func (c *Config) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("конфигурация: размер сетки %dx%d недопустим", c.World.Width, c.World.Height)
	}
	if c.World.ChunkSize <= 0 {
		return fmt.Errorf("конфигурация: chunk_size должен быть > 0, получено %d", c.World.ChunkSize)
	}
	if c.World.CellSize <= 0 {
		return fmt.Errorf("конфигурация: cell_size должен быть > 0, получено %g", c.World.CellSize)
	}
	if c.Zones.DeepThreshold >= c.Zones.MidThreshold {
		return fmt.Errorf("конфигурация: deep_threshold (%g) должен быть меньше mid_threshold (%g)",
			c.Zones.DeepThreshold, c.Zones.MidThreshold)
	}
	if c.Formations.RadiusMin > c.Formations.RadiusMax {
		return fmt.Errorf("конфигурация: radius_min (%g) больше radius_max (%g)",
			c.Formations.RadiusMin, c.Formations.RadiusMax)
	}
	switch c.Formations.Strategy {
	case "", "mesa", "corridor":
	default:
		return fmt.Errorf("конфигурация: неизвестная стратегия формаций %q", c.Formations.Strategy)
	}
	for _, fc := range []struct {
		name string
		f    FieldConfig
	}{
		{"zone", c.Noise.Zone},
		{"detail", c.Noise.Detail},
		{"perimeter", c.Noise.Perimeter},
		{"wall_top", c.Noise.WallTop},
	} {
		if fc.f.Octaves <= 0 {
			return fmt.Errorf("конфигурация: noise.%s.octaves должен быть > 0", fc.name)
		}
		if fc.f.Scale <= 0 {
			return fmt.Errorf("конфигурация: noise.%s.scale должен быть > 0", fc.name)
		}
	}
	return nil
}
