package noise

import (
	"math/rand"

	"github.com/aquilax/go-perlin"
)

// Смещения сидов именованных полей шума. Каждое поле живет на
// собственном участке шумового пространства: смена параметров одного
// поля не сдвигает картину остальных.
const (
	OffsetZone      int64 = 0
	OffsetDetail    int64 = 1000
	OffsetPerimeter int64 = 2000
	OffsetWallTop   int64 = 3000
)

// Параметры сглаживания базового шума Перлина
const (
	perlinAlpha = 2.0
	perlinBeta  = 2.0
)

// Field — детерминированное фрактальное поле когерентного шума.
// Sample возвращает значение в [0, 1] для любых координат.
type Field struct {
	base        *perlin.Perlin
	offsets     []offset2
	scale       float64
	persistence float64
	lacunarity  float64
}

type offset2 struct {
	x, y float64
}

// NewField создает поле шума. Октавные смещения выводятся из
// seed+seedOffset, поэтому поле полностью определяется этой парой.
func NewField(seed, seedOffset int64, scale float64, octaves int, persistence, lacunarity float64) *Field {
	if octaves < 1 {
		octaves = 1
	}

	// Локальный rand только для смещений октав — детерминированность
	rng := rand.New(rand.NewSource(seed + seedOffset))
	offsets := make([]offset2, octaves)
	for i := range offsets {
		offsets[i] = offset2{
			x: rng.Float64() * 100000,
			y: rng.Float64() * 100000,
		}
	}

	return &Field{
		base:        perlin.NewPerlin(perlinAlpha, perlinBeta, 1, seed+seedOffset),
		offsets:     offsets,
		scale:       scale,
		persistence: persistence,
		lacunarity:  lacunarity,
	}
}

// Sample возвращает фрактальное значение шума в точке (x, y),
// нормированное суммой амплитуд и зажатое в [0, 1].
func (f *Field) Sample(x, y float64) float64 {
	total := 0.0
	totalAmplitude := 0.0
	amplitude := 1.0
	frequency := 1.0

	for _, off := range f.offsets {
		nx := (x + off.x) / f.scale * frequency
		ny := (y + off.y) / f.scale * frequency

		// Noise2D возвращает значение примерно в [-1, 1]
		sample := (f.base.Noise2D(nx, ny) + 1.0) / 2.0

		total += sample * amplitude
		totalAmplitude += amplitude

		amplitude *= f.persistence
		frequency *= f.lacunarity
	}

	value := total / totalAmplitude
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
