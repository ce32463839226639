package terrain

import (
	"encoding/binary"
	"math"

	"github.com/bsmit104/Reef/internal/vec"
	"github.com/cespare/xxhash/v2"
)

// ZoneType представляет зону глубины ячейки
type ZoneType int

const (
	ZoneShallow ZoneType = iota
	ZoneMid
	ZoneDeep
)

// String возвращает строковое представление зоны
func (z ZoneType) String() string {
	switch z {
	case ZoneShallow:
		return "shallow"
	case ZoneMid:
		return "mid"
	case ZoneDeep:
		return "deep"
	default:
		return "unknown"
	}
}

// Cell — одна ячейка сетки. FloorHeight имеет смысл и под стеной
// (дно продолжается под скалой). WallHeight неотрицателен и равен 0
// тогда и только тогда, когда IsWall == false.
type Cell struct {
	IsWall      bool     `json:"is_wall"`
	FloorHeight float64  `json:"floor_height"`
	WallHeight  float64  `json:"wall_height"`
	Zone        ZoneType `json:"zone"`
}

// Grid владеет полным 2D массивом ячеек. После генерации сетка
// публикуется как read-only и живет до следующей полной регенерации.
type Grid struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Cells  []Cell `json:"cells"` // построчно, индекс y*Width+x
}

// NewGrid выделяет пустую сетку указанного размера
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Cells:  make([]Cell, width*height),
	}
}

// InBounds проверяет, лежит ли координата внутри сетки
func (g *Grid) InBounds(pos vec.Vec2) bool {
	return pos.X >= 0 && pos.X < g.Width && pos.Y >= 0 && pos.Y < g.Height
}

// Cell возвращает ячейку по координате. Для координат вне сетки
// возвращается (Cell{}, false) — отсутствие, а не ошибка.
func (g *Grid) Cell(pos vec.Vec2) (Cell, bool) {
	if !g.InBounds(pos) {
		return Cell{}, false
	}
	return g.Cells[pos.Y*g.Width+pos.X], true
}

// SetCell записывает ячейку; координаты вне сетки игнорируются
func (g *Grid) SetCell(pos vec.Vec2, cell Cell) {
	if !g.InBounds(pos) {
		return
	}
	g.Cells[pos.Y*g.Width+pos.X] = cell
}

// IsWallAt сообщает, занята ли координата стеной.
// Все, что за пределами сетки, считается сплошной породой.
func (g *Grid) IsWallAt(pos vec.Vec2) bool {
	cell, ok := g.Cell(pos)
	if !ok {
		return true
	}
	return cell.IsWall
}

// Checksum возвращает xxhash-свертку всех ячеек. Две генерации с
// одинаковым сидом и конфигурацией дают одинаковую свертку.
func (g *Grid) Checksum() uint64 {
	digest := xxhash.New()
	var buf [8]byte

	binary.LittleEndian.PutUint32(buf[:4], uint32(g.Width))
	binary.LittleEndian.PutUint32(buf[4:], uint32(g.Height))
	_, _ = digest.Write(buf[:])

	for i := range g.Cells {
		c := &g.Cells[i]

		flags := byte(c.Zone) << 1
		if c.IsWall {
			flags |= 1
		}
		_, _ = digest.Write([]byte{flags})

		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(c.FloorHeight))
		_, _ = digest.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(c.WallHeight))
		_, _ = digest.Write(buf[:])
	}

	return digest.Sum64()
}
