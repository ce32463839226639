package terrain

import (
	"math"

	"github.com/bsmit104/Reef/internal/config"
	"github.com/bsmit104/Reef/internal/noise"
	"github.com/bsmit104/Reef/internal/vec"
)

// Запас, отделяющий дно периметра от самой глубокой зоны
const perimeterFloorDrop = 2.0

// AssembleGrid собирает итоговую сетку из зон, сглаженных высот дна и
// масок занятости. Приоритет на ячейку: периметр > формация > пол.
//
//   - периметр: стена максимальной высоты, дно ниже глубокой зоны;
//   - формация: стена, высота интерполируется между min/max независимым
//     мелкомасштабным шумом — высоты формаций меняются плавно,
//     но непредсказуемо;
//   - пол: сглаженная высота зоны, wallHeight = 0.
func AssembleGrid(
	zones *ZoneField,
	smoothed []float64,
	formations *Mask,
	perimeter *Mask,
	wallTop *noise.Field,
	zcfg config.ZonesConfig,
	fcfg config.FormationsConfig,
	pcfg config.PerimeterConfig,
) *Grid {
	grid := NewGrid(zones.Width, zones.Height)

	for y := 0; y < zones.Height; y++ {
		for x := 0; x < zones.Width; x++ {
			idx := y*zones.Width + x
			cell := Cell{Zone: zones.Zones[idx]}

			switch {
			case perimeter.At(x, y):
				cell.IsWall = true
				cell.FloorHeight = zcfg.DeepHeight - perimeterFloorDrop
				cell.WallHeight = pcfg.WallHeight + math.Abs(zcfg.DeepHeight) + perimeterFloorDrop

			case formations.At(x, y):
				cell.IsWall = true
				cell.FloorHeight = smoothed[idx]
				t := wallTop.Sample(float64(x), float64(y))
				cell.WallHeight = fcfg.WallHeightMin + t*(fcfg.WallHeightMax-fcfg.WallHeightMin)

			default:
				cell.FloorHeight = smoothed[idx]
			}

			grid.SetCell(vec.Vec2{X: x, Y: y}, cell)
		}
	}

	return grid
}
