package terrain

import (
	"math"
	"math/rand"

	"github.com/bsmit104/Reef/internal/config"
	"github.com/bsmit104/Reef/internal/vec"
)

// CarveCorridors — альтернативная стратегия генерации проходимости:
// популяция случайных блуждателей вырезает полости в сплошной породе,
// затем итеративная эрозия и прореживание убирают одиночные шипы и
// тонкие стены, а заливка от центра превращает недостижимые карманы
// обратно в породу. Возвращаемая маска — занятость стен (как у мез).
func CarveCorridors(ccfg config.CorridorConfig, rng *rand.Rand, width, height int) *Mask {
	mask := NewMask(width, height)
	for i := range mask.Cells {
		mask.Cells[i] = true
	}

	for walker := 0; walker < ccfg.Walkers; walker++ {
		runWalker(mask, ccfg, walker, rng)
	}

	mask = erodeWalls(mask, ccfg.ErosionPasses, ccfg.MinWallNeighbors)
	thinFloors(mask)
	removeIsolatedPockets(mask)

	return mask
}

// runWalker прогоняет одного блуждателя: WalkerSteps шагов в случайном
// кардинальном направлении, на каждом шаге вырезается диск. Радиус
// кисти плавно осциллирует между BrushMin и BrushMax в зависимости от
// прогресса шага и номера блуждателя — размер кисти меняется циклично,
// а не скачками.
func runWalker(mask *Mask, ccfg config.CorridorConfig, walkerIndex int, rng *rand.Rand) {
	pos := vec.Vec2{
		X: 1 + rng.Intn(mask.Width-2),
		Y: 1 + rng.Intn(mask.Height-2),
	}

	for step := 0; step < ccfg.WalkerSteps; step++ {
		progress := float64(step) / float64(ccfg.WalkerSteps)
		phase := progress*4*math.Pi + float64(walkerIndex)
		oscillation := 0.5 + 0.5*math.Sin(phase)
		brush := ccfg.BrushMin + (ccfg.BrushMax-ccfg.BrushMin)*oscillation

		carveDisc(mask, pos, brush)

		switch rng.Intn(4) {
		case 0:
			pos.X++
		case 1:
			pos.X--
		case 2:
			pos.Y++
		case 3:
			pos.Y--
		}

		// Блуждатель не покидает внутренность сетки
		pos.X = clampInt(pos.X, 1, mask.Width-2)
		pos.Y = clampInt(pos.Y, 1, mask.Height-2)
	}
}

// carveDisc освобождает ячейки диска, не трогая крайнее кольцо сетки
func carveDisc(mask *Mask, center vec.Vec2, radius float64) {
	reach := int(math.Ceil(radius))
	for dy := -reach; dy <= reach; dy++ {
		for dx := -reach; dx <= reach; dx++ {
			if float64(dx*dx+dy*dy) > radius*radius {
				continue
			}
			x, y := center.X+dx, center.Y+dy
			if x < 1 || x >= mask.Width-1 || y < 1 || y >= mask.Height-1 {
				continue
			}
			mask.Clear(x, y)
		}
	}
}

// erodeWalls выполняет passes проходов эрозии по окрестности Мура:
// стена становится полом, если среди 8 соседей стен меньше
// minWallNeighbors. Каждый проход читает снимок предыдущего.
// Ячейки за сеткой считаются стенами.
func erodeWalls(mask *Mask, passes, minWallNeighbors int) *Mask {
	current := mask
	for pass := 0; pass < passes; pass++ {
		next := NewMask(current.Width, current.Height)
		copy(next.Cells, current.Cells)

		for y := 0; y < current.Height; y++ {
			for x := 0; x < current.Width; x++ {
				if !current.Cells[y*current.Width+x] {
					continue
				}
				if mooreWallCount(current, x, y) < minWallNeighbors {
					next.Cells[y*current.Width+x] = false
				}
			}
		}
		current = next
	}
	return current
}

// mooreWallCount считает стены среди 8 соседей; за сеткой — стена
func mooreWallCount(mask *Mask, x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= mask.Width || ny < 0 || ny >= mask.Height {
				count++
				continue
			}
			if mask.Cells[ny*mask.Width+nx] {
				count++
			}
		}
	}
	return count
}

// thinFloors прореживает до неподвижной точки: пол становится стеной,
// если пола меньше чем в 2 из 4 кардинальных соседей. Убирает
// одноячеечные аппендиксы и щели шириной в одну ячейку.
func thinFloors(mask *Mask) {
	for {
		changed := false
		for y := 0; y < mask.Height; y++ {
			for x := 0; x < mask.Width; x++ {
				if mask.Cells[y*mask.Width+x] {
					continue
				}
				if cardinalFloorCount(mask, x, y) < 2 {
					mask.Cells[y*mask.Width+x] = true
					changed = true
				}
			}
		}
		if !changed {
			return
		}
	}
}

// cardinalFloorCount считает пол среди 4 кардинальных соседей
func cardinalFloorCount(mask *Mask, x, y int) int {
	count := 0
	for _, n := range (vec.Vec2{X: x, Y: y}).Cardinals() {
		if n.X < 0 || n.X >= mask.Width || n.Y < 0 || n.Y >= mask.Height {
			continue
		}
		if !mask.Cells[n.Y*mask.Width+n.X] {
			count++
		}
	}
	return count
}

// removeIsolatedPockets заливает пол 4-связностью от ячейки,
// ближайшей к центру сетки, и превращает незалитый пол в стену —
// недостижимых из основной полости карманов не остается.
func removeIsolatedPockets(mask *Mask) {
	seed, ok := floorNearestCenter(mask)
	if !ok {
		return
	}

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
			mask.Cells[i] = true
		}
	}
}

// floorNearestCenter находит ячейку пола, ближайшую к центру сетки
func floorNearestCenter(mask *Mask) (vec.Vec2, bool) {
	center := vec.Vec2{X: mask.Width / 2, Y: mask.Height / 2}
	best := vec.Vec2{}
	bestDist := math.MaxFloat64
	found := false

	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			if mask.Cells[y*mask.Width+x] {
				continue
			}
			pos := vec.Vec2{X: x, Y: y}
			if dist := pos.DistanceTo(center); dist < bestDist {
				best = pos
				bestDist = dist
				found = true
			}
		}
	}
	return best, found
}

// clampInt зажимает значение в [lo, hi]
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
