package terrain

import "math"

// Вес центральной ячейки и штраф соседа из чужой зоны при сглаживании
const (
	smoothSelfWeight = 2.0
	crossZonePenalty = 0.25
	smoothingRadius  = 2
)

// SmoothHeights выполняет passes проходов дистанционно-взвешенного
// сглаживания высот дна по окрестности 5×5. Сосед входит с весом
// 1/расстояние; при zonePenalized сосед из другой зоны дополнительно
// умножается на crossZonePenalty — перепады между зонами остаются
// резкими, рельеф внутри зоны выравнивается.
//
// Каждый проход материализует новый массив целиком и только потом
// становится входом следующего — никакого чтения из частично
// записанного буфера.
func SmoothHeights(heights []float64, zones []ZoneType, width, height, passes int, zonePenalized bool) []float64 {
	current := heights

	for pass := 0; pass < passes; pass++ {
		next := make([]float64, len(current))

		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				idx := y*width + x
				zone := zones[idx]

				sum := current[idx] * smoothSelfWeight
				weightTotal := smoothSelfWeight

				for dy := -smoothingRadius; dy <= smoothingRadius; dy++ {
					for dx := -smoothingRadius; dx <= smoothingRadius; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						nx, ny := x+dx, y+dy
						if nx < 0 || nx >= width || ny < 0 || ny >= height {
							continue
						}

						nIdx := ny*width + nx
						weight := 1.0 / math.Sqrt(float64(dx*dx+dy*dy))
						if zonePenalized && zones[nIdx] != zone {
							weight *= crossZonePenalty
						}

						sum += current[nIdx] * weight
						weightTotal += weight
					}
				}

				next[idx] = sum / weightTotal
			}
		}

		current = next
	}

	return current
}
