package terrain

import (
	"github.com/bsmit104/Reef/internal/noise"
)

// BuildPerimeter вычисляет маску постоянно сплошной границы.
// Ячейка на расстоянии d от ближайшего края — граница, если
// d < thickness + (noise-0.5)·2·amount, где шум берется в позиции
// ячейки. Получается органично неровная кайма, а не прямая рамка.
func BuildPerimeter(field *noise.Field, thickness, amount float64, width, height int) *Mask {
	mask := NewMask(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			d := edgeDistance(x, y, width, height)

			sample := field.Sample(float64(x), float64(y))
			limit := thickness + (sample-0.5)*2*amount

			if float64(d) < limit {
				// Напрямую в Cells: внутренний отступ Set здесь не нужен,
				// граница обязана накрывать крайнее кольцо
				mask.Cells[y*width+x] = true
			}
		}
	}

	return mask
}

// edgeDistance возвращает наименьшее из расстояний до четырех краев
func edgeDistance(x, y, width, height int) int {
	d := x
	if y < d {
		d = y
	}
	if right := width - 1 - x; right < d {
		d = right
	}
	if bottom := height - 1 - y; bottom < d {
		d = bottom
	}
	return d
}
