package terrain

import (
	"math"
	"testing"
)

func TestSmoothHeightsUniformFieldInvariant(t *testing.T) {
	const w, h = 16, 16
	heights := make([]float64, w*h)
	zones := make([]ZoneType, w*h)
	for i := range heights {
		heights[i] = -6
		zones[i] = ZoneMid
	}

	smoothed := SmoothHeights(heights, zones, w, h, 3, true)
	for i, v := range smoothed {
		if math.Abs(v-(-6)) > 1e-9 {
			t.Fatalf("Однородное поле изменилось в ячейке %d: %v", i, v)
		}
	}
}

func TestSmoothHeightsZeroPassesIsIdentity(t *testing.T) {
	heights := []float64{1, 2, 3, 4}
	zones := []ZoneType{ZoneMid, ZoneMid, ZoneMid, ZoneMid}

	smoothed := SmoothHeights(heights, zones, 2, 2, 0, false)
	for i := range heights {
		if smoothed[i] != heights[i] {
			t.Fatalf("Ноль проходов изменил высоты: %v", smoothed)
		}
	}
}

func TestSmoothHeightsDoesNotMutateInput(t *testing.T) {
	const w, h = 8, 8
	heights := make([]float64, w*h)
	zones := make([]ZoneType, w*h)
	heights[3*w+3] = 10

	SmoothHeights(heights, zones, w, h, 2, false)
	if heights[3*w+3] != 10 {
		t.Error("Сглаживание изменило входной массив")
	}
}

func TestSmoothHeightsPullsTowardNeighbors(t *testing.T) {
	// Одиночный пик обязан опуститься, соседи — подняться
	const w, h = 9, 9
	heights := make([]float64, w*h)
	zones := make([]ZoneType, w*h)
	heights[4*w+4] = 9

	smoothed := SmoothHeights(heights, zones, w, h, 1, false)
	if smoothed[4*w+4] >= 9 {
		t.Errorf("Пик не опустился: %v", smoothed[4*w+4])
	}
	if smoothed[4*w+5] <= 0 {
		t.Errorf("Сосед пика не поднялся: %v", smoothed[4*w+5])
	}
}

func TestSmoothHeightsZonePenaltyKeepsDropoffSharper(t *testing.T) {
	// Левая половина: Shallow на -2, правая: Deep на -12.
	// Со штрафом чужой зоны перепад на границе остается резче,
	// чем без него.
	const w, h = 16, 16
	heights := make([]float64, w*h)
	zones := make([]ZoneType, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if x < w/2 {
				heights[idx] = -2
				zones[idx] = ZoneShallow
			} else {
				heights[idx] = -12
				zones[idx] = ZoneDeep
			}
		}
	}

	penalized := SmoothHeights(heights, zones, w, h, 2, true)
	plain := SmoothHeights(heights, zones, w, h, 2, false)

	// Перепад между соседями по обе стороны границы в среднем ряду
	mid := (h / 2) * w
	dropPenalized := math.Abs(penalized[mid+w/2-1] - penalized[mid+w/2])
	dropPlain := math.Abs(plain[mid+w/2-1] - plain[mid+w/2])

	if dropPenalized <= dropPlain {
		t.Errorf("Штраф чужой зоны не сохранил резкость перепада: %v <= %v", dropPenalized, dropPlain)
	}
}
