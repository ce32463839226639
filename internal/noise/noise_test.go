package noise

import "testing"

func TestFieldDeterminism(t *testing.T) {
	a := NewField(42, OffsetZone, 60, 2, 0.5, 2.0)
	b := NewField(42, OffsetZone, 60, 2, 0.5, 2.0)

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			va := a.Sample(float64(x), float64(y))
			vb := b.Sample(float64(x), float64(y))
			if va != vb {
				t.Fatalf("Поля с одним сидом разошлись в (%d,%d): %v != %v", x, y, va, vb)
			}
		}
	}
}

func TestFieldRange(t *testing.T) {
	field := NewField(7, OffsetDetail, 8, 3, 0.5, 2.0)

	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			v := field.Sample(float64(x)*0.7, float64(y)*1.3)
			if v < 0 || v > 1 {
				t.Fatalf("Значение шума вне [0,1]: %v в (%d,%d)", v, x, y)
			}
		}
	}
}

func TestNamedFieldsIndependent(t *testing.T) {
	zone := NewField(42, OffsetZone, 60, 2, 0.5, 2.0)
	detail := NewField(42, OffsetDetail, 60, 2, 0.5, 2.0)

	same := true
	for i := 0; i < 16 && same; i++ {
		if zone.Sample(float64(i), float64(i)) != detail.Sample(float64(i), float64(i)) {
			same = false
		}
	}
	if same {
		t.Error("Поля с разными смещениями сида дали одинаковую картину")
	}
}

func TestSingleOctaveFallback(t *testing.T) {
	// octaves < 1 не должен ломать поле
	field := NewField(1, OffsetWallTop, 10, 0, 0.5, 2.0)
	v := field.Sample(3, 4)
	if v < 0 || v > 1 {
		t.Errorf("Значение вне [0,1]: %v", v)
	}
}
