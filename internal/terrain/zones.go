package terrain

import (
	"github.com/bsmit104/Reef/internal/config"
	"github.com/bsmit104/Reef/internal/noise"
)

// ZoneField хранит результат классификации: зону и базовую высоту дна
// на ячейку. Зона назначается один раз и дальше не меняется.
type ZoneField struct {
	Width   int
	Height  int
	Zones   []ZoneType
	Heights []float64
}

// ClassifyZones раскладывает широкомасштабный шум по двум восходящим
// порогам: ниже deep_threshold — Deep, ниже mid_threshold — Mid,
// остальное — Shallow. Каждой зоне назначается базовая высота дна.
func ClassifyZones(field *noise.Field, zcfg config.ZonesConfig, width, height int) *ZoneField {
	zf := &ZoneField{
		Width:   width,
		Height:  height,
		Zones:   make([]ZoneType, width*height),
		Heights: make([]float64, width*height),
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			value := field.Sample(float64(x), float64(y))

			var zone ZoneType
			switch {
			case value < zcfg.DeepThreshold:
				zone = ZoneDeep
			case value < zcfg.MidThreshold:
				zone = ZoneMid
			default:
				zone = ZoneShallow
			}

			idx := y*width + x
			zf.Zones[idx] = zone
			zf.Heights[idx] = BaseHeight(zcfg, zone)
		}
	}

	return zf
}

// BaseHeight возвращает сконфигурированную базовую высоту дна для зоны
func BaseHeight(zcfg config.ZonesConfig, zone ZoneType) float64 {
	switch zone {
	case ZoneDeep:
		return zcfg.DeepHeight
	case ZoneMid:
		return zcfg.MidHeight
	default:
		return zcfg.ShallowHeight
	}
}
