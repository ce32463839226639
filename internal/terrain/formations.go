package terrain

import (
	"math"
	"math/rand"

	"github.com/bsmit104/Reef/internal/config"
	"github.com/bsmit104/Reef/internal/vec"
)

// ShapeKind — вид скальной формации
type ShapeKind int

const (
	ShapeRound ShapeKind = iota
	ShapeHourglass
	ShapeCanyon
	ShapeChunky
	ShapeBoulders
)

// String возвращает строковое представление вида формации
func (k ShapeKind) String() string {
	switch k {
	case ShapeRound:
		return "round"
	case ShapeHourglass:
		return "hourglass"
	case ShapeCanyon:
		return "canyon"
	case ShapeChunky:
		return "chunky"
	case ShapeBoulders:
		return "boulders"
	default:
		return "unknown"
	}
}

// Placement — транзитная запись принятого размещения. Используется
// только для проверки минимальной дистанции и отбрасывается после
// сборки сетки.
type Placement struct {
	Center vec.Vec2
	Radius float64
	Kind   ShapeKind
}

// Mask — булева маска занятости ячеек. Запись зажимается внутренним
// отступом в одну ячейку, чтобы формации не липли к краю сетки.
type Mask struct {
	Width  int
	Height int
	Cells  []bool
}

// NewMask создает пустую маску
func NewMask(width, height int) *Mask {
	return &Mask{
		Width:  width,
		Height: height,
		Cells:  make([]bool, width*height),
	}
}

// At возвращает значение маски; вне сетки — false
func (m *Mask) At(x, y int) bool {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return false
	}
	return m.Cells[y*m.Width+x]
}

// Set помечает ячейку занятой с учетом внутреннего отступа
func (m *Mask) Set(x, y int) {
	if x < 1 || x >= m.Width-1 || y < 1 || y >= m.Height-1 {
		return
	}
	m.Cells[y*m.Width+x] = true
}

// Clear освобождает ячейку (используется стратегией коридоров)
func (m *Mask) Clear(x, y int) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return
	}
	m.Cells[y*m.Width+x] = false
}

// Count возвращает число занятых ячеек
func (m *Mask) Count() int {
	n := 0
	for _, c := range m.Cells {
		if c {
			n++
		}
	}
	return n
}

// Множитель попыток: размещение гарантированно завершается, даже если
// дистанционное ограничение делает цель недостижимой.
const placementAttemptFactor = 12

// Доля радиуса, в пределах которой дрожит кромка круглой формации
const roundEdgeJitter = 0.3

// PlaceMesas размещает до fcfg.Count непересекающихся формаций методом
// отбраковки: случайный центр внутри безопасного отступа отклоняется,
// если он ближе MinSpacing к уже принятому. Недобор — не ошибка:
// после Count успехов или 12×Count попыток размещение останавливается.
func PlaceMesas(fcfg config.FormationsConfig, perimeterThickness float64, rng *rand.Rand, width, height int) (*Mask, []Placement) {
	mask := NewMask(width, height)
	placements := make([]Placement, 0, fcfg.Count)

	margin := int(math.Ceil(perimeterThickness + fcfg.RadiusMax))
	spanX := width - 2*margin
	spanY := height - 2*margin
	if spanX <= 0 || spanY <= 0 {
		return mask, placements
	}

	maxAttempts := fcfg.Count * placementAttemptFactor
	for attempt := 0; attempt < maxAttempts && len(placements) < fcfg.Count; attempt++ {
		center := vec.Vec2{
			X: margin + rng.Intn(spanX),
			Y: margin + rng.Intn(spanY),
		}

		if tooClose(center, placements, fcfg.MinSpacing) {
			continue
		}

		// Радиус в [RadiusMin, RadiusMax)
		radius := fcfg.RadiusMin + rng.Float64()*(fcfg.RadiusMax-fcfg.RadiusMin)
		kind := rollShapeKind(fcfg.Weights, rng)

		paintShape(mask, center, radius, kind, rng)
		placements = append(placements, Placement{Center: center, Radius: radius, Kind: kind})
	}

	return mask, placements
}

// tooClose проверяет дистанционное ограничение против принятых центров
func tooClose(center vec.Vec2, placed []Placement, minSpacing float64) bool {
	for i := range placed {
		if center.DistanceTo(placed[i].Center) < minSpacing {
			return true
		}
	}
	return false
}

// rollShapeKind выбирает вид формации кумулятивным броском по весам.
// Если веса не добирают до 1.0, остаток достается последнему виду —
// бросок никогда не оставляет формацию без вида.
func rollShapeKind(w config.ShapeWeights, rng *rand.Rand) ShapeKind {
	roll := rng.Float64()
	cumulative := 0.0

	ordered := []struct {
		weight float64
		kind   ShapeKind
	}{
		{w.Round, ShapeRound},
		{w.Hourglass, ShapeHourglass},
		{w.Canyon, ShapeCanyon},
		{w.Chunky, ShapeChunky},
		{w.Boulders, ShapeBoulders},
	}

	for _, entry := range ordered {
		cumulative += entry.weight
		if roll < cumulative {
			return entry.kind
		}
	}
	return ShapeBoulders
}

// paintShape закрашивает ячейки формации выбранного вида
func paintShape(mask *Mask, center vec.Vec2, radius float64, kind ShapeKind, rng *rand.Rand) {
	switch kind {
	case ShapeRound:
		paintRound(mask, center, radius, roundEdgeJitter*radius, rng)
	case ShapeHourglass:
		paintHourglass(mask, center, radius)
	case ShapeCanyon:
		paintCanyon(mask, center, radius, rng)
	case ShapeChunky:
		paintChunky(mask, center, radius, rng)
	case ShapeBoulders:
		paintBoulders(mask, center, radius, rng)
	}
}

// paintRound закрашивает неровный диск: поячеечный шум кромки берется
// независимо в [-jitter, +jitter]
func paintRound(mask *Mask, center vec.Vec2, radius, jitter float64, rng *rand.Rand) {
	reach := int(math.Ceil(radius + jitter))
	for dy := -reach; dy <= reach; dy++ {
		for dx := -reach; dx <= reach; dx++ {
			edge := radius
			if jitter > 0 {
				edge += (rng.Float64()*2 - 1) * jitter
			}
			dist := math.Sqrt(float64(dx*dx + dy*dy))
			if dist <= edge {
				mask.Set(center.X+dx, center.Y+dy)
			}
		}
	}
}

// paintHourglass закрашивает две круглые доли выше и ниже якоря,
// соединенные вертикальной талией, сужающейся к середине —
// силуэт восьмерки.
func paintHourglass(mask *Mask, center vec.Vec2, radius float64) {
	lobeOffset := int(math.Round(radius / 2))
	top := vec.Vec2{X: center.X, Y: center.Y - lobeOffset}
	bottom := vec.Vec2{X: center.X, Y: center.Y + lobeOffset}
	paintDisc(mask, top, radius)
	paintDisc(mask, bottom, radius)

	// Талия между центрами долей
	waistHalf := radius / 3
	for y := top.Y; y <= bottom.Y; y++ {
		t := 0.0
		if bottom.Y != top.Y {
			t = float64(y-top.Y) / float64(bottom.Y-top.Y)
		}
		// Самое узкое место — в середине талии
		halfWidth := waistHalf * (1 - 0.5*math.Sin(math.Pi*t))
		for dx := -int(math.Ceil(halfWidth)); dx <= int(math.Ceil(halfWidth)); dx++ {
			if math.Abs(float64(dx)) <= halfWidth {
				mask.Set(center.X+dx, y)
			}
		}
	}
}

// paintCanyon закрашивает длинную полосу (горизонтальную или
// вертикальную) с центральным проходом, чья осевая линия синусоидально
// гуляет вдоль полосы — стенной коридор с открытым каналом.
func paintCanyon(mask *Mask, center vec.Vec2, radius float64, rng *rand.Rand) {
	extra := rng.Float64() * radius
	halfLength := int(math.Round(2*radius + extra))
	wallHalf := radius / 3
	gapHalf := radius / 4
	// Амплитуда меандра удерживает проход внутри полосы
	meanderAmp := wallHalf - gapHalf

	horizontal := rng.Intn(2) == 0
	for i := -halfLength; i <= halfLength; i++ {
		meander := meanderAmp * math.Sin(float64(i)/radius)
		reach := int(math.Ceil(wallHalf))
		for j := -reach; j <= reach; j++ {
			if math.Abs(float64(j)) > wallHalf {
				continue
			}
			// Ячейки внутри прохода не закрашиваются
			if math.Abs(float64(j)-meander) < gapHalf {
				continue
			}
			if horizontal {
				mask.Set(center.X+i, center.Y+j)
			} else {
				mask.Set(center.X+j, center.Y+i)
			}
		}
	}
}

// paintChunky закрашивает 3–6 перекрывающихся прямоугольников внутри
// ограничивающего радиуса — угловатый кластер.
func paintChunky(mask *Mask, center vec.Vec2, radius float64, rng *rand.Rand) {
	count := 3 + rng.Intn(4)
	for i := 0; i < count; i++ {
		offX := int(math.Round((rng.Float64()*2 - 1) * radius / 2))
		offY := int(math.Round((rng.Float64()*2 - 1) * radius / 2))
		halfW := 1 + rng.Intn(int(math.Max(radius/2, 1))+1)
		halfH := 1 + rng.Intn(int(math.Max(radius/2, 1))+1)

		for dy := -halfH; dy <= halfH; dy++ {
			for dx := -halfW; dx <= halfW; dx++ {
				mask.Set(center.X+offX+dx, center.Y+offY+dy)
			}
		}
	}
}

// paintBoulders закрашивает 3–7 маленьких кругов в пределах
// ограничивающего радиуса — рассыпанные обломки.
func paintBoulders(mask *Mask, center vec.Vec2, radius float64, rng *rand.Rand) {
	count := 3 + rng.Intn(5)
	for i := 0; i < count; i++ {
		offX := int(math.Round((rng.Float64()*2 - 1) * radius))
		offY := int(math.Round((rng.Float64()*2 - 1) * radius))
		boulderRadius := rng.Float64() * radius / 2
		paintDisc(mask, vec.Vec2{X: center.X + offX, Y: center.Y + offY}, boulderRadius)
	}
}

// paintDisc закрашивает ровный диск радиуса radius
func paintDisc(mask *Mask, center vec.Vec2, radius float64) {
	reach := int(math.Ceil(radius))
	for dy := -reach; dy <= reach; dy++ {
		for dx := -reach; dx <= reach; dx++ {
			if float64(dx*dx+dy*dy) <= radius*radius {
				mask.Set(center.X+dx, center.Y+dy)
			}
		}
	}
}
