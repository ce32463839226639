package mesh

import (
	"github.com/bsmit104/Reef/internal/config"
	"github.com/bsmit104/Reef/internal/noise"
	"github.com/bsmit104/Reef/internal/terrain"
)

// Индексы сабмешей: 0 — стены, 1..3 — пол по зонам
const (
	SubmeshWall = iota
	SubmeshShallow
	SubmeshMid
	SubmeshDeep
)

// SubmeshForZone возвращает индекс сабмеша пола для зоны
func SubmeshForZone(zone terrain.ZoneType) int {
	return 1 + int(zone)
}

// Vertex — вершина дуальной сетки. Вершина считается стенной, если
// стеной является хотя бы одна из до четырех примыкающих ячеек:
// материал стены намеренно «растекается» до полной границы контакта,
// чтобы под навесами скал не проступала текстура пола.
type Vertex struct {
	Height  float64 `json:"height"`
	IsWall  bool    `json:"is_wall"`
	Submesh int     `json:"submesh"`
}

// VertexGrid — дуальная сетка размером (width+1)×(height+1) относительно
// сетки ячеек. Вершина (vx, vy) лежит на стыке ячеек
// (vx-1, vy-1)…(vx, vy).
type VertexGrid struct {
	Width    int      `json:"width"`  // вершин по X (ячеек + 1)
	Height   int      `json:"height"` // вершин по Y (ячеек + 1)
	Vertices []Vertex `json:"vertices"`
}

// At возвращает вершину; паника за пределами — ошибка вызывающего
func (vg *VertexGrid) At(x, y int) Vertex {
	return vg.Vertices[y*vg.Width+x]
}

// Веса окрестности 3×3 при сглаживании вершин
const (
	vertexCenterWeight   = 4.0
	vertexCardinalWeight = 1.0
	vertexDiagonalWeight = 0.5
)

// ResolveVertices строит дуальную сетку вершин из сетки ячеек.
// Порядок проходов несет смысл: сначала начальное разрешение высот,
// затем сглаживание стен, затем сглаживание пола, и только после —
// зажим, убирающий нисходящие шипы.
func ResolveVertices(grid *terrain.Grid, detail *noise.Field, mcfg config.MeshConfig) *VertexGrid {
	vg := &VertexGrid{
		Width:    grid.Width + 1,
		Height:   grid.Height + 1,
		Vertices: make([]Vertex, (grid.Width+1)*(grid.Height+1)),
	}

	resolveInitial(vg, grid, detail, mcfg.WallBoost)
	smoothWallVertices(vg, mcfg.WallSmoothPasses)
	smoothFloorVertices(vg, mcfg.FloorSmoothPasses)
	clampFloorSpikes(vg)

	return vg
}

// resolveInitial назначает каждой вершине высоту и классификацию по
// до четырем примыкающим ячейкам. Стенная вершина получает максимум
// (дно+стена) по стенным ячейкам плюс мелкий шум и фиксированный
// подъем; вершина пола — среднее дно нестенных ячеек (0, если таких
// нет — вырожденный случай внешней кромки, внутри сетки его закрывает
// периметр).
func resolveInitial(vg *VertexGrid, grid *terrain.Grid, detail *noise.Field, wallBoost float64) {
	for vy := 0; vy < vg.Height; vy++ {
		for vx := 0; vx < vg.Width; vx++ {
			var (
				isWall     bool
				wallMax    float64
				floorSum   float64
				floorCount int
				floorZone  terrain.ZoneType
				haveZone   bool
			)

			for dy := -1; dy <= 0; dy++ {
				for dx := -1; dx <= 0; dx++ {
					cx, cy := vx+dx, vy+dy
					if cx < 0 || cx >= grid.Width || cy < 0 || cy >= grid.Height {
						continue
					}
					cell := grid.Cells[cy*grid.Width+cx]

					if cell.IsWall {
						top := cell.FloorHeight + cell.WallHeight
						if !isWall || top > wallMax {
							wallMax = top
						}
						isWall = true
					} else {
						floorSum += cell.FloorHeight
						floorCount++
						if !haveZone {
							floorZone = cell.Zone
							haveZone = true
						}
					}
				}
			}

			v := Vertex{}
			if isWall {
				v.IsWall = true
				v.Submesh = SubmeshWall
				v.Height = wallMax + detail.Sample(float64(vx), float64(vy)) + wallBoost
			} else {
				if haveZone {
					v.Submesh = SubmeshForZone(floorZone)
				} else {
					v.Submesh = SubmeshShallow
				}
				if floorCount > 0 {
					v.Height = floorSum / float64(floorCount)
				}
			}

			vg.Vertices[vy*vg.Width+vx] = v
		}
	}
}

// weightFor возвращает вес соседа окрестности 3×3
func weightFor(dx, dy int) float64 {
	switch {
	case dx == 0 && dy == 0:
		return vertexCenterWeight
	case dx == 0 || dy == 0:
		return vertexCardinalWeight
	default:
		return vertexDiagonalWeight
	}
}

// smoothWallVertices сглаживает только стенные вершины взвешенным
// средним 3×3 (центр 4, кардинальные 1, диагональные 0.5); соседи за
// пределами сетки пропускаются. Скругляет верхушки формаций до
// валунообразных форм. Вершины пола проходят без изменений.
func smoothWallVertices(vg *VertexGrid, passes int) {
	for pass := 0; pass < passes; pass++ {
		next := make([]float64, len(vg.Vertices))

		for vy := 0; vy < vg.Height; vy++ {
			for vx := 0; vx < vg.Width; vx++ {
				idx := vy*vg.Width + vx
				if !vg.Vertices[idx].IsWall {
					next[idx] = vg.Vertices[idx].Height
					continue
				}

				sum := 0.0
				weightTotal := 0.0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := vx+dx, vy+dy
						if nx < 0 || nx >= vg.Width || ny < 0 || ny >= vg.Height {
							continue
						}
						w := weightFor(dx, dy)
						sum += vg.Vertices[ny*vg.Width+nx].Height * w
						weightTotal += w
					}
				}
				next[idx] = sum / weightTotal
			}
		}

		applyHeights(vg, next)
	}
}

// smoothFloorVertices сглаживает только вершины пола тем же взвешенным
// средним 3×3, но стенные соседи исключаются целиком — из суммы и из
// знаменателя. Высота стены не подтягивает соседний пол вверх, и
// усреднение пола никогда не читает высоту стены.
func smoothFloorVertices(vg *VertexGrid, passes int) {
	for pass := 0; pass < passes; pass++ {
		next := make([]float64, len(vg.Vertices))

		for vy := 0; vy < vg.Height; vy++ {
			for vx := 0; vx < vg.Width; vx++ {
				idx := vy*vg.Width + vx
				if vg.Vertices[idx].IsWall {
					next[idx] = vg.Vertices[idx].Height
					continue
				}

				sum := 0.0
				weightTotal := 0.0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := vx+dx, vy+dy
						if nx < 0 || nx >= vg.Width || ny < 0 || ny >= vg.Height {
							continue
						}
						neighbor := vg.Vertices[ny*vg.Width+nx]
						if neighbor.IsWall {
							continue
						}
						w := weightFor(dx, dy)
						sum += neighbor.Height * w
						weightTotal += w
					}
				}
				if weightTotal > 0 {
					next[idx] = sum / weightTotal
				} else {
					next[idx] = vg.Vertices[idx].Height
				}
			}
		}

		applyHeights(vg, next)
	}
}

// clampFloorSpikes поднимает каждую вершину пола как минимум до
// минимальной высоты среди ее нестенных соседей 3×3:
// height = max(height, minСоседей). После наивного усреднения возле
// высоких стен это убирает нисходящие «шипы». Вершина без нестенных
// соседей пропускается.
func clampFloorSpikes(vg *VertexGrid) {
	next := make([]float64, len(vg.Vertices))

	for vy := 0; vy < vg.Height; vy++ {
		for vx := 0; vx < vg.Width; vx++ {
			idx := vy*vg.Width + vx
			next[idx] = vg.Vertices[idx].Height
			if vg.Vertices[idx].IsWall {
				continue
			}

			minNeighbor := 0.0
			found := false
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := vx+dx, vy+dy
					if nx < 0 || nx >= vg.Width || ny < 0 || ny >= vg.Height {
						continue
					}
					neighbor := vg.Vertices[ny*vg.Width+nx]
					if neighbor.IsWall {
						continue
					}
					if !found || neighbor.Height < minNeighbor {
						minNeighbor = neighbor.Height
						found = true
					}
				}
			}

			if found && next[idx] < minNeighbor {
				next[idx] = minNeighbor
			}
		}
	}

	applyHeights(vg, next)
}

// applyHeights переносит материализованный срез высот в вершины
func applyHeights(vg *VertexGrid, heights []float64) {
	for i := range vg.Vertices {
		vg.Vertices[i].Height = heights[i]
	}
}
