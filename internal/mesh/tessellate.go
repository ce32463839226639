package mesh

import (
	"math"

	"github.com/bsmit104/Reef/internal/terrain"
	"github.com/bsmit104/Reef/internal/vec"
)

// ChunkMesh — один квадратный чанк треугольной сетки: позиции вершин,
// UV (равны координатам сетки) и 4 независимых списка индексов
// треугольников (стены, мелководье, средняя и глубокая зоны). Материал
// на сабмеш назначает рендерер — внешний потребитель.
type ChunkMesh struct {
	Coords    vec.Vec2        `json:"coords"`
	Vertices  []vec.Vec3Float `json:"vertices"`
	UVs       []vec.Vec2Float `json:"uvs"`
	Submeshes [4][]int        `json:"submeshes"`
}

// Tessellate разбивает сетку на чанки chunkSize×chunkSize и выдает по
// квадре (двум треугольникам) на ячейку. Диагональ квадры выбирается
// по меньшему перепаду высот: |h00-h11| против |h10-h01| — меньше
// видимой огранки на склонах; при равенстве всегда берется первая
// диагональ. Квадра уходит в сабмеш стен, если стенной является любая
// из четырех угловых вершин, иначе — в сабмеш зоны своей ячейки.
func Tessellate(grid *terrain.Grid, vg *VertexGrid, chunkSize int, cellSize float64) []ChunkMesh {
	chunksX := (grid.Width + chunkSize - 1) / chunkSize
	chunksY := (grid.Height + chunkSize - 1) / chunkSize

	meshes := make([]ChunkMesh, 0, chunksX*chunksY)
	for cy := 0; cy < chunksY; cy++ {
		for cx := 0; cx < chunksX; cx++ {
			meshes = append(meshes, tessellateChunk(grid, vg, vec.Vec2{X: cx, Y: cy}, chunkSize, cellSize))
		}
	}
	return meshes
}

// tessellateChunk собирает один чанк
func tessellateChunk(grid *terrain.Grid, vg *VertexGrid, coords vec.Vec2, chunkSize int, cellSize float64) ChunkMesh {
	startX := coords.X * chunkSize
	startY := coords.Y * chunkSize
	endX := startX + chunkSize
	endY := startY + chunkSize
	if endX > grid.Width {
		endX = grid.Width
	}
	if endY > grid.Height {
		endY = grid.Height
	}

	cellsX := endX - startX
	cellsY := endY - startY
	vertsX := cellsX + 1
	vertsY := cellsY + 1

	chunk := ChunkMesh{
		Coords:   coords,
		Vertices: make([]vec.Vec3Float, vertsX*vertsY),
		UVs:      make([]vec.Vec2Float, vertsX*vertsY),
	}

	// Локальная копия вершин чанка; UV — глобальная координата сетки
	for ly := 0; ly < vertsY; ly++ {
		for lx := 0; lx < vertsX; lx++ {
			gx, gy := startX+lx, startY+ly
			v := vg.At(gx, gy)
			localIdx := ly*vertsX + lx
			chunk.Vertices[localIdx] = vec.Vec3Float{
				X: float64(gx) * cellSize,
				Y: v.Height,
				Z: float64(gy) * cellSize,
			}
			chunk.UVs[localIdx] = vec.Vec2Float{X: float64(gx), Y: float64(gy)}
		}
	}

	for y := startY; y < endY; y++ {
		for x := startX; x < endX; x++ {
			lx, ly := x-startX, y-startY

			i00 := ly*vertsX + lx
			i10 := ly*vertsX + lx + 1
			i01 := (ly+1)*vertsX + lx
			i11 := (ly+1)*vertsX + lx + 1

			v00 := vg.At(x, y)
			v10 := vg.At(x+1, y)
			v01 := vg.At(x, y+1)
			v11 := vg.At(x+1, y+1)

			submesh := quadSubmesh(grid, x, y, v00, v10, v01, v11)
			indices := &chunk.Submeshes[submesh]

			if math.Abs(v00.Height-v11.Height) <= math.Abs(v10.Height-v01.Height) {
				// Диагональ (0,0)-(1,1)
				*indices = append(*indices, i00, i11, i10)
				*indices = append(*indices, i00, i01, i11)
			} else {
				// Диагональ (1,0)-(0,1)
				*indices = append(*indices, i00, i01, i10)
				*indices = append(*indices, i10, i01, i11)
			}
		}
	}

	return chunk
}

// quadSubmesh классифицирует квадру: стена при любой стенной угловой
// вершине, иначе зона ячейки
func quadSubmesh(grid *terrain.Grid, x, y int, corners ...Vertex) int {
	for _, c := range corners {
		if c.IsWall {
			return SubmeshWall
		}
	}
	cell, _ := grid.Cell(vec.Vec2{X: x, Y: y})
	return SubmeshForZone(cell.Zone)
}
