package storage

import (
	"testing"
	"time"

	"github.com/bsmit104/Reef/internal/terrain"
)

func testGrid(t *testing.T) *terrain.Grid {
	t.Helper()
	grid := terrain.NewGrid(4, 4)
	for i := range grid.Cells {
		grid.Cells[i].Zone = terrain.ZoneMid
		grid.Cells[i].FloorHeight = -6
	}
	grid.Cells[5].IsWall = true
	grid.Cells[5].WallHeight = 4
	return grid
}

func TestSnapshotRoundtrip(t *testing.T) {
	store, err := NewSnapshotStorage(t.TempDir())
	if err != nil {
		t.Fatalf("Не удалось открыть хранилище: %v", err)
	}
	defer store.Close()

	grid := testGrid(t)
	snapshot := &GridSnapshot{
		Seed:        42,
		Checksum:    grid.Checksum(),
		GeneratedAt: time.Now(),
		Grid:        grid,
	}

	if err := store.Save(snapshot); err != nil {
		t.Fatalf("Сохранение упало: %v", err)
	}

	loaded, err := store.Load(42, 4, 4)
	if err != nil {
		t.Fatalf("Загрузка упала: %v", err)
	}
	if loaded.Seed != 42 {
		t.Errorf("Сид не совпал: %d", loaded.Seed)
	}
	if loaded.Checksum != snapshot.Checksum {
		t.Errorf("Свертка не совпала: %016x != %016x", loaded.Checksum, snapshot.Checksum)
	}
	if len(loaded.Grid.Cells) != len(grid.Cells) {
		t.Fatal("Размер сетки не совпал")
	}
	if !loaded.Grid.Cells[5].IsWall || loaded.Grid.Cells[5].WallHeight != 4 {
		t.Errorf("Ячейка стены не пережила роундтрип: %+v", loaded.Grid.Cells[5])
	}
}

func TestSnapshotNotFound(t *testing.T) {
	store, err := NewSnapshotStorage(t.TempDir())
	if err != nil {
		t.Fatalf("Не удалось открыть хранилище: %v", err)
	}
	defer store.Close()

	if _, err := store.Load(99, 4, 4); err == nil {
		t.Error("Загрузка несуществующего снапшота обязана вернуть ошибку")
	}
}

func TestSnapshotRejectsCorruptedChecksum(t *testing.T) {
	store, err := NewSnapshotStorage(t.TempDir())
	if err != nil {
		t.Fatalf("Не удалось открыть хранилище: %v", err)
	}
	defer store.Close()

	grid := testGrid(t)
	snapshot := &GridSnapshot{
		Seed:     7,
		Checksum: grid.Checksum() + 1, // Заведомо неверная свертка
		Grid:     grid,
	}
	if err := store.Save(snapshot); err != nil {
		t.Fatalf("Сохранение упало: %v", err)
	}

	if _, err := store.Load(7, 4, 4); err == nil {
		t.Error("Поврежденный снапшот обязан быть отвергнут при загрузке")
	}
}

func TestSnapshotRejectsNil(t *testing.T) {
	store, err := NewSnapshotStorage(t.TempDir())
	if err != nil {
		t.Fatalf("Не удалось открыть хранилище: %v", err)
	}
	defer store.Close()

	if err := store.Save(nil); err == nil {
		t.Error("Пустой снапшот обязан быть ошибкой")
	}
	if err := store.Save(&GridSnapshot{Seed: 1}); err == nil {
		t.Error("Снапшот без сетки обязан быть ошибкой")
	}
}
