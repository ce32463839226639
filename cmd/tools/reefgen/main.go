package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bsmit104/Reef/internal/config"
	"github.com/bsmit104/Reef/internal/storage"
	"github.com/bsmit104/Reef/internal/world"
)

func main() {
	var (
		configPath = flag.String("config", "", "путь к YAML конфигурации")
		seed       = flag.Int64("seed", 0, "переопределить сид генерации (0 — из конфигурации)")
		command    = flag.String("cmd", "stats", "Команда: stats, snapshot, verify")
		dataPath   = flag.String("data", "", "каталог снапшотов (по умолчанию из конфигурации)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка конфигурации: %v", err)
	}
	if *seed != 0 {
		cfg.World.Seed = *seed
	}
	if *dataPath != "" {
		cfg.Storage.Path = *dataPath
	}

	switch *command {
	case "stats":
		if err := runStats(cfg); err != nil {
			log.Fatalf("❌ %v", err)
		}
	case "snapshot":
		if err := runSnapshot(cfg); err != nil {
			log.Fatalf("❌ %v", err)
		}
	case "verify":
		if err := runVerify(cfg); err != nil {
			log.Fatalf("❌ %v", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "Неизвестная команда: %s\n", *command)
		flag.Usage()
		os.Exit(1)
	}
}

// runStats генерирует мир и печатает сводку
func runStats(cfg *config.Config) error {
	result, err := world.Generate(cfg)
	if err != nil {
		return err
	}

	walls := 0
	zoneCounts := [3]int{}
	for i := range result.Grid.Cells {
		cell := &result.Grid.Cells[i]
		if cell.IsWall {
			walls++
		}
		zoneCounts[cell.Zone]++
	}

	fmt.Printf("Сетка:        %dx%d (сид %d)\n", result.Grid.Width, result.Grid.Height, result.Seed)
	fmt.Printf("Checksum:     %016x\n", result.Checksum)
	fmt.Printf("Стены:        %d из %d ячеек\n", walls, len(result.Grid.Cells))
	fmt.Printf("Зоны:         shallow=%d mid=%d deep=%d\n", zoneCounts[0], zoneCounts[1], zoneCounts[2])
	fmt.Printf("Формации:     %d\n", result.FormationCount)
	fmt.Printf("Чанки:        %d\n", len(result.Chunks))
	fmt.Printf("Длительность: %s\n", result.Duration)
	return nil
}

// runSnapshot генерирует мир и сохраняет снапшот сетки
func runSnapshot(cfg *config.Config) error {
	result, err := world.Generate(cfg)
	if err != nil {
		return err
	}

	snapshots, err := storage.NewSnapshotStorage(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer snapshots.Close()

	snapshot := &storage.GridSnapshot{
		Seed:        result.Seed,
		Checksum:    result.Checksum,
		GeneratedAt: result.GeneratedAt,
		Grid:        result.Grid,
	}
	if err := snapshots.Save(snapshot); err != nil {
		return err
	}

	fmt.Printf("💾 Снапшот сохранен: seed=%d %dx%d checksum=%016x\n",
		result.Seed, result.Grid.Width, result.Grid.Height, result.Checksum)
	return nil
}

// runVerify перегенерирует мир и сверяет его со снапшотом
func runVerify(cfg *config.Config) error {
	snapshots, err := storage.NewSnapshotStorage(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer snapshots.Close()

	snapshot, err := snapshots.Load(cfg.World.Seed, cfg.World.Width, cfg.World.Height)
	if err != nil {
		return err
	}

	result, err := world.Generate(cfg)
	if err != nil {
		return err
	}

	if result.Checksum != snapshot.Checksum {
		return fmt.Errorf("расхождение: снапшот %016x, регенерация %016x", snapshot.Checksum, result.Checksum)
	}

	fmt.Printf("✅ Детерминизм подтвержден: checksum=%016x\n", result.Checksum)
	return nil
}
