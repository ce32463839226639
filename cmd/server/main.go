package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/bsmit104/Reef/internal/api"
	"github.com/bsmit104/Reef/internal/config"
	"github.com/bsmit104/Reef/internal/logging"
	"github.com/bsmit104/Reef/internal/storage"
	"github.com/bsmit104/Reef/internal/world"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (или ENV REEF_CONFIG)")
	flag.Parse()

	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("server"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	logging.Info("🪸 Запуск Reef: генератор подводного рельефа с preview API...")

	// === КОНФИГУРАЦИЯ ===
	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("❌ Ошибка конфигурации: %v", err)
		log.Fatalf("❌ Ошибка конфигурации: %v", err)
	}
	logging.Info("📡 Конфигурация: сетка %dx%d, сид %d, стратегия %q, REST :%d",
		cfg.World.Width, cfg.World.Height, cfg.World.Seed, cfg.Formations.Strategy, cfg.Server.GetRESTPort())

	// === ГЕНЕРАЦИЯ ===
	generator := world.NewGenerator(cfg)
	result, err := generator.Regenerate()
	if err != nil {
		logging.Error("❌ Ошибка генерации: %v", err)
		log.Fatalf("❌ Ошибка генерации: %v", err)
	}

	// Снапшот стартовой генерации (не фатально при ошибке)
	snapshots, err := storage.NewSnapshotStorage(cfg.Storage.Path)
	if err != nil {
		logging.Warn("⚠️ Хранилище снапшотов недоступно: %v", err)
	} else {
		defer snapshots.Close()
		snapshot := &storage.GridSnapshot{
			Seed:        result.Seed,
			Checksum:    result.Checksum,
			GeneratedAt: result.GeneratedAt,
			Grid:        result.Grid,
		}
		if err := snapshots.Save(snapshot); err != nil {
			logging.Warn("⚠️ Не удалось сохранить снапшот: %v", err)
		} else {
			logging.Info("💾 Снапшот seed=%d сохранен", result.Seed)
		}
	}

	// === PREVIEW API ===
	restServer := api.NewRestServer(api.Config{
		Port:      ":" + strconv.Itoa(cfg.Server.GetRESTPort()),
		Generator: generator,
	})
	if err := restServer.Start(); err != nil {
		logging.Error("❌ Ошибка запуска preview API: %v", err)
		log.Fatalf("❌ Ошибка запуска preview API: %v", err)
	}

	logging.Info("✅ Reef готов: версия результата %s", result.Version)

	// Ожидаем сигнал завершения
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logging.Info("🛑 Остановка Reef...")
	if err := restServer.Stop(); err != nil {
		logging.Error("Ошибка остановки preview API: %v", err)
	}
}
