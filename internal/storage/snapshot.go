package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/bsmit104/Reef/internal/terrain"
	"github.com/dgraph-io/badger/v3"
	"github.com/klauspost/compress/gzip"
)

// SnapshotStorage — хранилище снапшотов сгенерированных сеток.
// Значения — gzip-сжатый JSON; ключ определяется сидом и размером.
type SnapshotStorage struct {
	db     *badger.DB
	dbPath string
	mutex  sync.RWMutex
}

// GridSnapshot — сохраняемый снимок одной генерации
type GridSnapshot struct {
	Seed        int64         `json:"seed"`
	Checksum    uint64        `json:"checksum"`
	GeneratedAt time.Time     `json:"generated_at"`
	Grid        *terrain.Grid `json:"grid"`
}

// NewSnapshotStorage открывает BadgerDB в каталоге dataPath/snapshots
func NewSnapshotStorage(dataPath string) (*SnapshotStorage, error) {
	dbPath := filepath.Join(dataPath, "snapshots")
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	return &SnapshotStorage{db: db, dbPath: dbPath}, nil
}

// Close закрывает базу
func (s *SnapshotStorage) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.db.Close()
}

// snapshotKey формирует ключ снапшота
func snapshotKey(seed int64, width, height int) []byte {
	return []byte(fmt.Sprintf("grid:%d:%dx%d", seed, width, height))
}

// Save сохраняет снимок сетки
func (s *SnapshotStorage) Save(snapshot *GridSnapshot) error {
	if snapshot == nil || snapshot.Grid == nil {
		return fmt.Errorf("пустой снапшот не сохраняется")
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	payload, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	key := snapshotKey(snapshot.Seed, snapshot.Grid.Width, snapshot.Grid.Height)
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, payload)
	})
	if err != nil {
		return fmt.Errorf("ошибка записи снапшота: %w", err)
	}
	return nil
}

// Load читает снимок сетки и проверяет целостность: свертка
// загруженной сетки обязана совпасть с записанной в снапшоте.
func (s *SnapshotStorage) Load(seed int64, width, height int) (*GridSnapshot, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var payload []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotKey(seed, width, height))
		if err != nil {
			return err
		}
		payload, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, fmt.Errorf("снапшот seed=%d %dx%d не найден: %w", seed, width, height, err)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения снапшота: %w", err)
	}

	snapshot, err := decodeSnapshot(payload)
	if err != nil {
		return nil, err
	}

	if actual := snapshot.Grid.Checksum(); actual != snapshot.Checksum {
		return nil, fmt.Errorf("снапшот seed=%d поврежден: checksum %016x, ожидалось %016x",
			seed, actual, snapshot.Checksum)
	}
	return snapshot, nil
}

// encodeSnapshot сериализует снимок в gzip(JSON)
func encodeSnapshot(snapshot *GridSnapshot) ([]byte, error) {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации снапшота: %w", err)
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(raw); err != nil {
		return nil, fmt.Errorf("ошибка сжатия снапшота: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("ошибка сжатия снапшота: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeSnapshot распаковывает и десериализует снимок
func decodeSnapshot(payload []byte) (*GridSnapshot, error) {
	gz, err := gzip.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("ошибка распаковки снапшота: %w", err)
	}
	defer gz.Close()

	raw, err := io.ReadAll(gz)
	if err != nil {
		return nil, fmt.Errorf("ошибка распаковки снапшота: %w", err)
	}

	var snapshot GridSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("ошибка десериализации снапшота: %w", err)
	}
	return &snapshot, nil
}
