package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bsmit104/Reef/internal/logging"
	"github.com/bsmit104/Reef/internal/middleware"
	"github.com/bsmit104/Reef/internal/vec"
	"github.com/bsmit104/Reef/internal/world"
	"github.com/gin-gonic/gin"
)

// RestServer — preview-сервер read-only доступа к опубликованному
// результату генерации. Сетка и меши отдаются как есть: рендеринг,
// материалы и коллизия — забота потребителя.
type RestServer struct {
	router     *gin.Engine
	generator  *world.Generator
	port       string
	httpServer *http.Server
}

// Config содержит конфигурацию preview-сервера
type Config struct {
	Port      string           // порт для запуска сервера
	Generator *world.Generator // владелец опубликованного результата
}

// NewRestServer создает preview-сервер
func NewRestServer(config Config) *RestServer {
	if config.Port == "" {
		config.Port = ":8088"
	}

	// Устанавливаем режим релиза для gin
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	// === Observability middleware ===
	loggerMw := middleware.NewRequestLogger()
	router.Use(loggerMw.Handler())

	promMw := middleware.NewPrometheusMiddleware("preview_api")
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router)

	server := &RestServer{
		router:    router,
		generator: config.Generator,
		port:      config.Port,
	}

	server.setupRoutes()
	return server
}

// setupRoutes настраивает маршруты preview API
func (rs *RestServer) setupRoutes() {
	rs.router.GET("/health", rs.handleHealth)

	api := rs.router.Group("/api")
	{
		api.GET("/world", rs.handleWorld)
		api.GET("/cells/:x/:y", rs.handleCell)
		api.GET("/walls/:x/:y", rs.handleWall)
		api.GET("/chunks", rs.handleChunks)
		api.GET("/chunks/:cx/:cy", rs.handleChunk)
		api.POST("/regenerate", rs.handleRegenerate)
	}
}

// Start запускает HTTP сервер в отдельной горутине
func (rs *RestServer) Start() error {
	rs.httpServer = &http.Server{
		Addr:    rs.port,
		Handler: rs.router,
	}

	go func() {
		logging.Info("🌐 Preview API запущен на %s", rs.port)
		if err := rs.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("Ошибка preview API: %v", err)
		}
	}()
	return nil
}

// Stop останавливает HTTP сервер с таймаутом
func (rs *RestServer) Stop() error {
	if rs.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return rs.httpServer.Shutdown(ctx)
}

// currentResult возвращает опубликованный результат или пишет 503
func (rs *RestServer) currentResult(c *gin.Context) (*world.Result, bool) {
	result := rs.generator.Current()
	if result == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "мир еще не сгенерирован"})
		return nil, false
	}
	return result, true
}

// handleHealth — проверка живости
func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleWorld — сводка опубликованного результата
func (rs *RestServer) handleWorld(c *gin.Context) {
	result, ok := rs.currentResult(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"version":      result.Version,
		"seed":         result.Seed,
		"width":        result.Grid.Width,
		"height":       result.Grid.Height,
		"checksum":     fmt.Sprintf("%016x", result.Checksum),
		"formations":   result.FormationCount,
		"chunks":       len(result.Chunks),
		"generated_at": result.GeneratedAt,
		"duration_ms":  result.Duration.Milliseconds(),
	})
}

// parseCoord читает целочисленный path-параметр
func parseCoord(c *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("параметр %s не число", name)})
		return 0, false
	}
	return value, true
}

// handleCell — ячейка по координате; вне сетки — 404 absent
func (rs *RestServer) handleCell(c *gin.Context) {
	result, ok := rs.currentResult(c)
	if !ok {
		return
	}
	x, ok := parseCoord(c, "x")
	if !ok {
		return
	}
	y, ok := parseCoord(c, "y")
	if !ok {
		return
	}

	cell, inBounds := result.Grid.Cell(vec.Vec2{X: x, Y: y})
	if !inBounds {
		c.JSON(http.StatusNotFound, gin.H{"error": "координата вне сетки"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"x":            x,
		"y":            y,
		"is_wall":      cell.IsWall,
		"floor_height": cell.FloorHeight,
		"wall_height":  cell.WallHeight,
		"zone":         cell.Zone.String(),
	})
}

// handleWall — предикат «занята ли координата стеной»
func (rs *RestServer) handleWall(c *gin.Context) {
	result, ok := rs.currentResult(c)
	if !ok {
		return
	}
	x, ok := parseCoord(c, "x")
	if !ok {
		return
	}
	y, ok := parseCoord(c, "y")
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"x":       x,
		"y":       y,
		"is_wall": result.Grid.IsWallAt(vec.Vec2{X: x, Y: y}),
	})
}

// handleChunks — сводка по чанкам
func (rs *RestServer) handleChunks(c *gin.Context) {
	result, ok := rs.currentResult(c)
	if !ok {
		return
	}

	coords := make([]vec.Vec2, len(result.Chunks))
	for i := range result.Chunks {
		coords[i] = result.Chunks[i].Coords
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(result.Chunks),
		"coords": coords,
	})
}

// handleChunk — полный меш одного чанка
func (rs *RestServer) handleChunk(c *gin.Context) {
	result, ok := rs.currentResult(c)
	if !ok {
		return
	}
	cx, ok := parseCoord(c, "cx")
	if !ok {
		return
	}
	cy, ok := parseCoord(c, "cy")
	if !ok {
		return
	}

	for i := range result.Chunks {
		if result.Chunks[i].Coords.Equals(vec.Vec2{X: cx, Y: cy}) {
			c.JSON(http.StatusOK, result.Chunks[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "чанк не найден"})
}

// regenerateRequest — тело запроса регенерации
type regenerateRequest struct {
	Seed *int64 `json:"seed"`
}

// handleRegenerate — полный прогон с атомарной публикацией.
// Читатели старого результата продолжают видеть свой снимок.
func (rs *RestServer) handleRegenerate(c *gin.Context) {
	var req regenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректное тело запроса"})
		return
	}

	var (
		result *world.Result
		err    error
	)
	if req.Seed != nil {
		result, err = rs.generator.RegenerateWithSeed(*req.Seed)
	} else {
		result, err = rs.generator.Regenerate()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"version":  result.Version,
		"seed":     result.Seed,
		"checksum": fmt.Sprintf("%016x", result.Checksum),
	})
}
