// Package server exposes the configuration registry and comparison store to
// the dual-panel frontend over HTTP and WebSocket.
package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/arnodenuijl/DistanceComparer-sub001/internal/config"
	"github.com/arnodenuijl/DistanceComparer-sub001/internal/db"
	"github.com/arnodenuijl/DistanceComparer-sub001/internal/distance"
	"github.com/arnodenuijl/DistanceComparer-sub001/internal/mapcfg"
	"github.com/arnodenuijl/DistanceComparer-sub001/internal/metrics"
	"github.com/arnodenuijl/DistanceComparer-sub001/internal/types"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // same-origin only in practice, the frontend is served by us
	},
}

// Server wires the registry, formatter cache, store and counters together.
type Server struct {
	logger    *slog.Logger
	config    config.Config
	database  *db.DB
	cache     *distance.Cache
	counters  *metrics.Counters
	startTime time.Time
}

// New creates a Server. The format cache TTL comes from the registry's
// performance tuning.
func New(logger *slog.Logger, cfg config.Config, database *db.DB) *Server {
	return &Server{
		logger:    logger,
		config:    cfg,
		database:  database,
		cache:     distance.NewCache(mapcfg.Tuning().CalculationCacheTTL),
		counters:  metrics.New(),
		startTime: time.Now(),
	}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.slogMiddleware())

	r.Static("/static", "./web/static")
	r.GET("/", func(c *gin.Context) {
		c.File("./web/static/index.html")
	})

	r.GET("/health", s.handleHealth)
	r.GET("/ws", s.handleWebSocket)

	api := r.Group("/api")
	{
		api.GET("/config", s.handleConfig)
		api.GET("/stats", s.handleStats)
		api.POST("/comparisons", s.handleSaveComparison)
		api.GET("/comparisons", s.handleRecentComparisons)
	}

	return r
}

// Run starts the HTTP server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting server", slog.String("addr", s.config.ServerAddress))
	return s.Router().Run(s.config.ServerAddress)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"uptime": time.Since(s.startTime).String(),
	})
}

func (s *Server) handleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, mapcfg.Registry())
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.counters.Snapshot())
}

type saveComparisonRequest struct {
	Label       string     `json:"label"`
	Left        types.Line `json:"left"`
	Right       types.Line `json:"right"`
	LeftMeters  float64    `json:"leftMeters"`
	RightMeters float64    `json:"rightMeters"`
}

func (s *Server) handleSaveComparison(c *gin.Context) {
	var req saveComparisonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cmp := types.Comparison{
		ID:           uuid.New().String(),
		Label:        req.Label,
		Left:         req.Left,
		Right:        req.Right,
		LeftMeters:   req.LeftMeters,
		RightMeters:  req.RightMeters,
		LeftDisplay:  distance.Format(req.LeftMeters),
		RightDisplay: distance.Format(req.RightMeters),
		CreatedAt:    time.Now().UTC(),
	}
	if err := cmp.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.database.SaveComparison(c.Request.Context(), cmp); err != nil {
		s.logger.Error("save failed", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save comparison"})
		return
	}
	s.counters.RecordComparisonSaved()

	c.JSON(http.StatusCreated, cmp)
}

func (s *Server) handleRecentComparisons(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	comparisons, err := s.database.RecentComparisons(c.Request.Context(), limit)
	if err != nil {
		s.logger.Error("history query failed", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load comparisons"})
		return
	}
	if comparisons == nil {
		comparisons = []types.Comparison{}
	}

	c.JSON(http.StatusOK, gin.H{"comparisons": comparisons})
}

// slogMiddleware logs each request with a level matching its status code.
func (s *Server) slogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logFunc := s.logger.Info
		if status >= 500 {
			logFunc = s.logger.Error
		} else if status >= 400 {
			logFunc = s.logger.Warn
		}

		logFunc("http request",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
			slog.String("ip", c.ClientIP()),
		)
	}
}
