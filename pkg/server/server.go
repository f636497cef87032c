package server

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/SentraLabs/Sentra/pkg/config"
	"github.com/SentraLabs/Sentra/pkg/infra/prometheus"
	"github.com/SentraLabs/Sentra/pkg/moderation"
	"github.com/SentraLabs/Sentra/pkg/risk"
	"github.com/SentraLabs/Sentra/pkg/stats"
)

type (
	ServerDI struct {
		Config     *config.Config
		Logger     *logrus.Logger
		Moderation *moderation.Service
		Profiler   *risk.Profiler
		Stats      *stats.Aggregator
	}
	Server struct {
		config     *config.Config
		logger     *logrus.Logger
		router     *fiber.App
		moderation *moderation.Service
		profiler   *risk.Profiler
		stats      *stats.Aggregator
	}
)

func NewServer(di ServerDI) *Server {
	r := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             1 * 1024 * 1024,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           120 * time.Second,
	})
	r.Use(recover.New())

	return &Server{
		config:     di.Config,
		logger:     di.Logger,
		router:     r,
		moderation: di.Moderation,
		profiler:   di.Profiler,
		stats:      di.Stats,
	}
}

func (s *Server) Run() error {
	s.setupRoutes()
	s.setupHealthCheck()
	s.setupMetricsEndpoint()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.WithField("addr", addr).Info("starting moderation server")
	return s.router.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.router.Shutdown()
}

func (s *Server) setupRoutes() {
	v1 := s.router.Group("/api/v1")
	{
		v1.Post("/moderate", s.handleModerate)
		v1.Post("/moderate/batch", s.handleModerateBatch)
		v1.Post("/filter", s.handleFilter)
		v1.Get("/users/:user_id/risk", s.handleUserRisk)
		v1.Get("/stats", s.handleStats)
	}
}

func (s *Server) setupHealthCheck() {
	s.router.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
}

func (s *Server) setupMetricsEndpoint() {
	s.router.Get("/metrics", func(c *fiber.Ctx) error {
		handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(
			prometheus.Registry(),
			promhttp.HandlerOpts{},
		))
		handler(c.Context())
		return nil
	})
}
