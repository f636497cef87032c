package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/SentraLabs/Sentra/pkg/moderation"
)

type moderateRequest struct {
	Content string             `json:"content"`
	Options *moderation.Config `json:"options,omitempty"`
}

type moderateBatchRequest struct {
	Contents []string           `json:"contents"`
	Options  *moderation.Config `json:"options,omitempty"`
}

type filterRequest struct {
	Content string `json:"content"`
}

func (s *Server) moderationConfig(opts *moderation.Config) moderation.Config {
	if opts != nil {
		return *opts
	}
	cfg := moderation.DefaultConfig()
	mc := s.config.Moderation
	cfg.StrictMode = mc.StrictMode
	cfg.AllowMildProfanity = mc.AllowMildProfanity
	cfg.PersonalInfoCheck = mc.PersonalInfoCheck
	cfg.SpamCheck = mc.SpamCheck
	return cfg
}

func (s *Server) handleModerate(c *fiber.Ctx) error {
	var req moderateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result := s.moderation.Moderate(c.Context(), req.Content, s.moderationConfig(req.Options))
	return c.Status(fiber.StatusOK).JSON(result)
}

func (s *Server) handleModerateBatch(c *fiber.Ctx) error {
	var req moderateBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if len(req.Contents) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "contents must not be empty"})
	}

	results := s.moderation.ModerateBatch(
		c.Context(), req.Contents, s.moderationConfig(req.Options), s.config.Moderation.BatchSize)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"results": results})
}

func (s *Server) handleFilter(c *fiber.Ctx) error {
	var req filterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"filtered": s.moderation.FilterPersonalInfo(req.Content),
	})
}

func (s *Server) handleUserRisk(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}

	profile, err := s.profiler.AnalyzeUser(c.Context(), userID)
	if err != nil {
		s.logger.WithError(err).Error("risk analysis failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to analyze user"})
	}
	if profile == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found or analysis unavailable"})
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

func (s *Server) handleStats(c *fiber.Ctx) error {
	snapshot, err := s.stats.Collect(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to collect stats"})
	}
	return c.Status(fiber.StatusOK).JSON(snapshot)
}
