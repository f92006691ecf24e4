package web

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/teslashibe/facecenter/pkg/camera"
	"github.com/teslashibe/facecenter/pkg/hub"
	"github.com/teslashibe/facecenter/pkg/tracking"
)

// Status is the dashboard summary
type Status struct {
	RunID          string           `json:"run_id"`
	Uptime         string           `json:"uptime"`
	Report         *tracking.Report `json:"report,omitempty"`
	ReportClients  int              `json:"report_clients"`
	PreviewClients int              `json:"preview_clients"`
}

// handleStatus returns the latest report and hub state
func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(Status{
		RunID:          s.runID,
		Uptime:         time.Since(s.started).Round(time.Second).String(),
		Report:         s.Latest(),
		ReportClients:  s.reportHub.ClientCount(),
		PreviewClients: s.previewHub.ClientCount(),
	})
}

// handleGetConfig returns the current tracking config
func (s *Server) handleGetConfig(c *fiber.Ctx) error {
	if s.manager == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "config manager not configured")
	}
	return c.JSON(s.manager.GetConfig())
}

// handleGetTuning returns the runtime-adjustable parameters
func (s *Server) handleGetTuning(c *fiber.Ctx) error {
	if s.manager == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "config manager not configured")
	}
	return c.JSON(s.manager.Tuning())
}

// handleUpdateConfig applies a partial update, e.g. {"min_neighbors": 3}
// or {"preset": "far"}
func (s *Server) handleUpdateConfig(c *fiber.Ctx) error {
	if s.manager == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "config manager not configured")
	}

	var params map[string]any
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid body: " + err.Error(),
		})
	}

	if err := s.manager.UpdateConfig(params); err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, camera.ErrApplyFailed) {
			status = fiber.StatusInternalServerError
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(s.manager.GetConfig())
}

// handleListPresets returns the tracking preset names
func (s *Server) handleListPresets(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"presets": tracking.PresetNames(),
	})
}

// handleReportsWS streams reports, starting with the latest one
func (s *Server) handleReportsWS(c *websocket.Conn) {
	var replay []hub.Message
	if latest := s.Latest(); latest != nil {
		if msg, err := hub.EncodeJSON(latest); err == nil {
			replay = append(replay, msg)
		}
	}
	hub.NewClient(s.reportHub, c, replay...).Run()
}

// handlePreviewWS streams JPEG preview frames
func (s *Server) handlePreviewWS(c *websocket.Conn) {
	hub.NewClient(s.previewHub, c).Run()
}
