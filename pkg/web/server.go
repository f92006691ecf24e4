// Package web provides a live dashboard for the face tracker
package web

import (
	"bytes"
	"net"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/teslashibe/facecenter/internal/log"
	"github.com/teslashibe/facecenter/pkg/camera"
	"github.com/teslashibe/facecenter/pkg/hub"
	"github.com/teslashibe/facecenter/pkg/tracking"
	"gocv.io/x/gocv"
)

// Preview frame limits
const (
	PreviewWidth   = 480
	PreviewHeight  = 360
	PreviewQuality = 70
)

// Server is the web dashboard server
type Server struct {
	app     *fiber.App
	addr    string
	runID   string
	started time.Time
	manager *camera.Manager

	// Latest report
	latest   *tracking.Report
	latestMu sync.RWMutex

	// Hubs for websocket broadcast
	reportHub  *hub.Hub
	previewHub *hub.Hub
}

// NewServer creates a dashboard server. manager may be nil, in which
// case the config endpoints return 503.
func NewServer(addr, runID string, manager *camera.Manager) *Server {
	s := &Server{
		addr:       addr,
		runID:      runID,
		started:    time.Now(),
		manager:    manager,
		reportHub:  hub.New("reports"),
		previewHub: hub.New("preview"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "facecenter",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/config", s.handleGetConfig)
	api.Post("/config", s.handleUpdateConfig)
	api.Get("/tuning", s.handleGetTuning)
	api.Get("/presets", s.handleListPresets)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/reports", websocket.New(s.handleReportsWS))
	app.Get("/ws/preview", websocket.New(s.handlePreviewWS))

	s.app = app
	return s
}

// Start starts the hubs and serves on the configured address. Blocks.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve starts the hubs and serves on ln. Blocks.
func (s *Server) Serve(ln net.Listener) error {
	log.Info("dashboard listening", "url", "http://"+ln.Addr().String())

	go s.reportHub.Run()
	go s.previewHub.Run()

	return s.app.Listener(ln)
}

// StartAsync starts the web server in a goroutine
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Warn("dashboard stopped", "error", err)
		}
	}()
}

// Publish stores the report and broadcasts it. Implements pipeline.Sink.
func (s *Server) Publish(r tracking.Report) {
	s.latestMu.Lock()
	s.latest = &r
	s.latestMu.Unlock()

	if s.reportHub.ClientCount() == 0 {
		return
	}
	if err := s.reportHub.BroadcastJSON(r); err != nil {
		log.Warn("encode report", "error", err)
	}
}

// Latest returns the most recent report, or nil before the first frame
func (s *Server) Latest() *tracking.Report {
	s.latestMu.RLock()
	defer s.latestMu.RUnlock()
	if s.latest == nil {
		return nil
	}
	r := *s.latest
	return &r
}

// PublishFrame downsizes the frame and broadcasts it as JPEG.
// Implements pipeline.PreviewSink.
func (s *Server) PublishFrame(frame gocv.Mat) {
	if s.previewHub.ClientCount() == 0 || frame.Empty() {
		return
	}

	data, err := EncodePreview(frame)
	if err != nil {
		log.Warn("encode preview", "error", err)
		return
	}
	s.previewHub.BroadcastBinary(data)
}

// EncodePreview converts a BGR frame to a JPEG no larger than
// PreviewWidth x PreviewHeight.
func EncodePreview(frame gocv.Mat) ([]byte, error) {
	img, err := frame.ToImage()
	if err != nil {
		return nil, err
	}

	small := imaging.Fit(img, PreviewWidth, PreviewHeight, imaging.Box)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, small, imaging.JPEG, imaging.JPEGQuality(PreviewQuality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Shutdown gracefully stops the web server
func (s *Server) Shutdown() error {
	s.reportHub.Stop()
	s.previewHub.Stop()
	return s.app.Shutdown()
}
