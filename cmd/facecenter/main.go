// facecenter - Webcam face tracker that reports how far the most
// centered face sits from a nominal location
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	flag "github.com/spf13/pflag"
	"github.com/teslashibe/facecenter/internal/config"
	"github.com/teslashibe/facecenter/internal/log"
	"github.com/teslashibe/facecenter/pkg/camera"
	"github.com/teslashibe/facecenter/pkg/debug"
	"github.com/teslashibe/facecenter/pkg/display"
	"github.com/teslashibe/facecenter/pkg/pipeline"
	"github.com/teslashibe/facecenter/pkg/tracking"
	"github.com/teslashibe/facecenter/pkg/tracking/detection"
	"github.com/teslashibe/facecenter/pkg/web"
)

type options struct {
	configPath string
	overrides  config.Overrides
	cfg        config.File
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Configuration error: %v\n", err)
		os.Exit(1)
	}

	log.InitWith(log.Options{Level: opts.cfg.Log.Level, File: opts.cfg.Log.File})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts); err != nil {
		log.Error("facecenter failed", "error", err)
		cancel()
		os.Exit(1)
	}
}

// parseFlags layers defaults, the YAML file, the environment and the
// command line, in that order. Reloads use the same layering.
func parseFlags() (options, error) {
	configPath := flag.StringP("config", "c", "", "YAML config file (reloaded on change)")
	device := flag.IntP("device", "d", 0, "Video device index")
	cameraPreset := flag.String("camera-preset", "", fmt.Sprintf("Camera preset %v", camera.PresetNames()))
	cascade := flag.String("cascade", "", "Path to the Haar cascade or YuNet model")
	backend := flag.String("backend", "", "Detector backend: cascade or yunet")
	preset := flag.String("preset", "", fmt.Sprintf("Tracking preset %v, replaces the file's tracking section", tracking.PresetNames()))
	headless := flag.Bool("headless", false, "Run without a preview window")
	dashboard := flag.String("dashboard", "", "Serve the web dashboard on this address")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	logFile := flag.String("log-file", "", "Also write JSON logs to this rotated file")
	logEvery := flag.Uint64("log-every", 1, "Log the displacement every n frames (0 disables)")
	debugFlag := flag.Bool("debug", false, "Enable verbose debug logging")
	debugFrames := flag.Bool("debug-frames", false, "Log every detection (very verbose)")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		return options{}, err
	}

	o := config.Overrides{
		Preset:       *preset,
		CameraPreset: *cameraPreset,
		Backend:      *backend,
		ModelPath:    *cascade,
		Headless:     *headless,
		Dashboard:    *dashboard,
		LogLevel:     *logLevel,
		LogFile:      *logFile,
	}
	if flag.CommandLine.Changed("device") {
		o.Device = device
	}
	if flag.CommandLine.Changed("log-every") {
		o.LogEvery = logEvery
	}

	debug.Enabled = *debugFlag || *debugFrames
	debug.Frames = *debugFrames
	if debug.Enabled {
		o.LogLevel = "debug"
	}

	cfg, err := config.Resolve(*configPath, o)
	if err != nil {
		return options{}, err
	}
	if problems := cfg.Validate(); len(problems) > 0 {
		return options{}, fmt.Errorf("invalid configuration: %v", problems)
	}

	return options{configPath: *configPath, overrides: o, cfg: cfg}, nil
}

func run(ctx context.Context, opts options) error {
	cfg := opts.cfg
	runID := uuid.NewString()
	logger := log.With("run", runID)

	logger.Info("🎯 facecenter starting",
		"device", cfg.Camera.DeviceID,
		"backend", cfg.Tracking.Detection.Backend,
		"model", cfg.Tracking.Detection.ModelPath,
		"nominal", cfg.Tracking.NominalLocation)

	detector, err := detection.New(cfg.Tracking.Detection)
	if err != nil {
		return err
	}
	defer detector.Close()

	manager := camera.NewManager(cfg.Tracking)
	manager.OnConfigChange = func(tc tracking.Config) error {
		tunable, ok := detector.(detection.Tunable)
		if !ok {
			return fmt.Errorf("%s detector cannot be tuned at runtime", tc.Detection.Backend)
		}
		tunable.SetParams(tc.Detection)
		logger.Info("tracking config applied", "nominal", tc.NominalLocation)
		return nil
	}

	source, err := camera.Open(cfg.Camera)
	if err != nil {
		return err
	}
	defer source.Close()

	if size := source.Size(); (cfg.Camera.Width > 0 && size.Width != cfg.Camera.Width) ||
		(cfg.Camera.Height > 0 && size.Height != cfg.Camera.Height) {
		logger.Warn("camera ignored the requested frame size",
			"requested_width", cfg.Camera.Width,
			"requested_height", cfg.Camera.Height,
			"width", size.Width,
			"height", size.Height)
	}

	var disp display.Display = display.Null{}
	if !cfg.Display.Headless {
		disp = display.NewWindow(cfg.Display.Title)
	}
	defer disp.Close()

	loop := pipeline.New(source, detector, disp, tracking.NewTracker(cfg.Tracking))
	loop.SetManager(manager)
	loop.SetLogger(logger)
	loop.SetLogEvery(cfg.Log.Every)

	if cfg.Dashboard.Enabled {
		server := web.NewServer(cfg.Dashboard.Addr, runID, manager)
		server.StartAsync()
		defer server.Shutdown()

		loop.AddSink(server)
		if cfg.Dashboard.PreviewFPS > 0 {
			loop.SetPreview(server, cfg.Dashboard.PreviewFPS)
		}
	}

	if opts.configPath != "" {
		go func() {
			err := config.Watch(ctx, opts.configPath, opts.overrides, func(f config.File) {
				if err := manager.SetConfig(f.Tracking); err != nil {
					logger.Warn("config reload rejected", "error", err)
				}
			})
			if err != nil {
				logger.Warn("config watch stopped", "error", err)
			}
		}()
	}

	err = loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	logger.Info("👋 facecenter stopped")
	return err
}
