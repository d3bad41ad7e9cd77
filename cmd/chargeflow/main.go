// cmd/chargeflow/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/tamzrod/chargeflow/internal/config"
	"github.com/tamzrod/chargeflow/internal/logger"
	"github.com/tamzrod/chargeflow/internal/poller"
	"github.com/tamzrod/chargeflow/internal/render"
	"github.com/tamzrod/chargeflow/internal/render/svg"
	"github.com/tamzrod/chargeflow/internal/tools"
	"github.com/tamzrod/chargeflow/internal/writer"
)

func main() {
	if len(os.Args) > 2 {
		logger.Fatal("usage: chargeflow [config.yaml]")
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg := loadConfig(os.Args[1:])

	if err := config.ApplyEnvOverrides(cfg); err != nil {
		logger.Fatal("config env override failed: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		logger.Fatal("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	logger.SetLevelFromString(cfg.Flow.Log.Level)
	defer logger.Sync()

	loc, err := render.NewLocalizer(cfg.Flow.Display.Language)
	if err != nil {
		logger.Fatal("display language: %v", err)
	}

	// --------------------
	// Render targets
	// --------------------

	mem := render.NewMemory()
	targets := []render.Target{mem}

	if s := cfg.Flow.Targets.SVG; s != nil {
		targets = append(targets, svg.New(s.Path, s.Width, s.Height))
		logger.Info("svg target: %s (%dx%d)", s.Path, s.Width, s.Height)
	}

	var status writer.StatusWriter
	if p := cfg.Flow.Targets.Panel; p != nil {
		pw, closePanel, err := writer.BuildPanelWriter(*p)
		if err != nil {
			logger.Fatal("panel writer build failed (endpoint=%s): %v", p.Endpoint, err)
		}
		defer closePanel()

		targets = append(targets, pw)
		status = pw
		logger.Info("panel target: %s unit=%d slot=%d", p.Endpoint, p.UnitID, p.BaseSlot)
	}

	// --------------------
	// Poller
	// --------------------

	p, closePoller, err := poller.Build(cfg.Flow)
	if err != nil {
		logger.Fatal("poller build failed (source=%s): %v", cfg.Flow.Source.Kind, err)
	}
	defer closePoller()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---- channel between poller and pipeline ----
	out := make(chan poller.PollResult)

	pl := newPipeline(targets, status, loc)
	done := make(chan struct{})
	go func() {
		pl.run(ctx, out)
		close(done)
	}()

	// poller producer
	go p.Run(ctx, out)

	logger.Info("chargeflow running: source=%s interval=%s language=%s",
		cfg.Flow.Source.Kind, p.Interval(), loc.Language())

	// --------------------
	// MCP server (optional)
	// --------------------

	var httpSrv *http.Server
	if cfg.Flow.MCP.Enabled {
		mcpServer := server.NewMCPServer(
			"chargeflow",
			"1.0.0",
			server.WithToolCapabilities(false),
		)
		tools.RegisterAll(mcpServer, tools.FlowTools(mem, loc))

		addr := fmt.Sprintf(":%d", cfg.Flow.MCP.Port)
		httpSrv = &http.Server{
			Addr:              addr,
			Handler:           server.NewStreamableHTTPServer(mcpServer),
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       120 * time.Second,
		}

		go func() {
			logger.Info("mcp listening on %s", addr)
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("mcp server error: %v", err)
				stop()
			}
		}()
	}

	// --------------------
	// Block until SIGINT / SIGTERM
	// --------------------

	<-ctx.Done()
	logger.Info("shutting down...")

	if httpSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("mcp graceful shutdown error: %v", err)
		}
	}

	<-done
	logger.Info("stopped")
}

// loadConfig reads the optional config path. Without one the scenario-mode
// defaults are used.
func loadConfig(args []string) *config.Config {
	if len(args) == 0 {
		logger.Info("no config given, using defaults (scenario mode)")
		return config.DefaultConfig()
	}

	cfg, err := config.Load(args[0])
	if err != nil {
		logger.Fatal("config load failed: %v", err)
	}
	logger.Info("loaded config from %q", args[0])
	return cfg
}
