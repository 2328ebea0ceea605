package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alscos/sysinfo-gateway/internal/config"
	"github.com/alscos/sysinfo-gateway/internal/httpserver"
	"github.com/alscos/sysinfo-gateway/internal/render"
	"github.com/alscos/sysinfo-gateway/internal/sysinfo"
)

func main() {
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v. Fix the environment or .env", err)
	}

	logger := cfg.NewLogger(os.Stderr)

	collector := sysinfo.NewCollector(sysinfo.NewPSUtilSource(cfg.CPUSampleWindow), logger)

	r, err := httpserver.NewRouter(httpserver.RouterDeps{
		Config:     cfg,
		Collector:  collector,
		Negotiator: render.UserAgentNegotiator{Token: cfg.CLIAgentToken},
		Logger:     logger,
	})
	if err != nil {
		log.Fatalf("router init: %v", err)
	}

	// bind before serving so a taken port ends the process immediately
	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		log.Fatalf("listen %s: %v", cfg.ListenAddr, err)
	}

	srv := &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 2 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()

	logger.Info("sysinfo-gateway listening",
		"addr", ln.Addr().String(),
		"static_dir", cfg.StaticDir,
		"cpu_sample_window", cfg.CPUSampleWindow,
	)

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("serve", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}
}
