package httpserver

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/alscos/sysinfo-gateway/internal/config"
	"github.com/alscos/sysinfo-gateway/internal/render"
	"github.com/alscos/sysinfo-gateway/internal/sysinfo"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterDeps struct {
	Config     config.Config
	Collector  *sysinfo.Collector
	Negotiator render.Negotiator
	Logger     *slog.Logger
}

type Server struct {
	cfg config.Config
	sys *sysinfo.Collector
	neg render.Negotiator
	log *slog.Logger
}

func NewRouter(deps RouterDeps) (http.Handler, error) {
	if deps.Collector == nil {
		return nil, fmt.Errorf("router: nil collector")
	}

	s := &Server{
		cfg: deps.Config,
		sys: deps.Collector,
		neg: deps.Negotiator,
		log: deps.Logger,
	}
	if s.neg == nil {
		s.neg = render.UserAgentNegotiator{Token: deps.Config.CLIAgentToken}
	}
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	if s.cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.cfg.RequestTimeout))
	}

	if len(s.cfg.AllowedSubnets) > 0 {
		allow, err := newCIDRAllowlist(s.cfg.AllowedSubnets)
		if err != nil {
			return nil, err
		}
		r.Use(allow.middleware)
	}

	fs := http.FileServer(http.Dir(s.cfg.StaticDir))
	r.Handle("/static/*", http.StripPrefix("/static/", fs))

	r.Get("/", s.handleRoot)
	r.Get("/api/sysinfo", s.handleSysinfo)
	r.Get("/healthz", s.handleHealth)

	return r, nil
}

func (s *Server) indexPath() string {
	return filepath.Join(s.cfg.StaticDir, indexFile)
}
