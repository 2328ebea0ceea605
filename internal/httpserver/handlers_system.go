package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/alscos/sysinfo-gateway/internal/render"
	"github.com/alscos/sysinfo-gateway/internal/sysinfo"
)

const indexFile = "index.html"

func (s *Server) handleSysinfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	snap := s.sys.Collect(ctx)
	if s.log.Enabled(ctx, slog.LevelDebug) {
		s.logInventory(ctx, s.sys.Inventory(ctx))
	}

	body, ct := render.JSON(snap)
	w.Header().Set("Content-Type", ct)
	_, _ = w.Write(body)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if s.neg.Negotiate(r.Header) != render.PresentationTable {
		s.serveIndex(w, r)
		return
	}

	snap := s.sys.Collect(r.Context())
	body, ct := render.Table(snap)
	w.Header().Set("Content-Type", ct)
	_, _ = w.Write(body)
}

// serveIndex streams index.html. A missing or unreadable file is a 500: the
// page is part of the deployment, not user input.
func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	path := s.indexPath()

	f, err := os.Open(path)
	if err != nil {
		s.log.Error("open index page", "path", path, "error", err)
		http.Error(w, "index page error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer f.Close()

	fi, err := f.Stat()
	if err == nil && fi.IsDir() {
		err = errors.New("is a directory")
	}
	if err != nil {
		s.log.Error("stat index page", "path", path, "error", err)
		http.Error(w, "index page error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	http.ServeContent(w, r, indexFile, fi.ModTime(), f)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// logInventory reports disks and sensors at debug level; they are not part of
// the API body.
func (s *Server) logInventory(ctx context.Context, inv sysinfo.Inventory) {
	for _, d := range inv.Disks {
		s.log.DebugContext(ctx, "disk",
			"device", d.Device,
			"mountpoint", d.Mountpoint,
			"fstype", d.Fstype,
			"total", d.Total,
			"free", d.Free,
			"used_percent", sysinfo.FormatPercent(d.UsedPct),
		)
	}
	for _, c := range inv.Sensors {
		s.log.DebugContext(ctx, "sensor",
			"key", c.Key,
			"temperature", c.Temperature,
			"high", c.High,
			"critical", c.Critical,
		)
	}
}
