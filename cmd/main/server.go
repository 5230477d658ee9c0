package main

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/seliware/mocksite/pkg/render"
)

// Server hosts the mock site: rendered pages, static assets, and the
// observability endpoints.
type Server struct {
	config    *Config
	logger    *slog.Logger
	loader    *FileLoader
	engine    *render.Engine
	accessLog *AccessLog
	mux       *http.ServeMux
}

func NewServer(config *Config, logger *slog.Logger, accessLog *AccessLog) *Server {
	loader := NewFileLoader(config.Server.TemplatesDir)

	server := &Server{
		config:    config,
		logger:    logger,
		loader:    loader,
		engine:    render.New(loader, config.Routes, logger),
		accessLog: accessLog,
		mux:       http.NewServeMux(),
	}

	server.accessLog.RegisterRoutes(server.mux)
	server.mux.HandleFunc("/static/", server.handleStatic)
	server.mux.HandleFunc("/", server.handlePage)

	return server
}

// Handler returns the root handler for the HTTP server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// handlePage serves one of the routed site pages: look up the template
// for the path, cold-load its text, render, respond. Unmapped paths are
// rejected before the engine runs.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.finish(w, r, http.StatusMethodNotAllowed, nil)
		return
	}

	templateName, ok := s.config.Routes.Template(r.URL.Path)
	if !ok {
		s.logger.Debug("No route for path", "path", r.URL.Path)
		s.finish(w, r, http.StatusNotFound, nil)
		return
	}

	doc, err := s.loader.Load(templateName)
	if err != nil {
		if errors.Is(err, render.ErrTemplateNotFound) {
			s.logger.Warn("Routed template file is missing", "template", templateName, "path", r.URL.Path)
			s.finish(w, r, http.StatusNotFound, nil)
			return
		}
		s.logger.Error("Failed to load template", "template", templateName, "error", err)
		s.finish(w, r, http.StatusInternalServerError, nil)
		return
	}

	rendered, err := s.engine.Render(r.URL.Path, doc)
	if err != nil {
		// A missing base template or malformed markers are server-side
		// template defects, not client errors.
		status := http.StatusInternalServerError
		if errors.Is(err, render.ErrTemplateNotFound) {
			status = http.StatusNotFound
		}
		s.logger.Error("Failed to render template", "template", templateName, "path", r.URL.Path, "error", err)
		s.finish(w, r, status, nil)
		return
	}

	s.logger.Info("Serving page", "path", r.URL.Path, "template", templateName, "remote_addr", getClientIP(r))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	s.finish(w, r, http.StatusOK, []byte(rendered))
}

// handleStatic serves asset bytes from the static directory with a
// content type derived from the file extension.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.finish(w, r, http.StatusMethodNotAllowed, nil)
		return
	}

	rel := strings.TrimPrefix(r.URL.Path, "/static/")
	path := filepath.Join(s.config.Server.StaticDir, filepath.FromSlash(rel))

	// Reject anything that cleans to outside the static root.
	root := filepath.Clean(s.config.Server.StaticDir)
	if path != root && !strings.HasPrefix(path, root+string(os.PathSeparator)) {
		s.finish(w, r, http.StatusNotFound, nil)
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.finish(w, r, http.StatusNotFound, nil)
			return
		}
		s.logger.Error("Failed to read static file", "path", path, "error", err)
		s.finish(w, r, http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", staticContentType(rel))
	s.finish(w, r, http.StatusOK, data)
}

// staticContentType maps an asset filename to its content type. Unknown
// extensions are served as opaque bytes.
func staticContentType(name string) string {
	switch filepath.Ext(name) {
	case ".css":
		return "text/css"
	case ".js":
		return "application/javascript"
	case ".ico":
		return "image/x-icon"
	default:
		return "application/octet-stream"
	}
}

// finish writes the response and records the request in the access log.
func (s *Server) finish(w http.ResponseWriter, r *http.Request, status int, body []byte) {
	if status == http.StatusNotFound && body == nil {
		http.NotFound(w, r)
	} else {
		if body != nil {
			w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		}
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}

	if s.accessLog == nil {
		return
	}
	rec := RequestRecord{
		ID:        uuid.NewString(),
		Method:    r.Method,
		Path:      r.URL.Path,
		Status:    status,
		IPAddress: getClientIP(r),
		UserAgent: r.UserAgent(),
	}
	if err := s.accessLog.Record(r.Context(), rec); err != nil {
		s.logger.Warn("Failed to record request", "path", r.URL.Path, "error", err)
	}
}

func getClientIP(r *http.Request) string {

	// The X-Real-Ip header contains the forwarded IP in some cases (like from nginx)
	realIP := r.Header.Get("X-Real-Ip")
	if realIP != "" {
		return realIP
	}

	// The X-Forwarded-For header can contain a comma-separated list of IPs.
	// The first IP in the list is the original client IP.
	forwardedFor := r.Header.Get("X-Forwarded-For")
	if forwardedFor != "" {
		ips := strings.Split(forwardedFor, ",")
		return strings.TrimSpace(ips[0])
	}

	// If the header is not present, fall back to the remote address.
	// This handles direct connections not coming through a proxy.
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If splitting fails (e.g., no port), return the address as is.
		return r.RemoteAddr
	}
	return ip
}
