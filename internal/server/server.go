// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/yuin/goldmark"

	"github.com/gogpu/constellation"
	"github.com/gogpu/constellation/surface"
)

// maxBodyBytes bounds POST payloads.
const maxBodyBytes = 4 << 10

// Config wires a server to a running graph.
type Config struct {
	Graph  *constellation.Graph  `validate:"required"`
	Target *surface.MemoryTarget `validate:"required"`
	Panel  *Panel                `validate:"required"`
	Logger *slog.Logger

	// AllowedOrigins lists CORS origins. Empty allows any origin.
	AllowedOrigins []string `validate:"dive,required"`

	// DarkClass is toggled on the target by POST /api/theme.
	DarkClass string

	// Namespace prefixes the metric names.
	Namespace string `validate:"omitempty,alphanum"`
}

// Server exposes a graph over HTTP.
type Server struct {
	graph     *constellation.Graph
	target    *surface.MemoryTarget
	panel     *Panel
	logger    *slog.Logger
	metrics   *Metrics
	validate  *validator.Validate
	markdown  goldmark.Markdown
	origins   []string
	darkClass string
}

// New validates cfg and returns a server.
func New(cfg Config) (*Server, error) {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, fmt.Errorf("server: invalid config: %w", formatValidationError(err))
	}
	if cfg.Logger == nil {
		cfg.Logger = constellation.Logger()
	}
	if cfg.DarkClass == "" {
		cfg.DarkClass = surface.DarkClass
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "constellation"
	}
	return &Server{
		graph:     cfg.Graph,
		target:    cfg.Target,
		panel:     cfg.Panel,
		logger:    cfg.Logger,
		metrics:   NewMetrics(cfg.Namespace, cfg.Graph),
		validate:  v,
		markdown:  goldmark.New(),
		origins:   cfg.AllowedOrigins,
		darkClass: cfg.DarkClass,
	}, nil
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.logger, s.metrics))

	origins := s.origins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleIndex)
	r.Get("/frame.png", s.handleFrame)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/nodes", s.handleNodes)
		r.Get("/details", s.handleCurrentDetails)
		r.Get("/details/{name}", s.handleSkillDetails)
		r.Post("/pointer", s.handlePointer)
		r.Post("/filter", s.handleFilter)
		r.Post("/theme", s.handleTheme)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"id":      s.graph.ID(),
		"running": s.graph.Running(),
	})
}

func (s *Server) handleFrame(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := s.target.EncodePNG(&buf); err != nil {
		if errors.Is(err, surface.ErrNoFrame) {
			writeError(w, http.StatusServiceUnavailable, "no frame rendered yet")
			return
		}
		s.logger.Warn("server: encode frame", "err", err)
		writeError(w, http.StatusInternalServerError, "encode frame")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

type nodesResponse struct {
	ID     string                    `json:"id"`
	Source string                    `json:"source"`
	Reason string                    `json:"reason,omitempty"`
	Filter string                    `json:"filter"`
	Nodes  []constellation.NodeState `json:"nodes"`
	Edges  []constellation.EdgeState `json:"edges"`
	Stats  constellation.Stats       `json:"stats"`
}

func (s *Server) handleNodes(w http.ResponseWriter, _ *http.Request) {
	load := s.graph.Load()
	resp := nodesResponse{
		ID:     s.graph.ID(),
		Source: load.Source.String(),
		Filter: s.graph.Filter(),
		Nodes:  s.graph.Nodes(),
		Edges:  s.graph.Edges(),
		Stats:  s.graph.Stats(),
	}
	if load.Reason != nil {
		resp.Reason = load.Reason.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

type detailsResponse struct {
	Mode            string `json:"mode"`
	Name            string `json:"name"`
	Level           string `json:"level"`
	Group           string `json:"group,omitempty"`
	Description     string `json:"description"`
	DescriptionHTML string `json:"descriptionHtml"`
	Skill           bool   `json:"skill"`
	Updates         uint64 `json:"updates,omitempty"`
}

func (s *Server) details(d constellation.Details) detailsResponse {
	return detailsResponse{
		Mode:            d.Mode.String(),
		Name:            d.Name,
		Level:           d.Level,
		Group:           d.Group,
		Description:     d.Description,
		DescriptionHTML: s.renderMarkdown(d.Description),
		Skill:           d.Skill,
	}
}

// renderMarkdown converts a skill description to HTML. Descriptions that
// fail to convert are returned escaped as a paragraph.
func (s *Server) renderMarkdown(src string) string {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(src), &buf); err != nil {
		s.logger.Debug("server: markdown", "err", err)
		return plainParagraph(src)
	}
	return strings.TrimSpace(buf.String())
}

func plainParagraph(src string) string {
	return "<p>" + html.EscapeString(src) + "</p>"
}

func (s *Server) handleCurrentDetails(w http.ResponseWriter, _ *http.Request) {
	d, n := s.panel.Current()
	resp := s.details(d)
	resp.Updates = n
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSkillDetails(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed skill name")
		return
	}
	skill, ok := s.graph.Skill(name)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown skill %q", name))
		return
	}
	writeJSON(w, http.StatusOK, s.details(constellation.Details{
		Mode:        constellation.DetailsHover,
		Name:        skill.Name,
		Level:       skill.Level.String(),
		Group:       skill.GroupKey(),
		Description: skill.DescriptionOrDefault(),
		Skill:       true,
	}))
}

// PointerEvent is the payload of POST /api/pointer. Coordinates are CSS
// pixels relative to the frame's top-left corner.
type PointerEvent struct {
	Type string  `json:"type" validate:"required,oneof=move down up leave"`
	X    float64 `json:"x" validate:"gte=-10000,lte=10000"`
	Y    float64 `json:"y" validate:"gte=-10000,lte=10000"`
}

func (s *Server) handlePointer(w http.ResponseWriter, r *http.Request) {
	var ev PointerEvent
	if !s.decode(w, r, &ev) {
		return
	}
	switch ev.Type {
	case "move":
		s.graph.PointerMove(ev.X, ev.Y)
	case "down":
		s.graph.PointerDown(ev.X, ev.Y)
	case "up":
		s.graph.PointerUp()
	case "leave":
		s.graph.PointerLeave()
	}
	s.metrics.PointerEvents.WithLabelValues(ev.Type).Inc()
	s.handleCurrentDetails(w, r)
}

// FilterRequest is the payload of POST /api/filter.
type FilterRequest struct {
	Category string `json:"category" validate:"required,max=64"`
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.graph.SetCategoryFilter(req.Category)
	s.metrics.FilterChanges.Inc()
	writeJSON(w, http.StatusOK, map[string]any{
		"filter":  s.graph.Filter(),
		"visible": s.graph.Stats().VisibleNodes,
	})
}

// ThemeRequest is the payload of POST /api/theme.
type ThemeRequest struct {
	Dark *bool `json:"dark" validate:"required"`
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	var req ThemeRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.target.SetClass(s.darkClass, *req.Dark)
	s.graph.RefreshTheme()
	writeJSON(w, http.StatusOK, map[string]bool{"dark": s.graph.Dark()})
}

// decode reads a JSON body into dst and validates it. It writes the
// error response and returns false on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeError(w, http.StatusUnprocessableEntity, formatValidationError(err).Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// formatValidationError turns validator errors into one readable message.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, e.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, e.Param()))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
