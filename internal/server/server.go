// Package server exposes the form pipeline over HTTP for previewing bound
// forms in a browser or from JavaScript.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	pkgopenapi "github.com/goliatone/go-parsley/pkg/openapi"
	"github.com/goliatone/go-parsley/pkg/orchestrator"
	"github.com/goliatone/go-parsley/pkg/render"
	"github.com/goliatone/go-parsley/pkg/renderers/jsonattrs"
)

const maxPreviewBody = 1 << 20

// Generator is the subset of the orchestrator the server depends on.
type Generator interface {
	Generate(ctx context.Context, req orchestrator.Request) ([]byte, error)
	Operations(ctx context.Context, req orchestrator.Request) ([]string, error)
	Renderer(name string) (render.Renderer, error)
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRenderer sets the renderer used by GET /forms/{operationID}.
func WithRenderer(name string) Option {
	return func(s *Server) {
		s.renderer = name
	}
}

// Server serves forms built from a single OpenAPI source.
type Server struct {
	gen      Generator
	source   pkgopenapi.Source
	renderer string
	logger   *slog.Logger
}

// New returns a Server rendering forms from source.
func New(gen Generator, source pkgopenapi.Source, options ...Option) *Server {
	s := &Server{
		gen:    gen,
		source: source,
		logger: slog.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Routes returns the HTTP handler:
//
//	GET  /forms                        operation ids with a form body
//	GET  /forms/{operationID}          rendered form (?renderer=, ?theme=, ?variant=)
//	GET  /forms/{operationID}/attrs    attribute map as JSON
//	POST /forms/{operationID}/preview  render with submitted values and errors
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Route("/forms", func(r chi.Router) {
		r.Get("/", s.listForms)
		r.Get("/{operationID}", s.renderForm)
		r.Get("/{operationID}/attrs", s.renderAttrs)
		r.Post("/{operationID}/preview", s.previewForm)
	})
	return r
}

func (s *Server) listForms(w http.ResponseWriter, r *http.Request) {
	ids, err := s.gen.Operations(r.Context(), orchestrator.Request{Source: s.source})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"operations": ids})
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("renderer")
	if name == "" {
		name = s.renderer
	}
	s.generate(w, r, name, render.RenderOptions{})
}

func (s *Server) renderAttrs(w http.ResponseWriter, r *http.Request) {
	s.generate(w, r, jsonattrs.Name, render.RenderOptions{})
}

type previewRequest struct {
	Renderer string              `json:"renderer"`
	Values   map[string]any      `json:"values"`
	Errors   map[string][]string `json:"errors"`
}

func (s *Server) previewForm(w http.ResponseWriter, r *http.Request) {
	var payload previewRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxPreviewBody))
	if err := dec.Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid preview payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	name := payload.Renderer
	if name == "" {
		name = s.renderer
	}
	// Renderers map raw error payloads against the bound form themselves.
	s.generate(w, r, name, render.RenderOptions{
		Values: payload.Values,
		Errors: payload.Errors,
	})
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request, rendererName string, options render.RenderOptions) {
	renderer, err := s.gen.Renderer(rendererName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req := s.request(r, renderer.Name())
	req.RenderOptions = options

	out, err := s.gen.Generate(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (s *Server) request(r *http.Request, rendererName string) orchestrator.Request {
	return orchestrator.Request{
		Source:       s.source,
		OperationID:  chi.URLParam(r, "operationID"),
		Renderer:     rendererName,
		ThemeName:    r.URL.Query().Get("theme"),
		ThemeVariant: r.URL.Query().Get("variant"),
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, orchestrator.ErrOperationNotFound) {
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("render form",
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("error", err.Error()),
		)
	}
	http.Error(w, err.Error(), status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
