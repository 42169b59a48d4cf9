package main

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	profilemd "github.com/alnah/go-profilemd"
	"github.com/alnah/go-profilemd/internal/config"
)

// HTTP server timeouts.
const (
	readHeaderTimeout     = 10 * time.Second
	serverShutdownTimeout = 10 * time.Second
)

// runServe serves live renderings of one profile over HTTP until interrupted.
func runServe(ctx context.Context, args []string, env *Environment) error {
	f := &serveFlags{}
	positional, err := parseFlagSet(newServeFlagSet(f), args, env.Stderr, printServeUsage)
	if err != nil {
		return err
	}
	env.useCommonFlags(&f.common)

	if len(positional) != 1 {
		return fmt.Errorf("%w: serve takes exactly one profile file", ErrUsage)
	}
	path := positional[0]
	if err := validateProfileExtension(path); err != nil {
		return err
	}
	// Fail fast; the file is re-read on every request afterwards.
	if _, err := profilemd.LoadProfile(path); err != nil {
		return err
	}

	cfg, err := resolveConfig(&f.common, env)
	if err != nil {
		return err
	}
	if f.addr != "" {
		cfg.Serve.Addr = f.addr
	}
	applyOutputFlags("", "", f.width, cfg)
	applyEngineFlags(&f.pdf, cfg)
	applyThemeFlag(f.theme, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	opts, err := rendererOptions(cfg)
	if err != nil {
		return err
	}

	r, err := profilemd.NewRenderer(opts...)
	if err != nil {
		return err
	}
	defer r.Close()

	addr := cfg.Serve.Addr
	if addr == "" {
		addr = config.DefaultServeAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           newServer(path, r, env.Logger),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Serving %s on http://%s (Ctrl+C to stop)\n", path, ln.Addr())
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		env.Logger.Debug().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP server shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// server renders the profile at path on every request, so edits show up
// on reload.
type server struct {
	path   string
	r      exporter
	logger zerolog.Logger
}

// newServer returns the router for the preview server.
//
//	GET /                  HTML page
//	GET /markdown          canonical Markdown
//	GET /text              plain text
//	GET /export/{format}   download with a suggested filename
//	GET /healthz           liveness
func newServer(path string, r exporter, logger zerolog.Logger) http.Handler {
	s := &server{path: path, r: r, logger: logger}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)

	router.Get("/", s.inline(profilemd.FormatHTML))
	router.Get("/markdown", s.inline(profilemd.FormatMarkdown))
	router.Get("/text", s.inline(profilemd.FormatText))
	router.Get("/export/{format}", s.export)
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	return router
}

// inline serves format for display in the browser.
func (s *server) inline(format profilemd.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		doc, err := s.render(req.Context(), format)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeDocument(w, doc, "")
	}
}

// export serves a document as a download.
func (s *server) export(w http.ResponseWriter, req *http.Request) {
	format, err := profilemd.ParseFormat(chi.URLParam(req, "format"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	doc, err := s.render(req.Context(), format)
	if err != nil {
		s.writeError(w, err)
		return
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": doc.Filename})
	if disposition == "" {
		disposition = "attachment"
	}
	writeDocument(w, doc, disposition)
}

// render loads the profile and exports it. The filename is sanitized the
// same way the render command names files on disk.
func (s *server) render(ctx context.Context, format profilemd.Format) (*profilemd.Document, error) {
	p, err := profilemd.LoadProfile(s.path)
	if err != nil {
		return nil, err
	}
	doc, err := s.r.Export(ctx, p, format)
	if err != nil {
		return nil, err
	}
	doc.Filename = outputFilename(format, p.Name)
	return doc, nil
}

func writeDocument(w http.ResponseWriter, doc *profilemd.Document, disposition string) {
	contentType := doc.MIMEType
	if doc.Format != profilemd.FormatPDF {
		contentType += "; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	if disposition != "" {
		w.Header().Set("Content-Disposition", disposition)
	}
	_, _ = w.Write(doc.Content)
}

// writeError maps err to an HTTP status.
func (s *server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, profilemd.ErrUnknownFormat):
		status = http.StatusNotFound
	case errors.Is(err, profilemd.ErrProfileNotFound):
		status = http.StatusNotFound
	case errors.Is(err, profilemd.ErrProfileParse):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	case errors.Is(err, profilemd.ErrBrowserConnect),
		errors.Is(err, profilemd.ErrPageCreate),
		errors.Is(err, profilemd.ErrPageLoad):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Int("status", status).Msg("request failed")
	}
	http.Error(w, err.Error(), status)
}

// requestLogger logs one line per request at info level.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("took", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}
