package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vtracer"
)

const (
	// maxUploadBytes caps the request body of POST /convert.
	maxUploadBytes = 32 << 20
	shutdownGrace  = 5 * time.Second
)

// newRouter serves POST /convert, which traces the multipart "image" field
// with base adjusted by the other form fields, and GET /healthz.
func newRouter(base vtracer.Config, maxBytes int64) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Post("/convert", convertHandler(base, maxBytes))
	return r
}

func convertHandler(base vtracer.Config, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logrus.WithFields(logrus.Fields{
			"function":   "convertHandler",
			"request_id": middleware.GetReqID(r.Context()),
		})

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "expected multipart form", http.StatusBadRequest)
			return
		}

		cfg, err := formConfig(base, r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		file, _, err := r.FormFile("image")
		if err != nil {
			http.Error(w, "missing image field", http.StatusBadRequest)
			return
		}
		defer file.Close()

		img, err := vtracer.DecodeImage(file)
		if err != nil {
			log.WithField("error", err.Error()).Warn("Rejected upload")
			http.Error(w, "unsupported image", http.StatusBadRequest)
			return
		}

		start := time.Now()
		doc, err := vtracer.Convert(img, cfg)
		if err != nil {
			log.WithField("error", err.Error()).Error("Conversion failed")
			http.Error(w, "conversion failed", http.StatusInternalServerError)
			return
		}
		log.WithFields(logrus.Fields{
			"width":    img.Width,
			"height":   img.Height,
			"shapes":   len(doc.Shapes),
			"duration": time.Since(start).String(),
		}).Info("Converted upload")

		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = doc.WriteTo(w)
	}
}

// formConfig applies the preset, then any engine form fields, on top of
// base.
func formConfig(base vtracer.Config, r *http.Request) (vtracer.Config, error) {
	cfg := base
	if v := r.FormValue("preset"); v != "" {
		var p vtracer.Preset
		if err := p.UnmarshalText([]byte(v)); err != nil {
			return cfg, err
		}
		cfg = vtracer.NewConfigFromPreset(p)
	}

	texts := []struct {
		field string
		dst   interface{ UnmarshalText([]byte) error }
	}{
		{"color_mode", &cfg.ColorMode},
		{"hierarchical", &cfg.Hierarchical},
		{"mode", &cfg.Mode},
	}
	for _, t := range texts {
		if v := r.FormValue(t.field); v != "" {
			if err := t.dst.UnmarshalText([]byte(v)); err != nil {
				return cfg, fmt.Errorf("%s: %w", t.field, err)
			}
		}
	}

	ints := []struct {
		field string
		dst   *int
	}{
		{"filter_speckle", &cfg.FilterSpeckle},
		{"color_precision", &cfg.ColorPrecision},
		{"layer_difference", &cfg.LayerDifference},
		{"corner_threshold", &cfg.CornerThreshold},
		{"max_iterations", &cfg.MaxIterations},
		{"splice_threshold", &cfg.SpliceThreshold},
	}
	for _, f := range ints {
		if v := r.FormValue(f.field); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return cfg, fmt.Errorf("%s: %w", f.field, err)
			}
			*f.dst = n
		}
	}

	if v := r.FormValue("path_precision"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return cfg, fmt.Errorf("path_precision: %w", err)
		}
		cfg.PathPrecision = vtracer.Digits(uint32(n))
	}
	return cfg, nil
}

// serve listens on addr until ctx is cancelled, then shuts down gracefully.
func serve(ctx context.Context, addr string, cfg vtracer.Config) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return serveListener(ctx, ln, cfg)
}

func serveListener(ctx context.Context, ln net.Listener, cfg vtracer.Config) error {
	srv := &http.Server{
		Handler:           newRouter(cfg, maxUploadBytes),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logrus.WithFields(logrus.Fields{
		"function": "serve",
		"addr":     ln.Addr().String(),
	}).Info("Serving conversions")

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logrus.WithField("function", "serve").Info("Server stopped")
	return nil
}
