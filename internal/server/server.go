// Package server exposes the upload boundary: a small gin application that
// accepts a source file, runs the extraction/normalization/enrichment
// pipeline on it, and answers with the rendered map page. It also carries
// the monitoring endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/petitlyon/cartomat/internal/config"
	"github.com/petitlyon/cartomat/internal/enrich"
	"github.com/petitlyon/cartomat/internal/extract"
	"github.com/petitlyon/cartomat/internal/models"
	"github.com/petitlyon/cartomat/internal/render"
	"github.com/petitlyon/cartomat/internal/table"
)

// errorResponse is the structured failure object returned on every error
// path. Input problems use 400, processing failures 422, so callers can tell
// a bad file from a provider outage.
type errorResponse struct {
	Message string `json:"message"`
}

// Server wires the upload pipeline behind HTTP handlers.
type Server struct {
	log      *slog.Logger
	cfg      *config.Config
	registry *extract.Registry
	service  *enrich.Service
	promReg  *prometheus.Registry
}

// New creates the upload server.
func New(
	log *slog.Logger,
	cfg *config.Config,
	registry *extract.Registry,
	service *enrich.Service,
	promReg *prometheus.Registry,
) *Server {
	return &Server{
		log:      log,
		cfg:      cfg,
		registry: registry,
		service:  service,
		promReg:  promReg,
	}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", s.handleUploadForm)
	router.POST("/view", s.handleView)
	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.promReg, promhttp.HandlerOpts{})))

	return router
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	const (
		readTimeout     = 30 * time.Second
		writeTimeout    = 10 * time.Minute // a cold-cache batch geocodes at throttle speed
		shutdownTimeout = 5 * time.Second
	)

	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", s.cfg.Port),
		Handler:     s.Router(),
		ReadTimeout: readTimeout,
		// The /view handler runs the whole enrichment batch inline.
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.InfoContext(ctx, "Upload server listening", "port", s.cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	}
}

const uploadFormPage = `<!doctype html>
<html lang="fr">
<head><meta charset="utf-8"><title>cartomat</title></head>
<body>
  <h1>cartomat</h1>
  <form action="/view" method="post" enctype="multipart/form-data">
    <input type="file" name="file">
    <button type="submit">Téléverser</button>
  </form>
</body>
</html>
`

func (s *Server) handleUploadForm(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(uploadFormPage))
}

// handleView is the whole pipeline behind one request: save the upload,
// extract, normalize, enrich, render.
func (s *Server) handleView(c *gin.Context) {
	ctx := c.Request.Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Message: "no file provided"})
		return
	}
	if fileHeader.Size == 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Message: "uploaded file is empty"})
		return
	}
	if !s.registry.Supports(fileHeader.Filename) {
		c.JSON(http.StatusBadRequest, errorResponse{
			Message: fmt.Sprintf("unsupported file extension: %s", filepath.Ext(fileHeader.Filename)),
		})
		return
	}

	dst := filepath.Join(s.cfg.UploadDir, uploadName(fileHeader.Filename))
	if err = c.SaveUploadedFile(fileHeader, dst); err != nil {
		s.log.ErrorContext(ctx, "Failed to save uploaded file", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Message: "failed to store uploaded file"})
		return
	}

	raw, err := s.registry.Extract(ctx, dst)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Message: fmt.Sprintf("failed to read input table: %v", err)})
		return
	}
	if len(raw.Rows) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Message: "input table is empty"})
		return
	}

	records, err := table.Normalize(raw, s.cfg.DefaultCity)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Message: fmt.Sprintf("invalid input table: %v", err)})
		return
	}

	enriched, err := s.service.RunBatch(ctx, records)
	if err != nil {
		s.log.ErrorContext(ctx, "Enrichment batch failed", "error", err)
		message := "processing failed"
		if errors.Is(err, enrich.ErrProvidersUnavailable) {
			message = "geocoding providers unavailable"
		} else if errors.Is(err, enrich.ErrEncoding) {
			message = "failed to transcode record text for display"
		}
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Message: message})
		return
	}

	center := models.Coordinates{Latitude: s.cfg.CenterLat, Longitude: s.cfg.CenterLng}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err = render.Map(c.Writer, enriched, center, s.cfg.UncertainRadiusKm); err != nil {
		s.log.ErrorContext(ctx, "Failed to render map page", "error", err)
	}
}

// uploadName derives a collision-free storage name from the original
// filename, keeping only its base name and extension.
func uploadName(original string) string {
	base := filepath.Base(original)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s.%s%s", stem, uuid.NewString(), ext)
}
