package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-offline-pathtracer/pkg/config"
	"github.com/df07/go-offline-pathtracer/pkg/output"
	"github.com/df07/go-offline-pathtracer/pkg/renderer"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string // Scene name (e.g., "random")
	Width   int    // Image width; height follows the scene's aspect ratio
	Samples int    // Samples per pixel
	Depth   int    // Maximum bounce depth
	Seed    int64  // Base seed for the tile random streams
	Format  string // "png" or "ppm"
}

// parseRenderRequest parses and range-checks the query parameters
func (s *Server) parseRenderRequest(c echo.Context) (*RenderRequest, error) {
	values := c.QueryParams()
	req := &RenderRequest{Scene: values.Get("scene"), Format: values.Get("format")}
	if req.Scene == "" {
		req.Scene = "random"
	}
	if req.Format == "" {
		req.Format = "png"
	}
	if req.Format != "png" && req.Format != "ppm" {
		return nil, fmt.Errorf("format must be png or ppm, got: %s", req.Format)
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 200, 1, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 10, 1, 10000); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(values, "depth", 5, 0, 100); err != nil {
		return nil, err
	}
	if req.Seed, err = parseSeedParam(values, "seed", 42); err != nil {
		return nil, err
	}

	return req, nil
}

// toConfig maps the request onto render settings, keeping the scene's aspect ratio
func (req *RenderRequest) toConfig() (*config.Config, error) {
	cfg := config.Default()
	cfg.Scene = req.Scene
	cfg.Width = req.Width
	cfg.AspectRatio = 0
	cfg.SamplesPerPixel = req.Samples
	cfg.MaxDepth = req.Depth
	cfg.Seed = req.Seed
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// handleRender renders the requested scene and returns the encoded image
func (s *Server) handleRender(c echo.Context) error {
	req, err := s.parseRenderRequest(c)
	if err != nil {
		return badRequest(c, err)
	}
	cfg, err := req.toConfig()
	if err != nil {
		return badRequest(c, err)
	}

	sceneObj, err := cfg.NewScene()
	if err != nil {
		return badRequest(c, err)
	}

	logger := s.logger.With().Str("scene", req.Scene).Logger()
	raytracer := renderer.NewRaytracer(sceneObj, cfg.RenderConfig(), logger)
	img, stats, err := raytracer.Render()
	if err != nil {
		if errors.Is(err, renderer.ErrInvalidSize) {
			return badRequest(c, err)
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	var buf bytes.Buffer
	contentType := "image/png"
	encode := output.WritePNG
	if req.Format == "ppm" {
		contentType = "image/x-portable-pixmap"
		encode = output.WritePPM
	}
	if err := encode(&buf, img); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	c.Response().Header().Set("X-Render-Duration-Ms", fmt.Sprintf("%d", stats.Duration.Milliseconds()))
	c.Response().Header().Set("X-Render-Samples", fmt.Sprintf("%d", stats.TotalSamples))
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}
