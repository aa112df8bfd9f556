package renderer

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/rs/zerolog"

	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/integrator"
	"github.com/df07/go-offline-pathtracer/pkg/scene"
)

// ErrInvalidSize is returned when the scene asks for an empty image
var ErrInvalidSize = errors.New("image dimensions must be positive")

// RenderConfig contains configuration for parallel rendering
type RenderConfig struct {
	TileSize   int   // Size of each square tile in pixels
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base seed; each tile derives its own stream from it
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   32,
		NumWorkers: 0,
		Seed:       42,
	}
}

// Raytracer renders a scene to an image by splitting it into tiles
// and estimating every pixel in parallel
type Raytracer struct {
	scene      *scene.Scene
	config     RenderConfig
	integrator integrator.Integrator
	logger     zerolog.Logger
}

// NewRaytracer creates a new raytracer for the scene.
// The integrator follows the scene's max depth.
func NewRaytracer(s *scene.Scene, config RenderConfig, logger zerolog.Logger) *Raytracer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultRenderConfig().TileSize
	}
	return &Raytracer{
		scene:      s,
		config:     config,
		integrator: integrator.NewPathTracingIntegrator(s.SamplingConfig.MaxDepth),
		logger:     logger,
	}
}

// Render traces the whole image and returns it with statistics.
// The scene is preprocessed first if that has not happened yet.
func (rt *Raytracer) Render() (*image.RGBA, RenderStats, error) {
	pixels, stats, err := rt.RenderRadiance()
	if err != nil {
		return nil, RenderStats{}, err
	}

	img := PixelsToImage(pixels)
	rt.logger.Info().
		Dur("duration", stats.Duration).
		Int("samples", stats.TotalSamples).
		Float64("avg_luminance", CalculateAverageLuminance(img)).
		Msg("Render complete")

	return img, stats, nil
}

// RenderRadiance traces the whole image and returns the averaged linear radiance per pixel,
// indexed [y][x] with row 0 at the top
func (rt *Raytracer) RenderRadiance() ([][]core.Vec3, RenderStats, error) {
	sampling := rt.scene.SamplingConfig
	width, height := sampling.Width, sampling.Height
	if width <= 0 || height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	if rt.scene.Root == nil {
		if err := rt.scene.Preprocess(); err != nil {
			return nil, RenderStats{}, fmt.Errorf("preprocessing scene: %w", err)
		}
		event := rt.logger.Info().Int("primitives", rt.scene.GetPrimitiveCount())
		if bvhStats, ok := rt.scene.BVHStats(); ok {
			event = event.Int("bvh_nodes", bvhStats.TotalNodes).Int("bvh_max_depth", bvhStats.MaxDepth)
		}
		event.Msg("Scene built")
	}

	start := time.Now()

	pixels := make([][]core.Vec3, height)
	for y := range pixels {
		pixels[y] = make([]core.Vec3, width)
	}

	tiles := NewTileGrid(width, height, rt.config.TileSize, rt.config.Seed)
	tileRenderer := NewTileRenderer(rt.scene.Camera, rt.scene.Root, rt.integrator,
		width, height, sampling.SamplesPerPixel, sampling.MaxDepth)
	workerPool := NewWorkerPool(tileRenderer, rt.config.NumWorkers, len(tiles))

	rt.logger.Info().
		Int("width", width).
		Int("height", height).
		Int("spp", sampling.SamplesPerPixel).
		Int("max_depth", sampling.MaxDepth).
		Int("workers", workerPool.GetNumWorkers()).
		Int("tiles", len(tiles)).
		Msg("Rendering")

	workerPool.Start()
	for taskID, tile := range tiles {
		workerPool.SubmitTask(TileTask{
			Tile:   tile,
			TaskID: taskID,
			Pixels: pixels,
		})
	}

	stats := RenderStats{
		Tiles:   len(tiles),
		Workers: workerPool.GetNumWorkers(),
	}
	for i := 0; i < len(tiles); i++ {
		result, ok := workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		stats.Add(result.Stats)
		rt.logger.Debug().Int("tile", result.TaskID).Int("done", i+1).Int("total", len(tiles)).Msg("Tile complete")
	}
	workerPool.Stop()

	stats.Duration = time.Since(start)
	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}

	return pixels, stats, nil
}
