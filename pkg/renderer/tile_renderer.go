package renderer

import (
	"image"

	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/geometry"
	"github.com/df07/go-offline-pathtracer/pkg/integrator"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator.
// It holds only read-only state, so one instance can serve every worker.
type TileRenderer struct {
	camera          *geometry.Camera
	world           geometry.Shape
	integrator      integrator.Integrator
	width, height   int
	samplesPerPixel int
	maxDepth        int
}

// NewTileRenderer creates a new tile renderer
func NewTileRenderer(camera *geometry.Camera, world geometry.Shape, integratorInst integrator.Integrator,
	width, height, samplesPerPixel, maxDepth int) *TileRenderer {
	return &TileRenderer{
		camera:          camera,
		world:           world,
		integrator:      integratorInst,
		width:           width,
		height:          height,
		samplesPerPixel: samplesPerPixel,
		maxDepth:        maxDepth,
	}
}

// RenderTileBounds estimates every pixel inside bounds and writes the averaged
// linear radiance into pixels[y][x]. Rows are stored top-down.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixels [][]core.Vec3, sampler core.Sampler) RenderStats {
	stats := RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		// Camera t grows upward while image rows grow downward
		j := tr.height - 1 - y
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			pixels[y][i] = tr.samplePixel(i, j, sampler)
			stats.TotalSamples += tr.samplesPerPixel
		}
	}

	return stats
}

// samplePixel averages jittered samples over pixel column i and camera row j
func (tr *TileRenderer) samplePixel(i, j int, sampler core.Sampler) core.Vec3 {
	colorAccum := core.Vec3{}

	for sample := 0; sample < tr.samplesPerPixel; sample++ {
		jitter := sampler.Get2D()
		s := (float64(i) + jitter.X) / float64(tr.width)
		t := (float64(j) + jitter.Y) / float64(tr.height)

		ray := tr.camera.GetRay(s, t, sampler)
		colorAccum = colorAccum.Add(tr.integrator.RayColor(ray, tr.world, tr.maxDepth, sampler))
	}

	return colorAccum.Multiply(1.0 / float64(tr.samplesPerPixel))
}
