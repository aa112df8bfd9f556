package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-offline-pathtracer/pkg/core"
)

func TestDefaultWorkerCount(t *testing.T) {
	assert.Greater(t, DefaultWorkerCount(), 0)
}

func TestWorkerPool_RendersEveryTile(t *testing.T) {
	const width, height = 20, 13
	mock := &MockIntegrator{returnColor: core.NewVec3(1, 0.5, 0.25)}
	tr := NewTileRenderer(createTestCamera(), nil, mock, width, height, 2, 3)
	pixels := newPixelBuffer(width, height)

	tiles := NewTileGrid(width, height, 8, 42)
	pool := NewWorkerPool(tr, 3, len(tiles))
	assert.Equal(t, 3, pool.GetNumWorkers())

	pool.Start()
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, Pixels: pixels})
	}

	seen := make(map[int]bool)
	total := RenderStats{}
	for range tiles {
		result, ok := pool.GetResult()
		require.True(t, ok)
		seen[result.TaskID] = true
		total.Add(result.Stats)
	}
	pool.Stop()

	assert.Len(t, seen, len(tiles))
	assert.Equal(t, width*height, total.TotalPixels)
	assert.Equal(t, width*height*2, total.TotalSamples)
	assert.Equal(t, int64(width*height*2), mock.callCount.Load())
	for y := range pixels {
		for x := range pixels[y] {
			assert.Equal(t, mock.returnColor, pixels[y][x])
		}
	}

	_, ok := pool.GetResult()
	assert.False(t, ok, "result queue closes after Stop")
}
