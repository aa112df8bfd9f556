package output

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255})
	img.SetRGBA(1, 1, color.RGBA{10, 20, 30, 255})
	return img
}

func TestWritePPM(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePPM(&buf, testImage()))

	expected := "P3\n2 2\n255\n" +
		"255 0 0\n" +
		"0 255 0\n" +
		"0 0 255\n" +
		"10 20 30\n"
	assert.Equal(t, expected, buf.String())
}

func TestWritePPM_SubImageUsesOwnBounds(t *testing.T) {
	sub := testImage().SubImage(image.Rect(1, 1, 2, 2))

	var buf bytes.Buffer
	require.NoError(t, WritePPM(&buf, sub))
	assert.Equal(t, "P3\n1 1\n255\n10 20 30\n", buf.String())
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	img := testImage()

	ppmPath := filepath.Join(dir, "nested", "render.ppm")
	require.NoError(t, Save(ppmPath, img))
	data, err := os.ReadFile(ppmPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("P3\n2 2\n255\n")))

	pngPath := filepath.Join(dir, "render.PNG")
	require.NoError(t, Save(pngPath, img))
	file, err := os.Open(pngPath)
	require.NoError(t, err)
	defer file.Close()
	decoded, err := png.Decode(file)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
	r, g, b, _ := decoded.At(1, 1).RGBA()
	assert.Equal(t, []uint32{10, 20, 30}, []uint32{r >> 8, g >> 8, b >> 8})

	err = Save(filepath.Join(dir, "render.jpg"), img)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
