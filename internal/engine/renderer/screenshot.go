package renderer

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// Screenshot reads the back buffer and writes it as PNG into dir. It
// returns the file path. Call before the buffers are swapped.
func (r *Renderer) Screenshot(dir string) (string, error) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	img, err := imageFromPixels(pixels, w, h)
	if err != nil {
		return "", err
	}
	path, err := savePNG(dir, "spaaace", time.Now(), img)
	if err != nil {
		return "", err
	}
	r.log.Info("screenshot saved", zap.String("path", path))
	return path, nil
}

// imageFromPixels converts bottom-up RGBA rows, as GL returns them, into
// a top-down image.
func imageFromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: %dx%d with %d bytes", width, height, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := range height {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

func savePNG(dir, prefix string, at time.Time, img image.Image) (string, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", prefix, at.Format("2006-01-02_15-04-05.000")))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return path, nil
}
