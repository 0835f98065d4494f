package renderer

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestImageFromPixelsFlips(t *testing.T) {
	// Two rows: bottom red, top blue.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := imageFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if r, _, b, _ := img.At(0, 0).RGBA(); b == 0 || r != 0 {
		t.Error("top row should be blue")
	}
	if r, _, _, _ := img.At(0, 1).RGBA(); r == 0 {
		t.Error("bottom row should be red")
	}
}

func TestImageFromPixelsSizeMismatch(t *testing.T) {
	if _, err := imageFromPixels(make([]byte, 7), 1, 2); err == nil {
		t.Error("short buffer accepted")
	}
	if _, err := imageFromPixels(nil, 0, 0); err == nil {
		t.Error("empty image accepted")
	}
}

func TestSavePNG(t *testing.T) {
	img, err := imageFromPixels(make([]byte, 2*2*4), 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(t.TempDir(), "shots")
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	path, err := savePNG(dir, "spaaace", at, img)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "spaaace_2026-01-02_03-04-05.000.png" {
		t.Errorf("path = %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("not a PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 2 {
		t.Errorf("width = %d", decoded.Bounds().Dx())
	}
}
