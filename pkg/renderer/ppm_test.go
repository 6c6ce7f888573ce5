package renderer

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestEncodePPM(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255})
	img.SetRGBA(1, 1, color.RGBA{12, 34, 56, 255})

	var buf bytes.Buffer
	if err := EncodePPM(&buf, img); err != nil {
		t.Fatalf("EncodePPM() error: %v", err)
	}

	expected := "P3\n2 2\n255\n255 0 0\n0 255 0\n0 0 255\n12 34 56\n"
	if buf.String() != expected {
		t.Errorf("EncodePPM() =\n%q\nwant\n%q", buf.String(), expected)
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestEncodePPM_WriteError(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if err := EncodePPM(failingWriter{}, img); err == nil {
		t.Error("Expected error from failing writer")
	}
}
