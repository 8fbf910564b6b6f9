package signature

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/chai2010/webp"

	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 10 {
		img.Set(x, h/2, color.Black)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestNormalize(t *testing.T) {
	out, err := Normalize(pngBytes(t, 400, 200))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	img, err := webp.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not webp: %v", err)
	}
	if img.Bounds().Dx() != 400 {
		t.Fatalf("small image must not be scaled, got width %d", img.Bounds().Dx())
	}
}

func TestNormalizeScalesDown(t *testing.T) {
	out, err := Normalize(pngBytes(t, 1600, 400))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	img, err := webp.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode webp: %v", err)
	}
	if img.Bounds().Dx() != maxWidth {
		t.Fatalf("width = %d, want %d", img.Bounds().Dx(), maxWidth)
	}
	if img.Bounds().Dy() != 200 {
		t.Fatalf("height = %d, want aspect-preserving 200", img.Bounds().Dy())
	}
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	_, err := Normalize([]byte("not an image"))
	if !httperr.IsBusiness(err, "invalid_signature_image") {
		t.Fatalf("expected invalid_signature_image, got %v", err)
	}
}
