package signature

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"

	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
)

// Captured signature images arrive as png/jpeg screenshots of a drawing
// pad. They are normalized to a bounded webp before storage so contract
// rows reference small, uniform objects.

const maxWidth = 800

// Normalize decodes an uploaded signature image, scales it down to at
// most maxWidth, and re-encodes it as lossless webp.
func Normalize(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, httperr.ErrValidation("invalid_signature_image")
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxWidth {
		h := bounds.Dy() * maxWidth / bounds.Dx()
		scaled := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
		xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, bounds, xdraw.Over, nil)
		img = scaled
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Lossless: true}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
