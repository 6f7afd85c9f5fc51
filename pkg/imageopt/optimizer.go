// Package imageopt turns arbitrary uploaded images into size-bounded WebP blobs.
package imageopt

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	// WebP sources are accepted as input as well
	_ "golang.org/x/image/webp"
)

// DefaultQuality is the fixed lossy WebP quality applied to every asset
const DefaultQuality = 0.85

const ContentType = "image/webp"

var (
	ErrDecode = errors.New("image could not be decoded")
	ErrEncode = errors.New("image could not be encoded")
)

// Result is an optimized image ready for upload
type Result struct {
	Data   []byte
	Width  int
	Height int
}

func (r *Result) Size() int64 {
	return int64(len(r.Data))
}

// Optimizer decodes, downsizes and re-encodes an image to fit a bounding box
type Optimizer interface {
	Optimize(r io.Reader, maxWidth, maxHeight int) (*Result, error)
}

type webpOptimizer struct {
	quality float32
}

// NewWebPOptimizer returns an Optimizer encoding lossy WebP. quality is in [0,1].
func NewWebPOptimizer(quality float64) Optimizer {
	if quality <= 0 || quality > 1 {
		quality = DefaultQuality
	}
	return &webpOptimizer{quality: float32(quality * 100)}
}

func (o *webpOptimizer) Optimize(r io.Reader, maxWidth, maxHeight int) (*Result, error) {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := src.Bounds()
	width, height := FitWithin(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)

	var img image.Image = src
	if width != bounds.Dx() || height != bounds.Dy() {
		img = imaging.Resize(src, width, height, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: o.quality}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("%w: encoder produced no output", ErrEncode)
	}

	return &Result{Data: buf.Bytes(), Width: width, Height: height}, nil
}

// FitWithin scales width and height down to fit inside maxWidth x maxHeight,
// preserving aspect ratio. The width limit is applied first, then the height
// limit, so the result satisfies both. Images are never scaled up.
func FitWithin(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= 0 || height <= 0 {
		return width, height
	}

	w, h := float64(width), float64(height)
	if maxWidth > 0 && w > float64(maxWidth) {
		h = h * float64(maxWidth) / w
		w = float64(maxWidth)
	}
	if maxHeight > 0 && h > float64(maxHeight) {
		w = w * float64(maxHeight) / h
		h = float64(maxHeight)
	}

	return atLeastOne(w), atLeastOne(h)
}

func atLeastOne(v float64) int {
	n := int(math.Round(v))
	if n < 1 {
		return 1
	}
	return n
}
