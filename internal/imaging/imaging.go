// Package imaging turns one uploaded photo into the JPEG stored for a listing.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"math"

	"github.com/kolesa-team/go-webp/decoder"
	"golang.org/x/image/draw"
)

const (
	// MaxWidth and MaxHeight bound the stored image; larger inputs are scaled to fit inside.
	MaxWidth  = 1600
	MaxHeight = 1200
	// Quality is the JPEG quality of every stored image.
	Quality = 80
	// ContentType of the transform output.
	ContentType = "image/jpeg"

	maxPixels = 64 << 20
)

var (
	ErrEmpty    = errors.New("empty upload")
	ErrDecode   = errors.New("decode image")
	ErrTooLarge = errors.New("image dimensions too large")
)

// Result is the outcome of one Transform call: encoded bytes on success, Err otherwise.
type Result struct {
	Data   []byte
	Width  int
	Height int
	Err    error
}

// OK reports whether the transform produced an image.
func (r Result) OK() bool {
	return r.Err == nil && len(r.Data) > 0
}

// Failed wraps err into a failure Result.
func Failed(err error) Result {
	return Result{Err: err}
}

// Transform decodes data, flattens transparency onto white, fits the image into
// MaxWidth x MaxHeight and re-encodes it as JPEG. It never panics; every problem
// is reported through Result.Err. Safe for concurrent use.
func Transform(data []byte) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = Failed(fmt.Errorf("transform panic: %v", p))
		}
	}()

	img, err := decode(data)
	if err != nil {
		return Failed(err)
	}

	out := fit(flatten(img), MaxWidth, MaxHeight)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: Quality}); err != nil {
		return Failed(fmt.Errorf("encode jpeg: %w", err))
	}
	b := out.Bounds()
	return Result{Data: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}
}

// FitSize returns the size of a w x h image scaled down to fit within maxW x maxH,
// preserving aspect ratio. Sizes already inside the box are returned unchanged.
func FitSize(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := clamp(int(math.Round(float64(w)*scale)), 1, maxW)
	nh := clamp(int(math.Round(float64(h)*scale)), 1, maxH)
	return nw, nh
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if isWEBP(data) {
		return decodeWEBP(data)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := checkSize(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// decodeWEBP reads the bitstream features first so oversized canvases are rejected
// before any pixel buffer is allocated.
func decodeWEBP(data []byte) (image.Image, error) {
	dec, err := decoder.NewDecoder(bytes.NewReader(data), &decoder.Options{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	f := dec.GetFeatures()
	if err := checkSize(f.Width, f.Height); err != nil {
		return nil, err
	}
	img, err := dec.Decode()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

func checkSize(w, h int) error {
	if w <= 0 || h <= 0 || w*h > maxPixels {
		return fmt.Errorf("%w: %dx%d", ErrTooLarge, w, h)
	}
	return nil
}

func isWEBP(data []byte) bool {
	if len(data) < 12 {
		return false
	}
	return string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP"
}

// flatten copies img into an opaque RGBA canvas. Images that may carry alpha
// are composited over white first.
func flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if isOpaque(img) {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}

func fit(src *image.RGBA, maxW, maxH int) *image.RGBA {
	b := src.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), maxW, maxH)
	if w == b.Dx() && h == b.Dy() {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
