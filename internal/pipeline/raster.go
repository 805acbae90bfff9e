package pipeline

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"sort"
	"sync"

	"github.com/nfnt/resize"
)

// Encoder turns a decoded image into bytes of one output format. png and jpg
// encoders ship built in; webp and avif are seams for cgo or external
// encoders and register themselves when available. Conversions targeting an
// unregistered format are skipped with a warning, never a crash.
type Encoder interface {
	Format() string
	Encode(img image.Image, quality int) ([]byte, error)
}

var (
	encodersMu sync.RWMutex
	encoders   = map[string]Encoder{}
)

// RegisterEncoder installs an encoder, replacing any previous one for the
// same format.
func RegisterEncoder(e Encoder) {
	encodersMu.Lock()
	defer encodersMu.Unlock()
	encoders[e.Format()] = e
}

// LookupEncoder returns the encoder for a format.
func LookupEncoder(format string) (Encoder, bool) {
	encodersMu.RLock()
	defer encodersMu.RUnlock()
	e, ok := encoders[format]
	return e, ok
}

// EncoderFormats lists the registered output formats, sorted.
func EncoderFormats() []string {
	encodersMu.RLock()
	defer encodersMu.RUnlock()
	formats := make([]string, 0, len(encoders))
	for f := range encoders {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}

func init() {
	RegisterEncoder(pngEncoder{})
	RegisterEncoder(jpegEncoder{})
}

type pngEncoder struct{}

func (pngEncoder) Format() string { return "png" }

func (pngEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if quality >= 95 {
		enc.CompressionLevel = png.DefaultCompression
	}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type jpegEncoder struct{}

func (jpegEncoder) Format() string { return "jpg" }

func (jpegEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeImage decodes a png or jpg source file.
func DecodeImage(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// Scale resizes img to the given width. Height 0 preserves the aspect
// ratio. Lanczos3 trades speed for the quality expected of logo assets.
func Scale(img image.Image, width, height int) image.Image {
	return resize.Resize(uint(width), uint(height), img, resize.Lanczos3)
}
