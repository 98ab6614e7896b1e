// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging normalizes uploaded pictures before they reach storage:
// format sniffing, EXIF orientation, width capping and re-encoding.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder
)

// Formats returned by DetectFormat.
const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
	FormatGIF  = "gif"
	FormatWebP = "webp"
)

// Defaults for uploaded pictures.
const (
	DefaultMaxWidth    = 1920
	DefaultJPEGQuality = 90
)

// ErrUnsupportedFormat is returned for data that is not JPEG, PNG, GIF or WebP.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Result is a processed image ready to be stored.
type Result struct {
	Data     []byte
	Format   string
	MimeType string
	Width    int
	Height   int
}

// Ext returns the file extension used for the result's format.
func (r *Result) Ext() string {
	if r.Format == FormatJPEG {
		return "jpg"
	}
	return r.Format
}

// Processor resizes and re-encodes images. The zero value is not usable;
// call NewProcessor.
type Processor struct {
	maxWidth int
	quality  int
}

// NewProcessor returns a processor capping width at maxWidth pixels and
// encoding JPEGs at quality. Non-positive values fall back to the defaults.
func NewProcessor(maxWidth, quality int) *Processor {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return &Processor{maxWidth: maxWidth, quality: quality}
}

// MaxWidth returns the configured width cap.
func (p *Processor) MaxWidth() int {
	return p.maxWidth
}

// Fit keeps the source format. GIFs are returned byte-for-byte so animation
// survives. Other formats are decoded, oriented and, when wider than the
// cap, downscaled and re-encoded; narrow images without rotation are
// returned untouched.
func (p *Processor) Fit(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}

	format := DetectFormat(data)
	if format == "" {
		return nil, ErrUnsupportedFormat
	}

	if format == FormatGIF {
		cfg, err := gif.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decoding gif: %w", err)
		}
		return &Result{Data: data, Format: format, MimeType: MimeType(format), Width: cfg.Width, Height: cfg.Height}, nil
	}

	img, orientation, err := decode(data)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	if b.Dx() <= p.maxWidth && orientation == 1 {
		return &Result{Data: data, Format: format, MimeType: MimeType(format), Width: b.Dx(), Height: b.Dy()}, nil
	}

	img = p.capWidth(applyOrientation(img, orientation))

	// WebP has no pure Go encoder, so it is written out as JPEG.
	outFormat := format
	if outFormat == FormatWebP {
		outFormat = FormatJPEG
	}

	encoded, err := encodeImage(img, outFormat, p.quality)
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return &Result{
		Data:     encoded,
		Format:   outFormat,
		MimeType: MimeType(outFormat),
		Width:    img.Bounds().Dx(),
		Height:   img.Bounds().Dy(),
	}, nil
}

// ToJPEG decodes any supported format, applies EXIF orientation, caps the
// width and always re-encodes as JPEG. Only the first frame of a GIF is kept.
func (p *Processor) ToJPEG(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}
	if DetectFormat(data) == "" {
		return nil, ErrUnsupportedFormat
	}

	img, orientation, err := decode(data)
	if err != nil {
		return nil, err
	}
	img = p.capWidth(applyOrientation(img, orientation))

	encoded, err := encodeImage(img, FormatJPEG, p.quality)
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return &Result{
		Data:     encoded,
		Format:   FormatJPEG,
		MimeType: MimeType(FormatJPEG),
		Width:    img.Bounds().Dx(),
		Height:   img.Bounds().Dy(),
	}, nil
}

func (p *Processor) capWidth(img image.Image) image.Image {
	if img.Bounds().Dx() <= p.maxWidth {
		return img
	}
	return imaging.Resize(img, p.maxWidth, 0, imaging.Lanczos)
}

func decode(data []byte) (image.Image, int, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("decoding image: %w", err)
	}
	return img, readExifOrientation(bytes.NewReader(data)), nil
}

// readExifOrientation returns 1 (normal) when the tag is absent or unreadable.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil || orientation < 1 || orientation > 8 {
		return 1
	}
	return orientation
}

// applyOrientation maps EXIF orientation 2..8 onto flips and rotations.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

func encodeImage(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case FormatPNG:
		err = png.Encode(&buf, img)
	case FormatGIF:
		err = gif.Encode(&buf, img, nil)
	default:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DetectFormat sniffs the content and returns one of the Format constants,
// or "" when the data is not a supported image. TIFF is always rejected
// (CVE-2023-36308 in disintegration/imaging).
func DetectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	switch {
	case strings.Contains(contentType, "tiff"):
		return ""
	case strings.Contains(contentType, "jpeg"):
		return FormatJPEG
	case strings.Contains(contentType, "png"):
		return FormatPNG
	case strings.Contains(contentType, "gif"):
		return FormatGIF
	case strings.Contains(contentType, "webp"):
		return FormatWebP
	default:
		return ""
	}
}

// MimeType converts a format to its MIME type.
func MimeType(format string) string {
	switch format {
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	case FormatGIF:
		return "image/gif"
	case FormatWebP:
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
