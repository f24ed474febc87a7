package commands

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log/slog"

	"github.com/jo-hoe/proteinlens/internal/backend/commandstructure"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const pngConverterName = "PngConverterCommand"

var pngSignature = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

func hasPngSignature(data []byte) bool {
	return len(data) >= len(pngSignature) && bytes.Equal(data[:len(pngSignature)], pngSignature)
}

// PngConverterCommand normalizes any supported photo format to PNG so the
// following commands only have to deal with a single encoding.
type PngConverterCommand struct {
	name              string
	svgFallbackWidth  int
	svgFallbackHeight int
	svgBackground     color.Color
	reencodePng       bool
}

var svgBackgrounds = map[string]color.Color{
	"white":       color.White,
	"transparent": color.Transparent,
}

// NewPngConverterCommand reads the optional parameters:
//   - svgFallbackWidth/svgFallbackHeight: size for SVG documents without a view box
//   - svgBackground: "white" (default) or "transparent"
//   - reencodePng: decode and re-encode PNG input, dropping ancillary chunks
func NewPngConverterCommand(params map[string]any) (commandstructure.Command, error) {
	w := commandstructure.GetIntParam(params, "svgFallbackWidth", 0)
	h := commandstructure.GetIntParam(params, "svgFallbackHeight", 0)
	if w < 0 || h < 0 {
		return nil, fmt.Errorf("svg fallback size must not be negative, got %dx%d", w, h)
	}

	backgroundName := commandstructure.GetStringParam(params, "svgBackground", "white")
	background, ok := svgBackgrounds[backgroundName]
	if !ok {
		return nil, fmt.Errorf("invalid svgBackground: %s (must be 'white' or 'transparent')", backgroundName)
	}

	return &PngConverterCommand{
		name:              pngConverterName,
		svgFallbackWidth:  w,
		svgFallbackHeight: h,
		svgBackground:     background,
		reencodePng:       commandstructure.GetBoolParam(params, "reencodePng", false),
	}, nil
}

func (c *PngConverterCommand) Name() string {
	return c.name
}

func (c *PngConverterCommand) Execute(imageData []byte) ([]byte, error) {
	if hasPngSignature(imageData) && !c.reencodePng {
		slog.Debug("PngConverterCommand: PNG detected; returning original bytes")
		return imageData, nil
	}

	if isSVGData(imageData) {
		return c.convertSVG(imageData)
	}

	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode photo: %w", err)
	}

	slog.Debug("PngConverterCommand: decoded photo",
		"format", format,
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy())

	return encodePNG(img)
}

func (c *PngConverterCommand) convertSVG(imageData []byte) ([]byte, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}

	w, h := int(icon.ViewBox.W), int(icon.ViewBox.H)
	if w <= 0 || h <= 0 {
		w, h = c.svgFallbackWidth, c.svgFallbackHeight
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("SVG has no view box and no fallback size is configured")
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	dst := createTargetCanvas(w, h, c.svgBackground)
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	slog.Debug("PngConverterCommand: rendered SVG", "width", w, "height", h)
	return encodePNG(dst)
}

// isSVGData looks for an svg start tag in the first 4KB
func isSVGData(data []byte) bool {
	n := len(data)
	if n == 0 {
		return false
	}
	if n > 4096 {
		n = 4096
	}
	header := bytes.ToLower(data[:n])
	return bytes.Contains(header, []byte("<svg"))
}

func createTargetCanvas(w, h int, bg color.Color) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	return dst
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func init() {
	if err := commandstructure.DefaultRegistry.Register(pngConverterName, NewPngConverterCommand); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", pngConverterName, err))
	}
}
