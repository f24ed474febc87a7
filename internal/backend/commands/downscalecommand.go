package commands

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log/slog"

	"github.com/jo-hoe/proteinlens/internal/backend/commandstructure"
)

const downscaleName = "DownscaleCommand"

// DownscaleParams bounds the photo size sent to the model
type DownscaleParams struct {
	MaxWidth  int
	MaxHeight int
}

// NewDownscaleParamsFromMap requires both maxWidth and maxHeight
func NewDownscaleParamsFromMap(params map[string]any) (*DownscaleParams, error) {
	if err := commandstructure.ValidateRequiredParams(params, []string{"maxWidth", "maxHeight"}); err != nil {
		return nil, err
	}

	maxWidth := commandstructure.GetIntParam(params, "maxWidth", 0)
	maxHeight := commandstructure.GetIntParam(params, "maxHeight", 0)
	if maxWidth <= 0 {
		return nil, fmt.Errorf("maxWidth must be positive, got %d", maxWidth)
	}
	if maxHeight <= 0 {
		return nil, fmt.Errorf("maxHeight must be positive, got %d", maxHeight)
	}

	return &DownscaleParams{MaxWidth: maxWidth, MaxHeight: maxHeight}, nil
}

// DownscaleCommand shrinks a PNG photo until it fits the configured bounding
// box. The aspect ratio is kept and photos that already fit are left untouched.
type DownscaleCommand struct {
	name   string
	params *DownscaleParams
}

func NewDownscaleCommand(params map[string]any) (commandstructure.Command, error) {
	typedParams, err := NewDownscaleParamsFromMap(params)
	if err != nil {
		return nil, err
	}

	return &DownscaleCommand{
		name:   downscaleName,
		params: typedParams,
	}, nil
}

func (c *DownscaleCommand) Name() string {
	return c.name
}

func (c *DownscaleCommand) GetParams() *DownscaleParams {
	return c.params
}

func (c *DownscaleCommand) Execute(imageData []byte) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode PNG image: %w", err)
	}

	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	dstW, dstH := fitWithin(srcW, srcH, c.params.MaxWidth, c.params.MaxHeight)
	if dstW == srcW && dstH == srcH {
		slog.Debug("DownscaleCommand: photo already fits", "width", srcW, "height", srcH)
		return imageData, nil
	}

	slog.Debug("DownscaleCommand: scaling photo",
		"original_width", srcW,
		"original_height", srcH,
		"target_width", dstW,
		"target_height", dstH)

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	parallelFor(dstH, func(y int) {
		srcY := bounds.Min.Y + y*srcH/dstH
		for x := 0; x < dstW; x++ {
			srcX := bounds.Min.X + x*srcW/dstW
			dst.Set(x, y, img.At(srcX, srcY))
		}
	})

	return encodePNG(dst)
}

// fitWithin returns the largest size with the source aspect ratio that fits
// maxW x maxH, or the source size if it already fits. Neither side drops below 1.
func fitWithin(srcW, srcH, maxW, maxH int) (int, int) {
	if srcW <= maxW && srcH <= maxH {
		return srcW, srcH
	}
	scale := float64(maxW) / float64(srcW)
	if s := float64(maxH) / float64(srcH); s < scale {
		scale = s
	}
	w := int(float64(srcW) * scale)
	h := int(float64(srcH) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func init() {
	if err := commandstructure.DefaultRegistry.Register(downscaleName, NewDownscaleCommand); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", downscaleName, err))
	}
}
