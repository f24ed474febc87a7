package commands

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/jo-hoe/proteinlens/internal/backend/commandstructure"
)

func newTestPhoto(t *testing.T, w, h int) image.Image {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	return img
}

func encodeTestJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func encodeTestPNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func TestNewPngConverterCommand(t *testing.T) {
	command, err := NewPngConverterCommand(map[string]any{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if command.Name() != "PngConverterCommand" {
		t.Errorf("Expected name 'PngConverterCommand', got '%s'", command.Name())
	}

	if _, err := NewPngConverterCommand(map[string]any{"svgFallbackWidth": -1}); err == nil {
		t.Error("Expected error for negative fallback width")
	}
}

func TestPngConverterCommand_Execute_InvalidImage(t *testing.T) {
	command, _ := NewPngConverterCommand(map[string]any{})

	if _, err := command.Execute([]byte("not a valid image")); err == nil {
		t.Error("Expected error for invalid image data, got nil")
	}
}

func TestPngConverterCommand_Execute_AlreadyPng(t *testing.T) {
	command, _ := NewPngConverterCommand(map[string]any{})
	input := encodeTestPNG(t, newTestPhoto(t, 4, 3))

	result, err := command.Execute(input)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !bytes.Equal(result, input) {
		t.Error("Expected PNG input to be returned unchanged")
	}
}

func TestPngConverterCommand_Execute_Jpeg(t *testing.T) {
	command, _ := NewPngConverterCommand(map[string]any{})
	input := encodeTestJPEG(t, newTestPhoto(t, 16, 8))

	result, err := command.Execute(input)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !hasPngSignature(result) {
		t.Fatal("Expected PNG output")
	}
	img, err := png.Decode(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("output is not decodable: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 8 {
		t.Errorf("Expected 16x8, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestPngConverterCommand_Execute_SvgWithViewBox(t *testing.T) {
	command, _ := NewPngConverterCommand(map[string]any{})
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 20 10"><rect x="0" y="0" width="20" height="10" fill="#ff0000"/></svg>`)

	result, err := command.Execute(svg)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	img, err := png.Decode(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("output is not decodable: %v", err)
	}
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 10 {
		t.Errorf("Expected 20x10, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestPngConverterCommand_Execute_SvgFallbackSize(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"><circle cx="5" cy="5" r="4" fill="#00ff00"/></svg>`)

	noFallback, _ := NewPngConverterCommand(map[string]any{})
	if _, err := noFallback.Execute(svg); err == nil {
		t.Error("Expected error for SVG without size and without fallback")
	}

	withFallback, _ := NewPngConverterCommand(map[string]any{"svgFallbackWidth": 12, "svgFallbackHeight": 6})
	result, err := withFallback.Execute(svg)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	img, err := png.Decode(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("output is not decodable: %v", err)
	}
	if img.Bounds().Dx() != 12 || img.Bounds().Dy() != 6 {
		t.Errorf("Expected 12x6, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestPngConverterCommand_Execute_ReencodePng(t *testing.T) {
	command, err := NewPngConverterCommand(map[string]any{"reencodePng": "true"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	input := encodeTestPNG(t, newTestPhoto(t, 5, 7))

	result, err := command.Execute(input)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	img, err := png.Decode(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("output is not decodable: %v", err)
	}
	if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 7 {
		t.Errorf("Expected 5x7, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestPngConverterCommand_SvgBackground(t *testing.T) {
	if _, err := NewPngConverterCommand(map[string]any{"svgBackground": "plaid"}); err == nil {
		t.Error("Expected error for unknown svgBackground")
	}

	command, err := NewPngConverterCommand(map[string]any{"svgBackground": "transparent"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"></svg>`)
	result, err := command.Execute(svg)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	img, err := png.Decode(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("output is not decodable: %v", err)
	}
	if _, _, _, a := img.At(5, 5).RGBA(); a != 0 {
		t.Errorf("Expected transparent pixel, got alpha %d", a)
	}
}

func TestDefaultRegistry_HasCommands(t *testing.T) {
	for _, name := range []string{"PngConverterCommand", "DownscaleCommand"} {
		if !commandstructure.DefaultRegistry.IsRegistered(name) {
			t.Errorf("Expected %s to be registered in DefaultRegistry", name)
		}
	}
}
