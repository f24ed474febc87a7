package commands

import (
	"bytes"
	"image/png"
	"testing"
)

func TestNewDownscaleCommand_Validation(t *testing.T) {
	tests := []struct {
		name    string
		params  map[string]any
		wantErr bool
	}{
		{"valid", map[string]any{"maxWidth": 1024, "maxHeight": 768}, false},
		{"float values from json", map[string]any{"maxWidth": float64(512), "maxHeight": float64(512)}, false},
		{"missing height", map[string]any{"maxWidth": 1024}, true},
		{"missing width", map[string]any{"maxHeight": 1024}, true},
		{"zero width", map[string]any{"maxWidth": 0, "maxHeight": 10}, true},
		{"negative height", map[string]any{"maxWidth": 10, "maxHeight": -5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDownscaleCommand(tt.params)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewDownscaleCommand() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDownscaleCommand_ShrinksPreservingAspect(t *testing.T) {
	command, err := NewDownscaleCommand(map[string]any{"maxWidth": 50, "maxHeight": 50})
	if err != nil {
		t.Fatalf("failed to create command: %v", err)
	}
	input := encodeTestPNG(t, newTestPhoto(t, 200, 100))

	result, err := command.Execute(input)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("output is not decodable: %v", err)
	}
	if img.Bounds().Dx() != 50 || img.Bounds().Dy() != 25 {
		t.Errorf("Expected 50x25, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestDownscaleCommand_NeverUpscales(t *testing.T) {
	command, err := NewDownscaleCommand(map[string]any{"maxWidth": 500, "maxHeight": 500})
	if err != nil {
		t.Fatalf("failed to create command: %v", err)
	}
	input := encodeTestPNG(t, newTestPhoto(t, 40, 30))

	result, err := command.Execute(input)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !bytes.Equal(result, input) {
		t.Error("Expected photo that already fits to be returned unchanged")
	}
}

func TestDownscaleCommand_RejectsNonPng(t *testing.T) {
	command, _ := NewDownscaleCommand(map[string]any{"maxWidth": 10, "maxHeight": 10})
	if _, err := command.Execute(encodeTestJPEG(t, newTestPhoto(t, 20, 20))); err == nil {
		t.Error("Expected error for JPEG input")
	}
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		srcW, srcH, maxW, maxH int
		wantW, wantH           int
	}{
		{100, 100, 200, 200, 100, 100},
		{400, 200, 100, 100, 100, 50},
		{200, 400, 100, 100, 50, 100},
		{1000, 10, 10, 10, 10, 1},
		{3000, 1, 10, 10, 10, 1},
	}
	for _, tt := range tests {
		w, h := fitWithin(tt.srcW, tt.srcH, tt.maxW, tt.maxH)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("fitWithin(%d,%d,%d,%d) = %dx%d, want %dx%d",
				tt.srcW, tt.srcH, tt.maxW, tt.maxH, w, h, tt.wantW, tt.wantH)
		}
	}
}
