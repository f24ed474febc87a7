package common

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

var onePixelPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89,
}

func TestEncodeImageDataURI_SniffsPNG(t *testing.T) {
	uri, err := EncodeImageDataURI(onePixelPNG, "")
	if err != nil {
		t.Fatalf("EncodeImageDataURI error: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("unexpected prefix: %q", uri[:30])
	}

	data, contentType, err := DecodeImageDataURI(uri)
	if err != nil {
		t.Fatalf("DecodeImageDataURI error: %v", err)
	}
	if contentType != "image/png" {
		t.Errorf("expected image/png, got %q", contentType)
	}
	if !bytes.Equal(data, onePixelPNG) {
		t.Error("decoded payload does not match input")
	}
}

func TestEncodeImageDataURI_RejectsText(t *testing.T) {
	_, err := EncodeImageDataURI([]byte("just some notes about lunch"), "")
	if !errors.Is(err, ErrNotAnImage) {
		t.Fatalf("expected ErrNotAnImage, got %v", err)
	}
}

func TestDecodeImageDataURI_Errors(t *testing.T) {
	if _, _, err := DecodeImageDataURI("not a data uri"); err == nil {
		t.Error("expected error for malformed URI")
	}
	if _, _, err := DecodeImageDataURI("data:text/plain;base64,aGVsbG8="); !errors.Is(err, ErrNotAnImage) {
		t.Errorf("expected ErrNotAnImage, got %v", err)
	}
}

func TestSniffImageType_SVG(t *testing.T) {
	svg := []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1 1"></svg>`)
	if got := SniffImageType(svg); got != "image/svg+xml" {
		t.Errorf("expected image/svg+xml, got %q", got)
	}
}
