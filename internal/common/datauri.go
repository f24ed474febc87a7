package common

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/vincent-petithory/dataurl"
)

var ErrNotAnImage = errors.New("content is not an image")

// DecodeImageDataURI returns the payload and media type of an image data URI
func DecodeImageDataURI(uri string) ([]byte, string, error) {
	decoded, err := dataurl.DecodeString(uri)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode data URI: %w", err)
	}
	contentType := decoded.MediaType.ContentType()
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", fmt.Errorf("%w: %s", ErrNotAnImage, contentType)
	}
	return decoded.Data, contentType, nil
}

// EncodeImageDataURI base64-encodes image bytes into a data URI. An empty
// content type is sniffed from the data.
func EncodeImageDataURI(data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = SniffImageType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotAnImage, contentType)
	}
	return dataurl.New(data, contentType).String(), nil
}

// SniffImageType detects the media type of data. SVG documents are reported
// as image/svg+xml, which http.DetectContentType does not recognise.
func SniffImageType(data []byte) string {
	contentType := http.DetectContentType(data)
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	if strings.HasPrefix(contentType, "text/") {
		head := data
		if len(head) > 4096 {
			head = head[:4096]
		}
		if strings.Contains(strings.ToLower(string(head)), "<svg") {
			return "image/svg+xml"
		}
	}
	return contentType
}
