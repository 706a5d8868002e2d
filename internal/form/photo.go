package form

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const sniffLen = 512

// photoMediaType returns the media type declared by the file extension, falling back to
// content sniffing when the extension is unknown.
func photoMediaType(path string) (string, error) {
	if declared := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); declared != "" {
		mediaType, _, err := mime.ParseMediaType(declared)
		if err == nil {
			return mediaType, nil
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open photo: %w", err)
	}
	defer file.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read photo header: %w", err)
	}

	mediaType, _, _ := strings.Cut(http.DetectContentType(head[:n]), ";")
	return mediaType, nil
}

// encodePhoto reads the whole file into a data URL.
func encodePhoto(path, mediaType string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read photo: %w", err)
	}

	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}
