package upload

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// MaxBytes is the upload size cap enforced by the analysis server.
const MaxBytes int64 = 10 * 1024 * 1024

var (
	ErrInvalidFileType  = errors.New("file is not an image")
	ErrFileTooLarge     = errors.New("image exceeds the 10 MiB limit")
	ErrNoFileSelected   = errors.New("no image selected")
	ErrAnalysisInFlight = errors.New("analysis already in progress")
)

// SelectedFile is an image staged for analysis.
type SelectedFile struct {
	Name      string
	Path      string
	MediaType string
	Size      int64
	Data      []byte
}

// Load reads a candidate file from disk and sniffs its media type.
// It does not validate; acceptance is decided by Widget.Select so a
// rejected candidate never disturbs the current selection.
func Load(path string) (SelectedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SelectedFile{}, fmt.Errorf("read %s: %w", path, err)
	}
	return SelectedFile{
		Name:      filepath.Base(path),
		Path:      path,
		MediaType: sniffMediaType(data, path),
		Size:      int64(len(data)),
		Data:      data,
	}, nil
}

// sniffMediaType detects the media type from content, falling back to the
// file extension for formats the sniffer cannot place.
func sniffMediaType(data []byte, path string) string {
	mt := http.DetectContentType(data)
	if mt == "application/octet-stream" {
		if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
			return byExt
		}
	}
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return strings.TrimSpace(mt)
}

// Validate applies the acceptance rules in order: media type first, then
// size. maxBytes <= 0 falls back to MaxBytes.
func Validate(f SelectedFile, maxBytes int64) error {
	if !strings.HasPrefix(f.MediaType, "image/") {
		return ErrInvalidFileType
	}
	if maxBytes <= 0 {
		maxBytes = MaxBytes
	}
	if f.Size > maxBytes {
		return ErrFileTooLarge
	}
	return nil
}
