// Package preview renders the local preview for a selected image: a
// half-block thumbnail for the terminal plus a small set of facts
// (dimensions, size, EXIF highlights).
package preview

import (
	"bytes"
	"fmt"
	"image"
	"strings"
	"time"

	// formats the analysis server accepts, plus webp for local preview
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/charmbracelet/lipgloss"
	"github.com/evanoberholster/imagemeta"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/jask/pixlens/internal/upload"
)

// DefaultWidth is the thumbnail width in terminal cells.
const DefaultWidth = 40

// Facts summarizes the selected image for the preview panel.
type Facts struct {
	Width     int
	Height    int
	MediaType string
	Size      int64
	Camera    string
	Taken     time.Time
}

// HasEXIF reports whether any EXIF-derived field is populated.
func (f Facts) HasEXIF() bool {
	return f.Camera != "" || !f.Taken.IsZero()
}

// Lines renders the facts for display, one per row.
func (f Facts) Lines() []string {
	lines := []string{
		fmt.Sprintf("%d x %d px", f.Width, f.Height),
		fmt.Sprintf("%s, %s", f.MediaType, humanSize(f.Size)),
	}
	if f.Camera != "" {
		lines = append(lines, f.Camera)
	}
	if !f.Taken.IsZero() {
		lines = append(lines, "taken "+f.Taken.Format("2 Jan 2006 15:04"))
	}
	return lines
}

// Extract decodes image dimensions and, where present, EXIF highlights.
// EXIF absence is normal (screenshots, processed images) and never an
// error; only an undecodable image fails.
func Extract(f upload.SelectedFile) (Facts, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(f.Data))
	if err != nil {
		return Facts{}, fmt.Errorf("decode %s: %w", f.Name, err)
	}
	facts := Facts{
		Width:     cfg.Width,
		Height:    cfg.Height,
		MediaType: f.MediaType,
		Size:      f.Size,
	}

	exif, err := imagemeta.Decode(bytes.NewReader(f.Data))
	if err != nil {
		return facts, nil
	}
	camera := strings.TrimSpace(strings.TrimSpace(exif.Make) + " " + strings.TrimSpace(exif.Model))
	facts.Camera = camera
	if !exif.DateTimeOriginal().IsZero() {
		facts.Taken = exif.DateTimeOriginal()
	} else if !exif.CreateDate().IsZero() {
		facts.Taken = exif.CreateDate()
	}
	return facts, nil
}

// Thumbnail renders the image as lipgloss-styled half-block rows, two
// pixels per cell vertically. width <= 0 uses DefaultWidth.
func Thumbnail(data []byte, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return "", fmt.Errorf("empty image")
	}
	if b.Dx() < width {
		width = b.Dx()
	}
	// terminal cells are ~2:1, and each cell holds two pixel rows
	pxHeight := b.Dy() * width / b.Dx()
	if pxHeight < 2 {
		pxHeight = 2
	}
	if pxHeight%2 == 1 {
		pxHeight++
	}

	scaled := image.NewRGBA(image.Rect(0, 0, width, pxHeight))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), src, b, draw.Over, nil)

	var sb strings.Builder
	for y := 0; y < pxHeight; y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < width; x++ {
			top := hexAt(scaled, x, y)
			bottom := hexAt(scaled, x, y+1)
			cell := lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render("▀")
			sb.WriteString(cell)
		}
	}
	return sb.String(), nil
}

func hexAt(img *image.RGBA, x, y int) string {
	c := img.RGBAAt(x, y)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
