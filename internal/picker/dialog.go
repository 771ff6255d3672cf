package picker

import (
	"errors"

	"github.com/ncruces/zenity"
)

// ErrCancelled reports that the user dismissed the native dialog.
var ErrCancelled = errors.New("file selection cancelled")

// NativeDialog opens the OS file-picker restricted to image files. Returns
// ErrCancelled when the user backs out.
func NativeDialog(startDir string) (string, error) {
	opts := []zenity.Option{
		zenity.Title("Select an image"),
		zenity.FileFilters{
			{
				Name:     "Image files",
				Patterns: []string{"*.png", "*.jpg", "*.jpeg", "*.gif", "*.webp"},
			},
		},
	}
	if startDir != "" {
		opts = append(opts, zenity.Filename(startDir+"/"))
	}
	selected, err := zenity.SelectFile(opts...)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", ErrCancelled
		}
		return "", err
	}
	return selected, nil
}
