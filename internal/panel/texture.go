package panel

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// WriteTexture encodes the panel image to the reused texture location.
// The format follows the path extension: .webp and .tga for surfaces
// that upload raw pixels, anything else PNG (what SetOverlayFromFile
// consumes directly). The file is written to a temp name and renamed so
// the surface never reloads a half-written texture.
func WriteTexture(path string, img image.Image) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".overlay-*")
	if err != nil {
		return fmt.Errorf("panel: create texture temp file: %w", err)
	}
	tmpName := tmp.Name()

	err = encode(tmp, path, img)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmpName, path)
	}
	if err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("panel: write texture %s: %w", path, err)
	}
	return nil
}

func encode(f *os.File, path string, img image.Image) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp":
		return nativewebp.Encode(f, img, nil)
	case ".tga":
		return tga.Encode(f, img)
	default:
		return png.Encode(f, img)
	}
}
