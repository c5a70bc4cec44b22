package obstacle

import (
	"errors"
	"fmt"
	"image"
	"os"

	// Background images may arrive in any of the formats the original
	// tool accepted; register all decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ErrImageDecode marks a background image that could not be opened or
// decoded. Nothing is mutated when it is returned.
var ErrImageDecode = errors.New("image decode failed")

// LoadImage opens and decodes a background image file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageDecode, path, err)
	}
	return img, nil
}
