// Command obstacletool runs obstacle extraction on a map image without
// the GUI: it prints the resulting world rectangles as JSON and can
// write the green cell preview next to the input.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	"areaviewer/internal/obstacle"
	"areaviewer/internal/version"
	"areaviewer/pkg/colorutil"
	"areaviewer/pkg/geometry"
)

func main() {
	imagePath := flag.String("image", "", "Path to map image (PNG, JPEG, GIF, BMP or TIFF)")
	colorHex := flag.String("color", "#000000", "Obstacle color as #rrggbb")
	tolerance := flag.Int("tolerance", 40, "Color match tolerance (Manhattan RGB distance)")
	cellSize := flag.Int("cellsize", 10, "Analysis cell edge in pixels")
	footprintStr := flag.String("footprint", "", "World footprint as x,y,width,height (default image pixels as meters)")
	previewPath := flag.String("preview", "", "Write extraction preview PNG to this path")
	suggest := flag.Bool("suggest", false, "Suggest an obstacle color from the image and exit")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	if *imagePath == "" {
		fmt.Println("Usage: obstacletool -image <path> [-color #rrggbb] [-tolerance 40] [-cellsize 10]")
		os.Exit(1)
	}

	img, err := obstacle.LoadImage(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading image: %v\n", err)
		os.Exit(1)
	}

	if *suggest {
		c, err := obstacle.SuggestColor(img)
		if err != nil {
			fmt.Fprintf(os.Stderr, "suggesting color: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(colorutil.Hex(c))
		return
	}

	target, err := colorutil.ParseHex(*colorHex)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	footprint := geometry.NewRect(0, 0,
		float64(img.Bounds().Dx()), float64(img.Bounds().Dy()))
	if *footprintStr != "" {
		if footprint, err = parseFootprint(*footprintStr); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	mask := obstacle.ExtractMask(img, obstacle.Params{
		Target:    target,
		Tolerance: *tolerance,
		CellSize:  *cellSize,
	})
	fmt.Fprintf(os.Stderr, "marked %d of %d cells\n", mask.Count(), mask.Cols*mask.Rows)

	if *previewPath != "" {
		if err := writePreview(*previewPath, img, mask); err != nil {
			fmt.Fprintf(os.Stderr, "writing preview: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", *previewPath)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(mask.Rects(footprint)); err != nil {
		fmt.Fprintf(os.Stderr, "encoding rects: %v\n", err)
		os.Exit(1)
	}
}

func parseFootprint(s string) (geometry.Rect, error) {
	var r geometry.Rect
	if _, err := fmt.Sscanf(s, "%f,%f,%f,%f", &r.X, &r.Y, &r.Width, &r.Height); err != nil {
		return geometry.Rect{}, fmt.Errorf("invalid footprint %q: want x,y,width,height", s)
	}
	return r, nil
}

// writePreview composites the translucent cell overlay onto the source
// image, the same view the analyze dialog shows interactively.
func writePreview(path string, img image.Image, mask *obstacle.Mask) error {
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	overlay := mask.Overlay()
	draw.Draw(out, out.Bounds(), overlay, image.Point{}, draw.Over)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, out)
}
