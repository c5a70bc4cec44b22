package obstacle

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// SuggestColor proposes an obstacle target color by k-means clustering
// the image in LAB space and picking the darkest cluster center with a
// meaningful population. Walls and buildings on map imagery are almost
// always the dark ink.
//
// It is an optional helper for the analyze dialog; extraction itself
// never requires it.
func SuggestColor(img image.Image) (color.RGBA, error) {
	const numClusters = 4

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("convert image: %w", err)
	}
	defer mat.Close()
	if mat.Empty() {
		return color.RGBA{}, fmt.Errorf("empty image")
	}

	lab := gocv.NewMat()
	defer lab.Close()
	gocv.CvtColor(mat, &lab, gocv.ColorRGBToLab)

	// Reshape for k-means: (h*w) x 3 float32.
	h, w := lab.Rows(), lab.Cols()
	pixels := gocv.NewMatWithSize(h*w, 3, gocv.MatTypeCV32F)
	defer pixels.Close()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			vec := lab.GetVecbAt(y, x)
			pixels.SetFloatAt(idx, 0, float32(vec[0]))
			pixels.SetFloatAt(idx, 1, float32(vec[1]))
			pixels.SetFloatAt(idx, 2, float32(vec[2]))
		}
	}

	labels := gocv.NewMat()
	defer labels.Close()
	centers := gocv.NewMat()
	defer centers.Close()

	criteria := gocv.NewTermCriteria(gocv.EPS+gocv.MaxIter, 100, 0.2)
	gocv.KMeans(pixels, numClusters, &labels, criteria, 10, gocv.KMeansRandomCenters, &centers)

	// Count cluster populations.
	counts := make([]int, numClusters)
	for i := 0; i < h*w; i++ {
		counts[labels.GetIntAt(i, 0)]++
	}

	// Pick the darkest cluster holding at least 2% of the pixels.
	best := -1
	bestL := float32(256)
	minCount := h * w / 50
	for i := 0; i < numClusters; i++ {
		if counts[i] < minCount {
			continue
		}
		if l := centers.GetFloatAt(i, 0); l < bestL {
			bestL = l
			best = i
		}
	}
	if best < 0 {
		return color.RGBA{}, fmt.Errorf("no dominant cluster found")
	}

	// Convert the single LAB center back to RGB.
	center := gocv.NewMatWithSize(1, 1, gocv.MatTypeCV8UC3)
	defer center.Close()
	center.SetUCharAt(0, 0, uint8(centers.GetFloatAt(best, 0)))
	center.SetUCharAt(0, 1, uint8(centers.GetFloatAt(best, 1)))
	center.SetUCharAt(0, 2, uint8(centers.GetFloatAt(best, 2)))

	rgb := gocv.NewMat()
	defer rgb.Close()
	gocv.CvtColor(center, &rgb, gocv.ColorLabToRGB)

	vec := rgb.GetVecbAt(0, 0)
	return color.RGBA{R: vec[0], G: vec[1], B: vec[2], A: 255}, nil
}
