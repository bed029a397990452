package facemark

import (
	"image"

	"github.com/mhorvath/facemark/utils"
)

// overlapThreshold is the maximum tolerated area overlap ratio between
// two retained face regions.
const overlapThreshold = 0.3

// SuppressOverlaps deduplicates the candidate face regions reported by the
// classifier. The candidates are scanned in input order and a candidate is
// discarded when its overlap ratio against any already retained rectangle
// exceeds the threshold, which means the earliest seen rectangle always wins
// over a later overlapping one, regardless of their relative sizes.
func SuppressOverlaps(candidates []image.Rectangle) []image.Rectangle {
	retained := make([]image.Rectangle, 0, len(candidates))

	for _, candidate := range candidates {
		overlapping := false
		for _, face := range retained {
			if overlapRatio(candidate, face) > overlapThreshold {
				overlapping = true
				break
			}
		}
		if !overlapping {
			retained = append(retained, candidate)
		}
	}
	return retained
}

// overlapRatio returns the intersection area of the two rectangles over
// the area of the smaller one.
func overlapRatio(a, b image.Rectangle) float64 {
	inter := a.Intersect(b)
	if inter.Empty() {
		return 0
	}
	minArea := utils.Min(a.Dx()*a.Dy(), b.Dx()*b.Dy())
	if minArea == 0 {
		return 0
	}
	return float64(inter.Dx()*inter.Dy()) / float64(minArea)
}
