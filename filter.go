package facemark

import (
	"errors"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// ErrInvalidImage is returned when an image with zero width or height
// is fed into the detection pipeline.
var ErrInvalidImage = errors.New("invalid image: zero width or height")

const (
	// gaussianSigma is the smoothing strength equivalent to a 5x5 Gaussian kernel.
	gaussianSigma = 1.1

	// Bilateral filter parameters: the pixel neighborhood diameter and the
	// intensity and spatial falloff.
	bilateralDiameter   = 9
	bilateralSigmaColor = 75.0
	bilateralSigmaSpace = 75.0
)

// Preprocess normalizes the source image prior to face detection. It converts
// the image to grayscale, suppresses the high frequency sensor noise with a small
// Gaussian kernel, equalizes the intensity histogram to compensate for the
// lighting conditions and finally applies an edge preserving bilateral filter,
// since the classifier relies on the face region edges.
// The returned image has the same dimensions as the source, which is left untouched.
func Preprocess(src image.Image) (*image.Gray, error) {
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, ErrInvalidImage
	}

	gray := imaging.Grayscale(src)
	blurred := imaging.Blur(gray, gaussianSigma)

	img := equalizeHist(toGray(blurred))

	return bilateralFilter(img, bilateralDiameter, bilateralSigmaColor, bilateralSigmaSpace), nil
}

// toGray reduces an already desaturated NRGBA image to a single channel image.
func toGray(src *image.NRGBA) *image.Gray {
	dx, dy := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewGray(image.Rect(0, 0, dx, dy))

	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			dst.Pix[y*dst.Stride+x] = src.Pix[y*src.Stride+x*4]
		}
	}
	return dst
}

// equalizeHist spreads out the most frequent intensity values over the full
// dynamic range by remapping each pixel through the cumulative distribution
// of the image histogram. A uniform image is returned unchanged.
func equalizeHist(src *image.Gray) *image.Gray {
	dx, dy := src.Bounds().Dx(), src.Bounds().Dy()

	var hist [256]int
	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			hist[src.Pix[y*src.Stride+x]]++
		}
	}

	// Build the cumulative distribution and retain the first nonzero entry.
	var cdf [256]int
	sum := 0
	cdfMin := 0
	for i, h := range hist {
		sum += h
		cdf[i] = sum
		if cdfMin == 0 && h > 0 {
			cdfMin = cdf[i]
		}
	}

	total := dx * dy
	if total == cdfMin {
		// A single intensity level, nothing to equalize.
		return src
	}

	var lut [256]uint8
	for i := range lut {
		if cdf[i] < cdfMin {
			continue
		}
		lut[i] = uint8(math.Round(float64(cdf[i]-cdfMin) / float64(total-cdfMin) * 255.0))
	}

	dst := image.NewGray(image.Rect(0, 0, dx, dy))
	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			dst.Pix[y*dst.Stride+x] = lut[src.Pix[y*src.Stride+x]]
		}
	}
	return dst
}

// bilateralFilter smooths the image while preserving the region edges.
// Each pixel is replaced with a weighted average of its neighborhood, where the
// weights decay both with the spatial distance and the intensity difference,
// so that pixels across a strong edge barely contribute.
func bilateralFilter(src *image.Gray, diameter int, sigmaColor, sigmaSpace float64) *image.Gray {
	dx, dy := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewGray(image.Rect(0, 0, dx, dy))

	radius := diameter / 2

	// The spatial weights depend only on the window offsets and the intensity
	// weights only on the pixel difference, so both can be precomputed.
	spatial := make([]float64, diameter*diameter)
	for ky := -radius; ky <= radius; ky++ {
		for kx := -radius; kx <= radius; kx++ {
			d2 := float64(kx*kx + ky*ky)
			spatial[(ky+radius)*diameter+(kx+radius)] = math.Exp(-d2 / (2 * sigmaSpace * sigmaSpace))
		}
	}
	var intensity [256]float64
	for i := range intensity {
		intensity[i] = math.Exp(-float64(i*i) / (2 * sigmaColor * sigmaColor))
	}

	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			center := src.Pix[y*src.Stride+x]

			var sum, norm float64
			for ky := -radius; ky <= radius; ky++ {
				for kx := -radius; kx <= radius; kx++ {
					// Replicate the border pixels on the image edges.
					px := clamp(x+kx, 0, dx-1)
					py := clamp(y+ky, 0, dy-1)

					neighbor := src.Pix[py*src.Stride+px]
					diff := int(center) - int(neighbor)
					if diff < 0 {
						diff = -diff
					}
					w := spatial[(ky+radius)*diameter+(kx+radius)] * intensity[diff]
					sum += w * float64(neighbor)
					norm += w
				}
			}
			dst.Pix[y*dst.Stride+x] = uint8(math.Round(sum / norm))
		}
	}
	return dst
}

// clamp limits the value between the provided min and max range.
func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
