package facemark

import (
	"image"
	"image/color"
	"testing"
)

func TestFilter_ShouldRejectEmptyImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 0, 0))

	res, err := Preprocess(img)
	if err != ErrInvalidImage {
		t.Errorf("Empty image expected to be rejected with ErrInvalidImage. Got %v", err)
	}
	if res != nil {
		t.Errorf("No output expected for an empty image. Got %v", res.Bounds())
	}
}

func TestFilter_ShouldPreserveImageDimensions(t *testing.T) {
	const width, height = 37, 23

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 11), B: uint8(x + y), A: 255})
		}
	}

	res, err := Preprocess(img)
	if err != nil {
		t.Fatalf("Preprocessing should not fail: %v", err)
	}
	if res.Bounds().Dx() != width || res.Bounds().Dy() != height {
		t.Errorf("Output dimensions expected to be %dx%d. Got %dx%d",
			width, height, res.Bounds().Dx(), res.Bounds().Dy())
	}
}

func TestFilter_ShouldNotMutateSourceImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 13)
	}
	orig := make([]uint8, len(img.Pix))
	copy(orig, img.Pix)

	if _, err := Preprocess(img); err != nil {
		t.Fatalf("Preprocessing should not fail: %v", err)
	}

	for i := range img.Pix {
		if img.Pix[i] != orig[i] {
			t.Fatalf("Source image expected to be left untouched, pixel %d changed", i)
		}
	}
}

func TestFilter_EqualizeShouldStretchContrast(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if y < 5 {
				img.SetGray(x, y, color.Gray{Y: 100})
			} else {
				img.SetGray(x, y, color.Gray{Y: 120})
			}
		}
	}

	res := equalizeHist(img)

	if got := res.GrayAt(0, 0).Y; got != 0 {
		t.Errorf("Lower intensity level expected to be remapped to 0. Got %d", got)
	}
	if got := res.GrayAt(0, 9).Y; got != 255 {
		t.Errorf("Upper intensity level expected to be remapped to 255. Got %d", got)
	}
}

func TestFilter_EqualizeShouldKeepUniformImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 77
	}

	res := equalizeHist(img)

	for i := range res.Pix {
		if res.Pix[i] != 77 {
			t.Fatalf("A single intensity level image expected to stay unchanged. Got %d at index %d", res.Pix[i], i)
		}
	}
}

func TestFilter_BilateralShouldKeepUniformImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 20, 20))
	for i := range img.Pix {
		img.Pix[i] = 128
	}

	res := bilateralFilter(img, bilateralDiameter, bilateralSigmaColor, bilateralSigmaSpace)

	for i := range res.Pix {
		if res.Pix[i] != 128 {
			t.Fatalf("Uniform image expected to stay unchanged. Got %d at index %d", res.Pix[i], i)
		}
	}
}

func TestFilter_BilateralShouldPreserveStrongEdges(t *testing.T) {
	const width, height = 24, 24

	// Hard vertical edge running through the middle of the image.
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x >= width/2 {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	res := bilateralFilter(img, bilateralDiameter, bilateralSigmaColor, bilateralSigmaSpace)

	if got := res.GrayAt(width/2-1, height/2).Y; got > 10 {
		t.Errorf("Dark side of the edge expected to stay dark. Got %d", got)
	}
	if got := res.GrayAt(width/2, height/2).Y; got < 245 {
		t.Errorf("Bright side of the edge expected to stay bright. Got %d", got)
	}
}
