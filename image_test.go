package facemark

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestImage_ShouldRecognizeSupportedExtensions(t *testing.T) {
	testCases := []struct {
		path     string
		expected bool
	}{
		{"photo.jpg", true},
		{"photo.jpeg", true},
		{"photo.png", true},
		{"photo.bmp", true},
		{"photo.gif", true},
		{"photo.tiff", true},
		{"photo.JPG", true},
		{"photo.JPeG", true},
		{"dir/photo.PNG", true},
		{"photo.txt", false},
		{"photo.jpg.bak", false},
		{"photo", false},
		{"jpg", false},
	}

	for _, tc := range testCases {
		if got := isImageFile(tc.path); got != tc.expected {
			t.Errorf("isImageFile(%q) expected to be %v. Got %v", tc.path, tc.expected, got)
		}
	}
}

func TestImage_ShouldFailOnMissingFile(t *testing.T) {
	_, err := decodeImg(filepath.Join(t.TempDir(), "missing.jpg"))
	if err == nil {
		t.Errorf("Decoding a missing file expected to fail")
	}
}

func TestImage_ShouldFailOnCorruptImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.jpg")
	if err := os.WriteFile(path, []byte("this is not an image"), 0644); err != nil {
		t.Fatalf("could not write the test file: %v", err)
	}

	_, err := decodeImg(path)
	if err == nil {
		t.Errorf("Decoding a corrupt image expected to fail")
	}
}

func TestImage_ShouldDecodeEncodedImage(t *testing.T) {
	src := testImage(32, 24)

	for _, ext := range imageExtensions {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sample"+ext)

			if err := encodeImg(path, src); err != nil {
				t.Fatalf("could not encode the test image: %v", err)
			}

			img, err := decodeImg(path)
			if err != nil {
				t.Fatalf("could not decode the encoded image: %v", err)
			}
			if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 24 {
				t.Errorf("Decoded image expected to be 32x24. Got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
			}
		})
	}
}

func TestImage_ShouldRejectUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.webp")

	if err := encodeImg(path, testImage(8, 8)); err == nil {
		t.Errorf("Encoding into an unsupported format expected to fail")
	}
}

func TestImage_ShouldCreateSaveDirectory(t *testing.T) {
	saveDir := filepath.Join(t.TempDir(), "annotated", "nested")

	dst, err := saveImg(saveDir, "out.png", testImage(16, 16))
	if err != nil {
		t.Fatalf("could not save the test image: %v", err)
	}

	file, err := os.Open(dst)
	if err != nil {
		t.Fatalf("the saved image should exist: %v", err)
	}
	defer file.Close()

	if _, err := png.Decode(file); err != nil {
		t.Errorf("the saved image should be a decodable png: %v", err)
	}
}

func TestImage_ImgToNRGBA(t *testing.T) {
	// A source image with a non-zero min point must be translated to origin.
	src := image.NewRGBA(image.Rect(-3, -2, 13, 14))
	dst := imgToNRGBA(src)

	if dst.Bounds().Min.X != 0 || dst.Bounds().Min.Y != 0 {
		t.Errorf("Converted image expected to start at origin. Got %v", dst.Bounds().Min)
	}
	if dst.Bounds().Dx() != 16 || dst.Bounds().Dy() != 16 {
		t.Errorf("Converted image expected to be 16x16. Got %dx%d", dst.Bounds().Dx(), dst.Bounds().Dy())
	}
}
