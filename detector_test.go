package facemark

import (
	"os"
	"path/filepath"
	"testing"

	pigo "github.com/esimov/pigo/core"
)

func TestDetector_ShouldConvertDetectionToRect(t *testing.T) {
	det := pigo.Detection{Row: 100, Col: 60, Scale: 40}

	r := detRect(det)

	if r.Min.X != 40 || r.Min.Y != 80 {
		t.Errorf("Rectangle origin expected to be (40, 80). Got (%d, %d)", r.Min.X, r.Min.Y)
	}
	if r.Dx() != 40 || r.Dy() != 40 {
		t.Errorf("Rectangle size expected to be 40x40. Got %dx%d", r.Dx(), r.Dy())
	}
}

func TestDetector_ShouldKeepOddWindowSize(t *testing.T) {
	det := pigo.Detection{Row: 50, Col: 50, Scale: 41}

	r := detRect(det)

	if r.Dx() != det.Scale || r.Dy() != det.Scale {
		t.Errorf("Rectangle size expected to match the window scale %d. Got %dx%d", det.Scale, r.Dx(), r.Dy())
	}
}

func TestDetector_ShouldFailOnMissingCascade(t *testing.T) {
	_, err := NewCascadeClassifier(filepath.Join(t.TempDir(), "no-such-cascade"))
	if err == nil {
		t.Errorf("Loading a missing cascade file expected to fail")
	}
}

func TestDetector_ShouldFailOnCorruptCascade(t *testing.T) {
	testCases := []struct {
		name    string
		payload []byte
	}{
		{"garbage content", []byte("not a cascade")},
		{"truncated header", []byte{0x23}},
		{"empty file", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cascade")
			if err := os.WriteFile(path, tc.payload, 0644); err != nil {
				t.Fatalf("could not write the test file: %v", err)
			}

			classifier, err := NewCascadeClassifier(path)
			if err == nil {
				t.Errorf("Loading a corrupt cascade file expected to fail")
			}
			if classifier != nil {
				t.Errorf("No classifier expected for a corrupt cascade file. Got %v", classifier)
			}
		})
	}
}
