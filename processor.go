package facemark

import (
	"image"

	"github.com/mhorvath/facemark/utils"
)

// Default detection sensitivity parameters.
const (
	// DefaultScaleStep grows the detection window by 10% on each scale pass.
	DefaultScaleStep = 1.1

	// DefaultMinNeighbors is the number of overlapping detector windows a
	// candidate region must be corroborated by in order to be reported.
	DefaultMinNeighbors = 10

	// minFaceSize is the smallest detection window used regardless of the
	// image resolution, so detection is never disabled on small images.
	minFaceSize = 60
)

// DetectorConfig holds the immutable parameters governing the detection
// sensitivity. The minimum window size is not part of the config, since it is
// derived per image from the image resolution.
type DetectorConfig struct {
	ScaleStep    float64
	MinNeighbors int
}

// MinWindowSize derives the minimum detection window from the image
// resolution. Windows smaller than a tenth of the shorter image side cannot
// contain a plausible face, yet a sane floor is guaranteed on small images.
func (c DetectorConfig) MinWindowSize(width, height int) int {
	return utils.Max(minFaceSize, utils.Min(width, height)/10)
}

// Processor bundles the detection configuration with the shared face detector
// capability. The capability is constructed once at startup and reused
// read-only across all the processed images.
type Processor struct {
	DetectorConfig
	FaceDetector FaceDetector
	Spinner      *utils.Spinner
}

// NewProcessor returns a Processor with the default sensitivity parameters
// wired to the provided detector capability.
func NewProcessor(fd FaceDetector) *Processor {
	return &Processor{
		DetectorConfig: DetectorConfig{
			ScaleStep:    DefaultScaleStep,
			MinNeighbors: DefaultMinNeighbors,
		},
		FaceDetector: fd,
	}
}

// DetectFaces runs the detection pipeline over a single image: the image is
// preprocessed, the classifier is invoked with the per image minimum window
// size and the overlapping candidate regions are deduplicated. A stage failure
// aborts the pipeline for this image only. The source image is never retained
// beyond the call.
func (p *Processor) DetectFaces(img image.Image) ([]image.Rectangle, error) {
	gray, err := Preprocess(img)
	if err != nil {
		return nil, err
	}

	b := gray.Bounds()
	minSize := p.MinWindowSize(b.Dx(), b.Dy())

	faces := p.FaceDetector.DetectMultiScale(gray, p.ScaleStep, p.MinNeighbors, minSize)

	return SuppressOverlaps(faces), nil
}
