package facemark

import (
	"fmt"
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"
	"github.com/mhorvath/facemark/utils"
)

// FaceDetector is the face localization capability invoked by the detection
// pipeline. Implementations must be stateless after construction, so a single
// instance can be shared read-only across all pipeline invocations.
//
// DetectMultiScale searches the grayscale image with a sliding window, growing
// the window by the scaleStep ratio on each scale pass and never below minSize
// pixels. A candidate region must be corroborated by at least minNeighbors
// overlapping detector windows to be reported. The rectangles are returned in
// the detector's native order.
type FaceDetector interface {
	DetectMultiScale(img *image.Gray, scaleStep float64, minNeighbors, minSize int) []image.Rectangle
}

const (
	// shiftFactor moves the detection window by 10% of its size on each step.
	shiftFactor = 0.1

	// clusterIoU is the intersection over union threshold used to group the
	// raw detector windows belonging to the same face.
	clusterIoU = 0.2
)

// CascadeClassifier detects frontal faces using a pre-trained pigo binary
// cascade. It implements the FaceDetector interface.
type CascadeClassifier struct {
	classifier *pigo.Pigo
}

// NewCascadeClassifier reads and unpacks the binary cascade file. The cascade
// must be loaded once, before any image is processed; a load failure is fatal
// to the whole run.
func NewCascadeClassifier(path string) (c *CascadeClassifier, err error) {
	cascade, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading the cascade file: %v", err)
	}

	// Unpack indexes the cascade header without bound checks and panics on
	// truncated or garbage input, so the panic is converted into a load error.
	defer func() {
		if r := recover(); r != nil {
			c, err = nil, fmt.Errorf("error unpacking the cascade file: %v", r)
		}
	}()

	// Unpack the binary file. This will return the number of cascade trees,
	// the tree depth, the threshold and the prediction from tree's leaf nodes.
	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("error unpacking the cascade file: %v", err)
	}
	return &CascadeClassifier{classifier: classifier}, nil
}

// DetectMultiScale runs the cascade over the grayscale image and returns the
// corroborated face regions. The raw detector windows are clustered first, then
// the aggregated cluster score is gated against minNeighbors, since each
// overlapping window contributes its own positive score to the cluster.
func (c *CascadeClassifier) DetectMultiScale(img *image.Gray, scaleStep float64, minNeighbors, minSize int) []image.Rectangle {
	cols, rows := img.Bounds().Dx(), img.Bounds().Dy()

	cParams := pigo.CascadeParams{
		MinSize:     minSize,
		MaxSize:     utils.Min(cols, rows),
		ShiftFactor: shiftFactor,
		ScaleFactor: scaleStep,

		ImageParams: pigo.ImageParams{
			Pixels: img.Pix,
			Rows:   rows,
			Cols:   cols,
			Dim:    img.Stride,
		},
	}

	// Run the classifier over the obtained leaf nodes and return the detection
	// results. The result contains quadruplets representing the row, column,
	// scale and the detection score.
	dets := c.classifier.RunCascade(cParams, 0.0)
	dets = c.classifier.ClusterDetections(dets, clusterIoU)

	faces := make([]image.Rectangle, 0, len(dets))
	for _, det := range dets {
		if det.Q < float32(minNeighbors) {
			continue
		}
		faces = append(faces, detRect(det))
	}
	return faces
}

// detRect converts a center anchored square detection window
// into an axis-aligned rectangle in image pixel coordinates.
func detRect(det pigo.Detection) image.Rectangle {
	half := det.Scale / 2
	return image.Rect(det.Col-half, det.Row-half, det.Col-half+det.Scale, det.Row-half+det.Scale)
}
