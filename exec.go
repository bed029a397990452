package facemark

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mhorvath/facemark/utils"
)

// Ops holds the directory traversal options of the current run.
type Ops struct {
	// Dir is the root of the processed directory tree.
	Dir string
	// SaveDir is the target directory of the annotated copies.
	SaveDir string
	// ShouldSave selects between persisting the annotated copies and
	// displaying them one by one. The mode is fixed for the whole run.
	ShouldSave bool
}

// Execute traverses the directory tree and runs the detection pipeline over
// every recognized image file, one image at a time. Per-image failures are
// reported and skipped without aborting the traversal.
func (p *Processor) Execute(op *Ops) {
	now := time.Now()

	done := make(chan interface{})
	defer close(done)

	paths, errc := walkDir(done, op.Dir)

	for path := range paths {
		p.processImage(op, path)
	}

	if err := <-errc; err != nil {
		fmt.Fprintf(os.Stderr, "%s\n",
			utils.DecorateText(fmt.Sprintf("Error processing directory: %v", err), utils.ErrorMessage))
	}

	fmt.Fprintf(os.Stderr, "%s %s\n",
		utils.DecorateText("Processing completed.", utils.StatusMessage),
		utils.DecorateText(fmt.Sprintf("Execution time: %s", utils.FormatTime(time.Since(now))), utils.DefaultMessage),
	)
}

// processImage runs the detection pipeline over a single image file and hands
// the annotated result over to the selected presenter. Any failure is soft:
// it is logged and the image is skipped.
func (p *Processor) processImage(op *Ops, path string) {
	fmt.Fprintf(os.Stderr, "%s %s\n",
		utils.DecorateText("Processing image:", utils.StatusMessage), path)

	src, err := decodeImg(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n",
			utils.DecorateText(fmt.Sprintf("Could not open or find the image %s: %v", path, err), utils.ErrorMessage))
		return
	}

	if p.Spinner != nil {
		p.Spinner.Start()
	}
	faces, err := p.DetectFaces(src)
	if p.Spinner != nil {
		p.Spinner.Stop()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n",
			utils.DecorateText(fmt.Sprintf("Skipping %s: %v", path, err), utils.ErrorMessage))
		return
	}

	if len(faces) == 0 {
		fmt.Fprintf(os.Stderr, "%s\n", utils.DecorateText("No faces detected.", utils.DefaultMessage))
		return
	}
	fmt.Fprintf(os.Stderr, "%s\n",
		utils.DecorateText(fmt.Sprintf("Faces detected: %d", len(faces)), utils.SuccessMessage))

	img := imgToNRGBA(src)
	for _, face := range faces {
		fmt.Printf("Face at: x=%d, y=%d, width=%d, height=%d\n",
			face.Min.X, face.Min.Y, face.Dx(), face.Dy())
	}
	DrawFaces(img, faces)

	if op.ShouldSave {
		dst, err := saveImg(op.SaveDir, filepath.Base(path), img)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n",
				utils.DecorateText(fmt.Sprintf("Failed to save the image to %s: %v", op.SaveDir, err), utils.ErrorMessage))
			return
		}
		fmt.Fprintf(os.Stderr, "%s %s\n",
			utils.DecorateText("Saved processed image to:", utils.SuccessMessage), dst)
	} else {
		fmt.Fprintf(os.Stderr, "%s\n",
			utils.DecorateText("Press any key to continue to the next image...", utils.DefaultMessage))

		gui := NewGUI(img, filepath.Base(path))
		if err := gui.Show(); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n",
				utils.DecorateText(fmt.Sprintf("Display error: %v", err), utils.ErrorMessage))
		}
	}
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each regular image file to a new
// channel. It finishes in case the done channel is getting closed.
func walkDir(done <-chan interface{}, root string) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(root, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() {
				return nil
			}
			if !isImageFile(path) {
				return nil
			}

			select {
			case <-done:
				return errors.New("directory walk cancelled")
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}
