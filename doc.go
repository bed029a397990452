/*
Package facemark detects human faces in a directory tree of images and generates
annotated copies, which are either persisted into a target directory or displayed
one by one in a window.

The package provides a command line interface:

	$ facemark <directory_path> [--save <save_directory>]

In case you wish to integrate the detection pipeline in a self constructed
environment here is a simple example:

	package main

	import (
		"fmt"
		"image"
		_ "image/jpeg"
		"os"

		"github.com/mhorvath/facemark"
	)

	func main() {
		classifier, err := facemark.NewCascadeClassifier("data/facefinder")
		if err != nil {
			fmt.Printf("Error loading the classifier: %s", err.Error())
			return
		}
		p := facemark.NewProcessor(classifier)

		f, err := os.Open("portrait.jpg")
		if err != nil {
			fmt.Printf("Error opening the image: %s", err.Error())
			return
		}
		defer f.Close()

		img, _, err := image.Decode(f)
		if err != nil {
			fmt.Printf("Error decoding the image: %s", err.Error())
			return
		}

		faces, err := p.DetectFaces(img)
		if err != nil {
			fmt.Printf("Error detecting faces: %s", err.Error())
			return
		}
		fmt.Printf("Faces detected: %d", len(faces))
	}
*/
package facemark
