package facemark

import (
	"image"
	"image/color"
	"image/draw"
)

var (
	// faceBorderColor is the color used to outline the detected face regions.
	faceBorderColor = color.NRGBA{B: 0xff, A: 0xff}

	// faceBorderThickness is the outline width in pixels.
	faceBorderThickness = 2
)

// DrawFaces outlines each detected face region on the annotated image.
// Rectangles partially outside the image are clipped against the image bounds.
func DrawFaces(img *image.NRGBA, faces []image.Rectangle) {
	for _, face := range faces {
		drawRect(img, face, faceBorderColor, faceBorderThickness)
	}
}

// drawRect strokes the rectangle border with the given color and thickness.
func drawRect(img *image.NRGBA, rect image.Rectangle, c color.NRGBA, thickness int) {
	fill := image.NewUniform(c)

	top := image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+thickness)
	bottom := image.Rect(rect.Min.X, rect.Max.Y-thickness, rect.Max.X, rect.Max.Y)
	left := image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+thickness, rect.Max.Y)
	right := image.Rect(rect.Max.X-thickness, rect.Min.Y, rect.Max.X, rect.Max.Y)

	for _, edge := range []image.Rectangle{top, bottom, left, right} {
		draw.Draw(img, edge.Intersect(img.Bounds()), fill, image.Point{}, draw.Src)
	}
}
