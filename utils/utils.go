package utils

import (
	"bytes"
	"log"
	"net/http"
	"os"
)

// The two TIFF byte order marks, little and big endian. The content sniffing
// table of net/http follows the WHATWG specification, which has no TIFF entry,
// so the TIFF magic numbers are matched explicitly.
var tiffMagic = [][]byte{
	[]byte("II*\x00"),
	[]byte("MM\x00*"),
}

// DetectContentType detects the file type by reading MIME type information of the file content.
func DetectContentType(fname string) (string, error) {
	file, err := os.Open(fname)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("could not close the opened file: %v", err)
		}
	}()

	// Only the first 512 bytes are used to sniff the content type.
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil {
		return "", err
	}

	for _, magic := range tiffMagic {
		if bytes.HasPrefix(buffer[:n], magic) {
			return "image/tiff", nil
		}
	}

	// Always returns a valid content-type and "application/octet-stream" if no others seemed to match.
	contentType := http.DetectContentType(buffer[:n])

	return contentType, nil
}
