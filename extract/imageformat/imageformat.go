// Package imageformat sniffs the format of already-decoded image bytes
// that the extractor could not otherwise classify from the PDF's /Filter
// entry: an image stream decoded straight to raw samples by
// core.Stream.Decode (e.g. a CCITTFaxDecode page scan re-encoded by the
// caller, or image data with no recognized PDF-native filter name) still
// needs a concrete container format before it can be embedded as media in
// the packaged document.
//
// Registers golang.org/x/image's BMP and TIFF decoders alongside the
// standard library's GIF/PNG/JPEG ones so image.DecodeConfig recognizes
// every format the packaged document's media folder is allowed to hold.
package imageformat

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Sniff identifies the container format of data by reading its header,
// returning the format name ("png", "jpg", "gif", "bmp", "tiff") and
// true if recognized. JPEG data is reported as "jpg", the extension the
// packager expects.
func Sniff(data []byte) (string, bool) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width == 0 {
		return "", false
	}
	if format == "jpeg" {
		format = "jpg"
	}
	return format, true
}
