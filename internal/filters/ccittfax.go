package filters

import (
	"bytes"
	"io"

	"golang.org/x/image/ccitt"
)

// CCITTFaxDecode decodes CCITT Group 3/4 fax compressed data, the format
// scanners commonly emit for bi-level (black and white) page images.
//
// Recognized decode parameters:
//   - K: subformat selector (<0 selects Group 4, >=0 selects Group 3)
//   - Columns: image width in pixels (default 1728)
//   - Rows: image height in pixels (default 0, meaning auto-detect)
//   - BlackIs1: bit polarity (default false; maps to ccitt.Options.Invert)
func CCITTFaxDecode(data []byte, params Params) ([]byte, error) {
	columns := getIntParam(params, "Columns", 1728)
	rows := getIntParam(params, "Rows", 0)
	k := getIntParam(params, "K", 0)
	blackIs1 := boolParam(params, "BlackIs1", false)

	subFormat := ccitt.Group3
	if k < 0 {
		subFormat = ccitt.Group4
	}

	if rows == 0 {
		rows = ccitt.AutoDetectHeight
	}

	r := ccitt.NewReader(bytes.NewReader(data), ccitt.MSB, subFormat, columns, rows, &ccitt.Options{Invert: blackIs1})
	return io.ReadAll(r)
}

// boolParam reads a boolean-valued decode parameter, falling back to
// defaultValue when it is absent or of the wrong type.
func boolParam(params Params, key string, defaultValue bool) bool {
	if params == nil {
		return defaultValue
	}
	obj, ok := params[key]
	if !ok {
		return defaultValue
	}
	if b, ok := obj.(bool); ok {
		return b
	}
	return defaultValue
}
