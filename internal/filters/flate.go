package filters

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// Params carries a stream's /DecodeParms entries, keyed by the PDF name
// (Predictor, Columns, Colors, BitsPerComponent, ...) after conversion from
// core.Dict.
type Params map[string]interface{}

// FlateDecode inflates zlib/deflate compressed stream data and, when the
// decode parameters name a predictor other than 1 (no prediction), undoes it.
func FlateDecode(data []byte, params Params) ([]byte, error) {
	raw, err := inflateZlib(data)
	if err != nil {
		return nil, fmt.Errorf("zlib decompression failed: %w", err)
	}

	predictor := getIntParam(params, "Predictor", 1)
	if predictor == 1 {
		return raw, nil
	}

	unpredicted, err := undoPredictor(raw, predictor, params)
	if err != nil {
		return nil, fmt.Errorf("predictor failed: %w", err)
	}
	return unpredicted, nil
}

func inflateZlib(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create zlib reader: %w", err)
	}
	defer zr.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, zr); err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	return buf.Bytes(), nil
}

// undoPredictor reverses the row-prediction scheme named by predictor:
// 2 is the TIFF predictor, 10-15 select one of the five PNG row filters
// (the PNG predictor byte at the start of each row picks among them).
func undoPredictor(data []byte, predictor int, params Params) ([]byte, error) {
	switch {
	case predictor == 2:
		return undoTIFFPredictor2(data, params)
	case predictor >= 10 && predictor <= 15:
		return undoPNGPredictor(data, params)
	default:
		return nil, fmt.Errorf("unsupported predictor: %d", predictor)
	}
}

// undoTIFFPredictor2 reverses horizontal differencing across each row: every
// sample (after the first bytesPerPixel worth) was stored as a delta from the
// same-colored sample one pixel to its left.
func undoTIFFPredictor2(data []byte, params Params) ([]byte, error) {
	columns := getIntParam(params, "Columns", 1)
	colors := getIntParam(params, "Colors", 1)
	bpc := getIntParam(params, "BitsPerComponent", 8)
	if bpc != 8 {
		return nil, fmt.Errorf("TIFF Predictor 2 only supports 8 bits per component, got %d", bpc)
	}

	rowSize := columns * colors
	if rowSize == 0 || len(data)%rowSize != 0 {
		return nil, fmt.Errorf("data size %d is not a multiple of row size %d", len(data), rowSize)
	}

	out := make([]byte, len(data))
	for row := 0; row < len(data)/rowSize; row++ {
		base := row * rowSize
		for col := 0; col < rowSize; col++ {
			idx := base + col
			if col < colors {
				out[idx] = data[idx]
				continue
			}
			out[idx] = data[idx] + out[idx-colors]
		}
	}
	return out, nil
}

// undoPNGPredictor strips the PNG filter-type byte that precedes each row and
// reverses whichever of the five PNG row filters it names.
func undoPNGPredictor(data []byte, params Params) ([]byte, error) {
	columns := getIntParam(params, "Columns", 1)
	colors := getIntParam(params, "Colors", 1)
	bpc := getIntParam(params, "BitsPerComponent", 8)
	if bpc != 8 {
		return nil, fmt.Errorf("PNG predictor only supports 8 bits per component, got %d", bpc)
	}

	bytesPerPixel := colors
	rowStride := columns * colors
	rowSize := rowStride + 1 // leading filter-type byte
	if rowSize == 0 || len(data)%rowSize != 0 {
		return nil, fmt.Errorf("data size %d is not a multiple of row size %d", len(data), rowSize)
	}

	numRows := len(data) / rowSize
	out := make([]byte, numRows*rowStride)

	for row := 0; row < numRows; row++ {
		base := row * rowSize
		filterType := data[base]
		rowData := data[base+1 : base+rowSize]

		decoded, err := unfilterPNGRow(rowData, filterType, bytesPerPixel, row, out, rowStride)
		if err != nil {
			return nil, fmt.Errorf("failed to decode row %d: %w", row, err)
		}
		copy(out[row*rowStride:(row+1)*rowStride], decoded)
	}
	return out, nil
}

// unfilterPNGRow reverses one PNG row filter (None/Sub/Up/Average/Paeth,
// filter types 0-4). prevRows holds every already-decoded row so the Up,
// Average, and Paeth filters can reach the sample directly above.
func unfilterPNGRow(rowData []byte, filterType byte, bytesPerPixel, rowNum int, prevRows []byte, rowStride int) ([]byte, error) {
	out := make([]byte, len(rowData))

	above := func(i int) byte {
		if rowNum == 0 {
			return 0
		}
		return prevRows[(rowNum-1)*rowStride+i]
	}
	left := func(i int) byte {
		if i < bytesPerPixel {
			return 0
		}
		return out[i-bytesPerPixel]
	}

	for i := 0; i < len(rowData); i++ {
		var predicted byte

		switch filterType {
		case 0: // None
			predicted = 0
		case 1: // Sub
			predicted = left(i)
		case 2: // Up
			predicted = above(i)
		case 3: // Average
			predicted = byte((int(left(i)) + int(above(i))) / 2)
		case 4: // Paeth
			var upLeft byte
			if rowNum > 0 && i >= bytesPerPixel {
				upLeft = prevRows[(rowNum-1)*rowStride+i-bytesPerPixel]
			}
			predicted = paeth(left(i), above(i), upLeft)
		default:
			return nil, fmt.Errorf("unknown PNG predictor: %d", filterType)
		}

		out[i] = rowData[i] + predicted
	}
	return out, nil
}

// paeth is the PNG Paeth predictor: pick whichever of the left, above, and
// upper-left neighbors lies closest to left+above-upperLeft.
func paeth(left, above, upperLeft byte) byte {
	p := int(left) + int(above) - int(upperLeft)
	pLeft := abs(p - int(left))
	pAbove := abs(p - int(above))
	pUpperLeft := abs(p - int(upperLeft))

	switch {
	case pLeft <= pAbove && pLeft <= pUpperLeft:
		return left
	case pAbove <= pUpperLeft:
		return above
	default:
		return upperLeft
	}
}

// getIntParam reads an integer-valued decode parameter, tolerating the
// several numeric Go types a parsed PDF value might arrive as.
func getIntParam(params Params, key string, defaultValue int) int {
	if params == nil {
		return defaultValue
	}
	obj, ok := params[key]
	if !ok {
		return defaultValue
	}
	switch v := obj.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case float64:
		return int(v)
	default:
		return defaultValue
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
