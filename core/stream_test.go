package core

import (
	"bytes"
	"compress/zlib"
	"testing"
)

// zlibCompress compresses data for testing
func zlibCompress(data []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(data)
	w.Close()
	return buf.Bytes()
}

// TestStreamDecodeNoFilter tests stream with no filter
func TestStreamDecodeNoFilter(t *testing.T) {
	data := []byte("Raw stream data")
	stream := &Stream{
		Dict: Dict{},
		Data: data,
	}

	decoded, err := stream.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if !bytes.Equal(decoded, data) {
		t.Error("decoded data should equal original when no filter")
	}
}

// TestStreamDecodeFlateDecode tests FlateDecode filter
func TestStreamDecodeFlateDecode(t *testing.T) {
	original := []byte("This is test data for FlateDecode")
	compressed := zlibCompress(original)

	stream := &Stream{
		Dict: Dict{
			"Filter": Name("FlateDecode"),
		},
		Data: compressed,
	}

	decoded, err := stream.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if !bytes.Equal(decoded, original) {
		t.Errorf("decoded data doesn't match\ngot:  %s\nwant: %s", decoded, original)
	}
}

// TestStreamDecodeFlateDecodeAbbrev tests FlateDecode with abbreviation
func TestStreamDecodeFlateDecodeAbbrev(t *testing.T) {
	original := []byte("Test data")
	compressed := zlibCompress(original)

	stream := &Stream{
		Dict: Dict{
			"Filter": Name("Fl"), // Abbreviation
		},
		Data: compressed,
	}

	decoded, err := stream.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if !bytes.Equal(decoded, original) {
		t.Error("decoded data doesn't match")
	}
}

// TestStreamDecodeFlateDecodeWithParams tests FlateDecode with DecodeParms
func TestStreamDecodeFlateDecodeWithParams(t *testing.T) {
	// Create data with predictor
	data := []byte{
		0, 10, 20, 30, // Row with predictor=0 (None)
	}
	compressed := zlibCompress(data)

	stream := &Stream{
		Dict: Dict{
			"Filter": Name("FlateDecode"),
			"DecodeParms": Dict{
				"Predictor":        Int(10),
				"Columns":          Int(3),
				"Colors":           Int(1),
				"BitsPerComponent": Int(8),
			},
		},
		Data: compressed,
	}

	decoded, err := stream.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	expected := []byte{10, 20, 30}
	if !bytes.Equal(decoded, expected) {
		t.Errorf("decoded data doesn't match\ngot:  %v\nwant: %v", decoded, expected)
	}
}

// TestStreamDecodeASCIIHexDecode tests ASCIIHexDecode filter
func TestStreamDecodeASCIIHexDecode(t *testing.T) {
	// "Hello" = 48 65 6C 6C 6F
	encoded := []byte("48656C6C6F>")

	stream := &Stream{
		Dict: Dict{
			"Filter": Name("ASCIIHexDecode"),
		},
		Data: encoded,
	}

	decoded, err := stream.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	expected := []byte("Hello")
	if !bytes.Equal(decoded, expected) {
		t.Errorf("decoded data doesn't match")
	}
}

// TestStreamDecodeASCII85Decode tests ASCII85Decode filter
func TestStreamDecodeASCII85Decode(t *testing.T) {
	// "Hello" encoded in ASCII85
	encoded := []byte("87cURDZ~>")

	stream := &Stream{
		Dict: Dict{
			"Filter": Name("ASCII85Decode"),
		},
		Data: encoded,
	}

	decoded, err := stream.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	expected := []byte("Hello")
	if !bytes.Equal(decoded, expected) {
		t.Errorf("decoded data doesn't match")
	}
}

// TestStreamDecodeFilterChain tests multiple filters in sequence
func TestStreamDecodeFilterChain(t *testing.T) {
	// Apply ASCIIHexDecode then FlateDecode
	// 1. Original data
	original := []byte("Test data")

	// 2. Compress with FlateDecode
	compressed := zlibCompress(original)

	// 3. Encode with ASCIIHexDecode
	var hexEncoded bytes.Buffer
	for _, b := range compressed {
		hexEncoded.WriteString(string([]byte{hexDigit(b >> 4), hexDigit(b & 0xF)}))
	}
	hexEncoded.WriteByte('>')

	stream := &Stream{
		Dict: Dict{
			"Filter": Array{
				Name("ASCIIHexDecode"),
				Name("FlateDecode"),
			},
		},
		Data: hexEncoded.Bytes(),
	}

	decoded, err := stream.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if !bytes.Equal(decoded, original) {
		t.Errorf("decoded data doesn't match")
	}
}

// TestStreamDecodeFilterChainWithParams tests filter chain with params
func TestStreamDecodeFilterChainWithParams(t *testing.T) {
	// Create simple test data
	original := []byte("AB")
	compressed := zlibCompress(original)

	// Hex encode
	var hexEncoded bytes.Buffer
	for _, b := range compressed {
		hexEncoded.WriteString(string([]byte{hexDigit(b >> 4), hexDigit(b & 0xF)}))
	}
	hexEncoded.WriteByte('>')

	stream := &Stream{
		Dict: Dict{
			"Filter": Array{
				Name("ASCIIHexDecode"),
				Name("FlateDecode"),
			},
			"DecodeParms": Array{
				Null{},                    // No params for ASCIIHexDecode
				Dict{"Predictor": Int(1)}, // No predictor for FlateDecode
			},
		},
		Data: hexEncoded.Bytes(),
	}

	decoded, err := stream.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if !bytes.Equal(decoded, original) {
		t.Errorf("decoded data doesn't match")
	}
}

// TestStreamDecodeDCTDecode tests DCTDecode (JPEG) - should return as-is
func TestStreamDecodeDCTDecode(t *testing.T) {
	jpegData := []byte("\xFF\xD8\xFF...") // Fake JPEG header

	stream := &Stream{
		Dict: Dict{
			"Filter": Name("DCTDecode"),
		},
		Data: jpegData,
	}

	decoded, err := stream.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	// DCTDecode should return data as-is (for now)
	if !bytes.Equal(decoded, jpegData) {
		t.Error("DCTDecode should return data as-is")
	}
}

// TestStreamDecodeJPXDecode tests that JPXDecode (JPEG2000) passes through as-is
func TestStreamDecodeJPXDecode(t *testing.T) {
	jp2Data := []byte("\x00\x00\x00\x0CjP  ...")

	stream := &Stream{
		Dict: Dict{
			"Filter": Name("JPXDecode"),
		},
		Data: jp2Data,
	}

	decoded, err := stream.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if !bytes.Equal(decoded, jp2Data) {
		t.Error("JPXDecode should return data as-is")
	}
}

// TestStreamDecodeUnimplementedFilter tests error handling for a recognized
// but unimplemented filter name
func TestStreamDecodeUnimplementedFilter(t *testing.T) {
	stream := &Stream{
		Dict: Dict{
			"Filter": Name("LZWDecode"),
		},
		Data: []byte("data"),
	}

	_, err := stream.Decode()
	if err == nil {
		t.Error("expected error for unimplemented filter")
	}
}

// TestStreamDecodeUnknownFilter tests error handling for unknown filter
func TestStreamDecodeUnknownFilter(t *testing.T) {
	stream := &Stream{
		Dict: Dict{
			"Filter": Name("UnknownFilter"),
		},
		Data: []byte("data"),
	}

	_, err := stream.Decode()
	if err == nil {
		t.Error("expected error for unknown filter")
	}
}

// TestStreamDecodeInvalidFilterType tests error handling for invalid Filter type
func TestStreamDecodeInvalidFilterType(t *testing.T) {
	stream := &Stream{
		Dict: Dict{
			"Filter": Int(123), // Invalid type
		},
		Data: []byte("data"),
	}

	_, err := stream.Decode()
	if err == nil {
		t.Error("expected error for invalid filter type")
	}
}

// TestDecodeParamsDict tests the /DecodeParms-to-Dict conversion helper
func TestDecodeParamsDict(t *testing.T) {
	// Dict
	dict := Dict{"Key": Int(123)}
	result := decodeParamsDict(dict)
	if result == nil {
		t.Error("expected dict to return as-is")
	}

	// Null
	result = decodeParamsDict(Null{})
	if result != nil {
		t.Error("expected Null to return nil")
	}

	// nil
	result = decodeParamsDict(nil)
	if result != nil {
		t.Error("expected nil to return nil")
	}

	// Other type
	result = decodeParamsDict(Int(123))
	if result != nil {
		t.Error("expected non-dict to return nil")
	}
}

// hexDigit converts a 4-bit value to a hex digit
func hexDigit(b byte) byte {
	if b < 10 {
		return '0' + b
	}
	return 'A' + (b - 10)
}
