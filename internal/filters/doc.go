// Package filters implements the stream decode filters core.Stream.Decode
// dispatches to: FlateDecode, ASCIIHexDecode, ASCII85Decode, and
// CCITTFaxDecode. Each takes the raw stream bytes plus the stream's decode
// parameters (converted from a core.Dict into a Params map by the caller)
// and returns the decoded bytes.
//
// FlateDecode inflates zlib/deflate data and, when /DecodeParms names a
// Predictor other than 1, reverses the row prediction applied before
// compression:
//
//	decoded, err := filters.FlateDecode(data, filters.Params{
//	    "Predictor": 12,
//	    "Columns":   100,
//	    "Colors":    3,
//	})
//
// Predictor 2 selects the TIFF horizontal-differencing scheme; 10-15 select
// one of the five PNG row filters (None, Sub, Up, Average, Paeth), chosen
// per row by a filter-type byte PNG prepends to each row.
//
// ASCIIHexDecode and ASCII85Decode reverse the two PDF text-safe binary
// encodings:
//
//	decoded, err := filters.ASCIIHexDecode(data)
//	decoded, err := filters.ASCII85Decode(data)
//
// CCITTFaxDecode reverses CCITT Group 3/4 fax compression, used for
// bi-level scanned page images.
package filters
