package core

import (
	"fmt"

	"github.com/oriolcg/pdftodocx/internal/filters"
)

// Decode applies the stream's /Filter chain (a single Name or an Array of
// them, each with a matching /DecodeParms entry) and returns the decoded
// bytes. A stream with no /Filter entry returns its raw data unchanged.
func (s *Stream) Decode() ([]byte, error) {
	filterObj := s.Dict.Get("Filter")
	if filterObj == nil {
		return s.Data, nil
	}

	paramsObj := s.Dict.Get("DecodeParms")

	switch f := filterObj.(type) {
	case Name:
		return decodeWithFilter(s.Data, string(f), decodeParamsDict(paramsObj))
	case Array:
		return decodeFilterChain(s.Data, f, paramsObj)
	default:
		return nil, fmt.Errorf("invalid Filter type: %T", filterObj)
	}
}

// decodeFilterChain runs data through each filter in names in order, pairing
// filter i with DecodeParms[i] when paramsObj is itself an Array, or with
// the single paramsObj for every filter otherwise.
func decodeFilterChain(data []byte, names Array, paramsObj Object) ([]byte, error) {
	paramsArray, perFilterParams := paramsObj.(Array)

	for i, filter := range names {
		filterName, ok := filter.(Name)
		if !ok {
			return nil, fmt.Errorf("filter %d is not a name: %T", i, filter)
		}

		var params Dict
		switch {
		case perFilterParams && i < len(paramsArray):
			params = decodeParamsDict(paramsArray[i])
		case !perFilterParams:
			params = decodeParamsDict(paramsObj)
		}

		decoded, err := decodeWithFilter(data, string(filterName), params)
		if err != nil {
			return nil, fmt.Errorf("filter %d (%s) failed: %w", i, filterName, err)
		}
		data = decoded
	}

	return data, nil
}

// decodeWithFilter applies one named PDF stream filter, accepting both the
// full name and its abbreviated inline-image form (e.g. "FlateDecode"/"Fl").
func decodeWithFilter(data []byte, filterName string, params Dict) ([]byte, error) {
	switch filterName {
	case "FlateDecode", "Fl":
		return filters.FlateDecode(data, toFilterParams(params))

	case "ASCIIHexDecode", "AHx":
		return filters.ASCIIHexDecode(data)

	case "ASCII85Decode", "A85":
		return filters.ASCII85Decode(data)

	case "CCITTFaxDecode", "CCF":
		return filters.CCITTFaxDecode(data, toFilterParams(params))

	case "DCTDecode", "DCT", "JPXDecode":
		// JPEG/JPEG2000 payloads pass through undecoded; image extraction
		// decodes them directly from their native container format.
		return data, nil

	case "LZWDecode", "LZW", "RunLengthDecode", "RL", "JBIG2Decode", "Crypt":
		return nil, fmt.Errorf("%s: filter not implemented", filterName)

	default:
		return nil, fmt.Errorf("unknown filter: %s", filterName)
	}
}

// decodeParamsDict resolves a /DecodeParms entry to a Dict, treating a
// missing entry, an explicit Null, or any other non-Dict value as "no
// parameters" rather than an error.
func decodeParamsDict(obj Object) Dict {
	if dict, ok := obj.(Dict); ok {
		return dict
	}
	return nil
}

// toFilterParams converts decode parameters from PDF object types to the
// Go primitives filters.Params expects (Int->int, Real->float64, ...),
// passing through anything else unchanged.
func toFilterParams(dict Dict) filters.Params {
	if dict == nil {
		return nil
	}

	params := make(filters.Params, len(dict))
	for k, v := range dict {
		switch obj := v.(type) {
		case Int:
			params[k] = int(obj)
		case Real:
			params[k] = float64(obj)
		case Bool:
			params[k] = bool(obj)
		case String:
			params[k] = string(obj)
		case Name:
			params[k] = string(obj)
		default:
			params[k] = v
		}
	}
	return params
}
