// Package pdftodocx provides a fluent API for converting PDF documents
// into OOXML WordprocessingML (.docx) files: paragraphs, tables, images,
// and hyperlinks are reconstructed from each page's raw content stream
// and repackaged as a wordprocessing zip container.
//
// Basic usage:
//
//	_, err := pdftodocx.Open("report.pdf").Convert("report.docx")
//
// With options:
//
//	result, err := pdftodocx.Open("report.pdf").
//	    WithPageRange(1, 10).
//	    WithOCR(true).
//	    ConvertToBytes()
//
// For advanced use cases, the lower-level reader package is also
// available (see FromReader).
package pdftodocx

import (
	"github.com/oriolcg/pdftodocx/config"
	"github.com/oriolcg/pdftodocx/reader"
)

// Open opens a PDF file and returns a Converter for fluent configuration.
// The returned Converter must be driven through a terminal operation
// (Convert, ConvertToBytes, or ConvertAsync), each of which closes the
// reader this Converter opened.
//
// Example:
//
//	_, err := pdftodocx.Open("document.pdf").Convert("document.docx")
func Open(filename string) *Converter {
	return &Converter{filename: filename, config: config.Default()}
}

// FromReader builds a Converter from an already-opened reader.Reader.
// This is useful for callers that need control over the reader's
// lifecycle, e.g. reusing it across several conversions with different
// options. The caller retains ownership and must close r itself.
//
// Example:
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	result, err := pdftodocx.FromReader(r).ConvertToBytes()
func FromReader(r *reader.Reader) *Converter {
	return &Converter{reader: r, readerOpened: true, config: config.Default()}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. Intended for scripts and tests
// where threading an error return would be cumbersome.
//
// Example:
//
//	result := pdftodocx.Must(pdftodocx.Open("document.pdf").ConvertToBytes())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
