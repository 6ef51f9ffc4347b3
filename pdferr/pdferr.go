// Package pdferr defines the conversion pipeline's error taxonomy as
// sentinel errors, wrapped with fmt.Errorf("...: %w", err) at each call
// site the way the rest of this module reports failures.
package pdferr

import "errors"

// Sentinel errors covering the conversion pipeline's failure modes. Use
// errors.Is against these to distinguish fatal conditions from recovered,
// diagnostics-only ones.
var (
	// ErrInputMissing is raised by the opener when the input path does
	// not exist. Fatal to the caller; the CLI exits 1.
	ErrInputMissing = errors.New("pdftodocx: input file does not exist")

	// ErrInputUnreadable is raised by the extractor when the PDF cannot
	// be parsed. Fatal; the CLI exits 2.
	ErrInputUnreadable = errors.New("pdftodocx: input PDF could not be parsed")

	// ErrCancelled is raised by any stage on a cancellation signal.
	// Fatal; the caller is notified and no output is written.
	ErrCancelled = errors.New("pdftodocx: conversion was cancelled")

	// ErrDegradedPage is raised by the extractor when a page has no
	// extractable text operators. Recovered: the page becomes empty and
	// the pipeline continues.
	ErrDegradedPage = errors.New("pdftodocx: page has no extractable text")

	// ErrImageUnreadable is raised by the extractor per-image on decode
	// failure. Recovered: the image is omitted.
	ErrImageUnreadable = errors.New("pdftodocx: embedded image could not be decoded")

	// ErrTableRejected is raised by the detector when a candidate grid
	// fails validation or confidence scoring. Informational: the
	// candidate is silently dropped.
	ErrTableRejected = errors.New("pdftodocx: table candidate rejected")

	// ErrAnnotationFailure is raised by the extractor when an annotation
	// dictionary is malformed. Recovered: hyperlinks for that page are
	// skipped.
	ErrAnnotationFailure = errors.New("pdftodocx: annotation dictionary malformed")

	// ErrPackagerInvariant is raised when the packager detects
	// unexpected internal state; it aborts rather than emit a malformed
	// package.
	ErrPackagerInvariant = errors.New("pdftodocx: packager invariant violated")
)

// Recoverable reports whether err represents one of the taxonomy's
// recovered-and-logged conditions (DegradedPage, ImageUnreadable,
// TableRejected, AnnotationFailure) rather than a fatal one.
func Recoverable(err error) bool {
	switch {
	case errors.Is(err, ErrDegradedPage),
		errors.Is(err, ErrImageUnreadable),
		errors.Is(err, ErrTableRejected),
		errors.Is(err, ErrAnnotationFailure):
		return true
	default:
		return false
	}
}
