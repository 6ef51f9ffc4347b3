//go:build !ocr

// Package ocr recognizes text inside page images pulled from scanned PDFs.
//
// This file is the default build: it satisfies the same API as ocr.go but
// every operation fails with ErrOCRNotEnabled, since linking the real
// Tesseract binding (via gosseract, which needs libtesseract installed)
// isn't something every build of this module wants to require. Rebuild
// with the "ocr" tag to link the real implementation:
//
//	go build -tags ocr
//
// which in turn requires Tesseract itself:
//
//	brew install tesseract        # macOS
//	apt-get install tesseract-ocr # Debian/Ubuntu
package ocr

import "errors"

// ErrOCRNotEnabled is returned by every Client operation in this build.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// PageSegMode mirrors gosseract.PageSegMode so callers can select a
// segmentation mode without importing gosseract directly in code paths
// that might run in either build.
type PageSegMode int

// Page segmentation modes, numbered to match Tesseract's own PSM constants.
const (
	PSM_OSD_ONLY               PageSegMode = 0
	PSM_AUTO_OSD               PageSegMode = 1
	PSM_AUTO_ONLY              PageSegMode = 2
	PSM_AUTO                   PageSegMode = 3 // default
	PSM_SINGLE_COLUMN          PageSegMode = 4
	PSM_SINGLE_BLOCK_VERT_TEXT PageSegMode = 5
	PSM_SINGLE_BLOCK           PageSegMode = 6
	PSM_SINGLE_LINE            PageSegMode = 7
	PSM_SINGLE_WORD            PageSegMode = 8
	PSM_CIRCLE_WORD            PageSegMode = 9
	PSM_SINGLE_CHAR            PageSegMode = 10
	PSM_SPARSE_TEXT            PageSegMode = 11
	PSM_SPARSE_TEXT_OSD        PageSegMode = 12
	PSM_RAW_LINE               PageSegMode = 13
)

// Client is the disabled-build stand-in: every method reports
// ErrOCRNotEnabled, and it's always safe to call on a nil *Client.
type Client struct{}

// New always fails in this build; rebuild with -tags ocr to get a working client.
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op, safe to call even on a nil Client.
func (c *Client) Close() error {
	return nil
}

// RecognizeImage always fails in this build.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}

// SetLanguage always fails in this build.
func (c *Client) SetLanguage(lang string) error {
	return ErrOCRNotEnabled
}

// SetPageSegMode always fails in this build.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	return ErrOCRNotEnabled
}
