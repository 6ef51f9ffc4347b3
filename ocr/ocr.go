//go:build ocr

// Package ocr recognizes text inside page images that ExtractPageImages
// pulled out of a scanned or image-only PDF, so converter.go can fall back
// to OCR for a page whose content stream carries no text operators at all.
//
// Backed by Tesseract via gosseract; Tesseract itself must be on the
// system. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client recognizes text in decoded page images via Tesseract.
type Client struct {
	engine *gosseract.Client
}

// New starts a Tesseract client. Callers must Close it when done to free
// the underlying engine.
func New() (*Client, error) {
	return &Client{engine: gosseract.NewClient()}, nil
}

// Close releases the Tesseract engine.
func (c *Client) Close() error {
	if c.engine == nil {
		return nil
	}
	return c.engine.Close()
}

// RecognizeImage runs OCR over a decoded page image (PNG, TIFF, JPEG, ...)
// and returns the recognized text, trimmed of leading/trailing whitespace.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.engine.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.engine.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// SetLanguage selects the recognition language(s), "+"-joined for multiple
// (e.g. "eng+fra"). Defaults to "eng".
func (c *Client) SetLanguage(lang string) error {
	return c.engine.SetLanguage(lang)
}

// SetPageSegMode controls how Tesseract segments the page before
// recognizing text; see gosseract.PageSegMode for the available modes.
func (c *Client) SetPageSegMode(mode gosseract.PageSegMode) error {
	return c.engine.SetPageSegMode(mode)
}
