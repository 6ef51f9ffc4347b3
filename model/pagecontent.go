package model

import "github.com/oriolcg/pdftodocx/geom"

// HyperlinkAnnotation is a clickable-region record produced by the
// extractor, later attached to the TextRuns whose bounds it intersects.
type HyperlinkAnnotation struct {
	Bounds geom.Rect
	URI    string
}

// PageContent is the normalized, extractor-produced input to the table
// detector and layout analyzer: glyph runs, vector line segments, filled
// rectangles, raster images, and hyperlink annotations, all already in
// the shared top-left coordinate system.
type PageContent struct {
	Number       int
	Width        float64
	Height       float64
	TextElements []GlyphRun
	Lines        []geom.LineSegment
	Rectangles   []geom.RectangleElement
	Images       []Image
	Hyperlinks   []HyperlinkAnnotation
}
