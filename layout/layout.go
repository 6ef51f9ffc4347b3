// Package layout groups extracted glyph runs into lines, detects
// multi-column page layouts from vertical whitespace, assembles lines
// into paragraphs, and classifies paragraph alignment. It implements the
// pure-geometry half of the pipeline; table cell text population reuses
// the same Analyze entry point scoped to a cell's bounds.
package layout

import (
	"math"
	"sort"

	"github.com/oriolcg/pdftodocx/geom"
	"github.com/oriolcg/pdftodocx/model"
)

// Options holds the layout analyzer's tunables, sourced from config.Config.
type Options struct {
	LineGroupingTolerance  float64 // τ
	ParagraphGapMultiplier float64 // ρ
	MinColumnGap           float64 // γ
	LineSpacingMultiplier  float64
	ParagraphSpacingAfter  float64
	Margin                 float64 // default 72pt
}

// DefaultOptions returns the layout analyzer's default tunables.
func DefaultOptions() Options {
	return Options{
		LineGroupingTolerance:  3.0,
		ParagraphGapMultiplier: 1.3,
		MinColumnGap:           20.0,
		LineSpacingMultiplier:  1.15,
		ParagraphSpacingAfter:  6.0,
		Margin:                 72.0,
	}
}

// Analyze runs the full pipeline (line grouping -> column detection ->
// per-column paragraph assembly) over a set of glyph runs confined to a
// rectangular area (a page, or a table cell), returning paragraphs in
// left-to-right, top-to-bottom reading order.
func Analyze(runs []model.GlyphRun, areaWidth, areaHeight float64, opts Options) []model.TextParagraph {
	lines := GroupLines(runs, opts.LineGroupingTolerance)
	columns := DetectColumns(lines, areaWidth, opts.MinColumnGap)

	var paragraphs []model.TextParagraph
	for _, col := range columns {
		paragraphs = append(paragraphs, AssembleParagraphs(col, areaWidth, opts)...)
	}
	return paragraphs
}

// GroupLines sorts runs by (top, left), walks in order
// maintaining a running-mean Y for the current line, and fold adjacent
// glyph runs of identical formatting into TextRuns within each line.
func GroupLines(runs []model.GlyphRun, tau float64) []model.TextLine {
	if len(runs) == 0 {
		return nil
	}
	sorted := make([]model.GlyphRun, len(runs))
	copy(sorted, runs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Bounds.Top != sorted[j].Bounds.Top {
			return sorted[i].Bounds.Top < sorted[j].Bounds.Top
		}
		return sorted[i].Bounds.Left < sorted[j].Bounds.Left
	})

	type building struct {
		runs       []model.GlyphRun
		meanY      float64
		sumY       float64
	}
	var cur *building
	var lines []model.TextLine

	flush := func() {
		if cur == nil || len(cur.runs) == 0 {
			return
		}
		lines = append(lines, buildLine(cur.runs))
	}

	for _, r := range sorted {
		midY := r.Bounds.MidY()
		height := r.Bounds.Height()
		tolerance := math.Max(tau, height*0.5)

		if cur != nil && math.Abs(midY-cur.meanY) <= tolerance {
			cur.runs = append(cur.runs, r)
			cur.sumY += midY
			cur.meanY = cur.sumY / float64(len(cur.runs))
			continue
		}

		flush()
		cur = &building{runs: []model.GlyphRun{r}, meanY: midY, sumY: midY}
	}
	flush()

	return lines
}

// buildLine sorts a line's glyph runs left-to-right and folds them into
// TextRuns by formatting equivalence, inserting a single space when the
// horizontal gap exceeds 30% of the previous glyph's average character
// width.
func buildLine(runs []model.GlyphRun) model.TextLine {
	sort.Slice(runs, func(i, j int) bool { return runs[i].Bounds.Left < runs[j].Bounds.Left })

	var textRuns []model.TextRun
	var bounds geom.Rect

	for i, g := range runs {
		extraSpace := false
		if i > 0 {
			prev := runs[i-1]
			gap := g.Bounds.Left - prev.Bounds.Right
			if w := avgCharWidth(prev); w > 0 && gap > 0.3*w {
				extraSpace = true
			}
		}

		text := prefixSpace(g.Text, extraSpace)
		if i > 0 && model.SameFormatting(runs[i-1], g) {
			last := &textRuns[len(textRuns)-1]
			last.Text += text
			last.Bounds = last.Bounds.Union(g.Bounds)
		} else {
			textRuns = append(textRuns, model.TextRun{
				Text: text, Bounds: g.Bounds, FontName: g.FontName, FontSize: g.FontSize,
				Bold: g.IsBold, Italic: g.IsItalic, ColorHex: g.ColorHex, HyperlinkURI: g.HyperlinkURI,
			})
		}

		if i == 0 {
			bounds = g.Bounds
		} else {
			bounds = bounds.Union(g.Bounds)
		}
	}

	return model.TextLine{Runs: textRuns, Bounds: bounds, DominantFontSize: dominantFontSize(runs)}
}

func prefixSpace(text string, space bool) string {
	if space {
		return " " + text
	}
	return text
}

// avgCharWidth estimates a glyph run's average character width.
func avgCharWidth(g model.GlyphRun) float64 {
	n := len([]rune(g.Text))
	if n == 0 {
		return 0
	}
	return g.Bounds.Width() / float64(n)
}

// dominantFontSize returns the font size of the run with the most
// characters in a line, used as that line's representative size.
func dominantFontSize(runs []model.GlyphRun) float64 {
	best := 0.0
	bestLen := -1
	for _, r := range runs {
		n := len(r.Text)
		if n > bestLen {
			bestLen = n
			best = r.FontSize
		}
	}
	return best
}

// InRegion reports whether a glyph run is "in" a region: its vertical
// midpoint lies within the region (expanded by 2pt) and at least 50% of
// its horizontal extent overlaps the region.
func InRegion(runBounds, region geom.Rect) bool {
	expanded := region.Expand(2)
	midY := runBounds.MidY()
	if midY < expanded.Top || midY > expanded.Bottom {
		return false
	}
	return runBounds.HorizontalOverlapRatio(region) >= 0.5
}
