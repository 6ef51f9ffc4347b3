package layout

import (
	"math"

	"github.com/oriolcg/pdftodocx/model"
)

// AssembleParagraphs splits and classifies paragraphs over one column's
// lines, already sorted top-to-bottom. pageWidth is the width of the
// enclosing area (the page, or a table cell during cell population)
// against which alignment is classified.
func AssembleParagraphs(lines []model.TextLine, pageWidth float64, opts Options) []model.TextParagraph {
	if len(lines) == 0 {
		return nil
	}

	avgLineHeight := 0.0
	for _, ln := range lines {
		avgLineHeight += ln.Bounds.Height()
	}
	avgLineHeight /= float64(len(lines))
	paraThreshold := avgLineHeight * opts.ParagraphGapMultiplier

	// Each line's LineHeight is set to dominantFontSize * lineSpacingMultiplier.
	for i := range lines {
		lines[i].LineHeight = lines[i].DominantFontSize * opts.LineSpacingMultiplier
	}

	var groups [][]model.TextLine
	cur := []model.TextLine{lines[0]}
	for i := 1; i < len(lines); i++ {
		prev := lines[i-1]
		this := lines[i]

		verticalGap := this.Bounds.Top - prev.Bounds.Bottom
		fontSizeDelta := math.Abs(this.DominantFontSize - prev.DominantFontSize)
		indentShift := math.Abs(this.Bounds.Left - prev.Bounds.Left)

		startNew := verticalGap > paraThreshold ||
			fontSizeDelta > 2.0 ||
			indentShift > avgLineHeight

		if startNew {
			groups = append(groups, cur)
			cur = []model.TextLine{this}
		} else {
			cur = append(cur, this)
		}
	}
	groups = append(groups, cur)

	paragraphs := make([]model.TextParagraph, 0, len(groups))
	for _, g := range groups {
		paragraphs = append(paragraphs, buildParagraph(g, pageWidth, opts))
	}
	return paragraphs
}

func buildParagraph(lines []model.TextLine, pageWidth float64, opts Options) model.TextParagraph {
	bounds := lines[0].Bounds
	for _, ln := range lines[1:] {
		bounds = bounds.Union(ln.Bounds)
	}
	p := model.TextParagraph{Lines: lines, Bounds: bounds}
	p.Alignment = classifyAlignment(p, pageWidth, opts)
	return p
}

// classifyAlignment picks left/center/right/justify by comparing a
// paragraph's line edges against the text area's margins and center.
func classifyAlignment(p model.TextParagraph, pageWidth float64, opts Options) model.Alignment {
	m := opts.Margin
	pc := pageWidth / 2
	textAreaWidth := pageWidth - 2*m

	lines := p.Lines
	if len(lines) >= 2 {
		justify := true
		for i, ln := range lines[:len(lines)-1] {
			_ = i
			if ln.Bounds.Width() <= 0.9*textAreaWidth {
				justify = false
				break
			}
		}
		if justify {
			return model.AlignJustify
		}
	}

	if len(lines) >= 2 {
		centered := true
		sumLeft := 0.0
		for _, ln := range lines {
			midX := ln.Bounds.MidX()
			if math.Abs(midX-pc) >= math.Min(0.05*textAreaWidth, 15) {
				centered = false
			}
			sumLeft += ln.Bounds.Left
		}
		meanLeft := sumLeft / float64(len(lines))
		if centered && meanLeft > m+20 {
			return model.AlignCenter
		}
	}

	if len(lines) >= 2 {
		rightOK := true
		sumRight, sumLeft := 0.0, 0.0
		prevRight := lines[0].Bounds.Right
		for i, ln := range lines {
			if i > 0 && math.Abs(ln.Bounds.Right-prevRight) >= 5 {
				rightOK = false
			}
			prevRight = ln.Bounds.Right
			sumRight += ln.Bounds.Right
			sumLeft += ln.Bounds.Left
		}
		meanRight := sumRight / float64(len(lines))
		meanLeft := sumLeft / float64(len(lines))
		if rightOK && math.Abs(meanRight-(pageWidth-m)) < 10 && meanLeft > m+20 {
			return model.AlignRight
		}
	}

	return model.AlignLeft
}
