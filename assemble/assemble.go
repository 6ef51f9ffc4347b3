// Package assemble implements the page assembler: it runs the table
// detector, excludes table regions from the glyph-run input, runs the
// layout analyzer on what remains, attaches hyperlink annotations, and
// composes paragraphs, tables, and top-level images into a single
// reading-order ContentBlock list per page.
package assemble

import (
	"sort"

	"github.com/oriolcg/pdftodocx/geom"
	"github.com/oriolcg/pdftodocx/layout"
	"github.com/oriolcg/pdftodocx/model"
	"github.com/oriolcg/pdftodocx/tabledetect"
)

// Page runs the full per-page assembly pipeline and returns the page's
// reading-order content plus any table-candidate rejections (diagnostics
// only).
func Page(page model.PageContent, tableCfg tabledetect.Config, layoutOpts layout.Options) (model.PageStructure, []tabledetect.Rejection) {
	tables, rejections := tabledetect.Detect(page, tableCfg, layoutOpts)

	remaining := excludeTableRuns(page.TextElements, tables)
	paragraphs := layout.Analyze(remaining, page.Width, page.Height, layoutOpts)
	attachHyperlinks(paragraphs, page.Hyperlinks)

	var blocks []model.ContentBlock
	for _, p := range paragraphs {
		blocks = append(blocks, model.NewParagraphBlock(p))
	}
	for _, t := range tables {
		blocks = append(blocks, model.NewTableBlock(t))
	}
	for _, img := range topLevelImages(page.Images, tables) {
		blocks = append(blocks, model.NewImageBlock(img))
	}

	sort.SliceStable(blocks, func(i, j int) bool {
		a, b := blocks[i].Bounds, blocks[j].Bounds
		if a.Top != b.Top {
			return a.Top < b.Top
		}
		return a.Left < b.Left
	})

	return model.PageStructure{
		Number: page.Number,
		Width:  page.Width,
		Height: page.Height,
		Blocks: blocks,
	}, rejections
}

// excludeTableRuns drops glyph runs whose midpoint falls inside any
// detected table's bounds, so paragraph assembly never sees text a table
// has already claimed.
func excludeTableRuns(runs []model.GlyphRun, tables []*model.DetectedTable) []model.GlyphRun {
	if len(tables) == 0 {
		return runs
	}
	out := make([]model.GlyphRun, 0, len(runs))
	for _, r := range runs {
		mid := geom.Rect{Left: r.Bounds.MidX(), Right: r.Bounds.MidX(), Top: r.Bounds.MidY(), Bottom: r.Bounds.MidY()}
		inTable := false
		for _, t := range tables {
			if t.Bounds.Contains(mid) {
				inTable = true
				break
			}
		}
		if !inTable {
			out = append(out, r)
		}
	}
	return out
}

// attachHyperlinks assigns each run's HyperlinkURI to the first hyperlink
// annotation whose bounds intersect the run's bounds.
func attachHyperlinks(paragraphs []model.TextParagraph, links []model.HyperlinkAnnotation) {
	if len(links) == 0 {
		return
	}
	for pi := range paragraphs {
		for li := range paragraphs[pi].Lines {
			line := &paragraphs[pi].Lines[li]
			for ri := range line.Runs {
				run := &line.Runs[ri]
				for _, link := range links {
					if link.Bounds.Intersects(run.Bounds) {
						run.HyperlinkURI = link.URI
						break
					}
				}
			}
		}
	}
}

// topLevelImages returns images not fully contained within any detected
// table's bounds.
func topLevelImages(images []model.Image, tables []*model.DetectedTable) []model.Image {
	if len(tables) == 0 {
		return images
	}
	var out []model.Image
	for _, img := range images {
		contained := false
		for _, t := range tables {
			if t.Bounds.Contains(img.Bounds) {
				contained = true
				break
			}
		}
		if !contained {
			out = append(out, img)
		}
	}
	return out
}
