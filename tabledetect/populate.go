package tabledetect

import (
	"github.com/oriolcg/pdftodocx/layout"
	"github.com/oriolcg/pdftodocx/model"
)

// populateCells feeds each origin cell's glyph runs (those satisfying
// layout.InRegion against the cell's bounds) through the layout analyzer,
// configured with the cell's width and height, to yield paragraphs.
// Table cells have no page margin, so alignment classification runs with
// Margin = 0.
func populateCells(tbl *model.DetectedTable, runs []model.GlyphRun, layoutOpts layout.Options) {
	cellOpts := layoutOpts
	cellOpts.Margin = 0

	for r := 0; r < tbl.RowCount; r++ {
		for c := 0; c < tbl.ColCount; c++ {
			cell := &tbl.Cells[r][c]
			if cell.IsMergedContinuation {
				continue
			}
			var inCell []model.GlyphRun
			for _, run := range runs {
				if layout.InRegion(run.Bounds, cell.Bounds) {
					inCell = append(inCell, run)
				}
			}
			if len(inCell) == 0 {
				continue
			}
			cell.Paragraphs = layout.Analyze(inCell, cell.Bounds.Width(), cell.Bounds.Height(), cellOpts)
		}
	}
}
