package tabledetect

import (
	"math"

	"github.com/oriolcg/pdftodocx/geom"
	"github.com/oriolcg/pdftodocx/model"
)

// resolveBorders searches, for each origin cell's four edges, the
// relevant axis's line segments for the one with maximum overlap
// (snapped within eps); style is single when found, none otherwise.
func resolveBorders(tbl *model.DetectedTable, hLines, vLines []geom.LineSegment, eps float64) {
	for r := 0; r < tbl.RowCount; r++ {
		for c := 0; c < tbl.ColCount; c++ {
			cell := &tbl.Cells[r][c]
			if cell.IsMergedContinuation {
				continue
			}
			b := cell.Bounds
			cell.Top = edgeBorder(hLines, b.Top, b.Left, b.Right, eps)
			cell.Bottom = edgeBorder(hLines, b.Bottom, b.Left, b.Right, eps)
			cell.Left = edgeBorder(vLines, b.Left, b.Top, b.Bottom, eps)
			cell.Right = edgeBorder(vLines, b.Right, b.Top, b.Bottom, eps)
		}
	}
}

// edgeBorder finds, among lines snapped to position `at` on their
// perpendicular axis, the one with maximum overlap against [spanLo,
// spanHi] along their primary axis.
func edgeBorder(lines []geom.LineSegment, at, spanLo, spanHi, eps float64) model.BorderStyle {
	best := model.BorderStyle{Style: model.BorderNone}
	bestOverlap := 0.0
	for _, l := range lines {
		// Horizontal lines store their shared coordinate in Y1==Y2;
		// vertical lines in X1==X2. Either way it's l.Y1/l.X1 depending
		// on caller; detect by which axis varies.
		perp := l.Y1
		lo, hi := l.X1, l.X2
		if l.X1 == l.X2 { // vertical line: perpendicular coordinate is X
			perp = l.X1
			lo, hi = l.Y1, l.Y2
		}
		if math.Abs(perp-at) > eps {
			continue
		}
		overlap := math.Min(hi, spanHi) - math.Max(lo, spanLo)
		if overlap > bestOverlap {
			bestOverlap = overlap
			best = model.BorderStyle{WidthPt: l.Thickness, ColorHex: l.ColorHex, Style: model.BorderSingle}
		}
	}
	return best
}

// resolveShading assigns an origin cell's fill color from the first
// filled rectangle whose overlap with the cell's area reaches 70%.
func resolveShading(tbl *model.DetectedTable, rects []geom.RectangleElement) {
	for r := 0; r < tbl.RowCount; r++ {
		for c := 0; c < tbl.ColCount; c++ {
			cell := &tbl.Cells[r][c]
			if cell.IsMergedContinuation {
				continue
			}
			for _, rect := range rects {
				if !rect.Filled {
					continue
				}
				if cell.Bounds.OverlapAreaRatio(rect.Bounds) >= 0.7 {
					cell.BackgroundColorHex = rect.FillHex
					break
				}
			}
		}
	}
}
