package tabledetect

import (
	"strings"

	"github.com/oriolcg/pdftodocx/geom"
	"github.com/oriolcg/pdftodocx/layout"
	"github.com/oriolcg/pdftodocx/model"
)

// confidence combines three factors: 40% interior-line density (reusing
// the counts validate() already computed), 40% cell text coverage over
// the plain (pre-merge) grid, 20% outer-border completeness.
func confidence(c candidate, hLines, vLines []geom.LineSegment, runs []model.GlyphRun) float64 {
	densityH := 0.0
	if c.expectedH > 0 {
		densityH = float64(c.foundH) / float64(c.expectedH)
	} else {
		densityH = 1.0
	}
	densityV := 0.0
	if c.expectedV > 0 {
		densityV = float64(c.foundV) / float64(c.expectedV)
	} else {
		densityV = 1.0
	}
	density := (densityH + densityV) / 2

	rows, cols := c.rowCount(), c.colCount()
	nonEmpty := 0
	for r := 0; r < rows; r++ {
		for col := 0; col < cols; col++ {
			cellBounds := geom.Rect{
				Left: c.XPositions[col], Right: c.XPositions[col+1],
				Top: c.YPositions[r], Bottom: c.YPositions[r+1],
			}
			if cellHasText(cellBounds, runs) {
				nonEmpty++
			}
		}
	}
	textCoverage := 0.0
	if rows*cols > 0 {
		textCoverage = float64(nonEmpty) / float64(rows*cols)
	}

	borderCompleteness := float64(c.edgesFound) / 4.0

	return 0.4*density + 0.4*textCoverage + 0.2*borderCompleteness
}

func cellHasText(bounds geom.Rect, runs []model.GlyphRun) bool {
	for _, r := range runs {
		if strings.TrimSpace(r.Text) == "" {
			continue
		}
		if layout.InRegion(r.Bounds, bounds) {
			return true
		}
	}
	return false
}
