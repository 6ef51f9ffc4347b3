package tabledetect

import (
	"math"

	"github.com/oriolcg/pdftodocx/geom"
	"github.com/oriolcg/pdftodocx/model"
)

// applyMerges runs a horizontal merge pass followed by a vertical merge
// pass over the dense, pre-merge cell matrix built by buildTable,
// detecting merges by the absence of an interior ruling line between
// adjacent cells.
func applyMerges(tbl *model.DetectedTable, hLines, vLines []geom.LineSegment) {
	rows, cols := tbl.RowCount, tbl.ColCount

	xPos := make([]float64, cols+1)
	xPos[0] = tbl.Bounds.Left
	for i := 0; i < cols; i++ {
		xPos[i+1] = xPos[i] + tbl.ColumnWidths[i]
	}
	yPos := make([]float64, rows+1)
	yPos[0] = tbl.Bounds.Top
	for i := 0; i < rows; i++ {
		yPos[i+1] = yPos[i] + tbl.RowHeights[i]
	}

	// Horizontal merge: scan each row left to right; absorb column c+1
	// into the current origin whenever no vertical line covers >=80% of
	// the row's vertical span at that boundary.
	for r := 0; r < rows; r++ {
		originCol := 0
		for c := 0; c < cols-1; c++ {
			if verticalLineCoversSpan(vLines, xPos[c+1], yPos[r], yPos[r+1], 0.8) {
				originCol = c + 1
				continue
			}
			origin := &tbl.Cells[r][originCol]
			origin.ColSpan++
			origin.Bounds.Right = xPos[c+2]
			tbl.Cells[r][c+1] = model.TableCell{
				Row: r, Col: c + 1, RowSpan: 1, ColSpan: 1,
				Bounds:               origin.Bounds,
				IsMergedContinuation: true,
			}
		}
	}

	// Vertical merge: scan each column top to bottom over row-origins
	// (cells not absorbed by a horizontal merge), absorbing the row below
	// whenever no horizontal line spans the full (possibly widened) cell
	// width.
	for c := 0; c < cols; c++ {
		for r := 0; r < rows-1; r++ {
			origin := &tbl.Cells[r][c]
			if origin.IsMergedContinuation || origin.Row != r || origin.Col != c {
				continue
			}
			below := &tbl.Cells[r+1][c]
			if below.IsMergedContinuation {
				continue
			}
			right := xPos[c+origin.ColSpan]
			if right > xPos[len(xPos)-1] {
				right = xPos[len(xPos)-1]
			}
			if horizontalLineCoversSpan(hLines, yPos[r+1], origin.Bounds.Left, right, 1.0) {
				continue
			}

			origin.RowSpan++
			origin.Bounds.Bottom = yPos[r+1+origin.RowSpan-1]

			for cc := c; cc < c+origin.ColSpan && cc < cols; cc++ {
				if tbl.Cells[r+1][cc].Row == r+1 && tbl.Cells[r+1][cc].Col == cc && !tbl.Cells[r+1][cc].IsMergedContinuation {
					tbl.Cells[r+1][cc] = model.TableCell{
						Row: r + 1, Col: cc, RowSpan: 1, ColSpan: 1,
						Bounds:               origin.Bounds,
						IsMergedContinuation: true,
					}
				}
			}
		}
	}
}

func verticalLineCoversSpan(vLines []geom.LineSegment, x, yTop, yBottom, fraction float64) bool {
	span := yBottom - yTop
	if span <= 0 {
		return false
	}
	const eps = 2.0
	for _, l := range vLines {
		if math.Abs(l.X1-x) > eps {
			continue
		}
		overlapTop := math.Max(l.Y1, yTop)
		overlapBottom := math.Min(l.Y2, yBottom)
		if overlapBottom-overlapTop >= fraction*span {
			return true
		}
	}
	return false
}

func horizontalLineCoversSpan(hLines []geom.LineSegment, y, xLeft, xRight, fraction float64) bool {
	span := xRight - xLeft
	if span <= 0 {
		return false
	}
	const eps = 2.0
	for _, l := range hLines {
		if math.Abs(l.Y1-y) > eps {
			continue
		}
		overlapLeft := math.Max(l.X1, xLeft)
		overlapRight := math.Min(l.X2, xRight)
		if overlapRight-overlapLeft >= fraction*span-0.01 {
			return true
		}
	}
	return false
}
