package tabledetect

import (
	"math"
	"sort"

	"github.com/oriolcg/pdftodocx/geom"
	"github.com/oriolcg/pdftodocx/model"
)

// candidate is a grid candidate proposed before validation/scoring: a
// pair (XPositions, YPositions) of snapped column/row boundary
// coordinates.
type candidate struct {
	XPositions []float64
	YPositions []float64
	foundH     int // interior horizontal positions carrying a line, from validation
	expectedH  int
	foundV     int
	expectedV  int
	edgesFound int // 0-4
}

func (c candidate) bounds() geom.Rect {
	return geom.Rect{
		Left: c.XPositions[0], Right: c.XPositions[len(c.XPositions)-1],
		Top: c.YPositions[0], Bottom: c.YPositions[len(c.YPositions)-1],
	}
}

func (c candidate) rowCount() int { return len(c.YPositions) - 1 }
func (c candidate) colCount() int { return len(c.XPositions) - 1 }

// buildCandidates proposes a global candidate from every classified line,
// falling back to paired horizontal/vertical sub-grid clusters when the
// global candidate fails validation.
func buildCandidates(hLines, vLines []geom.LineSegment, pageWidth, pageHeight float64, cfg Config) ([]candidate, []Rejection) {
	var rejections []Rejection

	xs := xPositions(vLines)
	ys := yPositions(hLines)
	XPositions := snapDedupe(xs, cfg.SnapTolerance)
	YPositions := snapDedupe(ys, cfg.SnapTolerance)

	var out []candidate
	if len(XPositions) >= 2 && len(YPositions) >= 2 {
		global := candidate{XPositions: XPositions, YPositions: YPositions}
		if ok, reason := validate(&global, hLines, vLines, pageWidth, pageHeight, cfg); ok {
			out = append(out, global)
		} else {
			rejections = append(rejections, Rejection{Bounds: global.bounds(), Reason: reason})
			out = append(out, subGridCandidates(hLines, vLines, pageWidth, pageHeight, cfg, &rejections)...)
		}
	}

	return out, rejections
}

func xPositions(vLines []geom.LineSegment) []float64 {
	xs := make([]float64, len(vLines))
	for i, l := range vLines {
		xs[i] = (l.X1 + l.X2) / 2
	}
	return xs
}

func yPositions(hLines []geom.LineSegment) []float64 {
	ys := make([]float64, len(hLines))
	for i, l := range hLines {
		ys[i] = (l.Y1 + l.Y2) / 2
	}
	return ys
}

// subGridCandidates clusters horizontal lines by Y and vertical lines by
// X using a gap of 3*eps, pairs clusters whose (inflated) bounding boxes
// overlap, and validates each pairing independently.
func subGridCandidates(hLines, vLines []geom.LineSegment, pageWidth, pageHeight float64, cfg Config, rejections *[]Rejection) []candidate {
	hClusters := clusterBySecondaryAxis(hLines, true, 3*cfg.SnapTolerance)
	vClusters := clusterBySecondaryAxis(vLines, false, 3*cfg.SnapTolerance)

	var out []candidate
	for _, hc := range hClusters {
		hBox := boundingBox(hc)
		for _, vc := range vClusters {
			vBox := boundingBox(vc)
			if !hBox.Expand(cfg.SnapTolerance).Intersects(vBox.Expand(cfg.SnapTolerance)) {
				continue
			}
			XPositions := snapDedupe(xPositions(vc), cfg.SnapTolerance)
			YPositions := snapDedupe(yPositions(hc), cfg.SnapTolerance)
			if len(XPositions) < 2 || len(YPositions) < 2 {
				continue
			}
			cand := candidate{XPositions: XPositions, YPositions: YPositions}
			if ok, reason := validate(&cand, hLines, vLines, pageWidth, pageHeight, cfg); ok {
				out = append(out, cand)
			} else {
				*rejections = append(*rejections, Rejection{Bounds: cand.bounds(), Reason: reason})
			}
		}
	}
	return out
}

func clusterBySecondaryAxis(lines []geom.LineSegment, horizontal bool, gap float64) [][]geom.LineSegment {
	if len(lines) == 0 {
		return nil
	}
	type keyed struct {
		line geom.LineSegment
		key  float64
	}
	ks := make([]keyed, len(lines))
	for i, l := range lines {
		if horizontal {
			ks[i] = keyed{l, (l.Y1 + l.Y2) / 2}
		} else {
			ks[i] = keyed{l, (l.X1 + l.X2) / 2}
		}
	}
	sort.Slice(ks, func(i, j int) bool { return ks[i].key < ks[j].key })

	var clusters [][]geom.LineSegment
	cur := []geom.LineSegment{ks[0].line}
	lastKey := ks[0].key
	for i := 1; i < len(ks); i++ {
		if ks[i].key-lastKey <= gap {
			cur = append(cur, ks[i].line)
		} else {
			clusters = append(clusters, cur)
			cur = []geom.LineSegment{ks[i].line}
		}
		lastKey = ks[i].key
	}
	clusters = append(clusters, cur)
	return clusters
}

func boundingBox(lines []geom.LineSegment) geom.Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, l := range lines {
		minX = math.Min(minX, math.Min(l.X1, l.X2))
		maxX = math.Max(maxX, math.Max(l.X1, l.X2))
		minY = math.Min(minY, math.Min(l.Y1, l.Y2))
		maxY = math.Max(maxY, math.Max(l.Y1, l.Y2))
	}
	return geom.Rect{Left: minX, Right: maxX, Top: minY, Bottom: maxY}
}

// validate applies four structural rules (minimum row/col count, interior
// line coverage, edge coverage, and aspect sanity), recording the
// interior/edge coverage counts onto cand for reuse by confidence
// scoring.
func validate(cand *candidate, hLines, vLines []geom.LineSegment, pageWidth, pageHeight float64, cfg Config) (bool, string) {
	rows, cols := cand.rowCount(), cand.colCount()
	if rows < cfg.MinRows || cols < cfg.MinCols {
		return false, "below minimum row/col count"
	}

	b := cand.bounds()
	if b.Width() > 0.8*pageWidth && b.Height() > 0.8*pageHeight {
		return false, "spans page-border frame"
	}

	eps := cfg.SnapTolerance
	edges := 0
	if anyHLineNear(hLines, cand.YPositions[0], eps) {
		edges++
	}
	if anyHLineNear(hLines, cand.YPositions[len(cand.YPositions)-1], eps) {
		edges++
	}
	if anyVLineNear(vLines, cand.XPositions[0], eps) {
		edges++
	}
	if anyVLineNear(vLines, cand.XPositions[len(cand.XPositions)-1], eps) {
		edges++
	}
	cand.edgesFound = edges
	if edges < 4 {
		return false, "missing outer edge"
	}

	foundH := 0
	for _, y := range cand.YPositions[1 : len(cand.YPositions)-1] {
		if anyHLineNear(hLines, y, eps) {
			foundH++
		}
	}
	foundV := 0
	for _, x := range cand.XPositions[1 : len(cand.XPositions)-1] {
		if anyVLineNear(vLines, x, eps) {
			foundV++
		}
	}
	cand.foundH, cand.expectedH = foundH, rows-1
	cand.foundV, cand.expectedV = foundV, cols-1

	needH := ceilDiv(rows-1, 2)
	needV := ceilDiv(cols-1, 2)
	if foundH < needH || foundV < needV {
		return false, "insufficient interior line coverage"
	}

	return true, ""
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

func anyHLineNear(hLines []geom.LineSegment, y, eps float64) bool {
	for _, l := range hLines {
		if math.Abs(l.Y1-y) <= eps {
			return true
		}
	}
	return false
}

func anyVLineNear(vLines []geom.LineSegment, x, eps float64) bool {
	for _, l := range vLines {
		if math.Abs(l.X1-x) <= eps {
			return true
		}
	}
	return false
}

// selectNonOverlapping sorts by rowCount*colCount descending, greedily
// accepting candidates whose outer rectangle does not intersect any
// already-accepted one.
func selectNonOverlapping(candidates []candidate) []candidate {
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].rowCount()*candidates[i].colCount() > candidates[j].rowCount()*candidates[j].colCount()
	})
	var accepted []candidate
	for _, c := range candidates {
		b := c.bounds()
		overlaps := false
		for _, a := range accepted {
			if b.Intersects(a.bounds()) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			accepted = append(accepted, c)
		}
	}
	return accepted
}

// buildTable constructs the dense, unmerged cell matrix for a validated
// candidate.
func buildTable(c candidate, score float64) *model.DetectedTable {
	rows, cols := c.rowCount(), c.colCount()
	tbl := &model.DetectedTable{
		Bounds:     c.bounds(),
		RowCount:   rows,
		ColCount:   cols,
		Confidence: score,
	}
	tbl.ColumnWidths = make([]float64, cols)
	for i := 0; i < cols; i++ {
		tbl.ColumnWidths[i] = c.XPositions[i+1] - c.XPositions[i]
	}
	tbl.RowHeights = make([]float64, rows)
	for i := 0; i < rows; i++ {
		tbl.RowHeights[i] = c.YPositions[i+1] - c.YPositions[i]
	}

	tbl.Cells = make([][]model.TableCell, rows)
	for r := 0; r < rows; r++ {
		tbl.Cells[r] = make([]model.TableCell, cols)
		for col := 0; col < cols; col++ {
			tbl.Cells[r][col] = model.TableCell{
				Row: r, Col: col, RowSpan: 1, ColSpan: 1,
				Bounds: geom.Rect{Left: c.XPositions[col], Right: c.XPositions[col+1], Top: c.YPositions[r], Bottom: c.YPositions[r+1]},
			}
		}
	}
	return tbl
}
