package layout

import (
	"sort"

	"github.com/oriolcg/pdftodocx/model"
)

// DetectColumns uses a 1-pt resolution coverage histogram
// over [0, pageWidth) identifies maximal zero-coverage gaps within the
// central 80% of the page; gaps at least minGap wide split the page into
// left-to-right columns. Each line is assigned to the column with the
// greatest horizontal overlap; empty columns are dropped. Within each
// returned column, lines are sorted top-to-bottom.
func DetectColumns(lines []model.TextLine, pageWidth, minGap float64) [][]model.TextLine {
	if len(lines) == 0 {
		return nil
	}
	if pageWidth <= 0 {
		return [][]model.TextLine{sortedTopToBottom(lines)}
	}

	width := int(pageWidth) + 1
	covered := make([]bool, width)
	for _, ln := range lines {
		left := int(ln.Bounds.Left)
		right := int(ceil(ln.Bounds.Right))
		if left < 0 {
			left = 0
		}
		if right >= width {
			right = width - 1
		}
		for x := left; x <= right; x++ {
			covered[x] = true
		}
	}

	marginLo := int(0.1 * pageWidth)
	marginHi := int(0.9 * pageWidth)

	var gapStarts, gapEnds []int
	inGap := false
	gapStart := 0
	for x := marginLo; x < marginHi; x++ {
		if !covered[x] {
			if !inGap {
				inGap = true
				gapStart = x
			}
		} else if inGap {
			inGap = false
			if float64(x-gapStart) >= minGap {
				gapStarts = append(gapStarts, gapStart)
				gapEnds = append(gapEnds, x)
			}
		}
	}
	if inGap && float64(marginHi-gapStart) >= minGap {
		gapStarts = append(gapStarts, gapStart)
		gapEnds = append(gapEnds, marginHi)
	}

	if len(gapStarts) == 0 {
		return [][]model.TextLine{sortedTopToBottom(lines)}
	}

	type bound struct{ left, right float64 }
	var bounds []bound
	prev := 0.0
	for i := range gapStarts {
		bounds = append(bounds, bound{left: prev, right: float64(gapStarts[i])})
		prev = float64(gapEnds[i])
	}
	bounds = append(bounds, bound{left: prev, right: pageWidth})

	columns := make([][]model.TextLine, len(bounds))
	for _, ln := range lines {
		bestIdx := -1
		bestOverlap := -1.0
		for i, b := range bounds {
			left := maxF(ln.Bounds.Left, b.left)
			right := minF(ln.Bounds.Right, b.right)
			overlap := right - left
			if overlap > bestOverlap {
				bestOverlap = overlap
				bestIdx = i
			}
		}
		if bestIdx >= 0 {
			columns[bestIdx] = append(columns[bestIdx], ln)
		}
	}

	var result [][]model.TextLine
	for _, col := range columns {
		if len(col) == 0 {
			continue
		}
		result = append(result, sortedTopToBottom(col))
	}
	if len(result) == 0 {
		return [][]model.TextLine{sortedTopToBottom(lines)}
	}
	return result
}

func sortedTopToBottom(lines []model.TextLine) []model.TextLine {
	out := make([]model.TextLine, len(lines))
	copy(out, lines)
	sort.Slice(out, func(i, j int) bool { return out[i].Bounds.Top < out[j].Bounds.Top })
	return out
}

func ceil(f float64) float64 {
	i := int(f)
	if float64(i) < f {
		return float64(i + 1)
	}
	return float64(i)
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
