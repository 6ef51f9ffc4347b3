// Package tabledetect recovers a row/column grid from a page's unordered
// line segments and filled rectangles, validates it against four
// structural rules, scores confidence, resolves merged cells, borders,
// and shading, and populates each cell with paragraphs via the layout
// analyzer. The grid model follows a ruling-line classification/merge
// approach (candidate lines snapped and deduped into a Grid/Cell shape,
// then validated and scored), since lattice tables are defined by their
// drawn lines rather than by clustering unordered glyph positions.
package tabledetect

import (
	"sort"

	"github.com/oriolcg/pdftodocx/geom"
	"github.com/oriolcg/pdftodocx/layout"
	"github.com/oriolcg/pdftodocx/model"
)

// Config holds the detector's tunables, sourced from config.Config.
type Config struct {
	MinTableLineLength   float64
	SnapTolerance        float64 // ε
	MinRows              int
	MinCols              int
	ConfidenceThreshold  float64
	ThinRectMaxThickness float64 // rectangles this thin or thinner synthesize a ruling line
}

// DefaultConfig returns the table detector's default tunables.
func DefaultConfig() Config {
	return Config{
		MinTableLineLength:   10.0,
		SnapTolerance:        2.0,
		MinRows:              2,
		MinCols:              2,
		ConfidenceThreshold:  0.4,
		ThinRectMaxThickness: 3.0,
	}
}

// Rejection records why a candidate grid was dropped, for diagnostics.
type Rejection struct {
	Bounds geom.Rect
	Reason string
}

// Detect runs the full table detection pipeline end to end, returning
// validated, scored, cell-populated tables plus a log of rejected
// candidates.
func Detect(page model.PageContent, cfg Config, layoutOpts layout.Options) ([]*model.DetectedTable, []Rejection) {
	hLines, vLines := prefilterLines(page, cfg)
	if len(hLines) < 2 || len(vLines) < 2 {
		return nil, nil
	}

	candidates, rejections := buildCandidates(hLines, vLines, page.Width, page.Height, cfg)
	candidates = selectNonOverlapping(candidates)

	var tables []*model.DetectedTable
	for _, c := range candidates {
		score := confidence(c, hLines, vLines, page.TextElements)
		if score < cfg.ConfidenceThreshold {
			rejections = append(rejections, Rejection{Bounds: c.bounds(), Reason: "confidence below threshold"})
			continue
		}
		tbl := buildTable(c, score)
		applyMerges(tbl, hLines, vLines)
		resolveBorders(tbl, hLines, vLines, cfg.SnapTolerance)
		resolveShading(tbl, page.Rectangles)
		populateCells(tbl, page.TextElements, layoutOpts)
		tables = append(tables, tbl)
	}

	return tables, rejections
}

// prefilterLines discards segments shorter than
// MinTableLineLength, classify the rest as horizontal/vertical (dropping
// diagonals), and fold in ruling lines synthesized from thin filled
// rectangles.
func prefilterLines(page model.PageContent, cfg Config) (hLines, vLines []geom.LineSegment) {
	all := make([]geom.LineSegment, 0, len(page.Lines)+len(page.Rectangles))
	all = append(all, page.Lines...)
	for _, r := range page.Rectangles {
		if r.IsThinRule(cfg.ThinRectMaxThickness) {
			all = append(all, r.AsLineSegment())
		}
	}

	for _, l := range all {
		if l.Length() < cfg.MinTableLineLength {
			continue
		}
		switch l.Classify() {
		case geom.OrientationHorizontal:
			hLines = append(hLines, l.Normalized())
		case geom.OrientationVertical:
			vLines = append(vLines, l.Normalized())
		}
	}
	return hLines, vLines
}

// snapDedupe folds near-duplicate coordinates together: sorted values are
// folded into the first prior value within eps, replacing the prior with
// the arithmetic mean of everything folded into it so far.
func snapDedupe(values []float64, eps float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	type cluster struct {
		mean  float64
		count int
	}
	var clusters []cluster
	for _, v := range sorted {
		if len(clusters) > 0 {
			last := &clusters[len(clusters)-1]
			if v-last.mean <= eps {
				last.count++
				last.mean += (v - last.mean) / float64(last.count)
				continue
			}
		}
		clusters = append(clusters, cluster{mean: v, count: 1})
	}

	out := make([]float64, len(clusters))
	for i, c := range clusters {
		out[i] = c.mean
	}
	return out
}
