package docxwriter

import (
	"fmt"
	"strings"

	"github.com/oriolcg/pdftodocx/geom"
	"github.com/oriolcg/pdftodocx/model"
)

// renderTable renders a <w:tbl> with fixed layout, explicit grid columns,
// per-row minimum heights, horizontal spans via gridSpan, vertical spans
// via vMerge origin/continuation pairs, and horizontally-absorbed
// continuation cells omitted entirely.
func renderTable(b *builder, t model.DetectedTable) string {
	totalTwips := 0
	colTwips := make([]int, len(t.ColumnWidths))
	for i, w := range t.ColumnWidths {
		colTwips[i] = geom.PointsToTwips(w)
		totalTwips += colTwips[i]
	}

	var sb strings.Builder
	sb.WriteString("<w:tbl><w:tblPr>")
	sb.WriteString(`<w:tblLayout w:type="fixed"/>`)
	sb.WriteString(fmt.Sprintf(`<w:tblW w:w="%d" w:type="dxa"/>`, totalTwips))
	sb.WriteString(tableBorders())
	sb.WriteString("</w:tblPr>")

	sb.WriteString("<w:tblGrid>")
	for _, w := range colTwips {
		sb.WriteString(fmt.Sprintf(`<w:gridCol w:w="%d"/>`, w))
	}
	sb.WriteString("</w:tblGrid>")

	for r := 0; r < t.RowCount; r++ {
		sb.WriteString(renderRow(b, t, r, colTwips))
	}
	sb.WriteString("</w:tbl>")
	return sb.String()
}

func tableBorders() string {
	const val = `w:val="single" w:sz="4" w:space="0" w:color="auto"`
	return "<w:tblBorders>" +
		fmt.Sprintf(`<w:top %s/>`, val) +
		fmt.Sprintf(`<w:left %s/>`, val) +
		fmt.Sprintf(`<w:bottom %s/>`, val) +
		fmt.Sprintf(`<w:right %s/>`, val) +
		fmt.Sprintf(`<w:insideH %s/>`, val) +
		fmt.Sprintf(`<w:insideV %s/>`, val) +
		"</w:tblBorders>"
}

func renderRow(b *builder, t model.DetectedTable, r int, colTwips []int) string {
	var sb strings.Builder
	sb.WriteString("<w:tr><w:trPr>")
	sb.WriteString(fmt.Sprintf(`<w:trHeight w:val="%d" w:hRule="atLeast"/>`, geom.PointsToTwips(t.RowHeights[r])))
	sb.WriteString("</w:trPr>")

	// owningRow[c] records, for columns already scanned in this row, that
	// an origin cell starting at or before c owns column c in row r; used
	// to tell a same-row horizontal-span continuation (skip) apart from a
	// vertical-merge continuation carried down from a row above (emit a
	// minimal vMerge cell).
	owningRow := make([]bool, t.ColCount)

	c := 0
	for c < t.ColCount {
		cell := t.Cells[r][c]
		if !cell.IsMergedContinuation {
			for cc := c; cc < c+cell.ColSpan && cc < t.ColCount; cc++ {
				owningRow[cc] = true
			}
			sb.WriteString(renderOriginCell(b, cell, colTwips))
			c += maxInt(cell.ColSpan, 1)
			continue
		}
		if owningRow[c] {
			c++ // absorbed into this row's origin cell; no <w:tc> of its own
			continue
		}
		sb.WriteString(renderMergeContinuationCell(cell, colTwips))
		c++
	}
	sb.WriteString("</w:tr>")
	return sb.String()
}

func renderOriginCell(b *builder, cell model.TableCell, colTwips []int) string {
	width := cellWidthTwips(cell, colTwips)

	var sb strings.Builder
	sb.WriteString("<w:tc><w:tcPr>")
	sb.WriteString(fmt.Sprintf(`<w:tcW w:w="%d" w:type="dxa"/>`, width))
	if cell.ColSpan > 1 {
		sb.WriteString(fmt.Sprintf(`<w:gridSpan w:val="%d"/>`, cell.ColSpan))
	}
	if cell.RowSpan > 1 {
		sb.WriteString(`<w:vMerge w:val="restart"/>`)
	}
	sb.WriteString(cellBorders(cell))
	if cell.BackgroundColorHex != "" {
		sb.WriteString(fmt.Sprintf(`<w:shd w:val="clear" w:color="auto" w:fill="%s"/>`, escapeXML(cell.BackgroundColorHex)))
	}
	sb.WriteString("</w:tcPr>")
	sb.WriteString(renderCellParagraphs(b, cell))
	sb.WriteString("</w:tc>")
	return sb.String()
}

// renderMergeContinuationCell emits the minimal cell OOXML requires below
// a vertical-merge origin: tcW plus a bare <w:vMerge/> continuation marker
// and one empty paragraph.
func renderMergeContinuationCell(cell model.TableCell, colTwips []int) string {
	width := cellWidthTwips(cell, colTwips)
	return fmt.Sprintf(`<w:tc><w:tcPr><w:tcW w:w="%d" w:type="dxa"/><w:vMerge/></w:tcPr><w:p/></w:tc>`, width)
}

func cellWidthTwips(cell model.TableCell, colTwips []int) int {
	span := maxInt(cell.ColSpan, 1)
	total := 0
	for cc := cell.Col; cc < cell.Col+span && cc < len(colTwips); cc++ {
		total += colTwips[cc]
	}
	return total
}

func cellBorders(cell model.TableCell) string {
	var sb strings.Builder
	sb.WriteString(renderBorderEdge("top", cell.Top))
	sb.WriteString(renderBorderEdge("left", cell.Left))
	sb.WriteString(renderBorderEdge("bottom", cell.Bottom))
	sb.WriteString(renderBorderEdge("right", cell.Right))
	return "<w:tcBorders>" + sb.String() + "</w:tcBorders>"
}

func renderBorderEdge(name string, style model.BorderStyle) string {
	if style.Style == model.BorderNone {
		return fmt.Sprintf(`<w:%s w:val="nil"/>`, name)
	}
	color := style.ColorHex
	if color == "" {
		color = "auto"
	}
	return fmt.Sprintf(`<w:%s w:val="single" w:sz="%d" w:space="0" w:color="%s"/>`, name, geom.PointsToEighths(style.WidthPt), escapeXML(color))
}

func renderCellParagraphs(b *builder, cell model.TableCell) string {
	if len(cell.Paragraphs) == 0 {
		return "<w:p/>"
	}
	var sb strings.Builder
	for _, p := range cell.Paragraphs {
		sb.WriteString(renderParagraph(b, p))
	}
	return sb.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
