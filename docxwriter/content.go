package docxwriter

import (
	"fmt"
	"strings"

	"github.com/oriolcg/pdftodocx/geom"
	"github.com/oriolcg/pdftodocx/model"
)

const hyperlinkColorHex = "0563C1"

// buildDocumentXML renders word/document.xml: a page-break run between
// pages (never after the last page), each page's blocks in order, and a
// final section properties block derived from the first page's
// dimensions plus a 72pt margin.
func buildDocumentXML(b *builder, doc model.DocumentStructure) []byte {
	var body strings.Builder
	for i, page := range doc.Pages {
		if i > 0 {
			body.WriteString(pageBreakParagraph())
		}
		for _, block := range page.Blocks {
			switch block.Kind {
			case model.BlockParagraph:
				body.WriteString(renderParagraph(b, *block.Paragraph))
			case model.BlockTable:
				body.WriteString(renderTable(b, *block.Table))
				body.WriteString(emptyParagraph())
			case model.BlockImage:
				body.WriteString(renderImageParagraph(b, block.Image))
			}
		}
	}
	first := doc.Pages[0]
	body.WriteString(sectPr(first.Width, first.Height))

	var out strings.Builder
	out.WriteString(xmlHeader)
	out.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" `)
	out.WriteString(`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" `)
	out.WriteString(`xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing" `)
	out.WriteString(`xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" `)
	out.WriteString(`xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">`)
	out.WriteString("<w:body>")
	out.WriteString(body.String())
	out.WriteString("</w:body></w:document>")
	return []byte(out.String())
}

func sectPr(widthPt, heightPt float64) string {
	margin := geom.PointsToTwips(pageMarginPt)
	return fmt.Sprintf(
		`<w:sectPr><w:pgSz w:w="%d" w:h="%d"/><w:pgMar w:top="%d" w:right="%d" w:bottom="%d" w:left="%d" w:header="0" w:footer="0" w:gutter="0"/></w:sectPr>`,
		geom.PointsToTwips(widthPt), geom.PointsToTwips(heightPt), margin, margin, margin, margin,
	)
}

func pageBreakParagraph() string {
	return `<w:p><w:r><w:br w:type="page"/></w:r></w:p>`
}

func emptyParagraph() string {
	return `<w:p/>`
}

func alignmentValue(a model.Alignment) string {
	switch a {
	case model.AlignCenter:
		return "center"
	case model.AlignRight:
		return "right"
	case model.AlignJustify:
		return "both"
	default:
		return "left"
	}
}

func renderParagraph(b *builder, p model.TextParagraph) string {
	var sb strings.Builder
	sb.WriteString("<w:p><w:pPr>")
	sb.WriteString(fmt.Sprintf(`<w:jc w:val="%s"/>`, alignmentValue(p.Alignment)))
	lineTwips := geom.PointsToTwips(dominantLineHeight(p))
	afterTwips := geom.PointsToTwips(paragraphSpacingAfterOf(p))
	sb.WriteString(fmt.Sprintf(`<w:spacing w:line="%d" w:lineRule="atLeast" w:after="%d"/>`, lineTwips, afterTwips))
	sb.WriteString("</w:pPr>")

	for li, line := range p.Lines {
		if li > 0 {
			sb.WriteString(whitespaceRun())
		}
		sb.WriteString(renderRunsWithHyperlinks(b, line.Runs))
	}
	sb.WriteString("</w:p>")
	return sb.String()
}

// renderRunsWithHyperlinks groups consecutive runs sharing the same
// non-empty hyperlink target into a single <w:hyperlink r:id="..."> wrapper
// referencing a deduped relationship, and renders plain runs inline.
func renderRunsWithHyperlinks(b *builder, runs []model.TextRun) string {
	var sb strings.Builder
	i := 0
	for i < len(runs) {
		uri := runs[i].HyperlinkURI
		if uri == "" {
			sb.WriteString(renderRunBody(runs[i]))
			i++
			continue
		}
		j := i
		var group strings.Builder
		for j < len(runs) && runs[j].HyperlinkURI == uri {
			group.WriteString(renderRunBody(runs[j]))
			j++
		}
		rid := b.hyperlinkRelID(uri)
		sb.WriteString(fmt.Sprintf(`<w:hyperlink r:id="%s" w:history="1">`, rid))
		sb.WriteString(group.String())
		sb.WriteString(`</w:hyperlink>`)
		i = j
	}
	return sb.String()
}

// dominantLineHeight reads the first line's LineHeight assigned by the
// layout analyzer, defaulting to 12pt so a paragraph with no lines still
// renders a valid spacing block. paragraphSpacingAfterOf always returns
// 0: a model.TextParagraph carries no after-paragraph spacing value.
func dominantLineHeight(p model.TextParagraph) float64 {
	if len(p.Lines) == 0 {
		return 12
	}
	return p.Lines[0].LineHeight
}

func paragraphSpacingAfterOf(p model.TextParagraph) float64 {
	return 0
}

func whitespaceRun() string {
	return `<w:r><w:t xml:space="preserve"> </w:t></w:r>`
}

// renderRunBody renders one <w:r> including run properties and text, with
// hyperlink styling (color + single underline) when the run carries a
// hyperlink target. Hyperlink wrapping into <w:hyperlink> elements happens
// in renderRunsWithHyperlinks, which groups consecutive same-URI runs.
func renderRunBody(r model.TextRun) string {
	var sb strings.Builder
	sb.WriteString("<w:r><w:rPr>")
	font := r.FontName
	if font == "" {
		font = "Calibri"
	}
	sb.WriteString(fmt.Sprintf(`<w:rFonts w:ascii="%s" w:hAnsi="%s" w:cs="%s"/>`, escapeXML(font), escapeXML(font), escapeXML(font)))
	if r.Bold {
		sb.WriteString(`<w:b/>`)
	}
	if r.Italic {
		sb.WriteString(`<w:i/>`)
	}
	if r.HyperlinkURI != "" {
		sb.WriteString(fmt.Sprintf(`<w:color w:val="%s"/><w:u w:val="single"/>`, hyperlinkColorHex))
	} else if r.ColorHex != "" && !strings.EqualFold(r.ColorHex, "000000") {
		sb.WriteString(fmt.Sprintf(`<w:color w:val="%s"/>`, escapeXML(r.ColorHex)))
	}
	size := r.FontSize
	if size <= 0 {
		size = 10
	}
	sb.WriteString(fmt.Sprintf(`<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, geom.PointsToHalfPoints(size), geom.PointsToHalfPoints(size)))
	sb.WriteString("</w:rPr>")
	sb.WriteString(fmt.Sprintf(`<w:t xml:space="preserve">%s</w:t>`, escapeXML(r.Text)))
	sb.WriteString("</w:r>")
	return sb.String()
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`
