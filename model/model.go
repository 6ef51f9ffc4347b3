// Package model defines the intermediate representation produced by the
// extractor and consumed by the table detector, layout analyzer, page
// assembler, and document packager.
//
// Geometry primitives and input records (GlyphRun, LineSegment,
// RectangleElement) are created once by the extractor and are read-only
// afterwards. The detector and layout analyzer produce new DetectedTable
// and TextParagraph trees; the page assembler composes everything into
// ContentBlocks in reading order.
package model

import "github.com/oriolcg/pdftodocx/geom"

// GlyphRun is a single positioned run of text as produced by the
// extractor, before any line grouping or formatting-fold has happened.
type GlyphRun struct {
	Text       string
	Bounds     geom.Rect
	FontName   string // cleaned (subset prefix stripped)
	FontSize   float64
	IsBold     bool
	IsItalic   bool
	ColorHex   string
	HyperlinkURI string
}

// TextRun is a maximal contiguous fragment within a TextLine that shares
// formatting: font name, font size within ±0.5pt, bold, italic, color,
// and hyperlink target.
type TextRun struct {
	Text         string
	Bounds       geom.Rect
	FontName     string
	FontSize     float64
	Bold         bool
	Italic       bool
	ColorHex     string
	HyperlinkURI string
}

// SameFormatting reports whether two glyph runs should fold into the same
// TextRun: identical font name/bold/italic/color/hyperlink target and
// font size within ±0.5pt.
func SameFormatting(a, b GlyphRun) bool {
	if a.FontName != b.FontName || a.IsBold != b.IsBold || a.IsItalic != b.IsItalic || a.ColorHex != b.ColorHex {
		return false
	}
	if a.HyperlinkURI != b.HyperlinkURI {
		return false
	}
	d := a.FontSize - b.FontSize
	if d < 0 {
		d = -d
	}
	return d <= 0.5
}

// TextLine is an ordered sequence of TextRuns sharing a visual line, along
// with the line's bounds and the line height assigned by the layout
// analyzer.
type TextLine struct {
	Runs             []TextRun
	Bounds           geom.Rect
	LineHeight       float64 // dominantFontSize * lineSpacingMultiplier, set by the analyzer
	DominantFontSize float64 // font size of the longest-text run
}

// Text concatenates the line's run text.
func (l TextLine) Text() string {
	s := ""
	for _, r := range l.Runs {
		s += r.Text
	}
	return s
}

// Alignment enumerates the four paragraph alignments the layout analyzer
// can classify.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "left"
	}
}

// TextParagraph is an ordered sequence of TextLines with a union bounds
// and a classified alignment.
type TextParagraph struct {
	Lines     []TextLine
	Bounds    geom.Rect
	Alignment Alignment
}

// BorderStyleKind enumerates the border styles a table cell's data model
// supports; only single and none are currently produced (see
// DESIGN.md Open Question 1).
type BorderStyleKind int

const (
	BorderNone BorderStyleKind = iota
	BorderSingle
	BorderDashed
	BorderDotted
)

// BorderStyle describes one edge of a table cell.
type BorderStyle struct {
	WidthPt  float64
	ColorHex string
	Style    BorderStyleKind
}

// TableCell is one entry of a DetectedTable's dense cell matrix.
type TableCell struct {
	Row, Col             int
	RowSpan, ColSpan     int
	Bounds               geom.Rect
	Top, Right, Bottom, Left BorderStyle
	BackgroundColorHex   string
	Paragraphs           []TextParagraph
	IsMergedContinuation bool
}

// DetectedTable is the table detector's output: a dense row x col matrix
// of cells, with column widths and row heights that sum to the table's
// outer bounds within 1pt.
type DetectedTable struct {
	Bounds        geom.Rect
	RowCount      int
	ColCount      int
	Cells         [][]TableCell // Cells[row][col]
	ColumnWidths  []float64
	RowHeights    []float64
	Confidence    float64
}

// CellAt returns the cell at (row, col), or the zero value if out of
// range.
func (t *DetectedTable) CellAt(row, col int) TableCell {
	if row < 0 || row >= t.RowCount || col < 0 || col >= t.ColCount {
		return TableCell{}
	}
	return t.Cells[row][col]
}

// ContentBlockKind tags the variant held by a ContentBlock.
type ContentBlockKind int

const (
	BlockParagraph ContentBlockKind = iota
	BlockTable
	BlockImage
)

// Image is an embedded raster image placed at a position on the page.
type Image struct {
	Bounds   geom.Rect
	Data     []byte
	Format   string // "png", "jpg", "gif", "bmp", "tiff"
}

// ContentBlock is a tagged variant over {Paragraph | Table | Image}.
// Exactly one of Paragraph, Table, Image is non-nil, matching the active
// Kind.
type ContentBlock struct {
	Kind      ContentBlockKind
	Bounds    geom.Rect
	Paragraph *TextParagraph
	Table     *DetectedTable
	Image     *Image
}

// NewParagraphBlock wraps a paragraph as a ContentBlock.
func NewParagraphBlock(p TextParagraph) ContentBlock {
	return ContentBlock{Kind: BlockParagraph, Bounds: p.Bounds, Paragraph: &p}
}

// NewTableBlock wraps a table as a ContentBlock.
func NewTableBlock(t *DetectedTable) ContentBlock {
	return ContentBlock{Kind: BlockTable, Bounds: t.Bounds, Table: t}
}

// NewImageBlock wraps an image as a ContentBlock.
func NewImageBlock(img Image) ContentBlock {
	return ContentBlock{Kind: BlockImage, Bounds: img.Bounds, Image: &img}
}

// PageStructure is one page's fully-assembled, reading-order content.
type PageStructure struct {
	Number int
	Width  float64
	Height float64
	Blocks []ContentBlock
}

// DocumentStructure is the page assembler's final, immutable output
// consumed by the packager.
type DocumentStructure struct {
	Pages []PageStructure
}
