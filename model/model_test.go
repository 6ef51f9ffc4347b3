package model

import (
	"testing"

	"github.com/oriolcg/pdftodocx/geom"
)

func TestSameFormatting(t *testing.T) {
	a := GlyphRun{FontName: "Arial", FontSize: 11.0, IsBold: true}
	b := GlyphRun{FontName: "Arial", FontSize: 11.4, IsBold: true}
	if !SameFormatting(a, b) {
		t.Fatal("expected fonts within 0.5pt to fold together")
	}
	c := GlyphRun{FontName: "Arial", FontSize: 12.0, IsBold: true}
	if SameFormatting(a, c) {
		t.Fatal("expected fonts beyond 0.5pt to stay separate")
	}
}

func TestAlignmentString(t *testing.T) {
	cases := map[Alignment]string{
		AlignLeft:    "left",
		AlignCenter:  "center",
		AlignRight:   "right",
		AlignJustify: "justify",
	}
	for a, want := range cases {
		if got := a.String(); got != want {
			t.Fatalf("Alignment(%d).String() = %q, want %q", a, got, want)
		}
	}
}

func TestDetectedTableCellAt(t *testing.T) {
	tbl := &DetectedTable{
		RowCount: 2, ColCount: 2,
		Cells: [][]TableCell{
			{{Row: 0, Col: 0}, {Row: 0, Col: 1}},
			{{Row: 1, Col: 0}, {Row: 1, Col: 1}},
		},
	}
	if tbl.CellAt(1, 1).Row != 1 {
		t.Fatal("expected cell at (1,1)")
	}
	oob := tbl.CellAt(5, 5)
	if oob.Row != 0 || oob.Col != 0 || oob.Paragraphs != nil {
		t.Fatal("expected zero value out of range")
	}
}

func TestContentBlockConstructors(t *testing.T) {
	p := TextParagraph{Bounds: geom.NewRect(0, 0, 10, 10)}
	blk := NewParagraphBlock(p)
	if blk.Kind != BlockParagraph || blk.Paragraph == nil {
		t.Fatal("expected paragraph block")
	}
}
