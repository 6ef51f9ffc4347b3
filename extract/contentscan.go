// Package extract is the replaceable PDF content extractor: it turns a
// page's decoded content stream into the model package's flat
// intermediate representation (GlyphRun, LineSegment, RectangleElement,
// Image, HyperlinkAnnotation), all already converted to the shared
// top-left coordinate system.
//
// Reuses core.Lexer directly for tokenization — content-stream operators
// tokenize as TokenKeyword the same way PDF-object keywords do — behind
// an operand-stack/operator-dispatch loop scaled down to the operator set
// this package needs instead of full per-glyph font decoding.
package extract

import (
	"strconv"
	"strings"

	"github.com/oriolcg/pdftodocx/core"
	"github.com/oriolcg/pdftodocx/extract/charset"
	"github.com/oriolcg/pdftodocx/geom"
	"github.com/oriolcg/pdftodocx/model"
)

// FontInfo is the subset of a resolved /Font resource the scanner needs:
// a display name and a bold/italic guess from the PostScript name.
type FontInfo struct {
	Name   string
	Bold   bool
	Italic bool
}

// ImagePlacement records where an XObject was painted; the caller
// resolves XObjectName against the page's decoded image data.
type ImagePlacement struct {
	XObjectName string
	Bounds      geom.Rect
}

// ScanResult is everything the scanner recovered from one content stream,
// already in top-left page coordinates.
type ScanResult struct {
	Runs   []model.GlyphRun
	Lines  []geom.LineSegment
	Rects  []geom.RectangleElement
	Images []ImagePlacement
}

type point struct{ x, y float64 }

type gstate struct {
	ctm       matrix
	fillHex   string
	lineWidth float64
	font      FontInfo
	fontSize  float64
	charSpace float64
	wordSpace float64
}

func defaultGState() gstate {
	return gstate{ctm: identityMatrix(), fillHex: "000000", lineWidth: 1, fontSize: 10}
}

type scanner struct {
	pageHeight float64
	fonts      map[string]FontInfo

	gs      gstate
	gsStack []gstate

	tm, tlm matrix
	inText  bool

	subpaths    [][]point
	rectCorners []point

	operands []core.Object

	result ScanResult
}

// Scan tokenizes a page's decoded content-stream bytes and returns the
// positioned content it describes. Malformed operators are skipped
// rather than aborting the scan — a degraded page still yields whatever
// content preceded the error.
func Scan(data []byte, pageHeight float64, fonts map[string]FontInfo) ScanResult {
	s := &scanner{pageHeight: pageHeight, fonts: fonts, gs: defaultGState()}
	lex := core.NewLexer(strings.NewReader(string(data)))

	for {
		tok, err := lex.NextToken()
		if err != nil {
			// Unrecognized byte (e.g. an operator variant like "f*" this
			// scanner doesn't model): drop the pending operands, consume
			// the offending byte, and keep going rather than abandon the
			// rest of the page.
			s.operands = nil
			if _, err := lex.ReadByte(); err != nil {
				break
			}
			continue
		}
		if tok.Type == core.TokenEOF {
			break
		}
		s.consumeToken(tok, lex)
	}

	return s.result
}

func (s *scanner) consumeToken(tok *core.Token, lex *core.Lexer) {
	switch tok.Type {
	case core.TokenInteger, core.TokenReal:
		f, _ := strconv.ParseFloat(string(tok.Value), 64)
		s.operands = append(s.operands, core.Real(f))
	case core.TokenString, core.TokenHexString:
		s.operands = append(s.operands, core.String(tok.Value))
	case core.TokenName:
		s.operands = append(s.operands, core.Name(tok.Value))
	case core.TokenArrayStart:
		s.operands = append(s.operands, s.readArray(lex))
	case core.TokenDictStart:
		s.skipDict(lex)
	case core.TokenKeyword:
		s.dispatch(string(tok.Value))
		s.operands = nil
	}
}

// readArray consumes tokens up to the matching TokenArrayEnd and returns
// them as a core.Array; used for the TJ operator's (string | number)* operand.
func (s *scanner) readArray(lex *core.Lexer) core.Array {
	var arr core.Array
	for {
		tok, err := lex.NextToken()
		if err != nil || tok.Type == core.TokenEOF || tok.Type == core.TokenArrayEnd {
			return arr
		}
		switch tok.Type {
		case core.TokenInteger, core.TokenReal:
			f, _ := strconv.ParseFloat(string(tok.Value), 64)
			arr = append(arr, core.Real(f))
		case core.TokenString, core.TokenHexString:
			arr = append(arr, core.String(tok.Value))
		case core.TokenName:
			arr = append(arr, core.Name(tok.Value))
		}
	}
}

// skipDict discards a marked-content properties dictionary (e.g. the
// operand of BDC), which this scanner has no use for.
func (s *scanner) skipDict(lex *core.Lexer) {
	depth := 1
	for depth > 0 {
		tok, err := lex.NextToken()
		if err != nil || tok.Type == core.TokenEOF {
			return
		}
		switch tok.Type {
		case core.TokenDictStart:
			depth++
		case core.TokenDictEnd:
			depth--
		case core.TokenArrayStart:
			s.readArray(lex)
		}
	}
}

func (s *scanner) num(i int) float64 {
	if i < 0 || i >= len(s.operands) {
		return 0
	}
	if r, ok := s.operands[i].(core.Real); ok {
		return float64(r)
	}
	if n, ok := s.operands[i].(core.Int); ok {
		return float64(n)
	}
	return 0
}

func (s *scanner) dispatch(op string) {
	n := len(s.operands)
	switch op {
	case "q":
		s.gsStack = append(s.gsStack, s.gs)
	case "Q":
		if l := len(s.gsStack); l > 0 {
			s.gs = s.gsStack[l-1]
			s.gsStack = s.gsStack[:l-1]
		}
	case "cm":
		if n >= 6 {
			s.gs.ctm = matrix{s.num(0), s.num(1), s.num(2), s.num(3), s.num(4), s.num(5)}.multiply(s.gs.ctm)
		}
	case "w":
		if n >= 1 {
			s.gs.lineWidth = s.num(0)
		}
	case "g":
		if n >= 1 {
			s.gs.fillHex = grayHex(s.num(0))
		}
	case "rg":
		if n >= 3 {
			s.gs.fillHex = rgbHex(s.num(0), s.num(1), s.num(2))
		}
	case "k":
		if n >= 4 {
			s.gs.fillHex = cmykHex(s.num(0), s.num(1), s.num(2), s.num(3))
		}
	case "BT":
		s.inText = true
		s.tm = identityMatrix()
		s.tlm = identityMatrix()
	case "ET":
		s.inText = false
	case "Tf":
		if n >= 2 {
			if name, ok := s.operands[0].(core.Name); ok {
				s.gs.font = s.fonts[string(name)]
			}
			s.gs.fontSize = s.num(1)
		}
	case "Tc":
		if n >= 1 {
			s.gs.charSpace = s.num(0)
		}
	case "Tw":
		if n >= 1 {
			s.gs.wordSpace = s.num(0)
		}
	case "Tm":
		if n >= 6 {
			m := matrix{s.num(0), s.num(1), s.num(2), s.num(3), s.num(4), s.num(5)}
			s.tm, s.tlm = m, m
		}
	case "Td":
		if n >= 2 {
			s.tlm = translateMatrix(s.num(0), s.num(1)).multiply(s.tlm)
			s.tm = s.tlm
		}
	case "TD":
		if n >= 2 {
			s.tlm = translateMatrix(s.num(0), s.num(1)).multiply(s.tlm)
			s.tm = s.tlm
		}
	case "Tj":
		if n >= 1 {
			if str, ok := s.operands[0].(core.String); ok {
				s.emitText(string(str))
			}
		}
	case "TJ":
		if n >= 1 {
			if arr, ok := s.operands[0].(core.Array); ok {
				s.emitTextArray(arr)
			}
		}
	case "m":
		if n >= 2 {
			p := point{s.num(0), s.num(1)}
			s.subpaths = append(s.subpaths, []point{p})
			s.rectCorners = nil
		}
	case "l":
		if n >= 2 {
			p := point{s.num(0), s.num(1)}
			if len(s.subpaths) == 0 {
				s.subpaths = append(s.subpaths, []point{p})
			} else {
				last := len(s.subpaths) - 1
				s.subpaths[last] = append(s.subpaths[last], p)
			}
		}
	case "re":
		if n >= 4 {
			x, y, w, h := s.num(0), s.num(1), s.num(2), s.num(3)
			s.rectCorners = []point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
		}
	case "S":
		s.strokePath(false)
	case "s":
		s.strokePath(true)
	case "f", "F":
		s.fillPath()
	case "Do":
		if n >= 1 {
			if name, ok := s.operands[0].(core.Name); ok {
				s.emitImage(string(name))
			}
		}
	}
}

func (s *scanner) deviceToTopLeft(x, y float64) (float64, float64) {
	return x, s.pageHeight - y
}

func (s *scanner) flipSegment(a, b point) geom.LineSegment {
	x1, y1 := s.deviceToTopLeft(a.x, a.y)
	x2, y2 := s.deviceToTopLeft(b.x, b.y)
	return geom.LineSegment{X1: x1, Y1: y1, X2: x2, Y2: y2, Thickness: maxFloat(s.gs.lineWidth, 0.5), ColorHex: "000000"}
}

func (s *scanner) rectBounds(corners []point) geom.Rect {
	left, right := corners[0].x, corners[0].x
	bottom, top := corners[0].y, corners[0].y
	for _, c := range corners[1:] {
		if c.x < left {
			left = c.x
		}
		if c.x > right {
			right = c.x
		}
		if c.y < bottom {
			bottom = c.y
		}
		if c.y > top {
			top = c.y
		}
	}
	_, topY := s.deviceToTopLeft(left, top)
	_, bottomY := s.deviceToTopLeft(right, bottom)
	return geom.Rect{Left: left, Right: right, Top: topY, Bottom: bottomY}
}

func (s *scanner) strokePath(closeSubpaths bool) {
	for _, sp := range s.subpaths {
		for i := 0; i+1 < len(sp); i++ {
			s.result.Lines = append(s.result.Lines, s.flipSegment(sp[i], sp[i+1]))
		}
		if closeSubpaths && len(sp) > 2 {
			s.result.Lines = append(s.result.Lines, s.flipSegment(sp[len(sp)-1], sp[0]))
		}
	}
	if s.rectCorners != nil {
		for i := 0; i < len(s.rectCorners); i++ {
			s.result.Lines = append(s.result.Lines, s.flipSegment(s.rectCorners[i], s.rectCorners[(i+1)%len(s.rectCorners)]))
		}
	}
	s.clearPath()
}

func (s *scanner) fillPath() {
	if s.rectCorners != nil {
		bounds := s.rectBounds(s.rectCorners)
		s.result.Rects = append(s.result.Rects, geom.RectangleElement{Bounds: bounds, Filled: true, FillHex: s.gs.fillHex})
	}
	s.clearPath()
}

func (s *scanner) clearPath() {
	s.subpaths = nil
	s.rectCorners = nil
}

// emitText estimates a glyph run's device-space bounds from character
// count and font size, since this scanner carries no per-glyph font
// metrics (see DESIGN.md). The text rendering matrix is
// scale(fontSize) * Tm * CTM.
func (s *scanner) emitText(text string) {
	if text == "" {
		return
	}
	rm := s.tm.multiply(s.gs.ctm)
	trm := scaleMatrix(s.gs.fontSize, s.gs.fontSize).multiply(rm)
	widthUnits := estimatedTextSpaceWidth(text)
	effectiveSize := s.gs.fontSize * scaleFactor(rm)

	x0, y0 := trm.apply(0, 0)
	x1, _ := trm.apply(widthUnits, 0)

	left := minFloat(x0, x1)
	right := maxFloat(x0, x1)
	_, topFlip := s.deviceToTopLeft(left, y0+effectiveSize*0.85)
	_, bottomFlip := s.deviceToTopLeft(left, y0-effectiveSize*0.25)

	run := model.GlyphRun{
		Text:     model.NormalizeText(charset.Unescape(text)),
		Bounds:   geom.Rect{Left: left, Right: right, Top: topFlip, Bottom: bottomFlip},
		FontName: s.gs.font.Name,
		FontSize: effectiveSize,
		IsBold:   s.gs.font.Bold,
		IsItalic: s.gs.font.Italic,
		ColorHex: s.gs.fillHex,
	}
	s.result.Runs = append(s.result.Runs, run)

	s.tm = translateMatrix(widthUnits, 0).multiply(s.tm)
}

func (s *scanner) emitTextArray(arr core.Array) {
	var sb strings.Builder
	for _, el := range arr {
		if str, ok := el.(core.String); ok {
			sb.WriteString(string(str))
		}
		// Numeric entries are kerning adjustments in thousandths of a
		// text-space unit; they are ignored, and the width estimate is
		// taken from the concatenated strings only, consistent with this
		// scanner's metrics-free approach to text measurement.
	}
	s.emitText(sb.String())
}

// estimatedTextSpaceWidth approximates a run's advance in text-space
// units (i.e. before the font-size scale baked into the rendering
// matrix), at roughly half an em per character — a coarse stand-in for
// real glyph widths.
func estimatedTextSpaceWidth(text string) float64 {
	return float64(len([]rune(text))) * 0.5
}

// scaleFactor approximates a matrix's uniform scale from its vertical
// basis vector, used to keep estimated glyph-run heights and effective
// font sizes consistent with whatever scaling Tm/CTM applied.
func scaleFactor(m matrix) float64 {
	v := m.d
	if v < 0 {
		v = -v
	}
	if v == 0 {
		return 1
	}
	return v
}

func (s *scanner) emitImage(xobjectName string) {
	unit := s.gs.ctm
	x0, y0 := unit.apply(0, 0)
	x1, y1 := unit.apply(1, 1)
	left := minFloat(x0, x1)
	right := maxFloat(x0, x1)
	bottomPDF := minFloat(y0, y1)
	topPDF := maxFloat(y0, y1)
	_, top := s.deviceToTopLeft(left, topPDF)
	_, bottom := s.deviceToTopLeft(left, bottomPDF)
	s.result.Images = append(s.result.Images, ImagePlacement{
		XObjectName: xobjectName,
		Bounds:      geom.Rect{Left: left, Right: right, Top: top, Bottom: bottom},
	})
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
