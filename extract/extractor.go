package extract

import (
	"fmt"

	"github.com/oriolcg/pdftodocx/core"
	"github.com/oriolcg/pdftodocx/extract/charset"
	"github.com/oriolcg/pdftodocx/extract/imageformat"
	"github.com/oriolcg/pdftodocx/geom"
	"github.com/oriolcg/pdftodocx/model"
	"github.com/oriolcg/pdftodocx/pages"
	"github.com/oriolcg/pdftodocx/pdferr"
	"github.com/oriolcg/pdftodocx/reader"
)

// imageSource is the subset of reader.Reader the extractor needs, split
// out so tests can supply a fake without building a real PDF.
type imageSource interface {
	ContentStreamBytes(page *pages.Page) ([]byte, error)
	ExtractPageImages(page *pages.Page) ([]reader.PageImage, error)
	Resolve(obj core.Object) (core.Object, error)
}

// Page extracts one page's text, lines, rectangles, images, and
// hyperlinks into the shared intermediate representation, in top-left
// page coordinates.
func Page(r imageSource, p *pages.Page, number int) (model.PageContent, error) {
	width, err := p.Width()
	if err != nil {
		return model.PageContent{}, fmt.Errorf("%w: %v", pdferr.ErrDegradedPage, err)
	}
	height, err := p.Height()
	if err != nil {
		return model.PageContent{}, fmt.Errorf("%w: %v", pdferr.ErrDegradedPage, err)
	}

	data, err := r.ContentStreamBytes(p)
	if err != nil {
		return model.PageContent{}, fmt.Errorf("%w: %v", pdferr.ErrDegradedPage, err)
	}

	fonts, err := resourceFonts(r, p)
	if err != nil {
		fonts = map[string]FontInfo{}
	}

	scan := Scan(data, height, fonts)

	images, err := resolveImages(r, p, scan.Images)
	if err != nil {
		images = nil
	}

	hyperlinks, err := resolveHyperlinks(r, p, height)
	if err != nil {
		hyperlinks = nil
	}

	content := model.PageContent{
		Number:      number,
		Width:       width,
		Height:      height,
		TextElements: scan.Runs,
		Lines:       scan.Lines,
		Rectangles:  scan.Rects,
		Images:      images,
		Hyperlinks:  hyperlinks,
	}
	return content, nil
}

// resourceFonts builds a name -> FontInfo lookup from the page's /Font
// resource dictionary, guessing bold/italic from the PostScript base font
// name the way a system with no embedded-font decoding must.
func resourceFonts(r imageSource, p *pages.Page) (map[string]FontInfo, error) {
	resources, err := p.Resources()
	if err != nil {
		return nil, err
	}

	fontDictObj := resources.Get("Font")
	if fontDictObj == nil {
		return map[string]FontInfo{}, nil
	}
	resolved, err := r.Resolve(fontDictObj)
	if err != nil {
		return nil, err
	}
	fontDict, ok := resolved.(core.Dict)
	if !ok {
		return map[string]FontInfo{}, nil
	}

	out := make(map[string]FontInfo, len(fontDict))
	for name, ref := range fontDict {
		fontObj, err := r.Resolve(ref)
		if err != nil {
			continue
		}
		fd, ok := fontObj.(core.Dict)
		if !ok {
			continue
		}
		base := ""
		if baseObj := fd.Get("BaseFont"); baseObj != nil {
			if n, ok := baseObj.(core.Name); ok {
				base = string(n)
			}
		}
		out[name] = fontInfoFromBaseName(base)
	}
	return out, nil
}

// fontInfoFromBaseName strips a subset tag ("ABCDEF+Arial-BoldItalic")
// and derives bold/italic from the remaining PostScript name.
func fontInfoFromBaseName(base string) FontInfo {
	name := base
	if len(name) > 7 && name[6] == '+' {
		isSubsetTag := true
		for i := 0; i < 6; i++ {
			if name[i] < 'A' || name[i] > 'Z' {
				isSubsetTag = false
				break
			}
		}
		if isSubsetTag {
			name = name[7:]
		}
	}

	lower := toLower(name)
	bold := containsAny(lower, "bold", "black", "heavy")
	italic := containsAny(lower, "italic", "oblique")

	display := name
	if display == "" {
		display = "Arial"
	}
	return FontInfo{Name: display, Bold: bold, Italic: italic}
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if indexOf(s, sub) >= 0 {
			return true
		}
	}
	return false
}

func indexOf(s, sub string) int {
	n, m := len(s), len(sub)
	if m == 0 {
		return 0
	}
	for i := 0; i+m <= n; i++ {
		if s[i:i+m] == sub {
			return i
		}
	}
	return -1
}

// resolveImages matches scanner-recorded XObject placements against the
// page's decoded image data, producing one model.Image per placement
// whose XObject could be decoded.
func resolveImages(r imageSource, p *pages.Page, placements []ImagePlacement) ([]model.Image, error) {
	if len(placements) == 0 {
		return nil, nil
	}

	pageImages, err := r.ExtractPageImages(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pdferr.ErrImageUnreadable, err)
	}

	byName := make(map[string]reader.PageImage, len(pageImages))
	for _, img := range pageImages {
		byName[img.Name] = img
	}

	var out []model.Image
	for _, placement := range placements {
		pi, ok := byName[placement.XObjectName]
		if !ok {
			continue
		}

		var data []byte
		var format string
		switch {
		case pi.Filter == "DCTDecode" || pi.Filter == "DCT":
			data, format = pi.Data, "jpg"
		case pi.Filter == "JPXDecode":
			data, format = pi.Data, "jp2"
		default:
			if sniffed, ok := imageformat.Sniff(pi.Data); ok {
				data, format = pi.Data, sniffed
			} else {
				png, err := pi.ToPNG()
				if err != nil {
					continue
				}
				data, format = png, "png"
			}
		}

		out = append(out, model.Image{
			Bounds: placement.Bounds,
			Data:   data,
			Format: format,
		})
	}
	return out, nil
}

// resolveHyperlinks reads a page's /Link annotations and resolves each
// to a URI: an explicit /A /URI action, or an internal /Dest (recorded
// as a "#name" fragment since this module has no page-number-destination
// resolver).
func resolveHyperlinks(r imageSource, p *pages.Page, pageHeight float64) ([]model.HyperlinkAnnotation, error) {
	annots, err := p.Annotations()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pdferr.ErrAnnotationFailure, err)
	}

	var out []model.HyperlinkAnnotation
	for _, annot := range annots {
		subtypeObj := annot.Get("Subtype")
		subtype, ok := subtypeObj.(core.Name)
		if !ok || string(subtype) != "Link" {
			continue
		}

		uri := charset.Unescape(linkURI(r, annot))
		if uri == "" {
			continue
		}

		rectObj := annot.Get("Rect")
		rectArr, ok := rectObj.(core.Array)
		if !ok || len(rectArr) != 4 {
			continue
		}
		coords := make([]float64, 4)
		for i, v := range rectArr {
			coords[i] = numberValue(v)
		}
		left, bottom, right, top := coords[0], coords[1], coords[2], coords[3]
		if left > right {
			left, right = right, left
		}
		if bottom > top {
			bottom, top = top, bottom
		}

		out = append(out, model.HyperlinkAnnotation{
			Bounds: geom.Rect{
				Left:   left,
				Right:  right,
				Top:    pageHeight - top,
				Bottom: pageHeight - bottom,
			},
			URI: uri,
		})
	}
	return out, nil
}

func linkURI(r imageSource, annot core.Dict) string {
	if actionObj := annot.Get("A"); actionObj != nil {
		if resolved, err := r.Resolve(actionObj); err == nil {
			if action, ok := resolved.(core.Dict); ok {
				if uriObj := action.Get("URI"); uriObj != nil {
					if s, ok := uriObj.(core.String); ok {
						return string(s)
					}
				}
			}
		}
	}
	if destObj := annot.Get("Dest"); destObj != nil {
		if name, ok := destObj.(core.Name); ok {
			return "#" + string(name)
		}
		if s, ok := destObj.(core.String); ok {
			return "#" + string(s)
		}
	}
	return ""
}

func numberValue(o core.Object) float64 {
	switch v := o.(type) {
	case core.Int:
		return float64(v)
	case core.Real:
		return float64(v)
	default:
		return 0
	}
}
