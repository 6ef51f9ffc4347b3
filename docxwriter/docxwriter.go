// Package docxwriter packages a DocumentStructure into the OOXML
// wordprocessing container: a zip archive holding [Content_Types].xml,
// the root and document relationship parts, word/document.xml,
// word/styles.xml, word/settings.xml, and any embedded media.
//
// Element and attribute names follow the standard OOXML wordprocessing
// schema. Document and relationship text is assembled with an explicit
// escaping function (escape.go) rather than encoding/xml.Marshal's
// built-in escaping, because interoperable OOXML output needs named
// entities (&amp; &lt; &gt; &quot; &apos;) and Go's encoder emits numeric
// character references for quotes and apostrophes.
package docxwriter

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/oriolcg/pdftodocx/geom"
	"github.com/oriolcg/pdftodocx/model"
	"github.com/oriolcg/pdftodocx/pdferr"
)

const (
	pageMarginPt = 72.0
	maxImageWidthPt = 6 * geom.PointsPerInch
)

// builder holds the instance-scoped state the packager owns for a single
// Generate call: the relationship counter, registered media, and
// hyperlink-URI dedup map. None of it survives past one call.
type builder struct {
	relCounter    int
	media         []mediaEntry
	hyperlinkRIDs map[string]string // URI -> rId, for dedup
	imageCounter  int
}

type mediaEntry struct {
	rID      string
	filename string
	ext      string
	data     []byte
}

func newBuilder() *builder {
	return &builder{relCounter: 2, hyperlinkRIDs: make(map[string]string)}
}

func (b *builder) nextRelID() string {
	b.relCounter++
	return fmt.Sprintf("rId%d", b.relCounter)
}

func (b *builder) hyperlinkRelID(uri string) string {
	if rid, ok := b.hyperlinkRIDs[uri]; ok {
		return rid
	}
	rid := b.nextRelID()
	b.hyperlinkRIDs[uri] = rid
	return rid
}

func (b *builder) registerImage(img *model.Image) mediaEntry {
	b.imageCounter++
	ext := normalizeExtension(img.Format)
	entry := mediaEntry{
		rID:      b.nextRelID(),
		filename: fmt.Sprintf("image%d.%s", b.imageCounter, ext),
		ext:      ext,
		data:     img.Data,
	}
	b.media = append(b.media, entry)
	return entry
}

func normalizeExtension(format string) string {
	if format == "jpeg" {
		return "jpg"
	}
	if format == "" {
		return "png"
	}
	return format
}

// Generate packages a document into a .docx byte stream.
func Generate(doc model.DocumentStructure) ([]byte, error) {
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("%w: document has no pages", pdferr.ErrPackagerInvariant)
	}

	b := newBuilder()
	documentXML := buildDocumentXML(b, doc)
	stylesXML := buildStylesXML()
	settingsXML := buildSettingsXML()
	documentRelsXML := buildDocumentRelsXML(b)
	rootRelsXML := buildRootRelsXML()
	contentTypesXML := buildContentTypesXML(b)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", rootRelsXML},
		{"word/document.xml", documentXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", stylesXML},
		{"word/settings.xml", settingsXML},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("%w: creating %s: %v", pdferr.ErrPackagerInvariant, p.name, err)
		}
		if _, err := w.Write(p.data); err != nil {
			return nil, fmt.Errorf("%w: writing %s: %v", pdferr.ErrPackagerInvariant, p.name, err)
		}
	}
	for _, m := range b.media {
		w, err := zw.Create("word/media/" + m.filename)
		if err != nil {
			return nil, fmt.Errorf("%w: creating media %s: %v", pdferr.ErrPackagerInvariant, m.filename, err)
		}
		if _, err := w.Write(m.data); err != nil {
			return nil, fmt.Errorf("%w: writing media %s: %v", pdferr.ErrPackagerInvariant, m.filename, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: closing archive: %v", pdferr.ErrPackagerInvariant, err)
	}
	return buf.Bytes(), nil
}
