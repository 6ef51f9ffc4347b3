package docxwriter

import (
	"fmt"
	"sort"
	"strings"
)

// buildStylesXML returns a minimal but complete style sheet carrying the
// fixed set of styles the document content and table cells reference:
// Normal, two heading levels, Hyperlink character styling, and the
// default table style.
func buildStylesXML() []byte {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`)
	sb.WriteString(`<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:cs="Calibri"/><w:sz w:val="22"/></w:rPr></w:rPrDefault></w:docDefaults>`)

	sb.WriteString(`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>`)

	sb.WriteString(`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/>` +
		`<w:pPr><w:outlineLvl w:val="0"/></w:pPr><w:rPr><w:b/><w:sz w:val="32"/></w:rPr></w:style>`)

	sb.WriteString(`<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:basedOn w:val="Normal"/>` +
		`<w:pPr><w:outlineLvl w:val="1"/></w:pPr><w:rPr><w:b/><w:sz w:val="26"/></w:rPr></w:style>`)

	sb.WriteString(fmt.Sprintf(
		`<w:style w:type="character" w:styleId="Hyperlink"><w:name w:val="Hyperlink"/>`+
			`<w:rPr><w:color w:val="%s"/><w:u w:val="single"/></w:rPr></w:style>`,
		hyperlinkColorHex,
	))

	sb.WriteString(`<w:style w:type="table" w:default="1" w:styleId="TableNormal"><w:name w:val="Table Normal"/>` +
		`<w:tblPr><w:tblInd w:w="0" w:type="dxa"/></w:tblPr></w:style>`)

	sb.WriteString(`</w:styles>`)
	return []byte(sb.String())
}

// buildSettingsXML returns word/settings.xml with the compatibility and
// default-tab-stop settings Word expects on every package.
func buildSettingsXML() []byte {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<w:settings xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`)
	sb.WriteString(`<w:defaultTabStop w:val="720"/>`)
	sb.WriteString(`<w:compat/>`)
	sb.WriteString(`</w:settings>`)
	return []byte(sb.String())
}

// buildRootRelsXML returns _rels/.rels: the single relationship from the
// package root to the main document part.
func buildRootRelsXML() []byte {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	sb.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>`)
	sb.WriteString(`</Relationships>`)
	return []byte(sb.String())
}

// buildDocumentRelsXML returns word/_rels/document.xml.rels: rId1 styles,
// rId2 settings, then one relationship per deduped hyperlink (marked
// External) and one per registered image, in the order they were first
// assigned.
func buildDocumentRelsXML(b *builder) []byte {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	sb.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>`)
	sb.WriteString(`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/settings" Target="settings.xml"/>`)

	for _, uri := range orderedHyperlinkURIs(b) {
		rid := b.hyperlinkRIDs[uri]
		sb.WriteString(fmt.Sprintf(
			`<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="%s" TargetMode="External"/>`,
			rid, escapeXML(uri),
		))
	}
	for _, m := range b.media {
		sb.WriteString(fmt.Sprintf(
			`<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/%s"/>`,
			m.rID, m.filename,
		))
	}
	sb.WriteString(`</Relationships>`)
	return []byte(sb.String())
}

// orderedHyperlinkURIs returns hyperlink URIs sorted by their assigned
// relationship ID, so relationship parts are emitted in assignment order
// regardless of Go's unordered map iteration.
func orderedHyperlinkURIs(b *builder) []string {
	uris := make([]string, 0, len(b.hyperlinkRIDs))
	for uri := range b.hyperlinkRIDs {
		uris = append(uris, uri)
	}
	sort.Slice(uris, func(i, j int) bool {
		return relIDNumber(b.hyperlinkRIDs[uris[i]]) < relIDNumber(b.hyperlinkRIDs[uris[j]])
	})
	return uris
}

func relIDNumber(rid string) int {
	n := 0
	fmt.Sscanf(rid, "rId%d", &n)
	return n
}

var extensionContentType = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
}

// buildContentTypesXML returns [Content_Types].xml: Default entries for
// the relationships part and every distinct media extension in use
// (jpeg already normalized to jpg by the builder), plus Override entries
// for the three fixed-name parts.
func buildContentTypesXML(b *builder) []byte {
	exts := make(map[string]bool)
	for _, m := range b.media {
		exts[m.ext] = true
	}
	sortedExts := make([]string, 0, len(exts))
	for ext := range exts {
		sortedExts = append(sortedExts, ext)
	}
	sort.Strings(sortedExts)

	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	sb.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	for _, ext := range sortedExts {
		ct := extensionContentType[ext]
		if ct == "" {
			ct = "application/octet-stream"
		}
		sb.WriteString(fmt.Sprintf(`<Default Extension="%s" ContentType="%s"/>`, ext, ct))
	}
	sb.WriteString(`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
	sb.WriteString(`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>`)
	sb.WriteString(`<Override PartName="/word/settings.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.settings+xml"/>`)
	sb.WriteString(`</Types>`)
	return []byte(sb.String())
}
