package docxwriter

import (
	"fmt"

	"github.com/oriolcg/pdftodocx/geom"
	"github.com/oriolcg/pdftodocx/model"
)

// renderImageParagraph registers the image as media, assigns it a
// relationship, and wraps an inline drawing in its own paragraph. Width is
// clamped to 6 inches with height scaled proportionally.
func renderImageParagraph(b *builder, img *model.Image) string {
	entry := b.registerImage(img)

	widthPt := img.Bounds.Width()
	heightPt := img.Bounds.Height()
	if widthPt > maxImageWidthPt && widthPt > 0 {
		heightPt = heightPt * maxImageWidthPt / widthPt
		widthPt = maxImageWidthPt
	}
	cx := geom.PointsToEMU(widthPt)
	cy := geom.PointsToEMU(heightPt)

	docPrID := b.imageCounter
	name := fmt.Sprintf("Picture %d", docPrID)

	drawing := fmt.Sprintf(
		`<w:drawing><wp:inline distT="0" distB="0" distL="0" distR="0">`+
			`<wp:extent cx="%d" cy="%d"/>`+
			`<wp:docPr id="%d" name="%s"/>`+
			`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
			`<pic:pic><pic:nvPicPr><pic:cNvPr id="%d" name="%s"/><pic:cNvPicPr/></pic:nvPicPr>`+
			`<pic:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
			`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
			`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr></pic:pic>`+
			`</a:graphicData></a:graphic></wp:inline></w:drawing>`,
		cx, cy, docPrID, escapeXML(name), docPrID, escapeXML(name), entry.rID, cx, cy,
	)

	return "<w:p><w:r>" + drawing + "</w:r></w:p>"
}
