// Package pages walks a PDF's page tree (the /Pages and /Page dictionaries
// reachable from the catalog) and exposes each leaf as a [Page], resolving
// the inheritable attributes PDF lets a page pick up from its ancestors.
//
// # Page tree
//
//	tree := pages.NewPageTree(pagesDict, resolver)
//	count, _ := tree.Count()
//	page, _ := tree.GetPage(0) // 0-indexed
//
// [PageTree.GetPage] loads and flattens the tree into an ordered page list
// on first use, then serves subsequent calls from that cache.
//
// # Page attributes
//
// [Page] exposes:
//
//   - [Page.MediaBox] / [Page.Width] / [Page.Height] - page geometry, inherited
//     from the nearest ancestor /Pages node when not set directly on the page
//   - [Page.Resources] - the /Font, /XObject, /ColorSpace, /ExtGState
//     dictionary, also inherited
//   - [Page.Contents] - the page's content stream(s), a single stream or an
//     array of streams to be read in sequence
//   - [Page.Annotations] - the page's resolved /Annots entries, not inherited
//
// # Object resolution
//
// [ObjectResolver] is the narrow interface pages needs from whatever loaded
// the PDF (reader.Reader satisfies it), so this package can resolve indirect
// references without depending on the full reader:
//
//	type ObjectResolver interface {
//	    Resolve(obj core.Object) (core.Object, error)
//	    ResolveDeep(obj core.Object) (core.Object, error)
//	}
package pages
