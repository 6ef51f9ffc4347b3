// Package reader opens a PDF file and resolves its object graph: header,
// cross-reference table, trailer, catalog, and page tree. Everything above
// it (extract, converter.go) reads a PDF exclusively through a *Reader.
//
// # Opening
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
// [NewReader] takes an already-open *os.File instead of a path.
//
// # Document structure
//
//   - [Reader.Trailer] - the trailer dictionary
//   - [Reader.GetCatalog] - the document catalog
//   - [Reader.PageCount] / [Reader.GetPage] - the page tree, by 0-based index
//
// # Object resolution
//
//   - [Reader.GetObject] - load an object by number, from the xref table
//   - [Reader.ResolveReference] - resolve a core.IndirectRef
//   - [Reader.Resolve] - resolve obj if it's an IndirectRef, else return it unchanged
//   - [Reader.ResolveDeep] - resolve recursively through nested references
//
// A Reader satisfies core.ReferenceResolver, so core.Parser can chase a
// stream's /Length when it's itself an indirect reference.
//
// # Page content
//
//   - [Reader.ContentStreamBytes] - a page's decoded content stream bytes
//   - [Reader.ExtractPageImages] - a page's decoded XObject images
//
// Loaded objects and object streams are cached on the Reader for the
// lifetime of the file; there is no manual cache-eviction API.
package reader
