// Package main provides the pdftodocx command-line interface.
//
// pdftodocx converts a PDF file into an editable .docx document,
// reconstructing paragraphs, tables, images, and hyperlinks from the
// PDF's page content streams.
//
// Usage:
//
//	pdftodocx <input.pdf> [output.docx] [flags]
//
// Use "pdftodocx --help" for the full flag list.
package main

import (
	"os"

	"github.com/oriolcg/pdftodocx/cmd/pdftodocx/commands"
)

func main() {
	os.Exit(commands.Execute())
}
