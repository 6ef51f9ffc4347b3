// Package commands implements the pdftodocx CLI.
package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oriolcg/pdftodocx"
	"github.com/oriolcg/pdftodocx/diag"
	"github.com/oriolcg/pdftodocx/pdferr"
)

var (
	noImages, noTables, noHyperlinks bool
	startPage, endPage, maxPages     int
	lineTolerance                    float64
	paraGap                          float64
	columnGap                        float64
	lineSpacing                      float64
	paraSpacingAfter                 float64
	diagnostics, useOCR              bool
)

var rootCmd = &cobra.Command{
	Use:   "pdftodocx <input.pdf> [output.docx]",
	Short: "Convert a PDF document into an editable .docx file",
	Long: `pdftodocx reconstructs paragraphs, tables, images, and hyperlinks
from a PDF's page content streams and repackages them as an OOXML
WordprocessingML (.docx) document.

When output.docx is omitted, the input's basename with a .docx
extension is used in the current directory.

Examples:
  pdftodocx report.pdf
  pdftodocx report.pdf report-edited.docx
  pdftodocx scan.pdf --ocr --diagnostics
  pdftodocx book.pdf --start-page 10 --end-page 20 --no-images`,
	Args:          cobra.RangeArgs(1, 2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConvert,
}

func init() {
	rootCmd.Flags().BoolVar(&noImages, "no-images", false, "omit images from the output")
	rootCmd.Flags().BoolVar(&noTables, "no-tables", false, "flatten detected tables to plain paragraphs")
	rootCmd.Flags().BoolVar(&noHyperlinks, "no-hyperlinks", false, "omit hyperlink runs")
	rootCmd.Flags().IntVar(&startPage, "start-page", 1, "first page to convert (1-indexed)")
	rootCmd.Flags().IntVar(&endPage, "end-page", 0, "last page to convert (0 = last page)")
	rootCmd.Flags().IntVar(&maxPages, "max-pages", 0, "maximum number of pages to convert (0 = all)")
	rootCmd.Flags().Float64Var(&lineTolerance, "line-tolerance", 3.0, "line-grouping tolerance, in points")
	rootCmd.Flags().Float64Var(&paraGap, "para-gap", 1.3, "paragraph-gap multiplier")
	rootCmd.Flags().Float64Var(&columnGap, "column-gap", 20.0, "minimum column gap, in points")
	rootCmd.Flags().Float64Var(&lineSpacing, "line-spacing", 1.15, "line-spacing multiplier")
	rootCmd.Flags().Float64Var(&paraSpacingAfter, "para-spacing-after", 6.0, "spacing after a paragraph, in points")
	rootCmd.Flags().BoolVar(&diagnostics, "diagnostics", false, "enable verbose diagnostic logging")
	rootCmd.Flags().BoolVar(&useOCR, "ocr", false, "fall back to OCR on image-only pages")
}

// Execute runs the root command and returns the process exit code: 0 on
// success, 1 on an argument/usage error (including a missing input
// file), 2 on a conversion failure.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	fmt.Fprintln(os.Stderr, "pdftodocx:", err)
	if errors.Is(err, pdferr.ErrInputUnreadable) || errors.Is(err, pdferr.ErrPackagerInvariant) {
		return 2
	}
	return 1
}

func runConvert(_ *cobra.Command, args []string) error {
	inputPath := args[0]
	outputPath := defaultOutputPath(inputPath)
	if len(args) == 2 {
		outputPath = args[1]
	}

	logger, err := diag.New(diagnostics)
	if err != nil {
		return fmt.Errorf("building diagnostics logger: %w", err)
	}
	defer logger.Sync()

	conv := pdftodocx.Open(inputPath).
		WithImages(!noImages).
		WithTables(!noTables).
		WithHyperlinks(!noHyperlinks).
		WithPageRange(startPage, endPage).
		WithMaxPages(maxPages).
		WithLineTolerance(lineTolerance).
		WithParagraphGap(paraGap).
		WithColumnGap(columnGap).
		WithLineSpacing(lineSpacing).
		WithParagraphSpacingAfter(paraSpacingAfter).
		WithOCR(useOCR).
		WithDiagnostics(diagnostics).
		WithLogger(logger)

	_, err = conv.Convert(outputPath)
	return err
}

func defaultOutputPath(inputPath string) string {
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + ".docx"
}
