package pdftodocx

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/oriolcg/pdftodocx/assemble"
	"github.com/oriolcg/pdftodocx/config"
	"github.com/oriolcg/pdftodocx/diag"
	"github.com/oriolcg/pdftodocx/docxwriter"
	"github.com/oriolcg/pdftodocx/extract"
	"github.com/oriolcg/pdftodocx/layout"
	"github.com/oriolcg/pdftodocx/model"
	"github.com/oriolcg/pdftodocx/ocr"
	"github.com/oriolcg/pdftodocx/pdferr"
	"github.com/oriolcg/pdftodocx/reader"
	"github.com/oriolcg/pdftodocx/tabledetect"
)

// Diagnostic is one recovered, non-fatal issue encountered during a
// conversion. The Converter reports two kinds: a degraded page
// (pdferr.ErrDegradedPage) and a rejected table candidate
// (pdferr.ErrTableRejected). Image-decoding and annotation failures are
// dropped inside extract.Page and do not produce a Diagnostic.
// Diagnostics never abort a conversion; they are logged through the
// Converter's Logger and returned alongside the Result.
type Diagnostic struct {
	Kind   error // one of pdferr's recoverable sentinels
	Page   int
	Detail string
}

// Result is a completed conversion's output.
type Result struct {
	DOCX        []byte
	Diagnostics []Diagnostic
}

// Converter provides a fluent interface for configuring and running a
// PDF-to-DOCX conversion. Each With* method returns a new Converter,
// leaving the receiver untouched, so a base Converter built once can
// serve as a template for several conversions run with different
// options (or concurrently) without racing on shared state.
type Converter struct {
	filename string

	reader       *reader.Reader
	ownsReader   bool
	readerOpened bool

	config config.Config
	logger *diag.Logger

	err error
}

// clone returns a new Converter sharing the same reader but an
// independent, deep-copied config, so With* options never mutate a
// Converter another goroutine might still be holding.
func (c *Converter) clone() *Converter {
	return &Converter{
		filename:     c.filename,
		reader:       c.reader,
		ownsReader:   c.ownsReader,
		readerOpened: c.readerOpened,
		config:       c.config.Clone(),
		logger:       c.logger,
		err:          c.err,
	}
}

func (c *Converter) ensureReader() error {
	if c.readerOpened {
		return nil
	}
	if c.filename == "" {
		return fmt.Errorf("%w: no input file specified", pdferr.ErrInputMissing)
	}
	if _, err := os.Stat(c.filename); err != nil {
		return fmt.Errorf("%w: %v", pdferr.ErrInputMissing, err)
	}
	r, err := reader.Open(c.filename)
	if err != nil {
		return fmt.Errorf("%w: %v", pdferr.ErrInputUnreadable, err)
	}
	c.reader = r
	c.ownsReader = true
	c.readerOpened = true
	return nil
}

// Close releases the Converter's reader, if it owns one. Safe to call
// multiple times. Terminal operations call this automatically.
func (c *Converter) Close() error {
	if c.ownsReader && c.reader != nil {
		err := c.reader.Close()
		c.reader = nil
		c.ownsReader = false
		return err
	}
	return nil
}

// ---- fluent configuration ----

// WithPageRange restricts conversion to [start, end] (1-indexed,
// inclusive). end == 0 means "to the last page".
func (c *Converter) WithPageRange(start, end int) *Converter {
	n := c.clone()
	config.WithPageRange(start, end)(&n.config)
	return n
}

// WithMaxPages caps the number of pages converted.
func (c *Converter) WithMaxPages(max int) *Converter {
	n := c.clone()
	config.WithMaxPages(max)(&n.config)
	return n
}

// WithOCR toggles the OCR fallback text extractor for image-only pages.
func (c *Converter) WithOCR(enabled bool) *Converter {
	n := c.clone()
	config.WithOCR(enabled)(&n.config)
	return n
}

// WithDiagnostics toggles verbose diagnostic logging.
func (c *Converter) WithDiagnostics(enabled bool) *Converter {
	n := c.clone()
	config.WithDiagnostics(enabled)(&n.config)
	return n
}

// WithImages toggles inline image emission.
func (c *Converter) WithImages(enabled bool) *Converter {
	n := c.clone()
	config.WithImages(enabled)(&n.config)
	return n
}

// WithTables toggles table emission. Disabled tables fall back to plain
// paragraphs of their cell text, in row-major order.
func (c *Converter) WithTables(enabled bool) *Converter {
	n := c.clone()
	config.WithTables(enabled)(&n.config)
	return n
}

// WithHyperlinks toggles hyperlink-run emission.
func (c *Converter) WithHyperlinks(enabled bool) *Converter {
	n := c.clone()
	config.WithHyperlinks(enabled)(&n.config)
	return n
}

// WithLineTolerance overrides the layout analyzer's line-grouping
// tolerance, in points.
func (c *Converter) WithLineTolerance(pt float64) *Converter {
	n := c.clone()
	config.WithLineTolerance(pt)(&n.config)
	return n
}

// WithParagraphGap overrides the paragraph-gap multiplier.
func (c *Converter) WithParagraphGap(mult float64) *Converter {
	n := c.clone()
	config.WithParagraphGap(mult)(&n.config)
	return n
}

// WithColumnGap overrides the minimum column gap, in points.
func (c *Converter) WithColumnGap(pt float64) *Converter {
	n := c.clone()
	config.WithColumnGap(pt)(&n.config)
	return n
}

// WithLineSpacing overrides the line-spacing multiplier.
func (c *Converter) WithLineSpacing(mult float64) *Converter {
	n := c.clone()
	config.WithLineSpacing(mult)(&n.config)
	return n
}

// WithParagraphSpacingAfter overrides the after-paragraph spacing, in
// points.
func (c *Converter) WithParagraphSpacingAfter(pt float64) *Converter {
	n := c.clone()
	config.WithParagraphSpacingAfter(pt)(&n.config)
	return n
}

// WithConfig replaces the Converter's configuration outright, for
// callers that already hold a config.Config built via config.Apply.
func (c *Converter) WithConfig(cfg config.Config) *Converter {
	n := c.clone()
	n.config = cfg.Clone()
	return n
}

// WithLogger attaches a diagnostics logger. Library callers that want
// their own *zap.Logger wired in should build one via diag.New and pass
// it here; the CLI does this based on --diagnostics.
func (c *Converter) WithLogger(logger *diag.Logger) *Converter {
	n := c.clone()
	n.logger = logger
	return n
}

// ---- terminal operations ----

// ConvertToBytes runs the conversion synchronously and returns the
// packaged .docx bytes plus any recovered diagnostics.
func (c *Converter) ConvertToBytes() (Result, error) {
	return c.run(context.Background(), nil)
}

// Convert runs the conversion synchronously and writes the packaged
// .docx to pathOut.
func (c *Converter) Convert(pathOut string) (Result, error) {
	result, err := c.run(context.Background(), nil)
	if err != nil {
		return result, err
	}
	if err := os.WriteFile(pathOut, result.DOCX, 0o644); err != nil {
		return result, fmt.Errorf("%w: writing %s: %v", pdferr.ErrPackagerInvariant, pathOut, err)
	}
	return result, nil
}

// ConvertAsync runs the conversion under ctx, reporting coarse progress
// (0, 20, one update per page, 100) to sink. Cancellation is checked at
// page boundaries; a cancelled context yields pdferr.ErrCancelled and, if
// pathOut is non-empty, removes any partial output file. pathOut may be
// empty to skip writing a file and only return bytes.
func (c *Converter) ConvertAsync(ctx context.Context, pathOut string, sink diag.Sink) (Result, error) {
	if sink == nil {
		sink = diag.NoopSink{}
	}
	result, err := c.run(ctx, sink)
	if err != nil {
		if pathOut != "" && errors.Is(err, pdferr.ErrCancelled) {
			_ = os.Remove(pathOut)
		}
		return result, err
	}
	if pathOut != "" {
		if werr := os.WriteFile(pathOut, result.DOCX, 0o644); werr != nil {
			return result, fmt.Errorf("%w: writing %s: %v", pdferr.ErrPackagerInvariant, pathOut, werr)
		}
	}
	return result, nil
}

// run is the synchronous conversion every terminal operation wraps; it
// owns opening and closing the reader when the caller didn't supply one.
// Cancellation is checked at each page boundary, never mid-page; progress
// is reported through both sink and logger as a 0/20/per-page/100
// sequence (open, extract, per-page layout, package).
func (c *Converter) run(ctx context.Context, sink diag.Sink) (Result, error) {
	if c.err != nil {
		return Result{}, c.err
	}
	if err := c.ensureReader(); err != nil {
		return Result{}, err
	}
	defer c.Close()

	logger := c.logger
	if logger == nil {
		logger = diag.Noop()
	}

	report := func(pct int) {
		if sink != nil {
			sink.Progress(pct)
		}
		logger.Progress(pct)
	}
	report(0)

	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("%w: %v", pdferr.ErrCancelled, err)
	}

	total, err := c.reader.PageCount()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", pdferr.ErrInputUnreadable, err)
	}
	report(20)

	layoutOpts := layout.DefaultOptions()
	layoutOpts.LineGroupingTolerance = c.config.LineGroupingTolerance
	layoutOpts.ParagraphGapMultiplier = c.config.ParagraphGapMultiplier
	layoutOpts.MinColumnGap = c.config.MinColumnGap
	layoutOpts.LineSpacingMultiplier = c.config.LineSpacingMultiplier
	layoutOpts.ParagraphSpacingAfter = c.config.ParagraphSpacingAfter

	tableCfg := tabledetect.DefaultConfig()
	tableCfg.MinTableLineLength = c.config.MinTableLineLength
	tableCfg.SnapTolerance = c.config.TableGridSnapTolerance
	tableCfg.MinRows = c.config.MinTableRows
	tableCfg.MinCols = c.config.MinTableCols
	tableCfg.ConfidenceThreshold = c.config.TableConfidenceThreshold

	var ocrClient *ocr.Client
	if c.config.UseOCR {
		if client, err := ocr.New(); err == nil {
			ocrClient = client
			defer ocrClient.Close()
		}
	}

	var inRange []int
	for i := 1; i <= total; i++ {
		if c.config.InPageRange(i, total) {
			inRange = append(inRange, i)
		}
	}

	var diagnostics []Diagnostic
	var pageStructures []model.PageStructure

	for n, pageNum := range inRange {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("%w: %v", pdferr.ErrCancelled, err)
		}

		structure, pageDiags := c.convertPage(pageNum, layoutOpts, tableCfg, ocrClient, logger)
		diagnostics = append(diagnostics, pageDiags...)
		if structure != nil {
			pageStructures = append(pageStructures, *structure)
		}

		report(20 + (n+1)*75/maxInt(len(inRange), 1))
	}

	doc := model.DocumentStructure{Pages: pageStructures}
	docxBytes, err := docxwriter.Generate(doc)
	if err != nil {
		return Result{}, err
	}
	report(100)

	return Result{DOCX: docxBytes, Diagnostics: diagnostics}, nil
}

// convertPage extracts, OCR-patches, and assembles a single page,
// returning its structure (nil on an unrecoverable page failure) and any
// diagnostics recorded along the way.
func (c *Converter) convertPage(
	pageNum int,
	layoutOpts layout.Options,
	tableCfg tabledetect.Config,
	ocrClient *ocr.Client,
	logger *diag.Logger,
) (*model.PageStructure, []Diagnostic) {
	page, err := c.reader.GetPage(pageNum - 1)
	if err != nil {
		logger.DegradedPage(pageNum)
		return nil, []Diagnostic{{Kind: pdferr.ErrDegradedPage, Page: pageNum, Detail: err.Error()}}
	}

	content, err := extract.Page(c.reader, page, pageNum)
	if err != nil {
		logger.DegradedPage(pageNum)
		return nil, []Diagnostic{{Kind: pdferr.ErrDegradedPage, Page: pageNum, Detail: err.Error()}}
	}

	if ocrClient != nil && len(content.TextElements) == 0 && len(content.Images) > 0 {
		applyOCR(&content, ocrClient)
	}

	if !c.config.IncludeImages {
		content.Images = nil
	}
	if !c.config.IncludeHyperlinks {
		content.Hyperlinks = nil
	}

	structure, rejections := assemble.Page(content, tableCfg, layoutOpts)

	var diagnostics []Diagnostic
	for _, rej := range rejections {
		logger.TableRejected(pageNum, rej.Reason, 0)
		diagnostics = append(diagnostics, Diagnostic{Kind: pdferr.ErrTableRejected, Page: pageNum, Detail: rej.Reason})
	}

	if !c.config.IncludeTables {
		structure.Blocks = flattenTables(structure.Blocks)
	}

	return &structure, diagnostics
}

// applyOCR recognizes text in a textless page's images via Tesseract,
// synthesizing a glyph run positioned at each image's bounds so the
// layout analyzer has something to group into a paragraph. This is a
// best-effort fallback for scanned, image-only pages, not a replacement
// for real font decoding.
func applyOCR(content *model.PageContent, client *ocr.Client) {
	for _, img := range content.Images {
		text, err := client.RecognizeImage(img.Data)
		if err != nil || text == "" {
			continue
		}
		content.TextElements = append(content.TextElements, model.GlyphRun{
			Text:     model.NormalizeText(text),
			Bounds:   img.Bounds,
			FontName: "Arial",
			FontSize: 10,
			ColorHex: "000000",
		})
	}
}

// flattenTables replaces table blocks with plain paragraph blocks built
// from each non-continuation cell's own paragraphs, in row-major order,
// for callers that disabled table emission via WithTables(false).
func flattenTables(blocks []model.ContentBlock) []model.ContentBlock {
	out := make([]model.ContentBlock, 0, len(blocks))
	for _, b := range blocks {
		if b.Kind != model.BlockTable {
			out = append(out, b)
			continue
		}
		t := b.Table
		for row := 0; row < t.RowCount; row++ {
			for col := 0; col < t.ColCount; col++ {
				cell := t.CellAt(row, col)
				if cell.IsMergedContinuation {
					continue
				}
				for _, p := range cell.Paragraphs {
					out = append(out, model.NewParagraphBlock(p))
				}
			}
		}
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
