// Package config holds the conversion pipeline's tunable options, set by
// the CLI flags and the library's functional-option constructors. The
// table-detector thresholds have no CLI flags.
package config

// Config holds every tunable the layout analyzer, table detector, and
// packager consult. Fields are exported because both the CLI flag parser
// and library callers need to set them directly; immutability is
// preserved via Clone, a deep-copy-on-options idiom used throughout this
// module's functional-option constructors.
type Config struct {
	IncludeImages    bool
	IncludeTables    bool
	IncludeHyperlinks bool

	StartPage int // 1-indexed, inclusive
	EndPage   int // 1-indexed, inclusive; 0 means "last page"
	MaxPages  int // 0 means "all"

	LineGroupingTolerance float64 // τ, points
	ParagraphGapMultiplier float64 // ρ
	MinColumnGap          float64 // γ, points
	LineSpacingMultiplier float64
	ParagraphSpacingAfter float64 // points

	MinTableLineLength   float64
	TableGridSnapTolerance float64 // ε
	MinTableRows         int
	MinTableCols         int
	TableConfidenceThreshold float64

	Diagnostics bool
	UseOCR      bool
}

// Default returns the conversion pipeline's default configuration.
func Default() Config {
	return Config{
		IncludeImages:     true,
		IncludeTables:     true,
		IncludeHyperlinks: true,

		StartPage: 1,
		EndPage:   0,
		MaxPages:  0,

		LineGroupingTolerance:  3.0,
		ParagraphGapMultiplier: 1.3,
		MinColumnGap:           20.0,
		LineSpacingMultiplier:  1.15,
		ParagraphSpacingAfter:  6.0,

		MinTableLineLength:       10.0,
		TableGridSnapTolerance:   2.0,
		MinTableRows:             2,
		MinTableCols:             2,
		TableConfidenceThreshold: 0.4,

		Diagnostics: false,
		UseOCR:      false,
	}
}

// Clone returns a deep copy of c. Config currently has no reference
// fields, so this is a value copy, but it is kept as an explicit method
// (rather than relying on `:=` everywhere) so call sites read the same
// way regardless of future fields that do need deep copying.
func (c Config) Clone() Config {
	return c
}

// Option mutates a Config in place; used by functional-option
// constructors in the root package.
type Option func(*Config)

// WithPageRange restricts conversion to [start, end] (1-indexed,
// inclusive). end == 0 means "to the last page".
func WithPageRange(start, end int) Option {
	return func(c *Config) {
		c.StartPage = start
		c.EndPage = end
	}
}

// WithMaxPages caps the number of pages converted.
func WithMaxPages(n int) Option {
	return func(c *Config) { c.MaxPages = n }
}

// WithOCR toggles the OCR fallback text extractor.
func WithOCR(enabled bool) Option {
	return func(c *Config) { c.UseOCR = enabled }
}

// WithDiagnostics toggles verbose diagnostic logging.
func WithDiagnostics(enabled bool) Option {
	return func(c *Config) { c.Diagnostics = enabled }
}

// WithImages toggles inline image emission.
func WithImages(enabled bool) Option {
	return func(c *Config) { c.IncludeImages = enabled }
}

// WithTables toggles table emission (tables fall back to plain
// paragraphs of their cell text when disabled).
func WithTables(enabled bool) Option {
	return func(c *Config) { c.IncludeTables = enabled }
}

// WithHyperlinks toggles hyperlink-run emission.
func WithHyperlinks(enabled bool) Option {
	return func(c *Config) { c.IncludeHyperlinks = enabled }
}

// WithLineTolerance overrides the layout analyzer's line-grouping
// tolerance τ.
func WithLineTolerance(pt float64) Option {
	return func(c *Config) { c.LineGroupingTolerance = pt }
}

// WithParagraphGap overrides the paragraph-gap multiplier ρ.
func WithParagraphGap(mult float64) Option {
	return func(c *Config) { c.ParagraphGapMultiplier = mult }
}

// WithColumnGap overrides the minimum column gap γ.
func WithColumnGap(pt float64) Option {
	return func(c *Config) { c.MinColumnGap = pt }
}

// WithLineSpacing overrides the line-spacing multiplier.
func WithLineSpacing(mult float64) Option {
	return func(c *Config) { c.LineSpacingMultiplier = mult }
}

// WithParagraphSpacingAfter overrides the after-paragraph spacing, in
// points.
func WithParagraphSpacingAfter(pt float64) Option {
	return func(c *Config) { c.ParagraphSpacingAfter = pt }
}

// Apply returns Default() with every opt applied, in order.
func Apply(opts ...Option) Config {
	c := Default()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// InPageRange reports whether the 1-indexed page number should be
// converted under c, honoring StartPage/EndPage/MaxPages together.
func (c Config) InPageRange(pageNum, totalPages int) bool {
	end := c.EndPage
	if end <= 0 || end > totalPages {
		end = totalPages
	}
	if pageNum < c.StartPage || pageNum > end {
		return false
	}
	if c.MaxPages > 0 && pageNum-c.StartPage+1 > c.MaxPages {
		return false
	}
	return true
}
