package convert

// Options controls which element classes survive conversion.
type Options struct {
	includeImages bool
	includeTables bool
	includeLinks  bool
}

func NewOptions(includeImages, includeTables, includeLinks bool) Options {
	return Options{
		includeImages: includeImages,
		includeTables: includeTables,
		includeLinks:  includeLinks,
	}
}

// DefaultOptions keeps every element class.
func DefaultOptions() Options {
	return Options{
		includeImages: true,
		includeTables: true,
		includeLinks:  true,
	}
}

func (o Options) IncludeImages() bool {
	return o.includeImages
}

func (o Options) IncludeTables() bool {
	return o.includeTables
}

func (o Options) IncludeLinks() bool {
	return o.includeLinks
}

// ConversionResult carries the Markdown output together with the byte sizes
// observed at each stage of the pipeline.
type ConversionResult struct {
	markdown     string
	originalSize int
	cleanedSize  int
	markdownSize int
}

func NewConversionResult(markdown string, originalSize, cleanedSize, markdownSize int) ConversionResult {
	return ConversionResult{
		markdown:     markdown,
		originalSize: originalSize,
		cleanedSize:  cleanedSize,
		markdownSize: markdownSize,
	}
}

func (r ConversionResult) Markdown() string {
	return r.markdown
}

func (r ConversionResult) OriginalSize() int {
	return r.originalSize
}

func (r ConversionResult) CleanedSize() int {
	return r.cleanedSize
}

func (r ConversionResult) MarkdownSize() int {
	return r.markdownSize
}
