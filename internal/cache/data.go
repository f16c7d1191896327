package cache

// Representation

// Result is the payload memoized per fingerprint: the rendered Markdown plus
// the size accounting the tool reports alongside it. Results are stored and
// returned by value; no caller can alias an entry held by the store.
type Result struct {
	url          string
	markdown     string
	originalSize int
	cleanedSize  int
	markdownSize int
}

func NewResult(
	url string,
	markdown string,
	originalSize int,
	cleanedSize int,
	markdownSize int,
) Result {
	return Result{
		url:          url,
		markdown:     markdown,
		originalSize: originalSize,
		cleanedSize:  cleanedSize,
		markdownSize: markdownSize,
	}
}

func (r *Result) URL() string {
	return r.url
}

func (r *Result) Markdown() string {
	return r.markdown
}

func (r *Result) OriginalSize() int {
	return r.originalSize
}

func (r *Result) CleanedSize() int {
	return r.cleanedSize
}

func (r *Result) MarkdownSize() int {
	return r.markdownSize
}
