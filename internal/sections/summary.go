package sections

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rohmanhakim/html2md/internal/metadata"
	"github.com/rohmanhakim/html2md/pkg/failure"
	"github.com/rohmanhakim/html2md/pkg/fileutil"
	"github.com/rohmanhakim/html2md/pkg/textutil"
)

// previewWords is the number of leading words included in a summary preview.
const previewWords = 500

const truncationNotice = "\n\n[... preview truncated ...]"

// Stats carries the size bookkeeping of one conversion.
type Stats struct {
	originalSize    int
	cleanedSize     int
	markdownSize    int
	estimatedTokens int
}

func NewStats(originalSize, cleanedSize, markdownSize, estimatedTokens int) Stats {
	return Stats{
		originalSize:    originalSize,
		cleanedSize:     cleanedSize,
		markdownSize:    markdownSize,
		estimatedTokens: estimatedTokens,
	}
}

func (s Stats) OriginalSize() int {
	return s.originalSize
}

func (s Stats) OriginalSizeHuman() string {
	return humanize.Bytes(uint64(s.originalSize))
}

func (s Stats) CleanedSize() int {
	return s.cleanedSize
}

func (s Stats) CleanedSizeHuman() string {
	return humanize.Bytes(uint64(s.cleanedSize))
}

func (s Stats) MarkdownSize() int {
	return s.markdownSize
}

func (s Stats) MarkdownSizeHuman() string {
	return humanize.Bytes(uint64(s.markdownSize))
}

func (s Stats) EstimatedTokens() int {
	return s.estimatedTokens
}

// CompressionRatio reports originalSize/markdownSize, e.g. "12.40x".
func (s Stats) CompressionRatio() string {
	if s.markdownSize == 0 {
		return "0.00x"
	}
	return fmt.Sprintf("%.2fx", float64(s.originalSize)/float64(s.markdownSize))
}

// CompressionPercent reports how much of the original was shed, e.g. "91.9%".
func (s Stats) CompressionPercent() string {
	if s.originalSize == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", 100-float64(s.markdownSize)/float64(s.originalSize)*100)
}

// Summary is the compact representation returned when a document exceeds the
// caller's token budget. The full Markdown is saved to disk and referenced by
// path.
type Summary struct {
	url     string
	savedTo string
	preview string
	toc     []string
	stats   Stats
}

func (s Summary) URL() string {
	return s.url
}

func (s Summary) SavedTo() string {
	return s.savedTo
}

func (s Summary) Preview() string {
	return s.preview
}

func (s Summary) TOC() []string {
	return s.toc
}

func (s Summary) Stats() Stats {
	return s.stats
}

// Summarizer builds summaries for oversized documents, persisting the full
// content as a temp-file artifact.
type Summarizer struct {
	metadataSink metadata.MetadataSink
	dir          string
}

// NewSummarizer creates a Summarizer writing artifacts into dir, or into the
// OS temp directory when dir is empty.
func NewSummarizer(metadataSink metadata.MetadataSink, dir string) Summarizer {
	return Summarizer{
		metadataSink: metadataSink,
		dir:          dir,
	}
}

// Build saves markdown to a file and assembles the summary view: statistics,
// a bounded word preview and a table of contents.
func (s *Summarizer) Build(
	fetchURL string,
	markdown string,
	originalSize int,
	cleanedSize int,
	markdownSize int,
) (Summary, failure.ClassifiedError) {
	savedTo, writeErr := s.saveArtifact(fetchURL, markdown)
	if writeErr != nil {
		return Summary{}, writeErr
	}

	preview, truncated := textutil.WordPreview(markdown, previewWords)
	if truncated {
		preview += truncationNotice
	}

	return Summary{
		url:     fetchURL,
		savedTo: savedTo,
		preview: preview,
		toc:     ExtractTOC(markdown),
		stats: NewStats(
			originalSize,
			cleanedSize,
			markdownSize,
			textutil.EstimateTokens(markdown),
		),
	}, nil
}

func (s *Summarizer) saveArtifact(fetchURL, markdown string) (string, failure.ClassifiedError) {
	savedTo, err := fileutil.WriteTemp(s.dir, "html2md_*.md", []byte(markdown))
	if err != nil {
		sectionErr := &SectionError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseWriteFailure,
		}
		s.metadataSink.RecordError(
			time.Now(),
			"sections",
			"Summarizer.Build",
			mapSectionErrorToMetadataCause(sectionErr),
			sectionErr.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, fetchURL),
				metadata.NewAttr(metadata.AttrWritePath, s.dir),
			},
		)
		return "", sectionErr
	}
	return savedTo, nil
}
