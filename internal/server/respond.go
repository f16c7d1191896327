package server

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// tocPreviewEntries bounds the table of contents shown inline in a summary
// response.
const tocPreviewEntries = 20

const summaryHelp = "This document is too large to return directly. " +
	"The full content has been saved to a file. " +
	"You can:\n" +
	"1. Read the file using standard tools\n" +
	"2. Use 'section_id' or 'section_heading' parameter to extract specific sections\n" +
	"3. Review the table_of_contents to find sections of interest"

// FormatOutcome renders the tool response for an outcome: the full document
// envelope, or the summary envelope when the document exceeded the token
// budget.
func FormatOutcome(outcome Outcome) string {
	if outcome.IsSummary() {
		return formatSummary(outcome)
	}
	return formatFull(outcome)
}

func formatFull(outcome Outcome) string {
	req := outcome.Request()

	sectionInfo := ""
	if req.HasSection() {
		sectionInfo = fmt.Sprintf("\n**Section extracted:** %s", req.SectionSelector())
	}

	compression := 0.0
	if outcome.OriginalSize() > 0 {
		compression = 100 - float64(outcome.MarkdownSize())/float64(outcome.OriginalSize())*100
	}

	return fmt.Sprintf(`# Conversion Successful

**URL:** %s
**Original Size:** %s
**Markdown Size:** %s
**Estimated Tokens:** %s
**Compression:** %.1f%%%s

---

%s
`,
		req.URL.String(),
		humanize.Bytes(uint64(outcome.OriginalSize())),
		humanize.Bytes(uint64(outcome.MarkdownSize())),
		humanize.Comma(int64(outcome.EstimatedTokens())),
		compression,
		sectionInfo,
		outcome.Markdown(),
	)
}

func formatSummary(outcome Outcome) string {
	summary := outcome.Summary()
	stats := summary.Stats()

	toc := summary.TOC()
	tocPreview := strings.Join(firstN(toc, tocPreviewEntries), "\n")
	if len(toc) > tocPreviewEntries {
		tocPreview += fmt.Sprintf("\n... and %d more headings", len(toc)-tocPreviewEntries)
	}

	return fmt.Sprintf(`# Document Too Large - Summary Returned

**URL:** %s
**Full content saved to:** %s

## Statistics
- **Original HTML:** %s (%s bytes)
- **Cleaned HTML:** %s (%s bytes)
- **Markdown:** %s (%s bytes)
- **Estimated tokens:** %s
- **Compression:** %s (%s)

## Table of Contents
%s

## Preview (first 500 words)
%s

---

%s
`,
		summary.URL(),
		"`"+summary.SavedTo()+"`",
		stats.OriginalSizeHuman(), humanize.Comma(int64(stats.OriginalSize())),
		stats.CleanedSizeHuman(), humanize.Comma(int64(stats.CleanedSize())),
		stats.MarkdownSizeHuman(), humanize.Comma(int64(stats.MarkdownSize())),
		humanize.Comma(int64(stats.EstimatedTokens())),
		stats.CompressionPercent(), stats.CompressionRatio(),
		tocPreview,
		summary.Preview(),
		summaryHelp,
	)
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
