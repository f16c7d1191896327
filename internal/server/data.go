package server

import (
	"net/url"
	"time"

	"github.com/rohmanhakim/html2md/internal/browser"
	"github.com/rohmanhakim/html2md/internal/sections"
)

// FetchMethod selects the transport used to obtain the page.
type FetchMethod string

const (
	MethodFetch      FetchMethod = "fetch"
	MethodPlaywright FetchMethod = "playwright"
)

// Request is the fully resolved parameter set of one conversion call.
// All defaults are applied and all numeric values are clamped to the
// configured bounds before a Request exists, so downstream stages never
// re-validate.
type Request struct {
	URL            url.URL
	IncludeImages  bool
	IncludeTables  bool
	IncludeLinks   bool
	Timeout        time.Duration
	MaxSize        int64
	UseCache       bool
	CacheTTL       time.Duration
	FetchMethod    FetchMethod
	BrowserType    browser.BrowserType
	Headless       bool
	WaitFor        browser.WaitStrategy
	UseUserProfile bool
	ReturnSummary  bool
	MaxTokens      int
	SectionID      string
	SectionHeading string
}

// SectionSelector returns whichever section selector is set, or empty.
func (r Request) SectionSelector() string {
	if r.SectionID != "" {
		return r.SectionID
	}
	return r.SectionHeading
}

// HasSection reports whether the request asks for a single section.
func (r Request) HasSection() bool {
	return r.SectionID != "" || r.SectionHeading != ""
}

// Outcome is the result of one conversion. Exactly one of the two shapes is
// populated: the full Markdown document, or a summary when the document
// exceeded the caller's token budget.
type Outcome struct {
	request         Request
	markdown        string
	originalSize    int
	cleanedSize     int
	markdownSize    int
	estimatedTokens int
	summary         *sections.Summary
	fromCache       bool
}

func (o Outcome) Request() Request {
	return o.request
}

func (o Outcome) Markdown() string {
	return o.markdown
}

func (o Outcome) OriginalSize() int {
	return o.originalSize
}

func (o Outcome) CleanedSize() int {
	return o.cleanedSize
}

func (o Outcome) MarkdownSize() int {
	return o.markdownSize
}

func (o Outcome) EstimatedTokens() int {
	return o.estimatedTokens
}

// IsSummary reports whether the outcome carries a summary instead of the
// full document.
func (o Outcome) IsSummary() bool {
	return o.summary != nil
}

func (o Outcome) Summary() *sections.Summary {
	return o.summary
}

func (o Outcome) FromCache() bool {
	return o.fromCache
}
