/*
Responsibilities
- Strip chrome elements that carry no article content
- Apply the requested element filters before conversion
- Convert the cleaned DOM to Markdown

Design Principles
- Semantic fidelity over visual fidelity
- No inferred structure
- GitHub-Flavored Markdown compatibility

Conversion Rules
- Headings map directly (h1-h6 to # - ######)
- Code blocks preserved verbatim
- Tables converted structurally (GFM) when enabled
- DOM order preserved
*/
package convert

import (
	"errors"
	"html"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/html2md/internal/metadata"
	"github.com/rohmanhakim/html2md/pkg/failure"
)

// Elements removed during cleaning. These wrap navigation and page chrome,
// never article content.
var strippedSelectors = []string{
	"script",
	"style",
	"noscript",
	"iframe",
	"nav",
	"header",
	"footer",
	"aside",
}

type HtmlConverter struct {
	metadataSink metadata.MetadataSink
}

func NewHtmlConverter(metadataSink metadata.MetadataSink) HtmlConverter {
	return HtmlConverter{
		metadataSink: metadataSink,
	}
}

// Convert cleans the fetched HTML and renders it as Markdown according to
// opts. Sizes for each stage are carried on the result so callers can report
// compression without re-measuring.
func (h *HtmlConverter) Convert(
	fetchURL string,
	rawHTML []byte,
	opts Options,
) (ConversionResult, failure.ClassifiedError) {
	result, err := convert(rawHTML, opts)
	if err != nil {
		var conversionError *ConversionError
		errors.As(err, &conversionError)

		h.metadataSink.RecordError(
			time.Now(),
			"convert",
			"HtmlConverter.Convert",
			mapConversionErrorToMetadataCause(conversionError),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, fetchURL),
			},
		)
		return ConversionResult{}, conversionError
	}

	h.metadataSink.RecordConversion(
		fetchURL,
		result.OriginalSize(),
		result.CleanedSize(),
		result.MarkdownSize(),
	)
	return result, nil
}

// convert is a stateless pure function from raw HTML bytes to a
// ConversionResult. It uses goquery for DOM surgery and html-to-markdown/v2
// for deterministic, semantic conversion.
func convert(rawHTML []byte, opts Options) (ConversionResult, *ConversionError) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(rawHTML)))
	if err != nil {
		return ConversionResult{}, &ConversionError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseParseFailure,
		}
	}

	cleanDocument(doc, opts)

	cleanedHTML, err := doc.Html()
	if err != nil {
		return ConversionResult{}, &ConversionError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseParseFailure,
		}
	}

	plugins := []converter.Plugin{
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
	}
	if opts.includeTables {
		plugins = append(plugins, table.NewTablePlugin())
	}
	conv := converter.NewConverter(converter.WithPlugins(plugins...))

	markdown, err := conv.ConvertString(cleanedHTML)
	if err != nil {
		return ConversionResult{}, &ConversionError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseConversionFailure,
		}
	}

	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return ConversionResult{}, &ConversionError{
			Message:   "document contains no convertible content",
			Retryable: false,
			Cause:     ErrCauseEmptyResult,
		}
	}

	return NewConversionResult(
		markdown,
		len(rawHTML),
		len(cleanedHTML),
		len(markdown),
	), nil
}

// cleanDocument removes chrome elements and applies the element filters
// in place.
func cleanDocument(doc *goquery.Document, opts Options) {
	for _, selector := range strippedSelectors {
		doc.Find(selector).Remove()
	}

	if !opts.includeImages {
		doc.Find("img, picture, figure").Remove()
	}

	if !opts.includeTables {
		doc.Find("table").Remove()
	}

	if !opts.includeLinks {
		// Keep the anchor text, drop the link itself.
		doc.Find("a").Each(func(i int, s *goquery.Selection) {
			s.ReplaceWithHtml(html.EscapeString(s.Text()))
		})
	}
}
