/*
Responsibilities
- Orchestrate the full conversion workflow: cache lookup, fetch, optional
  section extraction, cleaning, Markdown conversion, cache store
- Decide between returning the full document and a summary
- Keep every stage behind its own package boundary

The service holds no per-request state; one instance serves all calls.
*/
package server

import (
	"context"
	"errors"

	"github.com/rohmanhakim/html2md/internal/browser"
	"github.com/rohmanhakim/html2md/internal/cache"
	"github.com/rohmanhakim/html2md/internal/config"
	"github.com/rohmanhakim/html2md/internal/convert"
	"github.com/rohmanhakim/html2md/internal/fetcher"
	"github.com/rohmanhakim/html2md/internal/metadata"
	"github.com/rohmanhakim/html2md/internal/sections"
	"github.com/rohmanhakim/html2md/pkg/failure"
	"github.com/rohmanhakim/html2md/pkg/retry"
	"github.com/rohmanhakim/html2md/pkg/textutil"
	"github.com/rohmanhakim/html2md/pkg/timeutil"
)

// RenderedFetcher obtains a page through a real browser engine.
type RenderedFetcher interface {
	Fetch(ctx context.Context, launchParam browser.LaunchParam) ([]byte, failure.ClassifiedError)
}

type Service struct {
	cfg          config.Config
	store        *cache.Store
	httpFetcher  fetcher.Fetcher
	browser      RenderedFetcher
	converter    convert.HtmlConverter
	summarizer   sections.Summarizer
	metadataSink metadata.MetadataSink
}

func NewService(
	cfg config.Config,
	store *cache.Store,
	httpFetcher fetcher.Fetcher,
	browserFetcher RenderedFetcher,
	converter convert.HtmlConverter,
	summarizer sections.Summarizer,
	metadataSink metadata.MetadataSink,
) *Service {
	return &Service{
		cfg:          cfg,
		store:        store,
		httpFetcher:  httpFetcher,
		browser:      browserFetcher,
		converter:    converter,
		summarizer:   summarizer,
		metadataSink: metadataSink,
	}
}

// Convert runs the workflow for one resolved request.
//
// Caching is consulted only for whole-document conversions: a section request
// bypasses the cache entirely, since entries are keyed on whole-document
// parameters.
//
// Section cuts happen on HTML before cleaning. When a heading selector misses
// on the DOM, the cut is retried on the converted Markdown, which still sees
// heading text the DOM search cannot, such as image alt text.
func (s *Service) Convert(ctx context.Context, req Request) (Outcome, failure.ClassifiedError) {
	cacheActive := (req.UseCache || s.store.Enabled()) && !req.HasSection()

	var key cache.Key
	if cacheActive {
		derived, err := cache.DeriveKey(keySpec(req))
		if err != nil {
			return Outcome{}, &ArgsError{Message: err.Error()}
		}
		key = derived

		if cached, found := s.store.Get(key); found {
			return s.shape(req, cached.Markdown(), cached.OriginalSize(), cached.CleanedSize(), cached.MarkdownSize(), true)
		}
	}

	rawHTML, fetchErr := s.fetch(ctx, req)
	if fetchErr != nil {
		return Outcome{}, fetchErr
	}

	cutFromMarkdown := false
	if req.HasSection() {
		fragment, sectionErr := sections.FromHTML(rawHTML, req.SectionID, req.SectionHeading)
		switch {
		case sectionErr == nil:
			rawHTML = fragment
		case req.SectionHeading != "" && sectionNotFound(sectionErr):
			cutFromMarkdown = true
		default:
			return Outcome{}, sectionErr
		}
	}

	opts := convert.NewOptions(req.IncludeImages, req.IncludeTables, req.IncludeLinks)
	result, convErr := s.converter.Convert(req.URL.String(), rawHTML, opts)
	if convErr != nil {
		return Outcome{}, convErr
	}

	markdown := result.Markdown()
	markdownSize := result.MarkdownSize()
	if cutFromMarkdown {
		section, mdErr := sections.FromMarkdown(markdown, req.SectionHeading)
		if mdErr != nil {
			return Outcome{}, mdErr
		}
		markdown = section
		markdownSize = len(section)
	}

	if cacheActive {
		s.store.Put(key, cache.NewResult(
			req.URL.String(),
			markdown,
			result.OriginalSize(),
			result.CleanedSize(),
			markdownSize,
		), req.CacheTTL)
	}

	return s.shape(req, markdown, result.OriginalSize(), result.CleanedSize(), markdownSize, false)
}

// sectionNotFound reports whether err is a missing-section failure, the one
// section error worth retrying against the converted Markdown.
func sectionNotFound(err failure.ClassifiedError) bool {
	var sectionErr *sections.SectionError
	return errors.As(err, &sectionErr) && sectionErr.Cause == sections.ErrCauseNotFound
}

// shape picks between the full-document outcome and the summary outcome.
func (s *Service) shape(
	req Request,
	markdown string,
	originalSize int,
	cleanedSize int,
	markdownSize int,
	fromCache bool,
) (Outcome, failure.ClassifiedError) {
	estimatedTokens := textutil.EstimateTokens(markdown)

	if req.ReturnSummary || estimatedTokens > req.MaxTokens {
		summary, err := s.summarizer.Build(req.URL.String(), markdown, originalSize, cleanedSize, markdownSize)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{
			request:         req,
			originalSize:    originalSize,
			cleanedSize:     cleanedSize,
			markdownSize:    markdownSize,
			estimatedTokens: estimatedTokens,
			summary:         &summary,
			fromCache:       fromCache,
		}, nil
	}

	return Outcome{
		request:         req,
		markdown:        markdown,
		originalSize:    originalSize,
		cleanedSize:     cleanedSize,
		markdownSize:    markdownSize,
		estimatedTokens: estimatedTokens,
		fromCache:       fromCache,
	}, nil
}

func (s *Service) fetch(ctx context.Context, req Request) ([]byte, failure.ClassifiedError) {
	if req.FetchMethod == MethodPlaywright {
		return s.browser.Fetch(ctx, browser.NewLaunchParam(
			req.URL,
			req.BrowserType,
			req.Headless,
			req.WaitFor,
			req.Timeout,
			req.UseUserProfile,
		))
	}

	fetchParam := fetcher.NewFetchParam(req.URL, s.cfg.UserAgent(), req.Timeout, req.MaxSize)
	result, err := s.httpFetcher.Fetch(ctx, fetchParam, s.retryParam())
	if err != nil {
		return nil, err
	}
	return result.Body(), nil
}

func (s *Service) retryParam() retry.RetryParam {
	return retry.NewRetryParam(
		s.cfg.Jitter(),
		s.cfg.RandomSeed(),
		s.cfg.MaxAttempts(),
		timeutil.NewBackoffParam(
			s.cfg.BackoffInitialDuration(),
			s.cfg.BackoffMultiplier(),
			s.cfg.BackoffMaxDuration(),
		),
	)
}

func keySpec(req Request) cache.KeySpec {
	return cache.KeySpec{
		URL:            req.URL.String(),
		IncludeImages:  req.IncludeImages,
		IncludeTables:  req.IncludeTables,
		IncludeLinks:   req.IncludeLinks,
		FetchMethod:    string(req.FetchMethod),
		BrowserType:    string(req.BrowserType),
		WaitFor:        string(req.WaitFor),
		UseUserProfile: req.UseUserProfile,
	}
}
