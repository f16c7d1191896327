/*
Responsibilities

- Drive a real browser engine for pages that require JavaScript rendering
- Apply the requested wait strategy before snapshotting the DOM
- Optionally reuse the local Chrome profile for authenticated pages

The rendered DOM is returned as bytes; parsing and conversion happen
downstream, exactly as with the plain HTTP fetcher.
*/
package browser

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/rohmanhakim/html2md/internal/metadata"
	"github.com/rohmanhakim/html2md/pkg/failure"
)

const methodPlaywright = "playwright"

type PlaywrightFetcher struct {
	metadataSink metadata.MetadataSink
}

func NewPlaywrightFetcher(metadataSink metadata.MetadataSink) PlaywrightFetcher {
	return PlaywrightFetcher{
		metadataSink: metadataSink,
	}
}

// Fetch renders the page in the requested engine and returns the resulting
// DOM as HTML bytes. The context deadline, when earlier than the launch
// timeout, wins.
func (p *PlaywrightFetcher) Fetch(ctx context.Context, launchParam LaunchParam) ([]byte, failure.ClassifiedError) {
	callerMethod := "PlaywrightFetcher.Fetch"
	startTime := time.Now()

	body, err := p.render(ctx, launchParam)

	duration := time.Since(startTime)

	statusCode := 0
	contentType := ""
	if err == nil {
		statusCode = 200
		contentType = "text/html"
	}
	p.metadataSink.RecordFetch(
		launchParam.fetchUrl.String(),
		statusCode,
		duration,
		contentType,
		0,
		methodPlaywright,
	)

	if err != nil {
		p.recordBrowserError(callerMethod, launchParam, err)
		return nil, err
	}
	return body, nil
}

func (p *PlaywrightFetcher) recordBrowserError(callerMethod string, launchParam LaunchParam, err failure.ClassifiedError) {
	browserErr, ok := err.(*BrowserError)
	if !ok {
		return
	}
	p.metadataSink.RecordError(
		time.Now(),
		"browser",
		callerMethod,
		mapBrowserErrorToMetadataCause(browserErr),
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrURL, launchParam.fetchUrl.String()),
			metadata.NewAttr(metadata.AttrMethod, string(launchParam.browserType)),
		},
	)
}

// shouldUseProfile reports whether the persistent-profile launch path applies.
// Profile reuse is chromium only; other engines fall back to a plain launch
// and the mismatch is recorded as an observation, never a failure.
func (p *PlaywrightFetcher) shouldUseProfile(launchParam LaunchParam) bool {
	if !launchParam.useUserProfile {
		return false
	}
	if launchParam.browserType != BrowserChromium {
		p.metadataSink.RecordError(
			time.Now(),
			"browser",
			"PlaywrightFetcher.render",
			metadata.CausePolicyDisallow,
			fmt.Sprintf("profile reuse is chromium only, ignoring use_user_profile for %s", launchParam.browserType),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, launchParam.fetchUrl.String()),
				metadata.NewAttr(metadata.AttrMethod, string(launchParam.browserType)),
			},
		)
		return false
	}
	return true
}

func (p *PlaywrightFetcher) render(ctx context.Context, launchParam LaunchParam) ([]byte, failure.ClassifiedError) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, &BrowserError{
			Message:   fmt.Sprintf("failed to start playwright: %v", err),
			Retryable: false,
			Cause:     ErrCauseLaunchFailed,
		}
	}
	defer pw.Stop()

	var engine playwright.BrowserType
	switch launchParam.browserType {
	case BrowserFirefox:
		engine = pw.Firefox
	case BrowserWebkit:
		engine = pw.WebKit
	default:
		engine = pw.Chromium
	}

	var page playwright.Page
	var cleanup func()

	if p.shouldUseProfile(launchParam) {
		userDataDir, dirErr := chromeUserDataDir()
		if dirErr != nil {
			return nil, &BrowserError{
				Message:   fmt.Sprintf("cannot resolve home directory: %v", dirErr),
				Retryable: false,
				Cause:     ErrCauseProfileNotFound,
			}
		}
		if _, statErr := os.Stat(userDataDir); statErr != nil {
			return nil, &BrowserError{
				Message:   fmt.Sprintf("chrome profile not found at %s", userDataDir),
				Retryable: false,
				Cause:     ErrCauseProfileNotFound,
			}
		}

		browserCtx, launchErr := engine.LaunchPersistentContext(userDataDir, playwright.BrowserTypeLaunchPersistentContextOptions{
			Headless: playwright.Bool(launchParam.headless),
			Channel:  playwright.String("chrome"),
		})
		if launchErr != nil {
			return nil, &BrowserError{
				Message:   fmt.Sprintf("failed to launch persistent context: %v", launchErr),
				Retryable: false,
				Cause:     ErrCauseLaunchFailed,
			}
		}
		cleanup = func() { browserCtx.Close() }

		newPage, pageErr := browserCtx.NewPage()
		if pageErr != nil {
			cleanup()
			return nil, &BrowserError{
				Message:   fmt.Sprintf("failed to open page: %v", pageErr),
				Retryable: false,
				Cause:     ErrCauseLaunchFailed,
			}
		}
		page = newPage
	} else {
		browserInstance, launchErr := engine.Launch(playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(launchParam.headless),
		})
		if launchErr != nil {
			return nil, &BrowserError{
				Message:   fmt.Sprintf("failed to launch %s: %v", launchParam.browserType, launchErr),
				Retryable: false,
				Cause:     ErrCauseLaunchFailed,
			}
		}
		cleanup = func() { browserInstance.Close() }

		newPage, pageErr := browserInstance.NewPage()
		if pageErr != nil {
			cleanup()
			return nil, &BrowserError{
				Message:   fmt.Sprintf("failed to open page: %v", pageErr),
				Retryable: false,
				Cause:     ErrCauseLaunchFailed,
			}
		}
		page = newPage
	}
	defer cleanup()

	timeout := launchParam.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	if _, gotoErr := page.Goto(launchParam.fetchUrl.String(), playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
		WaitUntil: waitUntilState(launchParam.waitFor),
	}); gotoErr != nil {
		return nil, &BrowserError{
			Message:   fmt.Sprintf("navigation to %s failed: %v", launchParam.fetchUrl.String(), gotoErr),
			Retryable: true,
			Cause:     ErrCauseNavigation,
		}
	}

	content, contentErr := page.Content()
	if contentErr != nil {
		return nil, &BrowserError{
			Message:   fmt.Sprintf("failed to read rendered content: %v", contentErr),
			Retryable: false,
			Cause:     ErrCauseContentRead,
		}
	}

	return []byte(content), nil
}

func waitUntilState(strategy WaitStrategy) *playwright.WaitUntilState {
	switch strategy {
	case WaitLoad:
		return playwright.WaitUntilStateLoad
	case WaitDOMContentLoaded:
		return playwright.WaitUntilStateDomcontentloaded
	default:
		return playwright.WaitUntilStateNetworkidle
	}
}
