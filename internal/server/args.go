package server

import (
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rohmanhakim/html2md/internal/browser"
	"github.com/rohmanhakim/html2md/internal/config"
	"github.com/rohmanhakim/html2md/pkg/failure"
	"github.com/rohmanhakim/html2md/pkg/urlutil"
)

// ResolveRequest turns a raw tool call into a Request: defaults applied,
// enums parsed, numeric parameters clamped to the configured bounds. A
// returned error is always an *ArgsError whose message is safe to show the
// caller verbatim.
func ResolveRequest(req mcp.CallToolRequest, cfg config.Config) (Request, failure.ClassifiedError) {
	rawURL, err := req.RequireString("url")
	if err != nil || rawURL == "" {
		return Request{}, &ArgsError{Message: "'url' parameter is required"}
	}

	fetchURL, err := urlutil.Validate(rawURL)
	if err != nil {
		return Request{}, &ArgsError{Message: fmt.Sprintf("invalid URL format: %s", rawURL)}
	}

	sectionID := req.GetString("section_id", "")
	sectionHeading := req.GetString("section_heading", "")
	if sectionID != "" && sectionHeading != "" {
		return Request{}, &ArgsError{
			Message: "'section_id' and 'section_heading' are mutually exclusive. Provide only one.",
		}
	}

	browserType, err := browser.ParseBrowserType(req.GetString("browser_type", string(browser.BrowserChromium)))
	if err != nil {
		return Request{}, &ArgsError{Message: err.Error()}
	}

	waitFor, err := browser.ParseWaitStrategy(req.GetString("wait_for", string(browser.WaitNetworkIdle)))
	if err != nil {
		return Request{}, &ArgsError{Message: err.Error()}
	}

	fetchMethod := FetchMethod(req.GetString("fetch_method", string(MethodFetch)))
	if fetchMethod != MethodFetch && fetchMethod != MethodPlaywright {
		return Request{}, &ArgsError{Message: fmt.Sprintf("unknown fetch method: %q", fetchMethod)}
	}

	timeout := cfg.ClampTimeout(time.Duration(req.GetInt("timeout", 30)) * time.Second)
	maxSize := cfg.ClampFetchSize(int64(req.GetInt("max_size", 10*1024*1024)))
	cacheTTL := cfg.ClampTTL(time.Duration(req.GetInt("cache_ttl", 3600)) * time.Second)
	maxTokens := cfg.ClampMaxTokens(req.GetInt("max_tokens", 25000))

	return Request{
		URL:            fetchURL,
		IncludeImages:  req.GetBool("include_images", true),
		IncludeTables:  req.GetBool("include_tables", true),
		IncludeLinks:   req.GetBool("include_links", true),
		Timeout:        timeout,
		MaxSize:        maxSize,
		UseCache:       req.GetBool("use_cache", false),
		CacheTTL:       cacheTTL,
		FetchMethod:    fetchMethod,
		BrowserType:    browserType,
		Headless:       req.GetBool("headless", true),
		WaitFor:        waitFor,
		UseUserProfile: req.GetBool("use_user_profile", false),
		ReturnSummary:  req.GetBool("return_summary", false),
		MaxTokens:      maxTokens,
		SectionID:      sectionID,
		SectionHeading: sectionHeading,
	}, nil
}
