package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rohmanhakim/html2md/internal/browser"
	"github.com/rohmanhakim/html2md/internal/config"
	"github.com/rohmanhakim/html2md/internal/convert"
	"github.com/rohmanhakim/html2md/internal/fetcher"
	"github.com/rohmanhakim/html2md/internal/sections"
	"github.com/rohmanhakim/html2md/pkg/failure"
	"github.com/rohmanhakim/html2md/pkg/retry"
)

const toolName = "html_to_markdown"

// Server exposes the conversion service as a stdio tool endpoint.
type Server struct {
	service *Service
	mcp     *mcpserver.MCPServer
	cfg     config.Config
}

func New(service *Service, cfg config.Config, version string) *Server {
	s := &Server{
		service: service,
		cfg:     cfg,
	}

	s.mcp = mcpserver.NewMCPServer("html2md", version)
	s.mcp.AddTool(conversionTool(), s.handleConvert)
	return s
}

// ServeStdio blocks, serving tool calls over stdin/stdout until the stream
// closes.
func (s *Server) ServeStdio() error {
	return mcpserver.ServeStdio(s.mcp)
}

func conversionTool() mcp.Tool {
	return mcp.NewTool(toolName,
		mcp.WithDescription(
			"Convert HTML from a URL to clean Markdown format. "+
				"Preserves tables, images, and links while removing unnecessary elements "+
				"like scripts, styles, navigation, headers, and footers. "+
				"Perfect for reducing HTML size for AI context.",
		),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("URL of the webpage to convert to Markdown"),
		),
		mcp.WithBoolean("include_images",
			mcp.DefaultBool(true),
			mcp.Description("Whether to include images in the Markdown output"),
		),
		mcp.WithBoolean("include_tables",
			mcp.DefaultBool(true),
			mcp.Description("Whether to include tables in the Markdown output"),
		),
		mcp.WithBoolean("include_links",
			mcp.DefaultBool(true),
			mcp.Description("Whether to include links in the Markdown output"),
		),
		mcp.WithNumber("timeout",
			mcp.DefaultNumber(30),
			mcp.Description("Request timeout in seconds (clamped to 5-120)"),
		),
		mcp.WithNumber("max_size",
			mcp.DefaultNumber(10*1024*1024),
			mcp.Description("Maximum size to download in bytes (default: 10MB, clamped to 1MB-50MB)"),
		),
		mcp.WithBoolean("use_cache",
			mcp.DefaultBool(false),
			mcp.Description("Use cache for this request (reduces repeated conversions)"),
		),
		mcp.WithNumber("cache_ttl",
			mcp.DefaultNumber(3600),
			mcp.Description("Cache time-to-live in seconds (default: 3600 = 1 hour, clamped to 60-86400)"),
		),
		mcp.WithString("fetch_method",
			mcp.DefaultString(string(MethodFetch)),
			mcp.Enum(string(MethodFetch), string(MethodPlaywright)),
			mcp.Description("Fetch method: fetch (fast) or playwright (JS, auth)"),
		),
		mcp.WithString("browser_type",
			mcp.DefaultString(string(browser.BrowserChromium)),
			mcp.Enum(string(browser.BrowserChromium), string(browser.BrowserFirefox), string(browser.BrowserWebkit)),
			mcp.Description("Browser to use with playwright (default: chromium)"),
		),
		mcp.WithBoolean("headless",
			mcp.DefaultBool(true),
			mcp.Description("Run browser in headless mode (default: true)"),
		),
		mcp.WithString("wait_for",
			mcp.DefaultString(string(browser.WaitNetworkIdle)),
			mcp.Enum(string(browser.WaitLoad), string(browser.WaitDOMContentLoaded), string(browser.WaitNetworkIdle)),
			mcp.Description("Page load wait strategy (default: networkidle)"),
		),
		mcp.WithBoolean("use_user_profile",
			mcp.DefaultBool(false),
			mcp.Description("Use browser profile with cookies (requires playwright)"),
		),
		mcp.WithBoolean("return_summary",
			mcp.DefaultBool(false),
			mcp.Description("Return summary with metadata instead of full content (useful for large documents)"),
		),
		mcp.WithNumber("max_tokens",
			mcp.DefaultNumber(25000),
			mcp.Description("Maximum tokens before auto-returning summary (default: 25000, clamped to 1000-100000)"),
		),
		mcp.WithString("section_id",
			mcp.Description("Extract only section with this HTML anchor ID (e.g., 'PRD1480'). Mutually exclusive with section_heading."),
		),
		mcp.WithString("section_heading",
			mcp.Description("Extract only section with this heading text (e.g., '7.2 Frontend'). Mutually exclusive with section_id."),
		),
	)
}

func (s *Server) handleConvert(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resolved, argsErr := ResolveRequest(req, s.cfg)
	if argsErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error: %s", argsErr.Error())), nil
	}

	outcome, convertErr := s.service.Convert(ctx, resolved)
	if convertErr != nil {
		return mcp.NewToolResultError(describeFailure(convertErr)), nil
	}

	return mcp.NewToolResultText(FormatOutcome(outcome)), nil
}

// describeFailure renders a pipeline failure as caller-facing text, keyed on
// which stage produced it.
func describeFailure(err failure.ClassifiedError) string {
	var fetchErr *fetcher.FetchError
	if errors.As(err, &fetchErr) {
		return fmt.Sprintf("Error fetching URL: %s", fetchErr.Message)
	}

	var retryErr *retry.RetryError
	if errors.As(err, &retryErr) {
		return fmt.Sprintf("Error fetching URL: %s", retryErr.Message)
	}

	var browserErr *browser.BrowserError
	if errors.As(err, &browserErr) {
		return fmt.Sprintf("Error fetching URL: %s", browserErr.Message)
	}

	var conversionErr *convert.ConversionError
	if errors.As(err, &conversionErr) {
		return fmt.Sprintf("Error parsing/converting content: %s", conversionErr.Message)
	}

	var sectionErr *sections.SectionError
	if errors.As(err, &sectionErr) {
		return fmt.Sprintf("Error extracting section: %s", sectionErr.Message)
	}

	return fmt.Sprintf("Unexpected error: %s", err.Error())
}
