package server_test

import (
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rohmanhakim/html2md/internal/browser"
	"github.com/rohmanhakim/html2md/internal/config"
	"github.com/rohmanhakim/html2md/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callWith(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = "html_to_markdown"
	req.Params.Arguments = args
	return req
}

func defaultConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.WithDefault().Build()
	require.NoError(t, err)
	return cfg
}

func TestResolveRequest_Defaults(t *testing.T) {
	cfg := defaultConfig(t)

	resolved, err := server.ResolveRequest(callWith(map[string]any{
		"url": "https://example.com/page",
	}), cfg)
	require.Nil(t, err)

	assert.Equal(t, "https://example.com/page", resolved.URL.String())
	assert.True(t, resolved.IncludeImages)
	assert.True(t, resolved.IncludeTables)
	assert.True(t, resolved.IncludeLinks)
	assert.Equal(t, 30*time.Second, resolved.Timeout)
	assert.Equal(t, int64(10*1024*1024), resolved.MaxSize)
	assert.False(t, resolved.UseCache)
	assert.Equal(t, time.Hour, resolved.CacheTTL)
	assert.Equal(t, server.MethodFetch, resolved.FetchMethod)
	assert.Equal(t, browser.BrowserChromium, resolved.BrowserType)
	assert.True(t, resolved.Headless)
	assert.Equal(t, browser.WaitNetworkIdle, resolved.WaitFor)
	assert.False(t, resolved.UseUserProfile)
	assert.False(t, resolved.ReturnSummary)
	assert.Equal(t, 25000, resolved.MaxTokens)
	assert.False(t, resolved.HasSection())
}

func TestResolveRequest_ClampsOutOfRangeValues(t *testing.T) {
	cfg := defaultConfig(t)

	resolved, err := server.ResolveRequest(callWith(map[string]any{
		"url":        "https://example.com",
		"timeout":    600,
		"max_size":   1024,
		"cache_ttl":  10,
		"max_tokens": 5,
	}), cfg)
	require.Nil(t, err)

	assert.Equal(t, 120*time.Second, resolved.Timeout)
	assert.Equal(t, int64(1024*1024), resolved.MaxSize)
	assert.Equal(t, time.Minute, resolved.CacheTTL)
	assert.Equal(t, 1000, resolved.MaxTokens)
}

func TestResolveRequest_ExplicitValues(t *testing.T) {
	cfg := defaultConfig(t)

	resolved, err := server.ResolveRequest(callWith(map[string]any{
		"url":              "https://example.com",
		"include_images":   false,
		"include_links":    false,
		"use_cache":        true,
		"fetch_method":     "playwright",
		"browser_type":     "firefox",
		"headless":         false,
		"wait_for":         "load",
		"use_user_profile": true,
		"return_summary":   true,
		"section_heading":  "Install",
	}), cfg)
	require.Nil(t, err)

	assert.False(t, resolved.IncludeImages)
	assert.True(t, resolved.IncludeTables)
	assert.False(t, resolved.IncludeLinks)
	assert.True(t, resolved.UseCache)
	assert.Equal(t, server.MethodPlaywright, resolved.FetchMethod)
	assert.Equal(t, browser.BrowserFirefox, resolved.BrowserType)
	assert.False(t, resolved.Headless)
	assert.Equal(t, browser.WaitLoad, resolved.WaitFor)
	assert.True(t, resolved.UseUserProfile)
	assert.True(t, resolved.ReturnSummary)
	assert.Equal(t, "Install", resolved.SectionSelector())
}

func TestResolveRequest_MissingURL(t *testing.T) {
	cfg := defaultConfig(t)

	_, err := server.ResolveRequest(callWith(map[string]any{}), cfg)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "'url' parameter is required")
}

func TestResolveRequest_InvalidURL(t *testing.T) {
	cfg := defaultConfig(t)

	_, err := server.ResolveRequest(callWith(map[string]any{
		"url": "not a url",
	}), cfg)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "invalid URL format")
}

func TestResolveRequest_SectionSelectorsMutuallyExclusive(t *testing.T) {
	cfg := defaultConfig(t)

	_, err := server.ResolveRequest(callWith(map[string]any{
		"url":             "https://example.com",
		"section_id":      "intro",
		"section_heading": "Intro",
	}), cfg)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestResolveRequest_UnknownEnums(t *testing.T) {
	cfg := defaultConfig(t)

	testCases := []struct {
		name string
		args map[string]any
	}{
		{
			name: "fetch method",
			args: map[string]any{"url": "https://example.com", "fetch_method": "curl"},
		},
		{
			name: "browser type",
			args: map[string]any{"url": "https://example.com", "browser_type": "opera"},
		},
		{
			name: "wait strategy",
			args: map[string]any{"url": "https://example.com", "wait_for": "idle"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := server.ResolveRequest(callWith(tc.args), cfg)
			assert.NotNil(t, err)
		})
	}
}
