package sections_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/rohmanhakim/html2md/internal/sections"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sectionedPage = `<html><body>
<h1>Manual</h1>
<p>Overview paragraph.</p>
<h2>Install</h2>
<p>Installation steps.</p>
<h3>Linux</h3>
<p>Use the package manager.</p>
<h2>Usage</h2>
<p>Run the binary.</p>
<div id="appendix">
	<h2>Appendix</h2>
	<p>Extra material.</p>
</div>
</body></html>`

func TestFromHTML_ByHeading(t *testing.T) {
	fragment, err := sections.FromHTML([]byte(sectionedPage), "", "Install")
	require.Nil(t, err)

	html := string(fragment)
	assert.Contains(t, html, "Installation steps")
	assert.Contains(t, html, "Use the package manager")
	assert.NotContains(t, html, "Run the binary")
	assert.NotContains(t, html, "Overview paragraph")
}

func TestFromHTML_HeadingMatchIsCaseInsensitiveSubstring(t *testing.T) {
	fragment, err := sections.FromHTML([]byte(sectionedPage), "", "usa")
	require.Nil(t, err)

	assert.Contains(t, string(fragment), "Run the binary")
}

func TestFromHTML_HeadingLevelPriority(t *testing.T) {
	// The h2 match appears first in document order, but the h1 match must win:
	// each heading level is scanned in full before the next one.
	page := `<html><body>
<h2>Overview of internals</h2>
<p>Deep dive.</p>
<h1>Overview</h1>
<p>Top-level summary.</p>
</body></html>`

	fragment, err := sections.FromHTML([]byte(page), "", "Overview")
	require.Nil(t, err)

	html := string(fragment)
	assert.Contains(t, html, "Top-level summary")
	assert.NotContains(t, html, "Deep dive")
}

func TestFromHTML_ByID(t *testing.T) {
	fragment, err := sections.FromHTML([]byte(sectionedPage), "appendix", "")
	require.Nil(t, err)

	assert.Contains(t, string(fragment), "Extra material")
}

func TestFromHTML_IDWithHashPrefix(t *testing.T) {
	fragment, err := sections.FromHTML([]byte(sectionedPage), "#appendix", "")
	require.Nil(t, err)

	assert.Contains(t, string(fragment), "Extra material")
}

func TestFromHTML_NotFound(t *testing.T) {
	_, err := sections.FromHTML([]byte(sectionedPage), "", "Nonexistent")
	require.NotNil(t, err)

	var sectionErr *sections.SectionError
	require.True(t, errors.As(err, &sectionErr))
	assert.Equal(t, sections.ErrCauseNotFound, sectionErr.Cause)
}

func TestFromHTML_SelectorExclusivity(t *testing.T) {
	testCases := []struct {
		name    string
		id      string
		heading string
	}{
		{name: "both provided", id: "appendix", heading: "Install"},
		{name: "neither provided", id: "", heading: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sections.FromHTML([]byte(sectionedPage), tc.id, tc.heading)
			require.NotNil(t, err)

			var sectionErr *sections.SectionError
			require.True(t, errors.As(err, &sectionErr))
			assert.Equal(t, sections.ErrCauseInvalidSelector, sectionErr.Cause)
		})
	}
}

func TestFromMarkdown(t *testing.T) {
	markdown := strings.Join([]string{
		"# Manual",
		"",
		"Overview.",
		"",
		"## Install",
		"",
		"Steps here.",
		"",
		"### Linux",
		"",
		"Package manager.",
		"",
		"## Usage",
		"",
		"Run it.",
	}, "\n")

	section, err := sections.FromMarkdown(markdown, "Install")
	require.Nil(t, err)

	assert.Contains(t, section, "## Install")
	assert.Contains(t, section, "Steps here.")
	assert.Contains(t, section, "### Linux")
	assert.NotContains(t, section, "## Usage")
	assert.NotContains(t, section, "Overview.")
}

func TestFromMarkdown_NotFound(t *testing.T) {
	_, err := sections.FromMarkdown("# Only Heading\n\ntext", "Missing")
	require.NotNil(t, err)

	var sectionErr *sections.SectionError
	require.True(t, errors.As(err, &sectionErr))
	assert.Equal(t, sections.ErrCauseNotFound, sectionErr.Cause)
}

func TestFromMarkdown_SectionRunsToEndOfDocument(t *testing.T) {
	markdown := "# Title\n\nintro\n\n## Last\n\nfinal words"

	section, err := sections.FromMarkdown(markdown, "Last")
	require.Nil(t, err)
	assert.Contains(t, section, "final words")
}
