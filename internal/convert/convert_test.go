package convert_test

import (
	"errors"
	"testing"

	"github.com/rohmanhakim/html2md/internal/convert"
	"github.com/rohmanhakim/html2md/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
	<title>Sample</title>
	<style>body { color: red; }</style>
	<script>console.log("tracking");</script>
</head>
<body>
	<nav><a href="/home">Home</a></nav>
	<header>Site header</header>
	<article>
		<h1>Getting Started</h1>
		<p>Install the tool with <code>go install</code>.</p>
		<p>See the <a href="https://example.com/docs">documentation</a> for details.</p>
		<img src="/diagram.png" alt="diagram">
		<table>
			<tr><th>Flag</th><th>Default</th></tr>
			<tr><td>--verbose</td><td>false</td></tr>
		</table>
	</article>
	<footer>Copyright</footer>
</body>
</html>`

func newConverter() convert.HtmlConverter {
	return convert.NewHtmlConverter(&metadata.NoopSink{})
}

func TestConvert_BasicStructure(t *testing.T) {
	c := newConverter()

	result, err := c.Convert("https://example.com", []byte(samplePage), convert.DefaultOptions())
	require.Nil(t, err)

	md := result.Markdown()
	assert.Contains(t, md, "# Getting Started")
	assert.Contains(t, md, "`go install`")
	assert.Contains(t, md, "[documentation](https://example.com/docs)")
}

func TestConvert_StripsChrome(t *testing.T) {
	c := newConverter()

	result, err := c.Convert("https://example.com", []byte(samplePage), convert.DefaultOptions())
	require.Nil(t, err)

	md := result.Markdown()
	assert.NotContains(t, md, "console.log")
	assert.NotContains(t, md, "color: red")
	assert.NotContains(t, md, "Site header")
	assert.NotContains(t, md, "Copyright")
}

func TestConvert_ExcludeImages(t *testing.T) {
	c := newConverter()

	opts := convert.NewOptions(false, true, true)
	result, err := c.Convert("https://example.com", []byte(samplePage), opts)
	require.Nil(t, err)

	assert.NotContains(t, result.Markdown(), "diagram.png")
}

func TestConvert_ExcludeTables(t *testing.T) {
	c := newConverter()

	opts := convert.NewOptions(true, false, true)
	result, err := c.Convert("https://example.com", []byte(samplePage), opts)
	require.Nil(t, err)

	assert.NotContains(t, result.Markdown(), "--verbose")
}

func TestConvert_ExcludeLinksKeepsText(t *testing.T) {
	c := newConverter()

	opts := convert.NewOptions(true, true, false)
	result, err := c.Convert("https://example.com", []byte(samplePage), opts)
	require.Nil(t, err)

	md := result.Markdown()
	assert.Contains(t, md, "documentation")
	assert.NotContains(t, md, "https://example.com/docs")
}

func TestConvert_SizesRecorded(t *testing.T) {
	c := newConverter()

	result, err := c.Convert("https://example.com", []byte(samplePage), convert.DefaultOptions())
	require.Nil(t, err)

	assert.Equal(t, len(samplePage), result.OriginalSize())
	assert.Greater(t, result.CleanedSize(), 0)
	assert.Equal(t, len(result.Markdown()), result.MarkdownSize())
	assert.Less(t, result.MarkdownSize(), result.OriginalSize())
}

func TestConvert_EmptyDocument(t *testing.T) {
	c := newConverter()

	_, err := c.Convert("https://example.com", []byte("<html><body></body></html>"), convert.DefaultOptions())
	require.NotNil(t, err)

	var conversionErr *convert.ConversionError
	require.True(t, errors.As(err, &conversionErr))
	assert.Equal(t, convert.ErrCauseEmptyResult, conversionErr.Cause)
}

func TestConvert_ChromeOnlyDocument(t *testing.T) {
	c := newConverter()

	page := `<html><body><nav>menu</nav><footer>foot</footer></body></html>`
	_, err := c.Convert("https://example.com", []byte(page), convert.DefaultOptions())
	require.NotNil(t, err)

	var conversionErr *convert.ConversionError
	require.True(t, errors.As(err, &conversionErr))
	assert.Equal(t, convert.ErrCauseEmptyResult, conversionErr.Cause)
}
