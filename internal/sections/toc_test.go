package sections_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rohmanhakim/html2md/internal/sections"
	"github.com/stretchr/testify/assert"
)

func TestExtractTOC(t *testing.T) {
	markdown := strings.Join([]string{
		"# Guide",
		"",
		"Intro text.",
		"",
		"## Install",
		"",
		"Run the installer.",
		"",
		"### Linux",
		"",
		"## Usage",
	}, "\n")

	toc := sections.ExtractTOC(markdown)

	assert.Equal(t, []string{
		"# Guide",
		"## Install",
		"### Linux",
		"## Usage",
	}, toc)
}

func TestExtractTOC_Empty(t *testing.T) {
	toc := sections.ExtractTOC("plain text with no headings")
	assert.Empty(t, toc)
}

func TestExtractTOC_CapsAtFifty(t *testing.T) {
	var sb strings.Builder
	for i := 1; i <= 80; i++ {
		fmt.Fprintf(&sb, "## Section %d\n\ncontent\n\n", i)
	}

	toc := sections.ExtractTOC(sb.String())
	assert.Len(t, toc, 50)
	assert.Equal(t, "## Section 1", toc[0])
	assert.Equal(t, "## Section 50", toc[49])
}

func TestExtractTOC_InlineCodeInHeading(t *testing.T) {
	toc := sections.ExtractTOC("## Using `go build`\n\ntext")
	assert.Equal(t, []string{"## Using go build"}, toc)
}
