package sections

import (
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

// maxTOCHeadings caps the number of entries in a table of contents.
const maxTOCHeadings = 50

// ExtractTOC returns the document's headings rendered back as Markdown
// heading lines, in document order, capped at maxTOCHeadings entries.
func ExtractTOC(markdown string) []string {
	p := parser.New()
	doc := p.Parse([]byte(markdown))

	var toc []string
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		heading, ok := node.(*ast.Heading)
		if !ok {
			return ast.GoToNext
		}

		text := headingText(heading)
		if text == "" {
			return ast.GoToNext
		}

		toc = append(toc, strings.Repeat("#", heading.Level)+" "+text)
		if len(toc) >= maxTOCHeadings {
			return ast.Terminate
		}
		return ast.GoToNext
	})

	return toc
}

// headingText concatenates the literal text of a heading's leaf nodes.
func headingText(heading *ast.Heading) string {
	var sb strings.Builder
	ast.WalkFunc(heading, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch n := node.(type) {
		case *ast.Text:
			sb.Write(n.Literal)
		case *ast.Code:
			sb.Write(n.Literal)
		}
		return ast.GoToNext
	})
	return strings.TrimSpace(sb.String())
}
