/*
Responsibilities
- Cut a single section out of an HTML document or a Markdown document
- Resolve sections by anchor ID or by heading text
- Keep sibling content up to the next heading of the same or higher level

Extraction happens on HTML before conversion when possible, so the section
boundary is decided on real DOM structure rather than rendered text.
*/
package sections

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/html2md/pkg/failure"
)

var headingLinePattern = regexp.MustCompile(`^(#+)\s+(.+)$`)

// FromHTML extracts the section identified by either sectionID or
// sectionHeading from rawHTML and returns it as an HTML fragment. Exactly one
// selector must be provided.
//
// A heading target collects its following siblings until the next heading of
// the same or higher level. An ID target resolves to its enclosing section,
// article or div when one exists.
func FromHTML(rawHTML []byte, sectionID, sectionHeading string) ([]byte, failure.ClassifiedError) {
	if (sectionID == "") == (sectionHeading == "") {
		return nil, &SectionError{
			Message:   "must provide exactly one of: section_id or section_heading",
			Retryable: false,
			Cause:     ErrCauseInvalidSelector,
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(rawHTML)))
	if err != nil {
		return nil, &SectionError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseParseFailure,
		}
	}

	var target *goquery.Selection
	if sectionID != "" {
		cleanID := strings.TrimPrefix(sectionID, "#")
		target = doc.Find(fmt.Sprintf("[id=%q]", cleanID)).First()
		if target.Length() == 0 {
			target = doc.Find(fmt.Sprintf("[name=%q]", cleanID)).First()
		}
	} else {
		// Scan each heading level in full before descending to the next, so
		// an h1 match always wins over an earlier h2 match.
		search := strings.ToLower(strings.TrimSpace(sectionHeading))
		for level := 1; level <= 6 && target == nil; level++ {
			doc.Find(fmt.Sprintf("h%d", level)).EachWithBreak(func(i int, s *goquery.Selection) bool {
				if strings.Contains(strings.ToLower(strings.TrimSpace(s.Text())), search) {
					target = s
					return false
				}
				return true
			})
		}
	}

	if target == nil || target.Length() == 0 {
		selector := sectionID
		if selector == "" {
			selector = sectionHeading
		}
		return nil, &SectionError{
			Message:   fmt.Sprintf("section not found: %s", selector),
			Retryable: false,
			Cause:     ErrCauseNotFound,
		}
	}

	fragment, fragErr := collectSection(target)
	if fragErr != nil {
		return nil, fragErr
	}
	return []byte(fragment), nil
}

// collectSection renders the target plus the sibling nodes that belong to its
// section.
func collectSection(target *goquery.Selection) (string, *SectionError) {
	nodeName := goquery.NodeName(target)

	if level, isHeading := headingLevel(nodeName); isHeading {
		var sb strings.Builder
		appendNodeHTML(&sb, target)

		for sibling := target.Next(); sibling.Length() > 0; sibling = sibling.Next() {
			if siblingLevel, ok := headingLevel(goquery.NodeName(sibling)); ok && siblingLevel <= level {
				break
			}
			appendNodeHTML(&sb, sibling)
		}
		return sb.String(), nil
	}

	// Non-heading target: prefer the enclosing structural container.
	if parent := target.Closest("section, article, div"); parent.Length() > 0 {
		var sb strings.Builder
		appendNodeHTML(&sb, parent)
		return sb.String(), nil
	}

	var sb strings.Builder
	appendNodeHTML(&sb, target)
	return sb.String(), nil
}

func appendNodeHTML(sb *strings.Builder, s *goquery.Selection) {
	if outer, err := goquery.OuterHtml(s); err == nil {
		sb.WriteString(outer)
	}
}

func headingLevel(nodeName string) (int, bool) {
	if len(nodeName) == 2 && nodeName[0] == 'h' {
		if level, err := strconv.Atoi(nodeName[1:]); err == nil && level >= 1 && level <= 6 {
			return level, true
		}
	}
	return 0, false
}

// FromMarkdown extracts the section starting at the first heading whose text
// contains sectionHeading (case-insensitive) and ending before the next
// heading of the same or higher level.
func FromMarkdown(markdown, sectionHeading string) (string, failure.ClassifiedError) {
	search := strings.ToLower(strings.TrimSpace(sectionHeading))

	var sectionLines []string
	inSection := false
	sectionLevel := 0

	for _, line := range strings.Split(markdown, "\n") {
		stripped := strings.TrimSpace(line)

		match := headingLinePattern.FindStringSubmatch(stripped)
		if match == nil {
			if inSection {
				sectionLines = append(sectionLines, line)
			}
			continue
		}

		level := len(match[1])
		headingText := strings.TrimSpace(match[2])

		if !inSection && strings.Contains(strings.ToLower(headingText), search) {
			inSection = true
			sectionLevel = level
			sectionLines = append(sectionLines, line)
			continue
		}

		if inSection && level <= sectionLevel {
			break
		}

		if inSection {
			sectionLines = append(sectionLines, line)
		}
	}

	if len(sectionLines) == 0 {
		return "", &SectionError{
			Message:   fmt.Sprintf("section not found: %s", sectionHeading),
			Retryable: false,
			Cause:     ErrCauseNotFound,
		}
	}

	return strings.Join(sectionLines, "\n"), nil
}
