package server_test

import (
	"context"
	"strings"
	"testing"

	"github.com/rohmanhakim/html2md/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullOutcome(t *testing.T, fixture serviceFixture, mutate func(*server.Request)) server.Outcome {
	t.Helper()

	req := fixture.baseRequest(t)
	if mutate != nil {
		mutate(&req)
	}

	outcome, err := fixture.service.Convert(context.Background(), req)
	require.Nil(t, err)
	return outcome
}

func TestFormatOutcome_FullDocument(t *testing.T) {
	fixture := newServiceFixture(t, servicePage)
	outcome := fullOutcome(t, fixture, nil)

	response := server.FormatOutcome(outcome)

	assert.Contains(t, response, "# Conversion Successful")
	assert.Contains(t, response, "**URL:** "+fixture.pageURL)
	assert.Contains(t, response, "**Original Size:**")
	assert.Contains(t, response, "**Markdown Size:**")
	assert.Contains(t, response, "**Estimated Tokens:**")
	assert.Contains(t, response, "**Compression:**")
	assert.Contains(t, response, "# Title")
	assert.NotContains(t, response, "**Section extracted:**")
}

func TestFormatOutcome_SectionNote(t *testing.T) {
	fixture := newServiceFixture(t, servicePage)
	outcome := fullOutcome(t, fixture, func(req *server.Request) {
		req.SectionHeading = "Details"
	})

	response := server.FormatOutcome(outcome)
	assert.Contains(t, response, "**Section extracted:** Details")
}

func TestFormatOutcome_Summary(t *testing.T) {
	fixture := newServiceFixture(t, servicePage)
	outcome := fullOutcome(t, fixture, func(req *server.Request) {
		req.ReturnSummary = true
	})

	response := server.FormatOutcome(outcome)

	assert.Contains(t, response, "# Document Too Large - Summary Returned")
	assert.Contains(t, response, "**Full content saved to:**")
	assert.Contains(t, response, "## Statistics")
	assert.Contains(t, response, "## Table of Contents")
	assert.Contains(t, response, "## Preview (first 500 words)")
	assert.Contains(t, response, "section_heading")
}

func TestFormatOutcome_SummaryTOCPreviewBounded(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body><article>")
	for i := 0; i < 30; i++ {
		sb.WriteString("<h2>Heading</h2><p>content paragraph</p>")
	}
	sb.WriteString("</article></body></html>")

	fixture := newServiceFixture(t, sb.String())
	outcome := fullOutcome(t, fixture, func(req *server.Request) {
		req.ReturnSummary = true
	})

	response := server.FormatOutcome(outcome)
	assert.Contains(t, response, "... and 10 more headings")
}
