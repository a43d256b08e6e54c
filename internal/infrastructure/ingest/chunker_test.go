package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitTextShortInputSingleChunk(t *testing.T) {
	chunks := SplitText("a small section about velocity checks", 2000, 400)
	require.Len(t, chunks, 1)
}

func TestSplitTextEmptyInput(t *testing.T) {
	require.Empty(t, SplitText("   \n ", 2000, 400))
}

func TestSplitTextRespectsChunkSize(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 200; i++ {
		b.WriteString("fraud scoring models weight transaction velocity and merchant risk. ")
	}
	chunks := SplitText(b.String(), 500, 100)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		// Overlap can push a chunk slightly past the target, never double it.
		require.LessOrEqual(t, len(chunk), 2*500, "chunk too large: %d", len(chunk))
		require.NotEmpty(t, strings.TrimSpace(chunk))
	}
}

func TestSplitTextCarriesOverlap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 60; i++ {
		b.WriteString("sentence number marker. ")
	}
	chunks := SplitText(b.String(), 200, 50)
	require.Greater(t, len(chunks), 1)

	// Each follow-up chunk starts with trailing context of its predecessor.
	for i := 1; i < len(chunks); i++ {
		tail := chunks[i-1]
		if len(tail) > 50 {
			tail = tail[len(tail)-50:]
		}
		require.True(t, strings.HasPrefix(chunks[i], strings.TrimSpace(tail)),
			"chunk %d does not carry overlap", i)
	}
}

func TestSegmentSectionsDropsHeadersAndShortFragments(t *testing.T) {
	text := strings.Join([]string{
		"1 Introduction",
		"p. 4",
		"Card fraud detection combines rule based systems with statistical models.",
		"2 Methods",
		"Velocity checks compare recent spend against a rolling baseline window.",
	}, "\n")

	sections := segmentSections(text)
	require.Len(t, sections, 2)
	require.Contains(t, sections[0], "rule based systems")
	require.Contains(t, sections[1], "rolling baseline window")
	for _, section := range sections {
		require.NotContains(t, section, "Introduction")
		require.NotContains(t, section, "p. 4")
	}
}
