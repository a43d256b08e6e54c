package ingest

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/hfahrudin/fraud-chatbot/internal/domain"
	"github.com/hfahrudin/fraud-chatbot/internal/ports"
)

const (
	chunkSize    = 2000
	chunkOverlap = 400
	// minFragmentWords drops boilerplate: page numbers, footers, stray
	// labels.
	minFragmentWords = 3
)

// ChunkStore is the write-side surface of the knowledge index.
type ChunkStore interface {
	AddChunks(ctx context.Context, chunks []domain.Chunk) error
}

// LoadPDFs chunks and embeds every PDF in the data directory.
func LoadPDFs(ctx context.Context, store ChunkStore, dataDir string, logger ports.Logger) error {
	files, err := filepath.Glob(filepath.Join(dataDir, "*.pdf"))
	if err != nil {
		return fmt.Errorf("scan %s: %w", dataDir, err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		logger.Warn("no PDF files found", map[string]interface{}{"dir": dataDir})
		return nil
	}

	for _, file := range files {
		chunks, err := ChunkPDF(file)
		if err != nil {
			logger.Error("failed to chunk PDF", err, map[string]interface{}{"file": file})
			continue
		}
		if err := store.AddChunks(ctx, chunks); err != nil {
			return fmt.Errorf("embed %s: %w", file, err)
		}
		logger.Info("indexed PDF", map[string]interface{}{"file": file, "chunks": len(chunks)})
	}
	return nil
}

// ChunkPDF extracts a PDF's text, segments it on structural headers,
// discards very short fragments, and re-chunks each section with the
// fixed-size/overlap splitter.
func ChunkPDF(path string) ([]domain.Chunk, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract text %s: %w", path, err)
	}
	raw, err := io.ReadAll(plain)
	if err != nil {
		return nil, fmt.Errorf("read text %s: %w", path, err)
	}

	source := filepath.Base(path)
	var chunks []domain.Chunk
	for _, section := range segmentSections(string(raw)) {
		for _, piece := range SplitText(section, chunkSize, chunkOverlap) {
			chunks = append(chunks, domain.Chunk{
				ID:      uuid.NewString(),
				Source:  source,
				Content: piece,
			})
		}
	}
	return chunks, nil
}

// segmentSections groups lines into sections, starting a new section at
// each structural header and dropping fragments below the word floor.
func segmentSections(text string) []string {
	var sections []string
	var current strings.Builder

	closeSection := func() {
		section := strings.TrimSpace(current.String())
		if section != "" {
			sections = append(sections, section)
		}
		current.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if looksLikeHeader(line) {
			closeSection()
			continue
		}
		if len(strings.Fields(line)) < minFragmentWords {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
	}
	closeSection()
	return sections
}

// looksLikeHeader approximates structural-header detection on plain text:
// short lines without terminal sentence punctuation that start with an
// uppercase letter or a numbering digit.
func looksLikeHeader(line string) bool {
	words := strings.Fields(line)
	if len(words) == 0 || len(words) > 8 {
		return false
	}
	last, _ := utf8Last(line)
	if last == '.' || last == ',' || last == ';' || last == ':' {
		return false
	}
	first := []rune(words[0])[0]
	return unicode.IsUpper(first) || unicode.IsDigit(first)
}

func utf8Last(s string) (rune, bool) {
	runes := []rune(s)
	if len(runes) == 0 {
		return 0, false
	}
	return runes[len(runes)-1], true
}
