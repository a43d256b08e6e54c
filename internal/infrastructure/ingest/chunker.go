package ingest

import "strings"

// splitter separators, tried coarsest first: paragraph, line, sentence,
// word. Separators are kept on the fragments so no text is lost.
var separators = []string{"\n\n", "\n", ".", " "}

// SplitText re-chunks a section of text into pieces of at most chunkSize
// characters, carrying chunkOverlap trailing characters of each chunk into
// the next one as context.
func SplitText(text string, chunkSize, chunkOverlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= chunkSize {
		return []string{text}
	}
	return pack(fragment(text, chunkSize, 0), chunkSize, chunkOverlap)
}

// fragment recursively splits text until every piece fits chunkSize,
// falling through to finer separators and finally to a hard cut.
func fragment(text string, chunkSize int, level int) []string {
	if len(text) <= chunkSize {
		return []string{text}
	}
	if level >= len(separators) {
		var pieces []string
		for len(text) > chunkSize {
			pieces = append(pieces, text[:chunkSize])
			text = text[chunkSize:]
		}
		if text != "" {
			pieces = append(pieces, text)
		}
		return pieces
	}

	var pieces []string
	for _, part := range strings.SplitAfter(text, separators[level]) {
		if part == "" {
			continue
		}
		pieces = append(pieces, fragment(part, chunkSize, level+1)...)
	}
	return pieces
}

// pack greedily concatenates fragments into chunks up to chunkSize,
// seeding each new chunk with the previous chunk's overlap tail.
func pack(fragments []string, chunkSize, chunkOverlap int) []string {
	var chunks []string
	var current strings.Builder

	flush := func() {
		chunk := strings.TrimSpace(current.String())
		current.Reset()
		if chunk == "" {
			return
		}
		chunks = append(chunks, chunk)
		if chunkOverlap > 0 {
			tail := chunk
			if len(tail) > chunkOverlap {
				tail = tail[len(tail)-chunkOverlap:]
			}
			current.WriteString(tail)
			current.WriteString(" ")
		}
	}

	for _, piece := range fragments {
		if current.Len() > 0 && current.Len()+len(piece) > chunkSize {
			flush()
		}
		current.WriteString(piece)
	}

	final := strings.TrimSpace(current.String())
	if final != "" && (len(chunks) == 0 || !strings.HasSuffix(chunks[len(chunks)-1], final)) {
		chunks = append(chunks, final)
	}
	return chunks
}
