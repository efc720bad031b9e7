// Package speech drives paragraph-by-paragraph read-aloud playback through a
// pluggable synthesis engine.
package speech

import "strings"

// Chunk splits text into sentence-bounded pieces sized for reliable
// synthesis. A chunk ends at a run of terminal punctuation (".", "!", "?"),
// with the run kept on the chunk it terminates. Chunks are trimmed;
// whitespace-only pieces are dropped.
func Chunk(text string) []string {
	var chunks []string
	runes := []rune(text)
	start := 0

	for i := 0; i < len(runes); i++ {
		if !terminal(runes[i]) {
			continue
		}
		// Swallow the whole punctuation run ("...", "?!").
		for i+1 < len(runes) && terminal(runes[i+1]) {
			i++
		}
		if c := strings.TrimSpace(string(runes[start : i+1])); c != "" {
			chunks = append(chunks, c)
		}
		start = i + 1
	}
	if start < len(runes) {
		if c := strings.TrimSpace(string(runes[start:])); c != "" {
			chunks = append(chunks, c)
		}
	}
	return chunks
}

func terminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
