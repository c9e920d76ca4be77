// Package chunker splits translated text into pieces that fit a Telegram message.
package chunker

import "unicode/utf8"

const (
	// DefaultChunkSize leaves room for the header markup around the first chunk.
	DefaultChunkSize = 2048
	// MessageLimit is the Telegram hard limit for a single text message.
	MessageLimit = 4096
)

// Split cuts text into consecutive pieces of at most size runes each.
// Concatenating the result yields text again. Empty text yields one empty chunk.
// A non-positive size falls back to DefaultChunkSize.
func Split(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	n := utf8.RuneCountInString(text)
	if n <= size {
		return []string{text}
	}

	chunks := make([]string, 0, (n+size-1)/size)
	start, count := 0, 0
	for i := range text {
		if count == size {
			chunks = append(chunks, text[start:i])
			start, count = i, 0
		}
		count++
	}
	return append(chunks, text[start:])
}

// Count returns how many chunks Split would produce.
func Count(text string, size int) int {
	if size <= 0 {
		size = DefaultChunkSize
	}
	n := utf8.RuneCountInString(text)
	if n <= size {
		return 1
	}
	return (n + size - 1) / size
}
