package utils

import (
	"strings"
	"testing"
)

func TestSplitText(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		chunkSize  int
		overlap    int
		wantChunks int
	}{
		{
			name:       "short text fits in one chunk",
			text:       "hello world",
			chunkSize:  100,
			overlap:    20,
			wantChunks: 1,
		},
		{
			name:       "exact chunk size is one chunk",
			text:       strings.Repeat("a", 100),
			chunkSize:  100,
			overlap:    20,
			wantChunks: 1,
		},
		{
			name:       "long text splits with overlap",
			text:       strings.Repeat("a", 250),
			chunkSize:  100,
			overlap:    20,
			wantChunks: 3, // steps of 80: 0-100, 80-180, 160-250
		},
		{
			name:       "overlap >= chunkSize falls back to no overlap",
			text:       strings.Repeat("a", 250),
			chunkSize:  100,
			overlap:    100,
			wantChunks: 3, // steps of 100: 0-100, 100-200, 200-250
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := SplitText(tt.text, tt.chunkSize, tt.overlap)
			if len(chunks) != tt.wantChunks {
				t.Errorf("chunk count = %d, want %d", len(chunks), tt.wantChunks)
			}
		})
	}
}

func TestSplitTextOverlapContent(t *testing.T) {
	text := "abcdefghij" + "klmnopqrst" + "uvwxyz"
	chunks := SplitText(text, 10, 4)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// Each chunk after the first must start with the tail of its predecessor.
	for i := 1; i < len(chunks); i++ {
		prevTail := chunks[i-1][len(chunks[i-1])-4:]
		if !strings.HasPrefix(chunks[i], prevTail) {
			t.Errorf("chunk %d does not overlap predecessor: %q vs tail %q", i, chunks[i], prevTail)
		}
	}
}

func TestSplitTextDeterministic(t *testing.T) {
	text := strings.Repeat("the quick brown fox ", 200)

	first := SplitText(text, 1000, 200)
	second := SplitText(text, 1000, 200)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestSplitTextUnicode(t *testing.T) {
	// Multi-byte runes must never be split mid-character.
	text := strings.Repeat("日本語テキスト", 50)
	chunks := SplitText(text, 40, 10)

	var rejoined strings.Builder
	for i, chunk := range chunks {
		if i == 0 {
			rejoined.WriteString(chunk)
			continue
		}
		rejoined.WriteString(chunk[len(string([]rune(chunk)[:10])):])
	}

	if rejoined.String() != text {
		t.Error("rejoined chunks do not reproduce the original text")
	}
}
