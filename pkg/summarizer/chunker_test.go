package summarizer

import (
	"strings"
	"testing"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty", text: "", want: 0},
		{name: "short", text: "word", want: 1},
		{name: "hundred chars", text: strings.Repeat("a", 100), want: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := estimateTokens(tt.text); got != tt.want {
				t.Errorf("estimateTokens() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestChunkTextSingleChunk(t *testing.T) {
	text := "A short transcript that easily fits in one request."

	chunks := chunkText(text, maxChunkTokens)
	if len(chunks) != 1 {
		t.Fatalf("chunkText() produced %d chunks, want 1", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("single chunk should be the text verbatim")
	}
}

func TestChunkTextSplitsOnParagraphs(t *testing.T) {
	paragraph := strings.Repeat("Spoken content goes here. ", 20)
	text := strings.Join([]string{paragraph, paragraph, paragraph, paragraph}, "\n\n")

	// Cap well below the total so splitting is forced.
	maxTokens := estimateTokens(paragraph) + 10

	chunks := chunkText(text, maxTokens)
	if len(chunks) < 2 {
		t.Fatalf("chunkText() produced %d chunks, want at least 2", len(chunks))
	}

	for i, chunk := range chunks {
		if estimateTokens(chunk) > maxTokens {
			t.Errorf("chunk %d exceeds token cap: %d > %d", i, estimateTokens(chunk), maxTokens)
		}
		if strings.TrimSpace(chunk) == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}
}

func TestChunkTextSplitsLongParagraphBySentences(t *testing.T) {
	// One giant paragraph with no blank lines.
	text := strings.Repeat("This sentence repeats to make the paragraph long. ", 100)
	maxTokens := 100

	chunks := chunkText(text, maxTokens)
	if len(chunks) < 2 {
		t.Fatalf("chunkText() produced %d chunks, want at least 2", len(chunks))
	}
	for i, chunk := range chunks {
		if estimateTokens(chunk) > maxTokens {
			t.Errorf("chunk %d exceeds token cap", i)
		}
	}
}

func TestChunkTextPreservesContent(t *testing.T) {
	text := "First paragraph about goals.\n\nSecond paragraph about blockers.\n\nThird paragraph about actions."

	chunks := chunkText(text, 10)
	joined := strings.Join(chunks, " ")
	for _, want := range []string{"goals", "blockers", "actions"} {
		if !strings.Contains(joined, want) {
			t.Errorf("chunked output lost content %q", want)
		}
	}
}
