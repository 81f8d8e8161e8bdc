package summarizer

import (
	"regexp"
	"strings"
)

// maxChunkTokens is a conservative cap on transcript text per request
const maxChunkTokens = 4000

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// estimateTokens gives a rough token count for text. One token is roughly
// four characters of English text; precision does not matter here, only that
// chunks stay safely under the model's context window.
func estimateTokens(text string) int {
	return len(text) / 4
}

// chunkText splits text into pieces that fit within the token cap. Paragraph
// boundaries are preferred; paragraphs that are too long on their own are
// split at sentence boundaries.
func chunkText(text string, maxTokens int) []string {
	if maxTokens <= 0 {
		maxTokens = maxChunkTokens
	}

	if estimateTokens(text) <= maxTokens {
		return []string{text}
	}

	paragraphs := strings.Split(text, "\n\n")
	var chunks []string
	current := ""

	for _, paragraph := range paragraphs {
		candidate := paragraph
		if current != "" {
			candidate = current + "\n\n" + paragraph
		}

		if estimateTokens(candidate) <= maxTokens {
			current = candidate
			continue
		}

		if current != "" {
			chunks = append(chunks, strings.TrimSpace(current))
		}
		current = paragraph

		if estimateTokens(current) > maxTokens {
			sentenceChunks := splitBySentences(current, maxTokens)
			if len(sentenceChunks) > 0 {
				chunks = append(chunks, sentenceChunks[:len(sentenceChunks)-1]...)
				current = sentenceChunks[len(sentenceChunks)-1]
			} else {
				current = ""
			}
		}
	}

	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}

	return chunks
}

// splitBySentences splits text at sentence boundaries when a single paragraph
// exceeds the token cap
func splitBySentences(text string, maxTokens int) []string {
	sentences := sentenceSplit.Split(text, -1)
	var chunks []string
	current := ""

	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		candidate := sentence
		if current != "" {
			candidate = current + ". " + sentence
		}

		if estimateTokens(candidate) <= maxTokens {
			current = candidate
			continue
		}

		if current != "" {
			chunks = append(chunks, strings.TrimSpace(current))
		}
		current = sentence
	}

	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}

	return chunks
}
