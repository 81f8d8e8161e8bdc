package summarizer

import (
	"strings"
)

// canonicalSections are the four summary sections, in their fixed order
var canonicalSections = []struct {
	header   string
	keywords []string
}{
	{"🧠 Key Points", []string{"key points"}},
	{"💡 Key Learnings", []string{"key learnings", "key takeaways"}},
	{"🤔 Reflection Questions", []string{"reflection questions", "questions for reflection", "key questions"}},
	{"✅ Action Items", []string{"action items", "next steps"}},
}

// SectionHeaders returns the canonical section headers in order
func SectionHeaders() []string {
	headers := make([]string, len(canonicalSections))
	for i, s := range canonicalSections {
		headers[i] = s.header
	}
	return headers
}

// NormalizeSections guarantees that summary text contains all four canonical
// section headers in the fixed order. Recognized sections keep their content;
// missing sections are emitted with an empty body. Content preceding the
// first recognized header is folded into Key Points. The generation service's
// response is otherwise trusted; only the section skeleton is enforced.
func NormalizeSections(text string) string {
	bodies := make([][]string, len(canonicalSections))
	var preamble []string
	current := -1

	for _, line := range strings.Split(text, "\n") {
		if idx := matchSection(line); idx >= 0 {
			current = idx
			continue
		}
		if current < 0 {
			preamble = append(preamble, line)
			continue
		}
		bodies[current] = append(bodies[current], line)
	}

	if len(bodies[0]) == 0 {
		bodies[0] = preamble
	}

	var out strings.Builder
	for i, s := range canonicalSections {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(s.header)
		out.WriteString("\n")
		body := strings.Trim(strings.Join(bodies[i], "\n"), "\n")
		if body != "" {
			out.WriteString(body)
			out.WriteString("\n")
		}
	}

	return out.String()
}

// matchSection reports which canonical section a line is a header for, or -1.
// Markdown markers, emoji and trailing colons are ignored so responses with
// "## Key Points", "**Key Points:**" or the emoji headers all match.
func matchSection(line string) int {
	stripped := strings.TrimSpace(line)
	stripped = strings.TrimLeft(stripped, "#*-= \t")
	stripped = strings.TrimRight(stripped, ":*# \t")
	stripped = strings.ToLower(stripped)

	// Headers are short; a keyword inside a long prose line is not a header.
	if stripped == "" || len(stripped) > 64 {
		return -1
	}

	for i, s := range canonicalSections {
		for _, keyword := range s.keywords {
			if strings.Contains(stripped, keyword) {
				return i
			}
		}
	}
	return -1
}
