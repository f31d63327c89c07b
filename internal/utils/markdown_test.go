package utils

import (
	"testing"
)

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text without markdown",
			input:    "This is plain text",
			expected: "This is plain text",
		},
		{
			name:     "bold text",
			input:    "This is **bold** text",
			expected: "This is bold text",
		},
		{
			name:     "italic text",
			input:    "This is *italic* text",
			expected: "This is italic text",
		},
		{
			name:     "escaped asterisk",
			input:    "This is a \\*literal asterisk\\* not emphasis",
			expected: "This is a *literal asterisk* not emphasis",
		},
		{
			name:     "escaped underscore",
			input:    "This is a \\_literal underscore\\_",
			expected: "This is a _literal underscore_",
		},
		{
			name:     "link",
			input:    "Visit [Google](https://google.com) for search",
			expected: "Visit Google for search",
		},
		{
			name:     "heading",
			input:    "# Main Title\n\nSome content",
			expected: "Main Title\n\nSome content",
		},
		{
			name:     "code inline",
			input:    "Use the `StripMarkdown` function",
			expected: "Use the StripMarkdown function",
		},
		{
			name:     "code block",
			input:    "```go\nfunc main() {}\n```",
			expected: "func main() {}",
		},
		{
			name:     "unordered list",
			input:    "- Item 1\n- Item 2\n- Item 3",
			expected: "• Item 1\n\n• Item 2\n\n• Item 3",
		},
		{
			name:     "mixed formatting",
			input:    "This has **bold**, *italic*, and [a link](http://example.com)",
			expected: "This has bold, italic, and a link",
		},
		{
			name:     "blockquote",
			input:    "> This is a quote\n> With multiple lines",
			expected: "This is a quote\nWith multiple lines",
		},
		{
			name:     "complex markdown with escaped chars",
			input:    "# Title\n\nThis is a \\*kalam\\* with **formatting** and a [link](http://example.com).\n\n- Item 1\n- Item 2",
			expected: "Title\n\nThis is a *kalam* with formatting and a link.\n\n• Item 1\n\n• Item 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StripMarkdown(tt.input)
			if result != tt.expected {
				t.Errorf("StripMarkdown(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"empty", "", 10, ""},
		{"no limit", "**Ya Nabi** salam", 0, "Ya Nabi salam"},
		{"fits", "short text", 20, "short text"},
		{"cut on word boundary", "one two three four", 9, "one two…"},
		{"collapses verses", "Line one\n\nLine two", 100, "Line one Line two"},
		{"multibyte runes", "سلام علیکم یا رسول", 10, "سلام علیکم…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Excerpt(tt.input, tt.max); got != tt.expected {
				t.Errorf("Excerpt(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.expected)
			}
		})
	}
}

func BenchmarkStripMarkdown(b *testing.B) {
	input := `# Mera Nabi

Ye **kalam** ek *naat* hai.

## Ashaar

- Pehla sher
- Doosra sher
- Teesra [sher](http://example.com)

Mazeed ke liye \*website\* dekhein.`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		StripMarkdown(input)
	}
}
