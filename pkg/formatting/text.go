// Package formatting provides text extraction and display utilities for
// chat transcripts and agent responses.
package formatting

import (
	"regexp"
	"strings"
)

var fencedBlockRegex = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*\\n?(.*?)\\n?```")

// ExtractFenced returns the inner text of the first fenced code block in
// content. Agent responses usually wrap generated prompts in a markdown
// fence surrounded by commentary; when no fence is present, the trimmed
// content is returned whole.
func ExtractFenced(content string) string {
	matches := fencedBlockRegex.FindStringSubmatch(content)
	if len(matches) >= 2 {
		if inner := strings.TrimSpace(matches[1]); inner != "" {
			return inner
		}
	}
	return strings.TrimSpace(content)
}

// Preview truncates s to at most n runes, appending an ellipsis when
// content was cut. Newlines are flattened so previews stay on one line.
func Preview(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")

	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
