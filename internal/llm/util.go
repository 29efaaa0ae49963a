package llm

import "strings"

// CleanJSONBlock strips a markdown code fence from a model response. Even
// with JSON-mode enabled, responses occasionally arrive wrapped in
// ```json ... ``` fences, so every decode path runs through here first.
func CleanJSONBlock(text string) string {
	body := strings.TrimSpace(text)

	inner, fenced := strings.CutPrefix(body, "```json")
	if !fenced {
		inner, fenced = strings.CutPrefix(body, "```")
		if !fenced {
			return body
		}
		// A language identifier may sit on the opening fence line. Payload
		// never looks like one: it contains spaces or an opening brace.
		if line, tail, hasNewline := strings.Cut(inner, "\n"); hasNewline &&
			len(line) < 20 && !strings.ContainsAny(line, " {") {
			inner = tail
		}
	}

	if end := strings.LastIndex(inner, "```"); end >= 0 {
		inner = inner[:end]
	}
	return strings.TrimSpace(inner)
}
