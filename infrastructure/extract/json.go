package extract

import "strings"

// firstJSONObject locates the first balanced brace-delimited substring in a
// backend response. Models wrap JSON in narration or markdown fences, so
// this is a trust boundary rather than a parsing convenience: the caller
// still JSON-decodes and schema-validates whatever comes back.
//
// It reports false when the response contains no balanced object.
func firstJSONObject(response string) (string, bool) {
	response = strings.TrimSpace(response)

	if fenced, ok := insideCodeFence(response); ok {
		response = fenced
	}

	start := strings.IndexByte(response, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(response); i++ {
		c := response[i]

		if escaped {
			escaped = false
			continue
		}

		switch {
		case c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// Braces inside string literals don't count.
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return response[start : i+1], true
			}
		}
	}

	return "", false
}

// insideCodeFence returns the body of the first markdown code fence whose
// content looks like a JSON object.
func insideCodeFence(response string) (string, bool) {
	start := strings.Index(response, "```")
	if start < 0 {
		return "", false
	}

	body := response[start+3:]
	// Skip an optional language tag such as "json".
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		firstLine := strings.TrimSpace(body[:nl])
		if firstLine == "" || !strings.HasPrefix(firstLine, "{") {
			body = body[nl+1:]
		}
	}

	end := strings.Index(body, "```")
	if end < 0 {
		return "", false
	}

	candidate := strings.TrimSpace(body[:end])
	if !strings.HasPrefix(candidate, "{") {
		return "", false
	}

	return candidate, true
}
