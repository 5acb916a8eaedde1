package normalizer

import (
	"encoding/json"
	"strings"
	"unicode"
)

const maxSuggestions = 10

// Suggestions accepts a JSON array, an object with a "suggestions" array, or
// a bullet list, and returns the non-empty items in order.
func Suggestions(text string) []string {
	s := stripFence(text)

	var list []string
	if err := json.Unmarshal([]byte(s), &list); err == nil {
		return compact(list)
	}
	if obj, ok := parseObject(s); ok {
		if raw, ok := obj["suggestions"].([]any); ok {
			items := make([]string, 0, len(raw))
			for _, item := range raw {
				if str, ok := item.(string); ok {
					items = append(items, str)
				}
			}
			return compact(items)
		}
	}

	return compact(strings.Split(s, "\n"))
}

func compact(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(trimBullet(strings.TrimSpace(line)))
		if line == "" || line == "[" || line == "]" {
			continue
		}
		out = append(out, line)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

func trimBullet(line string) string {
	line = strings.TrimLeft(line, "-*•")
	i := 0
	for i < len(line) && unicode.IsDigit(rune(line[i])) {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		return line[i+1:]
	}
	return line
}
