// Package normalizer turns free-text AI responses into structured fields.
//
// Every function here is pure and total: input that cannot be parsed with
// confidence degrades to a best-effort string instead of an error, and no
// raw JSON is handed back when a structured value could be recovered.
package normalizer

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	minScore = 0
	maxScore = 100
)

var stringFieldPatterns = map[string]*regexp.Regexp{}

func stringFieldPattern(key string) *regexp.Regexp {
	if re, ok := stringFieldPatterns[key]; ok {
		return re
	}
	return regexp.MustCompile(`"` + regexp.QuoteMeta(key) + `"\s*:\s*"`)
}

func init() {
	for _, key := range []string{"tips", "evidence", "company", "location", "industry"} {
		stringFieldPatterns[key] = regexp.MustCompile(`"` + key + `"\s*:\s*"`)
	}
}

// stripFence removes a surrounding markdown code fence, with or without a
// language tag.
func stripFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimLeft(strings.TrimPrefix(s, "```"), "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// parseObject tries the whole text first and then the outermost {...} span.
func parseObject(text string) (map[string]any, bool) {
	s := stripFence(text)

	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err == nil && obj != nil {
		return obj, true
	}

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return nil, false
	}
	obj = nil
	if err := json.Unmarshal([]byte(s[start:end+1]), &obj); err == nil && obj != nil {
		return obj, true
	}
	return nil, false
}

// extractString scans the raw value of a JSON string field up to its first
// unescaped closing quote. An unterminated value runs to the end of text.
func extractString(text, key string) (string, bool) {
	loc := stringFieldPattern(key).FindStringIndex(text)
	if loc == nil {
		return "", false
	}

	var b strings.Builder
	escaped := false
	for i := loc[1]; i < len(text); i++ {
		c := text[i]
		if escaped {
			switch c {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '"', '\\', '/':
				b.WriteByte(c)
			default:
				b.WriteByte('\\')
				b.WriteByte(c)
			}
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = true
		case '"':
			return b.String(), true
		default:
			b.WriteByte(c)
		}
	}

	rest := strings.TrimSpace(b.String())
	rest = strings.TrimRight(rest, "`")
	rest = strings.TrimRight(strings.TrimSpace(rest), "}")
	return strings.TrimSpace(rest), true
}

func numberPattern(keys string) *regexp.Regexp {
	return regexp.MustCompile(`"(?:` + keys + `)"\s*:\s*"?(-?\d+(?:\.\d+)?)`)
}

func extractNumber(re *regexp.Regexp, text string) *float64 {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return clamp(v)
}

func clamp(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	if v < minScore {
		v = minScore
	}
	if v > maxScore {
		v = maxScore
	}
	return &v
}

func numberValue(v any) *float64 {
	switch n := v.(type) {
	case float64:
		return clamp(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(n, "%")), 64)
		if err != nil {
			return nil
		}
		return clamp(f)
	default:
		return nil
	}
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case []any:
		parts := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok && strings.TrimSpace(str) != "" {
				parts = append(parts, strings.TrimSpace(str))
			}
		}
		return strings.Join(parts, "\n")
	default:
		return ""
	}
}

// withoutObject drops the {...} span so surrounding prose can be kept.
func withoutObject(text string) string {
	s := stripFence(text)
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return s
	}
	end := strings.LastIndexByte(s, '}')
	if end < start {
		return strings.TrimSpace(s[:start])
	}
	return strings.TrimSpace(s[:start] + s[end+1:])
}
