package normalizer

import "strings"

var matchScorePattern = numberPattern(`match_?score`)

type TipsResult struct {
	Tips       string
	MatchScore *float64
}

// Tips extracts resume tips and an optional match score from a model reply.
// Plain prose comes back unchanged with a nil score.
func Tips(text string) TipsResult {
	hasTips := strings.Contains(text, `"tips"`)
	hasScore := matchScorePattern.MatchString(text)
	if !hasTips && !hasScore {
		return TipsResult{Tips: text}
	}

	if obj, ok := parseObject(text); ok {
		res := TipsResult{MatchScore: numberValue(obj["match_score"])}
		if res.MatchScore == nil {
			res.MatchScore = numberValue(obj["matchScore"])
		}
		if v, found := obj["tips"]; found {
			res.Tips = stringValue(v)
		} else {
			res.Tips = withoutObject(text)
		}
		return res
	}

	res := TipsResult{MatchScore: extractNumber(matchScorePattern, text)}
	if tips, ok := extractString(text, "tips"); ok {
		res.Tips = tips
	} else {
		res.Tips = withoutObject(text)
	}
	return res
}
