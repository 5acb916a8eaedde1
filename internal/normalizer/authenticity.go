package normalizer

import (
	"regexp"
	"strings"
)

var (
	isAuthenticPattern = regexp.MustCompile(`"is_authentic"\s*:\s*"?(true|false)`)
	confidencePattern  = numberPattern(`confidence_score|confidence`)
)

type AuthenticityResult struct {
	IsAuthentic *bool
	Confidence  *float64
	Evidence    string
	Company     string
	Location    string
	Industry    string
}

// Authenticity reads the verdict of a scam check. Without any recognised
// field the whole reply becomes the evidence and the verdict stays unknown.
func Authenticity(text string) AuthenticityResult {
	if !strings.Contains(text, `"is_authentic"`) && !confidencePattern.MatchString(text) {
		return AuthenticityResult{Evidence: strings.TrimSpace(text)}
	}

	if obj, ok := parseObject(text); ok {
		res := AuthenticityResult{
			IsAuthentic: boolValue(obj["is_authentic"]),
			Confidence:  numberValue(obj["confidence_score"]),
			Evidence:    stringValue(obj["evidence"]),
		}
		if res.Confidence == nil {
			res.Confidence = numberValue(obj["confidence"])
		}
		if extracted, ok := obj["extracted_data"].(map[string]any); ok {
			res.Company = stringValue(extracted["company"])
			res.Location = stringValue(extracted["location"])
			res.Industry = stringValue(extracted["industry"])
		}
		return res
	}

	res := AuthenticityResult{Confidence: extractNumber(confidencePattern, text)}
	if m := isAuthenticPattern.FindStringSubmatch(text); len(m) == 2 {
		v := m[1] == "true"
		res.IsAuthentic = &v
	}
	res.Evidence, _ = extractString(text, "evidence")
	res.Company, _ = extractString(text, "company")
	res.Location, _ = extractString(text, "location")
	res.Industry, _ = extractString(text, "industry")
	return res
}

func boolValue(v any) *bool {
	switch b := v.(type) {
	case bool:
		return &b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes":
			t := true
			return &t
		case "false", "no":
			f := false
			return &f
		}
	}
	return nil
}
