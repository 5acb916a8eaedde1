// Package fingerprint derives stable identities for job postings and resume
// analysis requests.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/GlebRadaev/jobverify/internal/domain"
)

var ErrInvalidURL = errors.New("invalid url")

var (
	linkedInViewPath = regexp.MustCompile(`^/jobs/view/(?:.*-)?(\d+)$`)
	folder           = cases.Fold()
	trackingParams   = map[string]struct{}{
		"refid": {}, "ref": {}, "trackingid": {}, "trk": {}, "fbclid": {}, "gclid": {}, "from": {}, "src": {},
	}
	legalSuffixes = map[string]struct{}{
		"inc": {}, "llc": {}, "ltd": {}, "gmbh": {}, "corp": {}, "co": {}, "plc": {}, "sa": {},
	}
)

// Job returns the dedup key of a posting: the canonical source URL when one
// is given, the normalized (title, company) pair otherwise.
func Job(sourceURL *string, title, company string) string {
	if sourceURL != nil && strings.TrimSpace(*sourceURL) != "" {
		canonical, err := CanonicalURL(*sourceURL)
		if err != nil {
			canonical = strings.ToLower(strings.TrimSpace(*sourceURL))
		}
		return hash("url|" + canonical)
	}
	return hash("tc|" + NormalizeText(title) + "|" + normalizeCompany(company))
}

// Resume returns the cache key of a resume analysis request.
func Resume(resumeID uuid.UUID, target *uuid.UUID) string {
	if target == nil {
		return resumeID.String() + "|none"
	}
	return resumeID.String() + "|" + target.String()
}

// CanonicalURL folds the variants a job board hands out for one posting
// into a single form.
func CanonicalURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ErrInvalidURL
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host == "" {
		return "", ErrInvalidURL
	}
	if port := u.Port(); port != "" && port != "80" && port != "443" {
		host += ":" + port
	}

	path := strings.TrimRight(u.Path, "/")
	query := u.Query()

	switch {
	case strings.HasSuffix(host, "linkedin.com"):
		host = "linkedin.com"
		if id := query.Get("currentJobId"); id != "" {
			path = "/jobs/view/" + id
		} else if m := linkedInViewPath.FindStringSubmatch(path); m != nil {
			path = "/jobs/view/" + m[1]
		}
		query = url.Values{}
	case strings.HasSuffix(host, "indeed.com"):
		jk := query.Get("jk")
		query = url.Values{}
		if jk != "" {
			path = "/viewjob"
			query.Set("jk", jk)
		}
	default:
		for key := range query {
			lower := strings.ToLower(key)
			if _, drop := trackingParams[lower]; drop || strings.HasPrefix(lower, "utm_") {
				query.Del(key)
			}
		}
	}

	canonical := "https://" + host + path
	if encoded := query.Encode(); encoded != "" {
		canonical += "?" + encoded
	}
	return canonical, nil
}

// Source classifies a posting URL by job board.
func Source(raw string) domain.Source {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return domain.SourceOther
	}
	host := strings.ToLower(u.Hostname())
	switch {
	case strings.HasSuffix(host, "linkedin.com"):
		return domain.SourceLinkedIn
	case strings.HasSuffix(host, "indeed.com"):
		return domain.SourceIndeed
	default:
		return domain.SourceOther
	}
}

// NormalizeText applies NFKC, case folding, and punctuation removal, and
// collapses runs of whitespace.
func NormalizeText(s string) string {
	s = folder.String(norm.NFKC.String(s))
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

func normalizeCompany(s string) string {
	words := strings.Fields(NormalizeText(s))
	for len(words) > 1 {
		if _, ok := legalSuffixes[words[len(words)-1]]; !ok {
			break
		}
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
