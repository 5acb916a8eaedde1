// Package scraper resolves a job board link into posting fields.
package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/GlebRadaev/jobverify/pkg/clients"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

var (
	ErrFetch      = errors.New("can't fetch job page")
	ErrIncomplete = errors.New("job page lacks title or company")
)

var (
	companySelectors = []string{
		".job-details-jobs-unified-top-card__company-name",
		".topcard__org-name-link",
		"a[data-tracking-control-name*=company]",
		"span[data-tracking-control-name*=company]",
		"[data-test-id=job-poster-name]",
	}
	locationSelectors = []string{
		".job-details-jobs-unified-top-card__bullet",
		".topcard__flavor--bullet",
		"[data-testid=job-location]",
	}
	descriptionSelectors = []string{
		".show-more-less-html__markup",
		"#job-details",
		"#jobDescriptionText",
		"div[class*=description]",
	}
)

type Posting struct {
	Title       string
	Company     string
	Location    *string
	Industry    string
	Description string
}

type Scraper struct {
	client clients.HTTPClientI
}

func New(client clients.HTTPClientI) *Scraper {
	return &Scraper{client: client}
}

// Scrape downloads the page at url and extracts the posting. Structured
// JSON-LD data wins over board-specific selectors, which win over
// OpenGraph tags.
func (s *Scraper) Scrape(ctx context.Context, url string) (*Posting, error) {
	headers := http.Header{}
	headers.Set("User-Agent", userAgent)
	headers.Set("Accept", "text/html,application/xhtml+xml")
	headers.Set("Accept-Language", "en-US,en;q=0.5")

	status, body, _, err := s.client.Get(ctx, url, headers)
	if err != nil {
		zap.L().Warn("job page request failed", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if status != http.StatusOK {
		zap.L().Warn("job page returned unexpected status", zap.String("url", url), zap.Int("status", status))
		return nil, fmt.Errorf("%w: status %d", ErrFetch, status)
	}

	posting, err := Parse(body)
	if err != nil {
		zap.L().Warn("job page could not be parsed", zap.String("url", url), zap.Error(err))
		return nil, err
	}
	return posting, nil
}

// Parse extracts a posting from an HTML document.
func Parse(html []byte) (*Posting, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	p := &Posting{}
	fromJSONLD(doc, p)

	if p.Title == "" {
		p.Title = firstText(doc, "h1.top-card-layout__title", "h1")
	}
	if p.Title == "" {
		p.Title = meta(doc, "og:title")
	}
	if p.Title == "" {
		p.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if p.Company == "" {
		p.Company = firstText(doc, companySelectors...)
	}
	if p.Company == "" {
		p.Company = meta(doc, "og:site_name")
	}
	if p.Location == nil {
		if location := firstText(doc, locationSelectors...); location != "" {
			p.Location = &location
		}
	}
	if p.Description == "" {
		p.Description = firstText(doc, descriptionSelectors...)
	}
	if p.Description == "" {
		p.Description = meta(doc, "og:description")
	}

	if p.Title == "" || p.Company == "" {
		return nil, ErrIncomplete
	}
	return p, nil
}

type jobPostingLD struct {
	Type               any    `json:"@type"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	Industry           any    `json:"industry"`
	HiringOrganization any    `json:"hiringOrganization"`
	JobLocation        any    `json:"jobLocation"`
}

func fromJSONLD(doc *goquery.Document, p *Posting) {
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var ld jobPostingLD
		if err := json.Unmarshal([]byte(sel.Text()), &ld); err != nil {
			return true
		}
		if !isJobPosting(ld.Type) {
			return true
		}

		p.Title = strings.TrimSpace(ld.Title)
		p.Company = organizationName(ld.HiringOrganization)
		if location := locationName(ld.JobLocation); location != "" {
			p.Location = &location
		}
		if industry, ok := ld.Industry.(string); ok {
			p.Industry = industry
		}
		p.Description = htmlText(ld.Description)
		return false
	})
}

func isJobPosting(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "JobPosting"
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == "JobPosting" {
				return true
			}
		}
	}
	return false
}

func organizationName(org any) string {
	switch v := org.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		if name, ok := v["name"].(string); ok {
			return strings.TrimSpace(name)
		}
	}
	return ""
}

func locationName(loc any) string {
	if list, ok := loc.([]any); ok && len(list) > 0 {
		loc = list[0]
	}
	place, ok := loc.(map[string]any)
	if !ok {
		return ""
	}
	address, ok := place["address"].(map[string]any)
	if !ok {
		return ""
	}
	parts := make([]string, 0, 3)
	for _, key := range []string{"addressLocality", "addressRegion", "addressCountry"} {
		if s, ok := address[key].(string); ok && strings.TrimSpace(s) != "" {
			parts = append(parts, strings.TrimSpace(s))
		}
	}
	return strings.Join(parts, ", ")
}

// htmlText flattens an HTML fragment into whitespace-collapsed text.
func htmlText(fragment string) string {
	if !strings.Contains(fragment, "<") {
		return strings.TrimSpace(fragment)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return collapse(doc.Text())
}

func firstText(doc *goquery.Document, selectors ...string) string {
	for _, selector := range selectors {
		if text := collapse(doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

func meta(doc *goquery.Document, property string) string {
	content, _ := doc.Find(`meta[property="` + property + `"]`).Attr("content")
	return strings.TrimSpace(content)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
