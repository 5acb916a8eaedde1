package pipeline

import (
	"fmt"
	"strings"
)

const (
	maxResumeRunes = 8000
	maxJobRunes    = 3000
	truncatedMark  = "\n...[truncated]..."
)

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + truncatedMark
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func authenticityPrompt(in JobInput) string {
	var b strings.Builder
	b.WriteString("You are an expert job authenticity analyst. Decide whether the following job posting is a REAL job or a FAKE/scam posting.\n")
	b.WriteString("Also extract the company name, location and industry from the description even when they are not stated explicitly.\n\n")
	fmt.Fprintf(&b, "Job Title: %s\n", in.Title)
	fmt.Fprintf(&b, "Company: %s\n", orDefault(in.Company, "Not specified"))
	if in.Location != nil && *in.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", *in.Location)
	}
	fmt.Fprintf(&b, "\nJob Description:\n%s\n\n", truncate(in.Description, maxJobRunes))
	b.WriteString(`Answer with valid JSON only, in this format:
{
    "is_authentic": true or false,
    "confidence_score": a number between 0 and 100,
    "evidence": "markdown reasoning with the specific red flags or positive signals you found",
    "extracted_data": {
        "company": "company name",
        "location": "City, State/Province or null",
        "industry": "industry or null"
    }
}

Weigh description quality, company legitimacy, requirements, language style, red flags such as payment requests or vague contact methods, and positive signals such as detailed requirements.`)
	return b.String()
}

func suggestionPrompt(state *JobState) string {
	var b strings.Builder
	b.WriteString("You are a career advisor. A candidate is considering the job posting below.\n")
	b.WriteString("List up to five short, concrete questions or checks the candidate should raise before applying.\n\n")
	fmt.Fprintf(&b, "Job Title: %s\nCompany: %s\n", state.Input.Title, orDefault(state.Input.Company, "Not specified"))
	if len(state.ScoringFactors) > 0 {
		fmt.Fprintf(&b, "Details present: %s\n", strings.Join(state.ScoringFactors, ", "))
	}
	if state.Authenticity.Evidence != "" {
		fmt.Fprintf(&b, "\nAuthenticity notes:\n%s\n", truncate(state.Authenticity.Evidence, maxJobRunes))
	}
	fmt.Fprintf(&b, "\nJob Description:\n%s\n\n", truncate(state.Input.Description, maxJobRunes))
	b.WriteString(`Answer with a JSON array of strings only, e.g. ["Ask for the salary range"].`)
	return b.String()
}

func tipsPrompt(state *ResumeState) string {
	var b strings.Builder
	b.WriteString("You are an expert career coach and resume reviewer.\n")
	if state.Level != "" {
		fmt.Fprintf(&b, "The candidate targets %s level roles.\n", strings.ReplaceAll(state.Level, "_", "-"))
	}
	fmt.Fprintf(&b, "\n## RESUME CONTENT:\n%s\n\n", truncate(state.ResumeText, maxResumeRunes))

	if state.Target != nil {
		fmt.Fprintf(&b, "## TARGET JOB:\n**Title:** %s\n**Company:** %s\n\n**Job Description:**\n%s\n\n",
			orDefault(state.Target.Title, "Not specified"),
			orDefault(state.Target.Company, "Not specified"),
			truncate(state.Target.Description, maxJobRunes))
		b.WriteString(`Provide actionable tips that improve the resume's match with this job.
Answer with JSON only:
{
    "match_score": <number between 0-100>,
    "tips": "<markdown formatted tips>"
}

Match score guide: 90-100 excellent, 75-89 good, 60-74 moderate, 40-59 partial, 0-39 low.
Structure the tips as: Overall Assessment, Strengths, Areas for Improvement, Keywords to Add, Quick Wins.`)
		return b.String()
	}

	b.WriteString(`Provide comprehensive tips that improve this resume for general applications.
Answer with JSON only:
{
    "tips": "<markdown formatted tips>"
}

Structure the tips as: Overall Assessment, Strengths, Content & Achievements, Format & Structure, Keywords & ATS Optimization, Quick Wins.`)
	return b.String()
}
