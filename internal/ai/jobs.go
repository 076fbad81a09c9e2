package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
	"google.golang.org/genai"

	"github.com/talentosprecato/Mari/internal/cv"
	"github.com/talentosprecato/Mari/internal/prompts"
)

// JobSuggestion is a role that fits the CV with organizations hiring for it.
type JobSuggestion struct {
	RoleTitle     string        `json:"roleTitle"`
	Opportunities []Opportunity `json:"opportunities"`
}

type Opportunity struct {
	Organization string `json:"organization"`
	Link         string `json:"link"`

	// Label is the registrable domain of Link, for display.
	Label string `json:"label"`
}

var searchConfig = &genai.GenerateContentConfig{
	Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
}

func (s *system) FindJobs(ctx context.Context, doc cv.Document, location, language string) ([]JobSuggestion, error) {
	prompt, err := prompts.Jobs(doc, location, language)
	if err != nil {
		return nil, err
	}

	reply, err := s.text(ctx, genai.Text(prompt), searchConfig)
	if err != nil {
		return nil, err
	}

	jobs, err := decodeJobs(reply)
	if err != nil {
		return nil, err
	}

	s.logger.Info("jobs found", "location", location, "roles", len(jobs))
	return jobs, nil
}

func decodeJobs(reply string) ([]JobSuggestion, error) {
	var jobs []JobSuggestion
	if err := json.Unmarshal([]byte(CleanJSON(reply)), &jobs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	out := make([]JobSuggestion, 0, len(jobs))
	for _, job := range jobs {
		if strings.TrimSpace(job.RoleTitle) == "" {
			continue
		}
		opps := make([]Opportunity, 0, len(job.Opportunities))
		for _, o := range job.Opportunities {
			if o.Link == "" {
				continue
			}
			o.Label = LinkLabel(o.Link)
			opps = append(opps, o)
		}
		job.Opportunities = opps
		out = append(out, job)
	}
	return out, nil
}

// fenceBody drops the language tag that may follow an opening fence, in any
// case, up to the first newline.
func fenceBody(rest string) string {
	line, body, ok := strings.Cut(rest, "\n")
	if ok && !strings.ContainsAny(line, "[{") {
		return body
	}
	if len(rest) >= 4 && strings.EqualFold(rest[:4], "json") {
		return rest[4:]
	}
	return rest
}

// CleanJSON extracts the JSON payload of a model reply that may wrap it in a
// Markdown fence or surround it with prose.
func CleanJSON(reply string) string {
	clean := strings.TrimSpace(reply)

	if i := strings.Index(clean, "```"); i >= 0 {
		rest := fenceBody(clean[i+3:])
		if j := strings.Index(rest, "```"); j >= 0 {
			rest = rest[:j]
		}
		return strings.TrimSpace(rest)
	}

	start := strings.IndexAny(clean, "[{")
	if start < 0 {
		return clean
	}
	closer := "]"
	if clean[start] == '{' {
		closer = "}"
	}
	if end := strings.LastIndex(clean, closer); end > start {
		return clean[start : end+1]
	}
	return clean
}

// LinkLabel returns the registrable domain of link ("careers.example.co.uk"
// becomes "example.co.uk"), falling back to the host or the link itself.
func LinkLabel(link string) string {
	candidate := link
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		candidate = "https://" + candidate
	}

	u, err := url.Parse(candidate)
	if err != nil || u.Hostname() == "" {
		return link
	}

	host := u.Hostname()
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return etld
	}
	return strings.TrimPrefix(host, "www.")
}
