// Package candidate holds the profile data model produced by the resume
// parser and consumed by the match scorer. All types are plain value objects;
// an empty string means "unknown".
package candidate

import (
	"fmt"
	"sort"
	"strings"
)

// ContactInfo carries the contact details extracted from the top of a resume.
type ContactInfo struct {
	Name     string
	Email    string
	Phone    string
	Location string
}

// Merge combines two partial extractions field-wise. The receiver's non-blank
// value wins, otherwise the other's. Values are trimmed before comparison and
// the result is a new ContactInfo.
func (c ContactInfo) Merge(other ContactInfo) ContactInfo {
	return ContactInfo{
		Name:     firstNonBlank(c.Name, other.Name),
		Email:    firstNonBlank(c.Email, other.Email),
		Phone:    firstNonBlank(c.Phone, other.Phone),
		Location: firstNonBlank(c.Location, other.Location),
	}
}

func firstNonBlank(a, b string) string {
	if v := strings.TrimSpace(a); v != "" {
		return v
	}
	return strings.TrimSpace(b)
}

// Experience is one employment entry built from a contiguous run of lines.
type Experience struct {
	Title       string
	Company     string
	Description string
	Duration    string
	// Tools preserves first-seen order and contains no duplicates.
	Tools []string
}

// Education is one entry per detected institution line.
type Education struct {
	Institution string
	Degree      string
	Graduation  string
}

// Profile is the aggregate produced by a single parse call. Skills keeps the
// raw extracted values, possibly duplicated and mixed-case; use
// NormalizedSkills for the canonical view.
type Profile struct {
	Contact        ContactInfo
	Summary        string
	Skills         []string
	Experiences    []Experience
	Education      []Education
	Certifications []string
	Achievements   []string
}

// NormalizedSkills returns the skills lower-cased, trimmed, deduplicated and
// lexicographically sorted. Blank entries are excluded.
func (p *Profile) NormalizedSkills() []string {
	seen := make(map[string]struct{}, len(p.Skills))
	for _, skill := range p.Skills {
		normalized := strings.ToLower(strings.TrimSpace(skill))
		if normalized == "" {
			continue
		}
		seen[normalized] = struct{}{}
	}

	normalized := make([]string, 0, len(seen))
	for skill := range seen {
		normalized = append(normalized, skill)
	}
	sort.Strings(normalized)

	return normalized
}

// ExperienceHighlights renders one short line per experience entry, suitable
// for prompts and reports.
func (p *Profile) ExperienceHighlights() []string {
	highlights := make([]string, 0, len(p.Experiences))
	for _, exp := range p.Experiences {
		prefix := strings.TrimSpace(fmt.Sprintf("%s at %s", exp.Title, exp.Company))
		if exp.Description != "" {
			highlights = append(highlights, fmt.Sprintf("%s: %s", prefix, exp.Description))
			continue
		}
		highlights = append(highlights, prefix)
	}
	return highlights
}
