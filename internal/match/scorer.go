// Package match normalizes skill vocabulary and scores a candidate profile
// against a job description's skill requirements. All scoring is heuristic and
// deterministic; no operation fails on empty input.
package match

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/sortinghat-ai/sortinghat/internal/candidate"

	"go.uber.org/zap"
)

var jdTokenRe = regexp.MustCompile(`[A-Za-z+#./]+`)

// jdStopwords holds common English words excluded from auto-extracted skills.
var jdStopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "our": {}, "you": {}, "your": {}, "are": {}, "will": {},
	"have": {}, "has": {}, "this": {}, "that": {}, "from": {}, "into": {}, "not": {}, "but": {}, "also": {},
	"who": {}, "can": {}, "all": {}, "been": {}, "were": {}, "being": {}, "their": {}, "its": {}, "more": {},
	"about": {}, "than": {}, "them": {}, "these": {}, "those": {}, "then": {}, "when": {}, "how": {},
	"what": {}, "which": {}, "where": {}, "would": {}, "should": {}, "could": {}, "may": {}, "might": {},
	"must": {}, "shall": {}, "need": {}, "want": {}, "like": {}, "just": {}, "use": {}, "using": {},
	"used": {}, "work": {}, "team": {}, "role": {}, "experience": {}, "years": {}, "ability": {},
	"strong": {}, "knowledge": {}, "understanding": {}, "working": {}, "looking": {},
	"seeking": {}, "required": {}, "preferred": {}, "plus": {}, "nice": {}, "including": {},
	"etc": {}, "such": {}, "well": {}, "good": {}, "great": {}, "excellent": {}, "proficient": {},
}

// Breakdown holds the three score components, each a percentage in [0,100]
// rounded to two decimals. The overall score is always derived, never stored.
type Breakdown struct {
	RequiredCoverage    float64
	OptionalCoverage    float64
	ExperienceAlignment float64
}

// Overall combines the components with fixed 0.6/0.2/0.2 weights.
func (b Breakdown) Overall() float64 {
	return round2(b.RequiredCoverage*0.6 + b.OptionalCoverage*0.2 + b.ExperienceAlignment*0.2)
}

// Scorer evaluates candidate profiles against one job's skill requirements.
// It carries request-specific skill sets; callers scoring resumes in parallel
// should use one Scorer per job description.
type Scorer struct {
	jobDescription string
	required       map[string]struct{}
	optional       map[string]struct{}
	logger         *zap.Logger
}

// NewScorer builds a scorer for the given job description. When no explicit
// required list is supplied, likely skill tokens are auto-extracted from the
// description text.
func NewScorer(jobDescription string, required, optional []string, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Scorer{
		jobDescription: jobDescription,
		optional:       normalizeSet(optional),
		logger:         logger,
	}

	if len(required) > 0 {
		s.required = normalizeSet(required)
	} else {
		s.required = s.extractSkills(jobDescription)
	}

	return s
}

// Score computes the match breakdown for a profile. It never fails: empty
// skill sets or a profile without skills or experience degrade to zero-valued
// components.
func (s *Scorer) Score(profile *candidate.Profile) Breakdown {
	candidateSkills := canonicalSet(profile.NormalizedSkills())
	requiredCanonical := canonicalKeys(s.required)
	optionalCanonical := canonicalKeys(s.optional)

	breakdown := Breakdown{
		RequiredCoverage:    round2(coverage(candidateSkills, requiredCanonical) * 100),
		OptionalCoverage:    round2(coverage(candidateSkills, optionalCanonical) * 100),
		ExperienceAlignment: round2(s.experienceAlignment(profile, requiredCanonical) * 100),
	}

	s.logger.Debug("score breakdown",
		zap.Float64("required_coverage", breakdown.RequiredCoverage),
		zap.Float64("optional_coverage", breakdown.OptionalCoverage),
		zap.Float64("experience_alignment", breakdown.ExperienceAlignment),
		zap.Float64("overall", breakdown.Overall()),
	)

	return breakdown
}

// MissingRequired returns the canonical required skills absent from the
// profile's canonical skill set, sorted for determinism.
func (s *Scorer) MissingRequired(profile *candidate.Profile) []string {
	return missing(canonicalSet(profile.NormalizedSkills()), canonicalKeys(s.required))
}

// MissingOptional is the optional-set counterpart of MissingRequired.
func (s *Scorer) MissingOptional(profile *candidate.Profile) []string {
	return missing(canonicalSet(profile.NormalizedSkills()), canonicalKeys(s.optional))
}

// RequiredSkills returns the normalized required skill set, sorted.
func (s *Scorer) RequiredSkills() []string {
	return sortedKeys(s.required)
}

// experienceAlignment measures the fraction of target skills that appear as a
// substring in at least one experience entry's combined title, company and
// description. A skill matches through its canonical form, any known alias,
// or any raw required input resolving to it.
func (s *Scorer) experienceAlignment(profile *candidate.Profile, targets map[string]struct{}) float64 {
	if len(profile.Experiences) == 0 || len(targets) == 0 {
		return 0
	}

	found := make(map[string]struct{}, len(targets))
	for _, exp := range profile.Experiences {
		combined := strings.ToLower(strings.Join([]string{exp.Title, exp.Company, exp.Description}, " "))
		for target := range targets {
			if _, ok := found[target]; ok {
				continue
			}
			for _, form := range s.matchForms(target) {
				if strings.Contains(combined, form) {
					found[target] = struct{}{}
					break
				}
			}
		}
	}

	return float64(len(found)) / float64(len(targets))
}

func (s *Scorer) matchForms(target string) []string {
	forms := append([]string{target}, aliasesFor(target)...)
	for raw := range s.required {
		if Canonicalize(raw) == target {
			forms = append(forms, raw)
		}
	}
	return forms
}

// extractSkills tokenizes a job description into likely skill tokens,
// discarding stopwords and single characters.
func (s *Scorer) extractSkills(text string) map[string]struct{} {
	skills := make(map[string]struct{})
	for _, token := range jdTokenRe.FindAllString(text, -1) {
		lower := strings.Trim(strings.ToLower(token), ".")
		if len(lower) <= 1 {
			continue
		}
		if _, stop := jdStopwords[lower]; stop {
			continue
		}
		skills[lower] = struct{}{}
	}

	s.logger.Debug("auto-extracted skills from job description", zap.Int("count", len(skills)))

	return skills
}

func normalizeSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		normalized := strings.ToLower(strings.TrimSpace(item))
		if normalized == "" {
			continue
		}
		set[normalized] = struct{}{}
	}
	return set
}

func canonicalSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[Canonicalize(item)] = struct{}{}
	}
	return set
}

func canonicalKeys(set map[string]struct{}) map[string]struct{} {
	canonical := make(map[string]struct{}, len(set))
	for item := range set {
		canonical[Canonicalize(item)] = struct{}{}
	}
	return canonical
}

func coverage(have, want map[string]struct{}) float64 {
	if len(want) == 0 {
		return 0
	}
	hits := 0
	for skill := range want {
		if _, ok := have[skill]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(want))
}

func missing(have, want map[string]struct{}) []string {
	gaps := make([]string, 0, len(want))
	for skill := range want {
		if _, ok := have[skill]; !ok {
			gaps = append(gaps, skill)
		}
	}
	sort.Strings(gaps)
	return gaps
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
