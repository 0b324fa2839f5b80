package pipeline

import (
	"fmt"
	"strings"

	"github.com/sortinghat-ai/sortinghat/internal/candidate"
	"github.com/sortinghat-ai/sortinghat/internal/match"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const alignmentAdviceThreshold = 70

// heuristicRecommendations produces the deterministic local advice. Missing
// skills come from the scorer's canonical sets so synonym-satisfied
// requirements never show up as gaps.
func (p *Pipeline) heuristicRecommendations(profile *candidate.Profile, breakdown match.Breakdown) []string {
	var recs []string

	if missing := p.scorer.MissingRequired(profile); len(missing) > 0 {
		titler := cases.Title(language.English)
		titled := make([]string, len(missing))
		for i, skill := range missing {
			titled[i] = titler.String(skill)
		}
		recs = append(recs, fmt.Sprintf("Add evidence for required skills: %s.", strings.Join(titled, ", ")))
	}

	if breakdown.ExperienceAlignment < alignmentAdviceThreshold {
		recs = append(recs, "Provide impact-focused bullets that mention the requested tools in your recent experience.")
	}

	if len(recs) == 0 {
		recs = append(recs, "Profile is well-aligned. Highlight recent wins in the summary.")
	}

	return recs
}
