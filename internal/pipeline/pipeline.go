// Package pipeline composes parsing, scoring and recommendation synthesis
// into one synchronous call. Data flows one way: raw text -> profile ->
// breakdown -> recommendations; nothing mutates upstream output.
package pipeline

import (
	"context"

	"github.com/sortinghat-ai/sortinghat/internal/advice"
	"github.com/sortinghat-ai/sortinghat/internal/candidate"
	"github.com/sortinghat-ai/sortinghat/internal/match"
	"github.com/sortinghat-ai/sortinghat/internal/parser"

	"go.uber.org/zap"
)

// Result is the orchestrator's sole output, read-only to callers.
type Result struct {
	Profile         *candidate.Profile
	Breakdown       match.Breakdown
	Recommendations []string
}

// Pipeline scores resumes against one job description. Each instance carries
// request-specific skill sets; concurrent runs for different jobs need their
// own Pipeline.
type Pipeline struct {
	jobDescription string
	scorer         *match.Scorer
	assistant      *advice.Assistant
	logger         *zap.Logger
}

// New builds a pipeline for a job description. When no explicit required
// skills are given and the advisory service is reachable, it is asked to
// pre-extract skill lists from the description; any failure or empty
// extraction falls back to the local tokenizer inside the scorer.
func New(ctx context.Context, jobDescription string, required, optional []string, assistant *advice.Assistant, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(required) == 0 && assistant.IsAvailable(ctx) {
		lists, err := assistant.ExtractSkills(ctx, jobDescription)
		switch {
		case err != nil:
			logger.Warn("advisory skill extraction failed, using local tokenizer", zap.Error(err))
		case len(lists.Required) > 0:
			required = lists.Required
			if len(optional) == 0 {
				optional = lists.Optional
			}
			logger.Info("using advisory-extracted skill lists",
				zap.Int("required", len(lists.Required)),
				zap.Int("optional", len(lists.Optional)),
			)
		default:
			logger.Debug("advisory extraction returned no skills, using local tokenizer")
		}
	}

	return &Pipeline{
		jobDescription: jobDescription,
		scorer:         match.NewScorer(jobDescription, required, optional, logger),
		assistant:      assistant,
		logger:         logger,
	}
}

// Run parses the resume, scores it and synthesizes recommendations. It always
// returns a structurally complete result; absent input shows up as empty
// collections and zero scores.
func (p *Pipeline) Run(ctx context.Context, resumeText string) *Result {
	profile := parser.New(resumeText, p.logger).Parse()
	breakdown := p.scorer.Score(profile)

	return &Result{
		Profile:         profile,
		Breakdown:       breakdown,
		Recommendations: p.recommendations(ctx, profile, breakdown),
	}
}

// recommendations prefers the advisory rewrite when the service is reachable
// and answers usefully; every other outcome takes the deterministic local
// branch.
func (p *Pipeline) recommendations(ctx context.Context, profile *candidate.Profile, breakdown match.Breakdown) []string {
	local := p.heuristicRecommendations(profile, breakdown)

	if !p.assistant.IsAvailable(ctx) {
		return local
	}

	enhanced, err := p.assistant.EnhanceRecommendations(ctx, &advice.EnhanceRequest{
		Summary:        profile.Summary,
		Skills:         profile.NormalizedSkills(),
		MissingSkills:  p.scorer.MissingRequired(profile),
		JobDescription: p.jobDescription,
		Score:          breakdown.Overall(),
	})
	if err != nil {
		p.logger.Warn("advisory recommendations failed, falling back to heuristics", zap.Error(err))
		return local
	}
	if len(enhanced) == 0 {
		p.logger.Debug("advisory recommendations empty, falling back to heuristics")
		return local
	}

	return enhanced
}
