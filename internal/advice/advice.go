// Package advice wraps an optional generative-text service behind a narrow
// contract: given a prompt, return text or a reachability failure. The rest of
// the system works without it; callers must treat unavailability as an
// expected state and fall back to the local heuristics.
package advice

import "context"

// Response is one completed generation exchange.
type Response struct {
	Text  string
	Model string
	Done  bool
}

// Generator is the single request/response surface an advisory backend must
// provide.
type Generator interface {
	// Generate sends a prompt with an optional system instruction and returns
	// the generated text, or an error on connectivity failure.
	Generate(ctx context.Context, prompt, system string) (*Response, error)
	// IsAvailable reports whether the backend is reachable right now.
	IsAvailable(ctx context.Context) bool
	// Model names the configured model for logging.
	Model() string
}

// SkillLists is the structured payload expected from job-description skill
// extraction.
type SkillLists struct {
	Required []string `json:"required"`
	Optional []string `json:"optional"`
}

// EnhanceRequest carries everything the recommendation rewrite prompt needs.
type EnhanceRequest struct {
	Summary        string
	Skills         []string
	MissingSkills  []string
	JobDescription string
	Score          float64
}
