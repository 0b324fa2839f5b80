package advice

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sortinghat-ai/sortinghat/internal/logger"

	"go.uber.org/zap"
)

const extractSystemPrompt = "You are a technical recruiter. Extract skills from the job description. " +
	"Return ONLY valid JSON with two keys: \"required\" and \"optional\", " +
	"each mapping to a list of skill strings. No other text."

const enhanceSystemPrompt = "You are a professional career coach and resume expert. " +
	"Provide specific, actionable resume improvement recommendations. " +
	"Be concise - return 3-5 bullet points. " +
	"Never invent qualifications the candidate does not have."

const responsePreviewLen = 200

// Assistant exposes the two supported advisory operations on top of a
// Generator. It owns prompt construction and response decoding; connectivity
// failures surface as errors while malformed payloads are recovered locally.
type Assistant struct {
	generator Generator
	logger    *zap.Logger
}

func NewAssistant(generator Generator, log *zap.Logger) *Assistant {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assistant{generator: generator, logger: log}
}

// IsAvailable probes the underlying backend.
func (a *Assistant) IsAvailable(ctx context.Context) bool {
	return a != nil && a.generator != nil && a.generator.IsAvailable(ctx)
}

// ExtractSkills asks the service for required/optional skill lists from a job
// description. A response that is not parseable JSON is treated as "no skills
// extracted", not as a failure.
func (a *Assistant) ExtractSkills(ctx context.Context, jobDescription string) (*SkillLists, error) {
	resp, err := a.generator.Generate(ctx, jobDescription, extractSystemPrompt)
	if err != nil {
		return nil, fmt.Errorf("extract skills: %w", err)
	}

	lists := &SkillLists{}
	cleaned := stripCodeFences(resp.Text)
	if err := json.Unmarshal([]byte(cleaned), lists); err != nil {
		a.logger.Warn("advisory service did not return valid JSON for skill extraction",
			zap.String("model", a.generator.Model()),
			zap.String("response_preview", logger.TruncateForLog(resp.Text, responsePreviewLen)),
		)
		return &SkillLists{}, nil
	}

	return lists, nil
}

// EnhanceRecommendations asks the service to rewrite the recommendation list
// and splits the reply into bullet lines.
func (a *Assistant) EnhanceRecommendations(ctx context.Context, req *EnhanceRequest) ([]string, error) {
	resp, err := a.generator.Generate(ctx, buildEnhancePrompt(req), enhanceSystemPrompt)
	if err != nil {
		return nil, fmt.Errorf("enhance recommendations: %w", err)
	}

	a.logger.Debug("advisory recommendations response",
		zap.String("model", a.generator.Model()),
		zap.Bool("done", resp.Done),
		zap.String("response_preview", logger.TruncateForLog(resp.Text, responsePreviewLen)),
	)

	return SplitBullets(resp.Text), nil
}

func buildEnhancePrompt(req *EnhanceRequest) string {
	missing := "None"
	if len(req.MissingSkills) > 0 {
		missing = strings.Join(req.MissingSkills, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Candidate Summary\n%s\n\n", req.Summary)
	fmt.Fprintf(&b, "## Current Skills\n%s\n\n", strings.Join(req.Skills, ", "))
	fmt.Fprintf(&b, "## Missing Required Skills\n%s\n\n", missing)
	fmt.Fprintf(&b, "## Job Description\n%s\n\n", req.JobDescription)
	fmt.Fprintf(&b, "## Match Score\n%.2f%%\n\n", req.Score)
	b.WriteString("Based on this analysis, provide specific recommendations to improve this resume " +
		"for the target role. Focus on actionable steps.")
	return b.String()
}

// SplitBullets turns generated free text into a recommendation list: one entry
// per non-blank line, leading bullet and number markers stripped.
func SplitBullets(text string) []string {
	var bullets []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• \t")
		line = trimNumberMarker(line)
		if line != "" {
			bullets = append(bullets, line)
		}
	}
	return bullets
}

func trimNumberMarker(line string) string {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(line) {
		return line
	}
	if line[i] == '.' || line[i] == ')' {
		return strings.TrimSpace(line[i+1:])
	}
	return line
}

// stripCodeFences removes markdown code fences that models often wrap JSON
// payloads in.
func stripCodeFences(raw string) string {
	clean := strings.TrimSpace(raw)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}
