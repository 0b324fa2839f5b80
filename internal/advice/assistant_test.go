package advice

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

type stubGenerator struct {
	response   string
	err        error
	available  bool
	lastPrompt string
	lastSystem string
}

func (s *stubGenerator) Generate(_ context.Context, prompt, system string) (*Response, error) {
	s.lastPrompt = prompt
	s.lastSystem = system
	if s.err != nil {
		return nil, s.err
	}
	return &Response{Text: s.response, Model: "stub-model", Done: true}, nil
}

func (s *stubGenerator) IsAvailable(context.Context) bool { return s.available }

func (s *stubGenerator) Model() string { return "stub-model" }

func TestExtractSkillsParsesJSON(t *testing.T) {
	stub := &stubGenerator{response: `{"required": ["Python", "Docker"], "optional": ["AWS"]}`, available: true}
	assistant := NewAssistant(stub, nil)

	lists, err := assistant.ExtractSkills(context.Background(), "We need a Python developer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(lists.Required, []string{"Python", "Docker"}) {
		t.Fatalf("unexpected required list: %v", lists.Required)
	}
	if !reflect.DeepEqual(lists.Optional, []string{"AWS"}) {
		t.Fatalf("unexpected optional list: %v", lists.Optional)
	}
	if stub.lastSystem == "" {
		t.Fatal("expected a system instruction to be sent")
	}
}

func TestExtractSkillsHandlesCodeFences(t *testing.T) {
	stub := &stubGenerator{response: "```json\n{\"required\": [\"Go\"], \"optional\": []}\n```", available: true}
	assistant := NewAssistant(stub, nil)

	lists, err := assistant.ExtractSkills(context.Background(), "jd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(lists.Required, []string{"Go"}) {
		t.Fatalf("unexpected required list: %v", lists.Required)
	}
}

func TestExtractSkillsMalformedResponseIsNotFatal(t *testing.T) {
	stub := &stubGenerator{response: "sorry, I cannot help with that", available: true}
	assistant := NewAssistant(stub, nil)

	lists, err := assistant.ExtractSkills(context.Background(), "jd")
	if err != nil {
		t.Fatalf("malformed payload must not be an error, got %v", err)
	}

	if len(lists.Required) != 0 || len(lists.Optional) != 0 {
		t.Fatalf("expected empty lists, got %+v", lists)
	}
}

func TestExtractSkillsConnectivityFailure(t *testing.T) {
	stub := &stubGenerator{err: errors.New("connection refused"), available: true}
	assistant := NewAssistant(stub, nil)

	if _, err := assistant.ExtractSkills(context.Background(), "jd"); err == nil {
		t.Fatal("expected connectivity error to surface")
	}
}

func TestEnhanceRecommendationsBuildsPromptAndSplits(t *testing.T) {
	stub := &stubGenerator{response: "- Add Docker projects\n\n2. Quantify your impact\n", available: true}
	assistant := NewAssistant(stub, nil)

	recs, err := assistant.EnhanceRecommendations(context.Background(), &EnhanceRequest{
		Summary:        "Backend engineer",
		Skills:         []string{"go", "postgres"},
		MissingSkills:  []string{"docker"},
		JobDescription: "Docker-heavy platform team",
		Score:          72.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(recs, []string{"Add Docker projects", "Quantify your impact"}) {
		t.Fatalf("unexpected recommendations: %v", recs)
	}
	for _, fragment := range []string{"Backend engineer", "go, postgres", "docker", "Docker-heavy platform team", "72.50%"} {
		if !strings.Contains(stub.lastPrompt, fragment) {
			t.Fatalf("prompt missing %q:\n%s", fragment, stub.lastPrompt)
		}
	}
}

func TestSplitBullets(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"dashes", "- one\n- two", []string{"one", "two"}},
		{"numbers", "1. one\n2) two", []string{"one", "two"}},
		{"mixed markers", "• one\n* two\n\n   three  ", []string{"one", "two", "three"}},
		{"plain year kept", "2018 was productive", []string{"2018 was productive"}},
		{"empty", "\n\n", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SplitBullets(tc.in); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("SplitBullets(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestNilAssistantIsUnavailable(t *testing.T) {
	var assistant *Assistant
	if assistant.IsAvailable(context.Background()) {
		t.Fatal("nil assistant must report unavailable")
	}
}
