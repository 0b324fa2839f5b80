package match

import (
	"math"
	"reflect"
	"testing"

	"github.com/sortinghat-ai/sortinghat/internal/candidate"
)

func TestBreakdownOverallWeights(t *testing.T) {
	cases := []struct {
		name string
		b    Breakdown
		want float64
	}{
		{"perfect", Breakdown{100, 100, 100}, 100.0},
		{"half", Breakdown{50, 50, 50}, 50.0},
		{"zero", Breakdown{0, 0, 0}, 0.0},
		{"weighted", Breakdown{100, 0, 0}, 60.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.b.Overall(); got != tc.want {
				t.Fatalf("Overall() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestScorePerfectMatch(t *testing.T) {
	profile := &candidate.Profile{Skills: []string{"Python", "Docker", "AWS"}}
	scorer := NewScorer("", []string{"Python", "Docker"}, []string{"AWS"}, nil)

	breakdown := scorer.Score(profile)

	if breakdown.RequiredCoverage != 100.0 {
		t.Fatalf("required coverage = %v, want 100", breakdown.RequiredCoverage)
	}
	if breakdown.OptionalCoverage != 100.0 {
		t.Fatalf("optional coverage = %v, want 100", breakdown.OptionalCoverage)
	}
}

func TestScorePartialMatch(t *testing.T) {
	profile := &candidate.Profile{Skills: []string{"Python"}}
	scorer := NewScorer("", []string{"Python", "Docker"}, nil, nil)

	if got := scorer.Score(profile).RequiredCoverage; got != 50.0 {
		t.Fatalf("required coverage = %v, want 50", got)
	}
}

func TestScoreNoMatch(t *testing.T) {
	profile := &candidate.Profile{Skills: []string{"Ruby"}}
	scorer := NewScorer("", []string{"Python", "Docker"}, nil, nil)

	if got := scorer.Score(profile).RequiredCoverage; got != 0.0 {
		t.Fatalf("required coverage = %v, want 0", got)
	}
}

func TestScoreSynonymEquivalence(t *testing.T) {
	profile := &candidate.Profile{Skills: []string{"JS", "k8s"}}
	scorer := NewScorer("", []string{"JavaScript", "Kubernetes"}, nil, nil)

	if got := scorer.Score(profile).RequiredCoverage; got != 100.0 {
		t.Fatalf("required coverage = %v, want 100", got)
	}
}

func TestScoreEmptyRequiredSet(t *testing.T) {
	profile := &candidate.Profile{Skills: []string{"Python"}}
	scorer := NewScorer("", []string{}, []string{"Python"}, nil)

	breakdown := scorer.Score(profile)

	if breakdown.RequiredCoverage != 0.0 {
		t.Fatalf("required coverage = %v, want 0", breakdown.RequiredCoverage)
	}
	if breakdown.OptionalCoverage != 100.0 {
		t.Fatalf("optional coverage = %v, want 100", breakdown.OptionalCoverage)
	}
}

func TestScoreEmptyProfile(t *testing.T) {
	scorer := NewScorer("", []string{"Python"}, nil, nil)

	breakdown := scorer.Score(&candidate.Profile{})

	if breakdown.RequiredCoverage != 0.0 || breakdown.ExperienceAlignment != 0.0 {
		t.Fatalf("expected zero components, got %+v", breakdown)
	}
}

func TestExperienceAlignmentGraduated(t *testing.T) {
	profile := &candidate.Profile{
		Skills: []string{"Python", "Docker", "AWS"},
		Experiences: []candidate.Experience{
			{Title: "Dev", Company: "Co", Description: "Used Python and Docker daily"},
		},
	}
	scorer := NewScorer("", []string{"Python", "Docker", "AWS"}, nil, nil)

	got := scorer.Score(profile).ExperienceAlignment

	// Python and Docker appear in the experience text, AWS does not: 2/3.
	if math.Abs(got-66.67) > 0.001 {
		t.Fatalf("experience alignment = %v, want 66.67", got)
	}
}

func TestExperienceAlignmentWithoutExperiences(t *testing.T) {
	profile := &candidate.Profile{Skills: []string{"Python"}}
	scorer := NewScorer("", []string{"Python"}, nil, nil)

	if got := scorer.Score(profile).ExperienceAlignment; got != 0.0 {
		t.Fatalf("experience alignment = %v, want 0", got)
	}
}

func TestExperienceAlignmentMatchesAliases(t *testing.T) {
	profile := &candidate.Profile{
		Skills: []string{"Kubernetes"},
		Experiences: []candidate.Experience{
			{Title: "SRE", Company: "Co", Description: "Operated k8s clusters"},
		},
	}
	scorer := NewScorer("", []string{"Kubernetes"}, nil, nil)

	if got := scorer.Score(profile).ExperienceAlignment; got != 100.0 {
		t.Fatalf("experience alignment = %v, want 100", got)
	}
}

func TestAutoExtractionFiltersStopwords(t *testing.T) {
	scorer := NewScorer("We are looking for a Python developer with strong Docker skills and AWS experience", nil, nil, nil)

	required := scorer.RequiredSkills()
	set := make(map[string]bool, len(required))
	for _, skill := range required {
		set[skill] = true
	}

	for _, stop := range []string{"are", "for", "with", "and"} {
		if set[stop] {
			t.Fatalf("stopword %q leaked into required skills: %v", stop, required)
		}
	}
	for _, tech := range []string{"python", "docker", "aws"} {
		if !set[tech] {
			t.Fatalf("expected %q in required skills: %v", tech, required)
		}
	}
}

func TestAutoExtractionDropsShortTokensAndTrailingDots(t *testing.T) {
	scorer := NewScorer("Go. C Rust.", nil, nil, nil)

	got := scorer.RequiredSkills()

	if !reflect.DeepEqual(got, []string{"go", "rust"}) {
		t.Fatalf("unexpected extraction: %v", got)
	}
}

func TestMissingRequired(t *testing.T) {
	profile := &candidate.Profile{Skills: []string{"Python"}}
	scorer := NewScorer("", []string{"Python", "Docker"}, nil, nil)

	missing := scorer.MissingRequired(profile)

	if !reflect.DeepEqual(missing, []string{"docker"}) {
		t.Fatalf("unexpected missing required: %v", missing)
	}
}

func TestMissingOptional(t *testing.T) {
	profile := &candidate.Profile{Skills: []string{"Python"}}
	scorer := NewScorer("", []string{"Python"}, []string{"Docker", "Terraform"}, nil)

	missing := scorer.MissingOptional(profile)

	if !reflect.DeepEqual(missing, []string{"docker", "terraform"}) {
		t.Fatalf("unexpected missing optional: %v", missing)
	}
}

func TestSynonymNotMissing(t *testing.T) {
	profile := &candidate.Profile{Skills: []string{"JS"}}
	scorer := NewScorer("", []string{"JavaScript"}, nil, nil)

	if missing := scorer.MissingRequired(profile); len(missing) != 0 {
		t.Fatalf("expected no missing skills, got %v", missing)
	}
}
