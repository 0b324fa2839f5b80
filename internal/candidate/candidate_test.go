package candidate

import (
	"reflect"
	"testing"
)

func TestContactInfoMergeFillsGaps(t *testing.T) {
	a := ContactInfo{Name: "Alice", Phone: "123"}
	b := ContactInfo{Email: "alice@x.com", Location: "NYC"}

	merged := a.Merge(b)

	want := ContactInfo{Name: "Alice", Email: "alice@x.com", Phone: "123", Location: "NYC"}
	if merged != want {
		t.Fatalf("unexpected merge result: %+v", merged)
	}
}

func TestContactInfoMergePrefersReceiver(t *testing.T) {
	a := ContactInfo{Name: "Alice", Email: "a@a.com", Phone: "111", Location: "LA"}
	b := ContactInfo{Name: "Bob", Email: "b@b.com", Phone: "222", Location: "NY"}

	merged := a.Merge(b)

	if merged.Name != "Alice" || merged.Email != "a@a.com" {
		t.Fatalf("expected receiver values to win, got %+v", merged)
	}
}

func TestContactInfoMergeTrimsWhitespace(t *testing.T) {
	a := ContactInfo{Name: "  ", Email: "  a@a.com  "}
	b := ContactInfo{Name: "Bob"}

	merged := a.Merge(b)

	if merged.Name != "Bob" {
		t.Fatalf("blank receiver name should lose, got %q", merged.Name)
	}
	if merged.Email != "a@a.com" {
		t.Fatalf("expected trimmed email, got %q", merged.Email)
	}
}

func TestNormalizedSkillsDeduplicatesAndSorts(t *testing.T) {
	p := &Profile{Skills: []string{"Python", "python", "PYTHON", "Java", "java"}}

	got := p.NormalizedSkills()

	if !reflect.DeepEqual(got, []string{"java", "python"}) {
		t.Fatalf("unexpected normalized skills: %v", got)
	}
}

func TestNormalizedSkillsDropsBlanks(t *testing.T) {
	p := &Profile{Skills: []string{"  Python  ", "", "  ", "Java"}}

	got := p.NormalizedSkills()

	if !reflect.DeepEqual(got, []string{"java", "python"}) {
		t.Fatalf("unexpected normalized skills: %v", got)
	}
}

func TestNormalizedSkillsIdempotent(t *testing.T) {
	p := &Profile{Skills: []string{"Go", "  Docker ", "go", "AWS"}}

	once := p.NormalizedSkills()
	again := (&Profile{Skills: once}).NormalizedSkills()

	if !reflect.DeepEqual(once, again) {
		t.Fatalf("normalization not idempotent: %v vs %v", once, again)
	}
}

func TestExperienceHighlights(t *testing.T) {
	p := &Profile{
		Experiences: []Experience{
			{Title: "Dev", Company: "Co", Description: "Built stuff"},
			{Title: "Lead", Company: "Inc"},
		},
	}

	highlights := p.ExperienceHighlights()

	if len(highlights) != 2 {
		t.Fatalf("expected 2 highlights, got %d", len(highlights))
	}
	if highlights[0] != "Dev at Co: Built stuff" {
		t.Fatalf("unexpected first highlight: %q", highlights[0])
	}
	if highlights[1] != "Lead at Inc" {
		t.Fatalf("unexpected second highlight: %q", highlights[1])
	}
}

func TestEmptyProfile(t *testing.T) {
	p := &Profile{}

	if got := p.NormalizedSkills(); len(got) != 0 {
		t.Fatalf("expected no skills, got %v", got)
	}
	if got := p.ExperienceHighlights(); len(got) != 0 {
		t.Fatalf("expected no highlights, got %v", got)
	}
}
