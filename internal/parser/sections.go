package parser

import "strings"

// sectionAliases maps canonical section names to their known header spellings.
// Order matters: prefix classification walks the table in declaration order so
// results stay deterministic.
var sectionAliases = []struct {
	name    string
	aliases []string
}{
	{"skills", []string{"skills", "technologies", "technical skills", "core competencies", "tech stack"}},
	{"experience", []string{
		"experience",
		"work experience",
		"professional experience",
		"work history",
		"professional background",
		"employment history",
		"employment",
	}},
	{"education", []string{"education", "academic background", "qualifications"}},
	{"summary", []string{"summary", "objective", "profile", "about me", "professional summary"}},
	{"achievements", []string{"achievements", "accomplishments", "awards", "honors"}},
	{"certifications", []string{"certifications", "certificates", "licenses", "credentials"}},
}

// aliasLookup is the flat alias -> canonical name table for exact matches.
var aliasLookup = func() map[string]string {
	lookup := make(map[string]string)
	for _, section := range sectionAliases {
		for _, alias := range section.aliases {
			lookup[alias] = section.name
		}
	}
	return lookup
}()

type span struct {
	start int
	end   int
}

type headerHit struct {
	name  string
	index int
}

// classifyLine returns the canonical section name when the line looks like a
// section header, or "" otherwise. An alias matches exactly, or as a prefix
// followed by end-of-line, a colon, space or tab, so "Skillset" does not
// match "skills".
func classifyLine(line string) string {
	lower := strings.TrimSpace(strings.TrimRight(strings.ToLower(line), ":"))

	if canonical, ok := aliasLookup[lower]; ok {
		return canonical
	}

	for _, section := range sectionAliases {
		for _, alias := range section.aliases {
			if !strings.HasPrefix(lower, alias) {
				continue
			}
			remainder := lower[len(alias):]
			if remainder == "" || remainder[0] == ':' || remainder[0] == ' ' || remainder[0] == '\t' {
				return section.name
			}
		}
	}

	return ""
}

// buildSections scans all lines once for headers, then derives [start,end)
// body ranges by adjacent differencing. When a canonical name repeats, the
// first occurrence wins: the duplicate header is not recorded as a boundary
// and its line falls into the ongoing section body.
func buildSections(lines []string) ([]headerHit, map[string]span) {
	var hits []headerHit
	seen := make(map[string]struct{})
	for idx, line := range lines {
		canonical := classifyLine(line)
		if canonical == "" {
			continue
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		hits = append(hits, headerHit{name: canonical, index: idx})
	}

	sections := make(map[string]span, len(hits))
	for i, hit := range hits {
		end := len(lines)
		if i+1 < len(hits) {
			end = hits[i+1].index
		}
		sections[hit.name] = span{start: hit.index, end: end}
	}

	return hits, sections
}
