// Package parser turns raw line-oriented resume text into a typed candidate
// profile using layered heuristics with deterministic fallbacks. Absent input
// never fails a parse; missing pieces come back as empty values.
package parser

import (
	"regexp"
	"strings"

	"github.com/sortinghat-ai/sortinghat/internal/candidate"

	"go.uber.org/zap"
)

var (
	emailRe    = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe    = regexp.MustCompile(`\+?\d[\d\s().-]{7,}\d`)
	twoWordsRe = regexp.MustCompile(`[A-Za-z]{2,}\s+[A-Za-z]{2,}`)
	yearRe     = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	toolRe     = regexp.MustCompile(`\b[A-Z][A-Za-z+#.]*(?:\.[A-Za-z]+)*\b`)
	// splitRe holds the one separator set shared by skills, certifications,
	// achievements and the legacy skills fallback.
	splitRe = regexp.MustCompile(`[,|/\x{2022}\x{2023}-]`)
)

// contactScanLines bounds how deep into the document contact extraction looks.
const contactScanLines = 5

// nonNamePatterns are document-title prefixes that disqualify a line as the
// candidate's name.
var nonNamePatterns = []string{"resume", "curriculum vitae", "cv", "cover letter", "portfolio"}

// roleKeywords mark a line as the start of a new employment entry.
var roleKeywords = []string{
	"engineer",
	"manager",
	"developer",
	"intern",
	"analyst",
	"designer",
	"architect",
	"consultant",
	"director",
	"lead",
	"scientist",
	"administrator",
	"coordinator",
	"specialist",
	"technician",
	"officer",
	"associate",
	"vice president",
	"vp",
	"head of",
	"founder",
	"co-founder",
	"cto",
	"ceo",
	"coo",
	"cfo",
}

var degreeKeywords = []string{"bachelor", "master", "phd", "ph.d", "mba", "b.s", "m.s", "b.a", "m.a", "associate", "diploma"}

var locationKeywords = []string{
	"remote", "usa", "uk", "canada", "india", "germany", "france", "australia",
	"singapore", "japan", "china", "brazil", "netherlands", "sweden",
	"new york", "san francisco", "london", "berlin", "toronto", "seattle",
	"chicago", "boston", "los angeles", "austin", "denver", "bangalore",
	"mumbai", "hyderabad",
}

// toolStopwords filters common capitalized English words out of tool
// extraction.
var toolStopwords = map[string]struct{}{
	"Built": {}, "Developed": {}, "Created": {}, "Managed": {}, "Led": {},
	"Designed": {}, "Implemented": {}, "Deployed": {}, "Worked": {},
	"Collaborated": {}, "Improved": {}, "Reduced": {}, "Increased": {},
	"The": {}, "This": {}, "That": {}, "Using": {}, "With": {}, "And": {},
	"For": {}, "From": {}, "Into": {},
}

// Parser captures key resume sections from plaintext. Build one per document
// with New; parsing is single-pass over the prepared lines and side-effect
// free.
type Parser struct {
	lines    []string
	hits     []headerHit
	sections map[string]span
	logger   *zap.Logger
}

// New splits text into trimmed non-blank lines and detects section ranges.
// Blank lines are dropped entirely, which makes section boundaries
// whitespace-blind on purpose.
func New(text string, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	hits, sections := buildSections(lines)

	return &Parser{lines: lines, hits: hits, sections: sections, logger: logger}
}

// Parse assembles the candidate profile from all extraction passes.
func (p *Parser) Parse() *candidate.Profile {
	profile := &candidate.Profile{
		Contact:        p.extractContact(),
		Skills:         p.extractSkills(),
		Summary:        p.extractSummary(),
		Experiences:    p.extractExperience(),
		Education:      p.extractEducation(),
		Achievements:   p.sectionItems("achievements"),
		Certifications: p.sectionItems("certifications"),
	}

	p.logger.Info("parsed resume",
		zap.String("name", profile.Contact.Name),
		zap.Int("skills", len(profile.Skills)),
		zap.Int("experiences", len(profile.Experiences)),
	)

	return profile
}

// sectionLines returns the body lines for a canonical section, excluding the
// header itself. Unknown sections yield an empty body.
func (p *Parser) sectionLines(name string) []string {
	sp, ok := p.sections[name]
	if !ok {
		return nil
	}
	return p.lines[sp.start+1 : sp.end]
}

func (p *Parser) extractContact() candidate.ContactInfo {
	return candidate.ContactInfo{
		Name:     p.extractName(),
		Email:    p.searchRegex(emailRe),
		Phone:    p.searchRegex(phoneRe),
		Location: p.extractLocation(),
	}
}

// extractName scans the first lines for one that is neither a document title,
// nor a section header, nor pure contact data. A line containing an email or
// phone still qualifies when it also carries a two-word alphabetic run.
func (p *Parser) extractName() string {
	for _, line := range p.head(contactScanLines) {
		lower := strings.ToLower(line)
		if hasAnyPrefix(lower, nonNamePatterns) {
			continue
		}
		if classifyLine(line) != "" {
			continue
		}
		if emailRe.MatchString(line) && !twoWordsRe.MatchString(line) {
			continue
		}
		if phoneRe.MatchString(line) && !twoWordsRe.MatchString(line) {
			continue
		}
		return line
	}

	if len(p.lines) > 0 {
		return p.lines[0]
	}
	return ""
}

func (p *Parser) extractLocation() string {
	for _, line := range p.head(contactScanLines) {
		lower := strings.ToLower(line)
		for _, keyword := range locationKeywords {
			if strings.Contains(lower, keyword) {
				return line
			}
		}
	}
	return ""
}

func (p *Parser) searchRegex(re *regexp.Regexp) string {
	for _, line := range p.head(contactScanLines) {
		if match := re.FindString(line); match != "" {
			return match
		}
	}
	return ""
}

// extractSkills tries, in order: section body lines, an inline "Skills: ..."
// header, and the legacy whole-document capture fallback.
func (p *Parser) extractSkills() []string {
	if body := p.sectionLines("skills"); len(body) > 0 {
		var skills []string
		for _, line := range body {
			skills = append(skills, splitList(line)...)
		}
		return skills
	}

	if sp, ok := p.sections["skills"]; ok {
		header := p.lines[sp.start]
		if idx := strings.Index(header, ":"); idx >= 0 {
			if after := header[idx+1:]; strings.TrimSpace(after) != "" {
				return splitList(after)
			}
		}
	}

	return p.extractSkillsLegacy()
}

// extractSkillsLegacy is the capture-based fallback for resumes without
// detectable headers. Blank lines never survive loading, so once capture
// starts it runs to the end of the document; minimal resumes rely on that.
func (p *Parser) extractSkillsLegacy() []string {
	var skills []string
	capture := false
	for _, line := range p.lines {
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "skills") || strings.HasPrefix(lower, "technologies") {
			capture = true
			if idx := strings.Index(line, ":"); idx >= 0 {
				line = line[idx+1:]
			} else {
				line = ""
			}
		}
		if capture {
			skills = append(skills, splitList(line)...)
		}
	}
	return skills
}

func (p *Parser) extractSummary() string {
	if body := p.sectionLines("summary"); len(body) > 0 {
		if len(body) > 5 {
			body = body[:5]
		}
		return strings.Join(body, " ")
	}

	firstSection := len(p.lines)
	if len(p.hits) > 0 {
		firstSection = p.hits[0].index
	}

	var paragraphs []string
	for _, line := range p.lines[:firstSection] {
		if classifyLine(line) != "" {
			continue
		}
		if emailRe.MatchString(line) || phoneRe.MatchString(line) {
			continue
		}
		paragraphs = append(paragraphs, line)
		if len(paragraphs) >= 3 {
			break
		}
	}
	return strings.Join(paragraphs, " ")
}

// extractExperience buffers lines between role-title triggers into employment
// entries. The first trigger opens the first buffer; every later trigger
// closes the current one.
func (p *Parser) extractExperience() []candidate.Experience {
	body := p.sectionLines("experience")
	if len(body) == 0 {
		return nil
	}

	var experiences []candidate.Experience
	var buffer []string
	for _, line := range body {
		if isRoleTitle(strings.ToLower(line)) && len(buffer) > 0 {
			experiences = append(experiences, experienceFromLines(buffer))
			buffer = nil
		}
		buffer = append(buffer, line)
	}
	if len(buffer) > 0 {
		experiences = append(experiences, experienceFromLines(buffer))
	}

	return experiences
}

func isRoleTitle(lower string) bool {
	for _, keyword := range roleKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func experienceFromLines(lines []string) candidate.Experience {
	exp := candidate.Experience{Title: lines[0]}
	if len(lines) > 1 {
		exp.Company = lines[1]
	}
	if len(lines) > 2 {
		exp.Description = strings.Join(lines[2:], " ")
	}
	exp.Tools = extractTools(exp.Description)
	return exp
}

// extractTools pulls capitalized identifier-like tokens (PyTorch, AWS, C++)
// out of descriptive text, keeping first-seen order without duplicates.
func extractTools(text string) []string {
	var tools []string
	seen := make(map[string]struct{})
	for _, token := range toolRe.FindAllString(text, -1) {
		if _, stop := toolStopwords[token]; stop {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		tools = append(tools, token)
	}
	return tools
}

// extractEducation walks the education body with a cursor: each institution
// line may be followed by a degree line and a graduation year, or by a bare
// year alone.
func (p *Parser) extractEducation() []candidate.Education {
	body := p.sectionLines("education")
	if len(body) == 0 {
		return nil
	}

	var education []candidate.Education
	for i := 0; i < len(body); i++ {
		entry := candidate.Education{Institution: body[i]}
		if i+1 < len(body) {
			next := body[i+1]
			switch {
			case looksLikeDegree(next):
				entry.Degree = next
				i++
				if i+1 < len(body) && yearRe.MatchString(body[i+1]) {
					entry.Graduation = body[i+1]
					i++
				}
			case yearRe.MatchString(next):
				entry.Graduation = next
				i++
			}
		}
		education = append(education, entry)
	}

	return education
}

func looksLikeDegree(line string) bool {
	lower := strings.ToLower(line)
	for _, keyword := range degreeKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func (p *Parser) sectionItems(name string) []string {
	var items []string
	for _, line := range p.sectionLines(name) {
		items = append(items, splitList(line)...)
	}
	return items
}

func (p *Parser) head(n int) []string {
	if len(p.lines) < n {
		return p.lines
	}
	return p.lines[:n]
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// splitList breaks a line on the shared separator set, trimming fragments and
// dropping empties.
func splitList(text string) []string {
	var items []string
	for _, chunk := range splitRe.Split(text, -1) {
		chunk = strings.TrimSpace(chunk)
		if chunk != "" {
			items = append(items, chunk)
		}
	}
	return items
}
