package match

import "strings"

// skillSynonyms maps a canonical skill to its known aliases, all lowercase.
// The table is read-only after init and safe for concurrent use.
var skillSynonyms = map[string][]string{
	"javascript":                  {"js", "ecmascript", "es6", "es2015"},
	"typescript":                  {"ts"},
	"python":                      {"py", "python3", "cpython"},
	"kubernetes":                  {"k8s", "kube"},
	"machine learning":            {"ml"},
	"deep learning":               {"dl"},
	"natural language processing": {"nlp"},
	"artificial intelligence":     {"ai"},
	"amazon web services":         {"aws"},
	"google cloud platform":       {"gcp", "google cloud"},
	"microsoft azure":             {"azure"},
	"react":                       {"reactjs", "react.js"},
	"angular":                     {"angularjs", "angular.js"},
	"vue":                         {"vuejs", "vue.js"},
	"node":                        {"nodejs", "node.js"},
	"postgres":                    {"postgresql", "psql"},
	"mysql":                       {"mariadb"},
	"mongodb":                     {"mongo"},
	"docker":                      {"containerization"},
	"ci/cd":                       {"cicd", "continuous integration", "continuous deployment"},
	"tensorflow":                  {"tf"},
	"pytorch":                     {"torch"},
	"c++":                         {"cpp"},
	"c#":                          {"csharp", "c sharp"},
	"objective-c":                 {"objc"},
	"ruby on rails":               {"rails", "ror"},
	"rest":                        {"restful", "rest api", "restful api"},
	"graphql":                     {"gql"},
	"html":                        {"html5"},
	"css":                         {"css3"},
	"sass":                        {"scss"},
}

// synonymReverse maps every alias (and every canonical term, to itself) to its
// canonical skill.
var synonymReverse = func() map[string]string {
	reverse := make(map[string]string, len(skillSynonyms)*2)
	for canonical, aliases := range skillSynonyms {
		reverse[canonical] = canonical
		for _, alias := range aliases {
			reverse[alias] = canonical
		}
	}
	return reverse
}()

// Canonicalize resolves a skill string to its canonical form. Unknown skills
// pass through lower-cased and trimmed, degrading to literal matching.
func Canonicalize(skill string) string {
	lower := strings.ToLower(strings.TrimSpace(skill))
	if canonical, ok := synonymReverse[lower]; ok {
		return canonical
	}
	return lower
}

func aliasesFor(canonical string) []string {
	return skillSynonyms[canonical]
}
