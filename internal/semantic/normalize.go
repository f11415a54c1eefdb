package semantic

import "strings"

// aliases maps common label variants to their canonical form.
var aliases = map[string]string{
	"golang":     "go",
	"js":         "javascript",
	"ts":         "typescript",
	"reactjs":    "react",
	"react.js":   "react",
	"vuejs":      "vue",
	"vue.js":     "vue",
	"node":       "node.js",
	"nodejs":     "node.js",
	"k8s":        "kubernetes",
	"postgres":   "postgresql",
	"psql":       "postgresql",
	"gcp":        "google cloud",
	"amazon web services": "aws",
	"ci/cd":      "cicd",
	"ci-cd":      "cicd",
	"ml":         "machine learning",
}

// NormalizeLabel lowercases, trims, and collapses whitespace in a skill
// label, then resolves known aliases to a canonical form.
func NormalizeLabel(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = strings.Join(strings.Fields(s), " ")
	if canonical, ok := aliases[s]; ok {
		return canonical
	}
	return s
}
