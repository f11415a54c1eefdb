package semantic

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

// Node describes one skill's place in the taxonomy graph.
type Node struct {
	Parent   string   `json:"parent,omitempty"`
	Children []string `json:"children,omitempty"`
	Related  []string `json:"related,omitempty"`
	Domain   string   `json:"domain,omitempty"`
}

// Taxonomy is a small hand-authored graph of skill labels used as a fallback
// when embedding similarity is unavailable or inconclusive.
type Taxonomy struct {
	nodes map[string]Node
}

// taxonomySchema validates taxonomy override files before loading.
const taxonomySchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"additionalProperties": {
		"type": "object",
		"properties": {
			"parent":   {"type": "string"},
			"children": {"type": "array", "items": {"type": "string"}},
			"related":  {"type": "array", "items": {"type": "string"}},
			"domain":   {"type": "string"}
		},
		"additionalProperties": false
	}
}`

// NewTaxonomy builds a taxonomy from a node map. Labels are normalized.
func NewTaxonomy(nodes map[string]Node) *Taxonomy {
	normalized := make(map[string]Node, len(nodes))
	for label, node := range nodes {
		node.Parent = NormalizeLabel(node.Parent)
		for i, c := range node.Children {
			node.Children[i] = NormalizeLabel(c)
		}
		for i, r := range node.Related {
			node.Related[i] = NormalizeLabel(r)
		}
		normalized[NormalizeLabel(label)] = node
	}
	return &Taxonomy{nodes: normalized}
}

// Load reads a taxonomy JSON file, validating it against the embedded schema.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading taxonomy file %s: %w", path, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(taxonomySchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validating taxonomy file: %w", err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("invalid taxonomy file %s: %v", path, result.Errors())
	}

	var nodes map[string]Node
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("parsing taxonomy file: %w", err)
	}
	return NewTaxonomy(nodes), nil
}

// Related reports whether two normalized labels are taxonomically related:
// identical parents, a direct parent/child edge, or an explicit related
// listing in either direction. The relation is symmetric.
func (t *Taxonomy) Related(a, b string) bool {
	if a == b {
		return true
	}
	na, okA := t.nodes[a]
	nb, okB := t.nodes[b]

	if okA && okB && na.Parent != "" && na.Parent == nb.Parent {
		return true
	}
	if okA && (na.Parent == b || contains(na.Children, b) || contains(na.Related, b)) {
		return true
	}
	if okB && (nb.Parent == a || contains(nb.Children, a) || contains(nb.Related, a)) {
		return true
	}
	return false
}

// Domain returns the declared domain of a label, or "" when unknown.
func (t *Taxonomy) Domain(label string) string {
	if node, ok := t.nodes[NormalizeLabel(label)]; ok {
		return node.Domain
	}
	return ""
}

// Contains reports whether the label is part of the taxonomy.
func (t *Taxonomy) Contains(label string) bool {
	_, ok := t.nodes[NormalizeLabel(label)]
	return ok
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// DefaultTaxonomy returns the built-in skill graph covering the common
// engineering stack seen in candidate profiles.
func DefaultTaxonomy() *Taxonomy {
	return NewTaxonomy(map[string]Node{
		"programming languages": {Children: []string{"go", "python", "java", "javascript", "typescript", "ruby", "php", "c#", "rust"}},
		"go":         {Parent: "programming languages", Related: []string{"rust"}, Domain: "backend"},
		"python":     {Parent: "programming languages", Related: []string{"machine learning"}, Domain: "backend"},
		"java":       {Parent: "programming languages", Related: []string{"spring"}, Domain: "backend"},
		"c#":         {Parent: "programming languages", Related: []string{".net"}, Domain: "backend"},
		"rust":       {Parent: "programming languages", Domain: "backend"},
		"ruby":       {Parent: "programming languages", Related: []string{"rails"}, Domain: "backend"},
		"php":        {Parent: "programming languages", Related: []string{"symfony", "laravel"}, Domain: "backend"},
		"javascript": {Parent: "programming languages", Children: []string{"react", "vue", "angular", "node.js"}, Related: []string{"typescript"}, Domain: "frontend"},
		"typescript": {Parent: "programming languages", Related: []string{"javascript", "angular"}, Domain: "frontend"},
		"react":      {Parent: "javascript", Related: []string{"vue", "angular"}, Domain: "frontend"},
		"vue":        {Parent: "javascript", Related: []string{"react", "angular"}, Domain: "frontend"},
		"angular":    {Parent: "javascript", Related: []string{"react", "vue"}, Domain: "frontend"},
		"node.js":    {Parent: "javascript", Related: []string{"express"}, Domain: "backend"},
		"spring":     {Parent: "java", Domain: "backend"},
		"symfony":    {Parent: "php", Domain: "backend"},
		"laravel":    {Parent: "php", Domain: "backend"},
		"rails":      {Parent: "ruby", Domain: "backend"},
		".net":       {Parent: "c#", Domain: "backend"},

		"databases":  {Children: []string{"postgresql", "mysql", "mongodb", "redis", "elasticsearch"}},
		"sql":        {Parent: "databases", Related: []string{"postgresql", "mysql"}, Domain: "data"},
		"postgresql": {Parent: "databases", Related: []string{"mysql", "sql"}, Domain: "data"},
		"mysql":      {Parent: "databases", Related: []string{"postgresql", "sql"}, Domain: "data"},
		"mongodb":    {Parent: "databases", Related: []string{"redis"}, Domain: "data"},
		"redis":      {Parent: "databases", Domain: "data"},
		"elasticsearch": {Parent: "databases", Domain: "data"},

		"cloud":        {Children: []string{"aws", "google cloud", "azure"}},
		"aws":          {Parent: "cloud", Related: []string{"google cloud", "azure"}, Domain: "devops"},
		"google cloud": {Parent: "cloud", Related: []string{"aws", "azure"}, Domain: "devops"},
		"azure":        {Parent: "cloud", Related: []string{"aws", "google cloud"}, Domain: "devops"},

		"infrastructure": {Children: []string{"docker", "kubernetes", "terraform", "ansible"}},
		"docker":         {Parent: "infrastructure", Related: []string{"kubernetes"}, Domain: "devops"},
		"kubernetes":     {Parent: "infrastructure", Related: []string{"docker", "helm"}, Domain: "devops"},
		"terraform":      {Parent: "infrastructure", Related: []string{"ansible"}, Domain: "devops"},
		"ansible":        {Parent: "infrastructure", Related: []string{"terraform"}, Domain: "devops"},
		"helm":           {Parent: "kubernetes", Domain: "devops"},
		"cicd":           {Parent: "infrastructure", Related: []string{"docker", "git"}, Domain: "devops"},
		"git":            {Related: []string{"cicd"}, Domain: "devops"},

		"machine learning": {Children: []string{"tensorflow", "pytorch"}, Related: []string{"python"}, Domain: "data"},
		"tensorflow":       {Parent: "machine learning", Related: []string{"pytorch"}, Domain: "data"},
		"pytorch":          {Parent: "machine learning", Related: []string{"tensorflow"}, Domain: "data"},
	})
}
