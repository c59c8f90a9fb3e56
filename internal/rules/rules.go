// Package rules defines the declarative detection rule tables shared by the
// risk signal detector and the compliance scanner. Tables are embedded as YAML
// and compiled once at load time; a malformed pattern is a configuration error
// and fails loading, never an individual detection call.
package rules

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/hykwon-dot/lira-intel/internal/types"
)

// Category groups rules by the policy area they protect
type Category string

// Rule categories
const (
	CategoryPrivacy Category = "privacy"
	CategorySafety  Category = "safety"
	CategoryLegal   Category = "legal"
	CategoryBias    Category = "bias"
	CategoryPolicy  Category = "policy"
	CategoryCustom  Category = "custom"
)

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	switch c {
	case CategoryPrivacy, CategorySafety, CategoryLegal, CategoryBias, CategoryPolicy, CategoryCustom:
		return true
	}
	return false
}

// Rule is one declarative detection rule as it appears in a rule table file.
// Rules are immutable after loading.
type Rule struct {
	ID         string         `yaml:"id"`
	Title      string         `yaml:"title"`
	Pattern    string         `yaml:"pattern"`
	Category   Category       `yaml:"category"`
	Severity   types.Severity `yaml:"severity"`
	Guidance   string         `yaml:"guidance,omitempty"`
	References []string       `yaml:"references,omitempty"`
}

// CompiledRule pairs a rule with its compiled pattern
type CompiledRule struct {
	Rule
	Regexp *regexp.Regexp
}

// Table is an immutable, compiled set of detection rules
type Table struct {
	rules []CompiledRule
}

// ruleFile is the YAML document shape for an embedded rule table
type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// Load parses and compiles a YAML rule table. Any malformed pattern, unknown
// enum value, or duplicate rule id fails the whole load.
func Load(data []byte) (*Table, error) {
	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rule table: %w", err)
	}
	if len(file.Rules) == 0 {
		return nil, fmt.Errorf("rule table contains no rules")
	}

	seen := make(map[string]bool, len(file.Rules))
	compiled := make([]CompiledRule, 0, len(file.Rules))
	for _, rule := range file.Rules {
		if rule.ID == "" {
			return nil, fmt.Errorf("rule with pattern %q has no id", rule.Pattern)
		}
		if seen[rule.ID] {
			return nil, fmt.Errorf("duplicate rule id %q", rule.ID)
		}
		seen[rule.ID] = true

		if !rule.Category.Valid() {
			return nil, fmt.Errorf("rule %s: unknown category %q", rule.ID, rule.Category)
		}
		if !rule.Severity.Valid() {
			return nil, fmt.Errorf("rule %s: unknown severity %q", rule.ID, rule.Severity)
		}

		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %s: invalid pattern: %w", rule.ID, err)
		}
		compiled = append(compiled, CompiledRule{Rule: rule, Regexp: re})
	}

	return &Table{rules: compiled}, nil
}

// MustLoad loads a rule table and panics on error. Intended for the embedded
// tables, where a load failure is a build defect.
func MustLoad(data []byte) *Table {
	table, err := Load(data)
	if err != nil {
		panic(fmt.Sprintf("failed to load rule table: %v", err))
	}
	return table
}

// Rules returns the compiled rules in file order
func (t *Table) Rules() []CompiledRule {
	return t.rules
}

// Len returns the number of rules in the table
func (t *Table) Len() int {
	return len(t.rules)
}

// Find returns the rule with the given id, or nil if absent
func (t *Table) Find(id string) *CompiledRule {
	for i := range t.rules {
		if t.rules[i].ID == id {
			return &t.rules[i]
		}
	}
	return nil
}
