// Package intent maps an English question onto a canned answer and graph update.
package intent

import (
	"strings"

	"bioverse-backend/internal/domain"
)

// FallbackAnswer is returned when no rule matches.
const FallbackAnswer = "Sorry, I don't understand that yet."

// Node ids and summaries added by the keyword rules.
const (
	BoneCellsID      = "Bone Cells"
	BoneCellsSummary = "Bone Cells affected in microgravity show density loss and structural changes."

	CellResearchID      = "New Cell Research"
	CellResearchSummary = "New Cell Research explores cellular responses in microgravity."
)

// Result is the outcome of matching a question.
type Result struct {
	Rule        string
	Answer      string
	NewNodes    []string
	Highlighted string
}

// Matched reports whether a keyword rule fired.
func (r Result) Matched() bool {
	return r.Rule != ""
}

// Rule pairs a keyword predicate with the graph effect applied when it fires.
type Rule struct {
	Name    string
	Keyword string
	Apply   func(g *domain.Graph) Result
}

// Matches reports whether the lowercased question contains the keyword.
func (r Rule) Matches(lowered string) bool {
	return strings.Contains(lowered, r.Keyword)
}

// Matcher evaluates rules in order; the first match wins.
type Matcher struct {
	graph *domain.Graph
	rules []Rule
}

// NewMatcher creates a matcher over graph with the default rule table.
func NewMatcher(graph *domain.Graph) *Matcher {
	return NewMatcherWithRules(graph, DefaultRules())
}

// NewMatcherWithRules creates a matcher with a custom rule table.
func NewMatcherWithRules(graph *domain.Graph, rules []Rule) *Matcher {
	return &Matcher{graph: graph, rules: rules}
}

// Match applies the first rule whose keyword occurs in question.
// The graph is mutated as a side effect.
func (m *Matcher) Match(question string) Result {
	lowered := strings.ToLower(question)
	for _, rule := range m.rules {
		if rule.Matches(lowered) {
			res := rule.Apply(m.graph)
			res.Rule = rule.Name
			return res
		}
	}
	return Result{Answer: FallbackAnswer}
}

// DefaultRules returns the bone and cell rules, in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:    "bone",
			Keyword: "bone",
			Apply:   linkToExperiment(BoneCellsID, BoneCellsSummary, domain.LabelInvolves),
		},
		{
			Name:    "cell",
			Keyword: "cell",
			Apply:   linkToExperiment(CellResearchID, CellResearchSummary, domain.LabelRelated),
		},
	}
}

// linkToExperiment upserts a node, connects it to the seed experiment and
// answers with the experiment's summary.
func linkToExperiment(id, summary, label string) func(g *domain.Graph) Result {
	return func(g *domain.Graph) Result {
		g.AddNode(id, domain.NodeAttributes{Summary: summary})
		g.AddEdge(domain.SeedExperimentID, id, label)

		answer := domain.SeedExperimentSummary
		if exp, ok := g.Node(domain.SeedExperimentID); ok && exp.Summary != "" {
			answer = exp.Summary
		}

		return Result{
			Answer:      answer,
			NewNodes:    []string{id},
			Highlighted: domain.SeedExperimentID,
		}
	}
}
