package intent

import (
	"testing"

	"bioverse-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher_Match(t *testing.T) {
	tests := []struct {
		name        string
		question    string
		rule        string
		answer      string
		newNodes    []string
		highlighted string
		label       string
	}{
		{
			name:        "bone anywhere",
			question:    "Why do bones lose density in space?",
			rule:        "bone",
			answer:      domain.SeedExperimentSummary,
			newNodes:    []string{BoneCellsID},
			highlighted: domain.SeedExperimentID,
			label:       domain.LabelInvolves,
		},
		{
			name:        "bone is case insensitive",
			question:    "BONE marrow",
			rule:        "bone",
			answer:      domain.SeedExperimentSummary,
			newNodes:    []string{BoneCellsID},
			highlighted: domain.SeedExperimentID,
			label:       domain.LabelInvolves,
		},
		{
			name:        "bone wins over cell",
			question:    "bone cell growth",
			rule:        "bone",
			answer:      domain.SeedExperimentSummary,
			newNodes:    []string{BoneCellsID},
			highlighted: domain.SeedExperimentID,
			label:       domain.LabelInvolves,
		},
		{
			name:        "cell",
			question:    "Tell me about Cell research",
			rule:        "cell",
			answer:      domain.SeedExperimentSummary,
			newNodes:    []string{CellResearchID},
			highlighted: domain.SeedExperimentID,
			label:       domain.LabelRelated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := domain.NewSeededGraph()
			m := NewMatcher(g)

			res := m.Match(tt.question)

			assert.True(t, res.Matched())
			assert.Equal(t, tt.rule, res.Rule)
			assert.Equal(t, tt.answer, res.Answer)
			assert.Equal(t, tt.newNodes, res.NewNodes)
			assert.Equal(t, tt.highlighted, res.Highlighted)

			assert.Equal(t, 3, g.NodeCount())
			snap := g.Snapshot()
			require.Len(t, snap.Links, 2)
			assert.Equal(t, domain.SnapshotLink{Source: domain.SeedExperimentID, Target: tt.newNodes[0], Label: tt.label}, snap.Links[1])
		})
	}
}

func TestMatcher_Idempotent(t *testing.T) {
	g := domain.NewSeededGraph()
	m := NewMatcher(g)

	for i := 0; i < 3; i++ {
		m.Match("bone density")
	}

	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount())
	node, ok := g.Node(BoneCellsID)
	require.True(t, ok)
	assert.Equal(t, BoneCellsSummary, node.Summary)
}

func TestMatcher_Fallback(t *testing.T) {
	g := domain.NewSeededGraph()
	before := g.Snapshot()

	res := NewMatcher(g).Match("What is the weather today?")

	assert.False(t, res.Matched())
	assert.Equal(t, "Sorry, I don't understand that yet.", res.Answer)
	assert.Empty(t, res.NewNodes)
	assert.Empty(t, res.Highlighted)
	assert.Equal(t, before, g.Snapshot())
}

func TestMatcher_CustomRules(t *testing.T) {
	g := domain.NewSeededGraph()
	m := NewMatcherWithRules(g, []Rule{{
		Name:    "muscle",
		Keyword: "muscle",
		Apply: func(g *domain.Graph) Result {
			return Result{Answer: "muscles"}
		},
	}})

	assert.Equal(t, "muscles", m.Match("Muscle atrophy").Answer)
	assert.Equal(t, FallbackAnswer, m.Match("bone").Answer)
}

func TestSceneFor(t *testing.T) {
	tests := []struct {
		question string
		want     Scene
	}{
		{"Why do bones lose density in space?", Scene{Color: "red", PositionY: 1.5, Animation: "property: position; to: 0 2 -3; dur: 2000; dir: alternate; loop: true"}},
		{"Tell me about cell research", Scene{Color: "green", PositionY: 1.0, Animation: "property: rotation; to: 0 360 0; dur: 3000; loop: true; easing: linear"}},
		{"What is the weather today?", Scene{Color: "blue", PositionY: 1.25}},
		{"", DefaultScene},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Equal(t, tt.want, SceneFor(tt.question))
		})
	}
}
