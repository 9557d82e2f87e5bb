package domain

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeededGraph(t *testing.T) {
	g := NewSeededGraph()
	snap := g.Snapshot()

	require.Len(t, snap.Nodes, 2)
	require.Len(t, snap.Links, 1)

	assert.Equal(t, SnapshotNode{ID: SeedExperimentID, URL: SeedExperimentURL, Summary: SeedExperimentSummary}, snap.Nodes[0])
	assert.Equal(t, SnapshotNode{ID: SeedOrganismID, Summary: SeedOrganismSummary}, snap.Nodes[1])
	assert.Equal(t, SnapshotLink{Source: SeedExperimentID, Target: SeedOrganismID, Label: LabelInvolves}, snap.Links[0])
}

func TestGraph_AddNode(t *testing.T) {
	t.Run("upsert does not duplicate", func(t *testing.T) {
		g := NewGraph()
		g.AddNode("a", NodeAttributes{Summary: "first"})
		g.AddNode("a", NodeAttributes{Summary: "second"})

		assert.Equal(t, 1, g.NodeCount())
		node, ok := g.Node("a")
		require.True(t, ok)
		assert.Equal(t, "second", node.Summary)
	})

	t.Run("empty attributes keep stored values", func(t *testing.T) {
		g := NewGraph()
		g.AddNode("a", NodeAttributes{URL: "https://x", Summary: "s"})
		g.AddNode("a", NodeAttributes{})

		node, _ := g.Node("a")
		assert.Equal(t, "https://x", node.URL)
		assert.Equal(t, "s", node.Summary)
	})
}

func TestGraph_AddEdge(t *testing.T) {
	t.Run("deduplicates unordered pair and replaces label", func(t *testing.T) {
		g := NewGraph()
		g.AddNode("a", NodeAttributes{})
		g.AddNode("b", NodeAttributes{})

		g.AddEdge("a", "b", "INVOLVES")
		g.AddEdge("b", "a", "RELATED")

		snap := g.Snapshot()
		require.Len(t, snap.Links, 1)
		assert.Equal(t, SnapshotLink{Source: "a", Target: "b", Label: "RELATED"}, snap.Links[0])
	})

	t.Run("creates missing endpoints", func(t *testing.T) {
		g := NewGraph()
		g.AddEdge("x", "y", "L")

		assert.True(t, g.HasNode("x"))
		assert.True(t, g.HasNode("y"))
		assert.Equal(t, 1, g.EdgeCount())
	})
}

func TestSnapshot_JSON(t *testing.T) {
	raw, err := NewSeededGraph().Snapshot().JSON()
	require.NoError(t, err)

	var decoded map[string][]map[string]string
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))

	require.Len(t, decoded["nodes"], 2)
	assert.Equal(t, SeedExperimentURL, decoded["nodes"][0]["url"])
	_, hasURL := decoded["nodes"][1]["url"]
	assert.False(t, hasURL, "url is omitted when unset")
	assert.Equal(t, LabelInvolves, decoded["links"][0]["label"])
}

func TestSnapshot_RoundTrip(t *testing.T) {
	g := NewSeededGraph()
	g.AddNode("Bone Cells", NodeAttributes{Summary: "bones"})
	g.AddEdge(SeedExperimentID, "Bone Cells", LabelInvolves)
	g.AddNode("New Cell Research", NodeAttributes{Summary: "cells"})
	g.AddEdge(SeedExperimentID, "New Cell Research", LabelRelated)

	first := g.Snapshot()
	second := NewGraphFromSnapshot(first).Snapshot()

	assert.ElementsMatch(t, first.Nodes, second.Nodes)
	assert.ElementsMatch(t, first.Links, second.Links)
	assert.Equal(t, first, g.Snapshot(), "export is idempotent")
}

func TestSnapshot_IsDetached(t *testing.T) {
	g := NewSeededGraph()
	snap := g.Snapshot()
	snap.Nodes[0].Summary = "changed"

	node, _ := g.Node(SeedExperimentID)
	assert.Equal(t, SeedExperimentSummary, node.Summary)
}

func TestGraph_ConcurrentUpserts(t *testing.T) {
	g := NewSeededGraph()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.AddNode("Bone Cells", NodeAttributes{Summary: "bones"})
			g.AddEdge(SeedExperimentID, "Bone Cells", LabelInvolves)
			_ = g.Snapshot()
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount())
}
