package domain

// Seed node ids and attributes present before any question is asked.
const (
	SeedExperimentID      = "Experiment: Microgravity Bone Study"
	SeedExperimentURL     = "https://example.com/microgravity-study"
	SeedExperimentSummary = "Study on bone cells in microgravity shows loss of density and structural changes."

	SeedOrganismID      = "Organism: Human Cells"
	SeedOrganismSummary = "Human cells used in microgravity experiments."

	LabelInvolves = "INVOLVES"
	LabelRelated  = "RELATED"
)

// NewSeededGraph returns a graph holding the two seed nodes and their edge.
func NewSeededGraph() *Graph {
	g := NewGraph()
	g.AddNode(SeedExperimentID, NodeAttributes{URL: SeedExperimentURL, Summary: SeedExperimentSummary})
	g.AddNode(SeedOrganismID, NodeAttributes{Summary: SeedOrganismSummary})
	g.AddEdge(SeedExperimentID, SeedOrganismID, LabelInvolves)
	return g
}
