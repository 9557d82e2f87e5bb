// Package domain holds the in-memory knowledge graph shown on the chat page.
//
// The graph lives for the lifetime of the process. Nodes are never removed;
// they are upserted by the intent rules and exported as a node/link snapshot
// for the browser-side visualization.
package domain

import (
	"encoding/json"
	"fmt"
	"sync"
)

// GraphNode is a labeled vertex. ID is the primary key.
type GraphNode struct {
	ID      string
	URL     string
	Summary string
}

// GraphEdge is an undirected, labeled connection between two existing nodes.
type GraphEdge struct {
	Source string
	Target string
	Label  string
}

// NodeAttributes are the optional attributes accepted by AddNode.
type NodeAttributes struct {
	URL     string
	Summary string
}

// Graph is the single shared store. All methods are safe for concurrent use.
type Graph struct {
	mu        sync.RWMutex
	nodes     map[string]*GraphNode
	nodeOrder []string
	edges     map[edgeKey]*GraphEdge
	edgeOrder []edgeKey
}

// edgeKey identifies an unordered node pair.
type edgeKey struct {
	a, b string
}

func newEdgeKey(u, v string) edgeKey {
	if v < u {
		u, v = v, u
	}
	return edgeKey{a: u, b: v}
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]*GraphNode),
		edges: make(map[edgeKey]*GraphEdge),
	}
}

// AddNode inserts a node or merges attributes into an existing one.
// Non-empty attributes overwrite, empty ones keep what is already stored.
func (g *Graph) AddNode(id string, attrs NodeAttributes) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addNodeLocked(id, attrs)
}

func (g *Graph) addNodeLocked(id string, attrs NodeAttributes) {
	node, ok := g.nodes[id]
	if !ok {
		node = &GraphNode{ID: id}
		g.nodes[id] = node
		g.nodeOrder = append(g.nodeOrder, id)
	}
	if attrs.URL != "" {
		node.URL = attrs.URL
	}
	if attrs.Summary != "" {
		node.Summary = attrs.Summary
	}
}

// AddEdge connects a and b. Missing endpoints are created as bare nodes so an
// edge never dangles. A second call for the same unordered pair replaces the
// label and keeps the original orientation.
func (g *Graph) AddEdge(a, b, label string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[a]; !ok {
		g.addNodeLocked(a, NodeAttributes{})
	}
	if _, ok := g.nodes[b]; !ok {
		g.addNodeLocked(b, NodeAttributes{})
	}

	key := newEdgeKey(a, b)
	if edge, ok := g.edges[key]; ok {
		edge.Label = label
		return
	}
	g.edges[key] = &GraphEdge{Source: a, Target: b, Label: label}
	g.edgeOrder = append(g.edgeOrder, key)
}

// Node returns a copy of the node with the given id.
func (g *Graph) Node(id string) (GraphNode, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	node, ok := g.nodes[id]
	if !ok {
		return GraphNode{}, false
	}
	return *node, true
}

// HasNode reports whether id is present.
func (g *Graph) HasNode(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.nodes[id]
	return ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edges)
}

// Snapshot exports the current state in insertion order. The result shares
// no memory with the graph.
func (g *Graph) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	snap := Snapshot{
		Nodes: make([]SnapshotNode, 0, len(g.nodeOrder)),
		Links: make([]SnapshotLink, 0, len(g.edgeOrder)),
	}
	for _, id := range g.nodeOrder {
		n := g.nodes[id]
		snap.Nodes = append(snap.Nodes, SnapshotNode{ID: n.ID, URL: n.URL, Summary: n.Summary})
	}
	for _, key := range g.edgeOrder {
		e := g.edges[key]
		snap.Links = append(snap.Links, SnapshotLink{Source: e.Source, Target: e.Target, Label: e.Label})
	}
	return snap
}

// Snapshot is the node/link exchange format consumed by the D3 force layout.
type Snapshot struct {
	Nodes []SnapshotNode `json:"nodes"`
	Links []SnapshotLink `json:"links"`
}

// SnapshotNode is one exported node. URL is omitted when unset.
type SnapshotNode struct {
	ID      string `json:"id"`
	URL     string `json:"url,omitempty"`
	Summary string `json:"summary"`
}

// SnapshotLink is one exported edge.
type SnapshotLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

// JSON serializes the snapshot.
func (s Snapshot) JSON() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshaling graph snapshot: %w", err)
	}
	return string(data), nil
}

// NewGraphFromSnapshot rebuilds a store from an exported snapshot.
func NewGraphFromSnapshot(s Snapshot) *Graph {
	g := NewGraph()
	for _, n := range s.Nodes {
		g.AddNode(n.ID, NodeAttributes{URL: n.URL, Summary: n.Summary})
	}
	for _, l := range s.Links {
		g.AddEdge(l.Source, l.Target, l.Label)
	}
	return g
}
