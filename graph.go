package forge

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Position is canvas geometry. It is carried for the UI and persistence
// layers; validation, export, and simulation never read it.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Node is one typed unit placed on the canvas.
type Node struct {
	ID       string         `json:"id" yaml:"id"`
	TypeID   string         `json:"type" yaml:"type"`
	Position Position       `json:"position" yaml:"position"`
	Config   map[string]any `json:"config" yaml:"config"`
}

// Connection is a directed data edge between two nodes.
type Connection struct {
	ID   string `json:"id" yaml:"id"`
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
	Kind string `json:"kind" yaml:"kind"`
}

// ConnectionKindData is the only connection kind currently supported.
const ConnectionKindData = "data"

// Metadata is caller-supplied graph descriptive data. Only Name is consumed
// by the pipeline (export name sanitization).
type Metadata struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Author      string `json:"author,omitempty" yaml:"author,omitempty"`
}

type connPair struct {
	from string
	to   string
}

// Graph is the mutable node/connection structure composed in a builder
// session. Nodes live in a dense slice addressed through an id index so
// lookup and cascade delete stay O(1) amortized.
type Graph struct {
	Metadata Metadata

	catalog     *Catalog
	nodes       []*Node
	index       map[string]int
	connections []*Connection
	pairs       map[connPair]string
}

// NewGraph creates an empty graph bound to a component catalog. A nil
// catalog falls back to the built-in registry.
func NewGraph(catalog *Catalog) *Graph {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Graph{
		catalog: catalog,
		index:   make(map[string]int),
		pairs:   make(map[connPair]string),
	}
}

// Catalog returns the registry this graph resolves type ids against.
func (g *Graph) Catalog() *Catalog {
	return g.catalog
}

// AddNode places a new node of the given component type, seeding its config
// from the catalog defaults.
func (g *Graph) AddNode(typeID string, pos Position) (*Node, error) {
	comp, ok := g.catalog.Lookup(typeID)
	if !ok {
		return nil, cloneModelError(ErrUnknownComponent,
			fmt.Sprintf("unknown component type %q", typeID),
			map[string]any{"type_id": typeID})
	}

	node := &Node{
		ID:       newID(comp.TypeID),
		TypeID:   comp.TypeID,
		Position: pos,
		Config:   comp.DefaultConfig(),
	}
	g.index[node.ID] = len(g.nodes)
	g.nodes = append(g.nodes, node)
	return node, nil
}

// RemoveNode deletes the node and every connection touching it. Removing an
// unknown id is a no-op.
func (g *Graph) RemoveNode(id string) {
	idx, ok := g.index[id]
	if !ok {
		return
	}

	g.nodes = append(g.nodes[:idx], g.nodes[idx+1:]...)
	delete(g.index, id)
	for i := idx; i < len(g.nodes); i++ {
		g.index[g.nodes[i].ID] = i
	}

	kept := g.connections[:0]
	for _, conn := range g.connections {
		if conn.From == id || conn.To == id {
			delete(g.pairs, connPair{from: conn.From, to: conn.To})
			continue
		}
		kept = append(kept, conn)
	}
	g.connections = kept
}

// AddConnection links two existing nodes. Identical (from,to) pairs are
// rejected rather than silently deduplicated so the UI can surface the
// mistake.
func (g *Graph) AddConnection(from, to string) (*Connection, error) {
	for _, id := range []string{from, to} {
		if _, ok := g.index[id]; !ok {
			return nil, cloneModelError(ErrDanglingReference,
				fmt.Sprintf("connection endpoint %q is not a node in this graph", id),
				map[string]any{"node_id": id})
		}
	}

	pair := connPair{from: from, to: to}
	if existing, ok := g.pairs[pair]; ok {
		return nil, cloneModelError(ErrDuplicateConnection,
			fmt.Sprintf("connection %s -> %s already exists", from, to),
			map[string]any{"connection_id": existing})
	}

	conn := &Connection{
		ID:   newID("conn"),
		From: from,
		To:   to,
		Kind: ConnectionKindData,
	}
	g.pairs[pair] = conn.ID
	g.connections = append(g.connections, conn)
	return conn, nil
}

// RemoveConnection deletes one connection by id. Unknown ids are a no-op.
func (g *Graph) RemoveConnection(id string) {
	for i, conn := range g.connections {
		if conn.ID != id {
			continue
		}
		delete(g.pairs, connPair{from: conn.From, to: conn.To})
		g.connections = append(g.connections[:i], g.connections[i+1:]...)
		return
	}
}

// UpdateConfig stores a config value verbatim. Shape checking is deferred
// to the validator so interactive edits stay cheap.
func (g *Graph) UpdateConfig(nodeID, key string, value any) error {
	node, ok := g.NodeByID(nodeID)
	if !ok {
		return cloneModelError(ErrNodeNotFound,
			fmt.Sprintf("node %q not found", nodeID),
			map[string]any{"node_id": nodeID})
	}
	if node.Config == nil {
		node.Config = make(map[string]any)
	}
	node.Config[key] = value
	return nil
}

// NodeByID resolves a node through the id index.
func (g *Graph) NodeByID(id string) (*Node, bool) {
	idx, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.nodes[idx], true
}

// HasNode reports whether id names a node in this graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Nodes returns the nodes in insertion order. The slice is a copy; the
// nodes are shared.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Connections returns the connections in insertion order.
func (g *Graph) Connections() []*Connection {
	out := make([]*Connection, len(g.connections))
	copy(out, g.connections)
	return out
}

// NodeCategory resolves the category of a node through the catalog.
func (g *Graph) NodeCategory(node *Node) (Category, bool) {
	comp, ok := g.catalog.Lookup(node.TypeID)
	if !ok {
		return "", false
	}
	return comp.Category, true
}

// NodesByCategory returns nodes of one category in insertion order. Nodes
// with unknown type ids are skipped; the validator reports those.
func (g *Graph) NodesByCategory(cat Category) []*Node {
	var out []*Node
	for _, node := range g.nodes {
		if c, ok := g.NodeCategory(node); ok && c == cat {
			out = append(out, node)
		}
	}
	return out
}

// AgentNode returns the single agent node. Zero agents and two or more
// agents are both structural errors: a graph is only exportable and
// simulatable with exactly one.
func (g *Graph) AgentNode() (*Node, error) {
	agents := g.NodesByCategory(CategoryAgent)
	switch len(agents) {
	case 0:
		return nil, ErrMissingAgentNode
	case 1:
		return agents[0], nil
	default:
		return nil, cloneModelError(ErrMultipleAgentNodes,
			fmt.Sprintf("graph contains %d agent nodes, expected exactly one", len(agents)),
			map[string]any{"count": len(agents)})
	}
}

// Reset discards all nodes and connections, keeping catalog and metadata.
func (g *Graph) Reset() {
	g.nodes = nil
	g.connections = nil
	g.index = make(map[string]int)
	g.pairs = make(map[connPair]string)
}

func newID(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s-%s", prefix, raw[:8])
}
