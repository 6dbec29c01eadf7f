package forge

import (
	"encoding/json"
	"fmt"

	errors "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"
)

// GraphPayload is the canonical wire shape exchanged with the persistence
// and API layers, and embedded in full-fidelity JSON exports.
type GraphPayload struct {
	Nodes       []NodePayload       `json:"nodes" yaml:"nodes"`
	Connections []ConnectionPayload `json:"connections" yaml:"connections"`
	Metadata    Metadata            `json:"metadata" yaml:"metadata"`
}

// NodePayload is the wire shape of one node.
type NodePayload struct {
	ID       string         `json:"id" yaml:"id"`
	Type     string         `json:"type" yaml:"type"`
	Position *Position      `json:"position,omitempty" yaml:"position,omitempty"`
	Config   map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// ConnectionPayload is the wire shape of one connection.
type ConnectionPayload struct {
	ID   string `json:"id" yaml:"id"`
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// Payload captures the graph as its canonical wire value.
func (g *Graph) Payload() GraphPayload {
	p := GraphPayload{
		Nodes:       make([]NodePayload, 0, len(g.nodes)),
		Connections: make([]ConnectionPayload, 0, len(g.connections)),
		Metadata:    g.Metadata,
	}
	for _, node := range g.nodes {
		pos := node.Position
		p.Nodes = append(p.Nodes, NodePayload{
			ID:       node.ID,
			Type:     node.TypeID,
			Position: &pos,
			Config:   node.Config,
		})
	}
	for _, conn := range g.connections {
		p.Connections = append(p.Connections, ConnectionPayload{
			ID:   conn.ID,
			From: conn.From,
			To:   conn.To,
			Kind: conn.Kind,
		})
	}
	return p
}

// Serialize renders the canonical JSON representation. Output is
// deterministic: slices keep insertion order and encoding/json sorts map
// keys.
func (g *Graph) Serialize() ([]byte, error) {
	data, err := json.MarshalIndent(g.Payload(), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "serialize graph")
	}
	return data, nil
}

// ParseGraph decodes a graph payload and rebuilds the graph against the
// catalog. A single yaml.Unmarshal handles both YAML and JSON payloads.
//
// Parsing is deliberately permissive about referential problems: dangling
// connection endpoints and unknown component types are preserved so the
// validator can report the complete picture. Duplicate node ids are
// rejected here because the id index cannot represent them.
func ParseGraph(data []byte, catalog *Catalog) (*Graph, error) {
	var payload GraphPayload
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "decode graph payload").
			WithTextCode(ErrCodeInvalidPayload)
	}
	return FromPayload(payload, catalog)
}

// FromPayload rebuilds a graph from an already-decoded payload value.
func FromPayload(payload GraphPayload, catalog *Catalog) (*Graph, error) {
	g := NewGraph(catalog)
	g.Metadata = payload.Metadata

	for _, np := range payload.Nodes {
		if np.ID == "" {
			return nil, cloneModelError(ErrInvalidPayload, "node id cannot be empty", nil)
		}
		if _, exists := g.index[np.ID]; exists {
			return nil, cloneModelError(ErrDuplicateNode,
				fmt.Sprintf("duplicate node id %q", np.ID),
				map[string]any{"node_id": np.ID})
		}
		var pos Position
		if np.Position != nil {
			pos = *np.Position
		}
		node := &Node{
			ID:       np.ID,
			TypeID:   np.Type,
			Position: pos,
			Config:   np.Config,
		}
		g.index[node.ID] = len(g.nodes)
		g.nodes = append(g.nodes, node)
	}

	for i, cp := range payload.Connections {
		id := cp.ID
		if id == "" {
			id = fmt.Sprintf("conn-%d", i)
		}
		kind := cp.Kind
		if kind == "" {
			kind = ConnectionKindData
		}
		pair := connPair{from: cp.From, to: cp.To}
		if existing, ok := g.pairs[pair]; ok {
			return nil, cloneModelError(ErrDuplicateConnection,
				fmt.Sprintf("duplicate connection %s -> %s", cp.From, cp.To),
				map[string]any{"connection_id": existing})
		}
		g.pairs[pair] = id
		g.connections = append(g.connections, &Connection{
			ID:   id,
			From: cp.From,
			To:   cp.To,
			Kind: kind,
		})
	}

	return g, nil
}
