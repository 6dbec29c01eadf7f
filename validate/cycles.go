package validate

import (
	forge "github.com/goliatone/go-forge"
)

const (
	colorWhite = iota // never entered
	colorGray         // on the active DFS path
	colorBlack        // fully explored
)

// HasCycle reports whether the directed graph induced by the connections
// contains a cycle. The walk is an explicit-stack three-color DFS so large
// graphs cannot blow the goroutine stack; connections with dangling
// endpoints are ignored. O(V+E).
func HasCycle(g *forge.Graph) bool {
	adjacency := make(map[string][]string)
	for _, conn := range g.Connections() {
		if !g.HasNode(conn.From) || !g.HasNode(conn.To) {
			continue
		}
		adjacency[conn.From] = append(adjacency[conn.From], conn.To)
	}

	color := make(map[string]int, len(adjacency))

	type frame struct {
		id   string
		next int
	}

	for _, node := range g.Nodes() {
		if color[node.ID] != colorWhite {
			continue
		}
		stack := []frame{{id: node.ID}}
		color[node.ID] = colorGray

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			neighbors := adjacency[top.id]

			if top.next < len(neighbors) {
				neighbor := neighbors[top.next]
				top.next++
				switch color[neighbor] {
				case colorGray:
					return true
				case colorWhite:
					color[neighbor] = colorGray
					stack = append(stack, frame{id: neighbor})
				}
				continue
			}

			color[top.id] = colorBlack
			stack = stack[:len(stack)-1]
		}
	}
	return false
}
