package forge

import "strings"

// Category classifies a component for graph-level rules. The set is closed:
// validators and exporters switch over it rather than pattern-matching type
// id strings.
type Category string

const (
	CategoryAgent     Category = "agent"
	CategoryTrigger   Category = "trigger"
	CategoryAction    Category = "action"
	CategoryCondition Category = "condition"
	CategoryOutput    Category = "output"
	CategoryMemory    Category = "memory"
	CategoryTemplate  Category = "template"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryAgent, CategoryTrigger, CategoryAction, CategoryCondition,
		CategoryOutput, CategoryMemory, CategoryTemplate:
		return true
	}
	return false
}

// ConfigField declares one configurable field on a component.
type ConfigField struct {
	Name     string   `json:"name" yaml:"name"`
	Kind     string   `json:"kind" yaml:"kind"`
	Default  any      `json:"default,omitempty" yaml:"default,omitempty"`
	Enum     []string `json:"enum,omitempty" yaml:"enum,omitempty"`
	Required bool     `json:"required,omitempty" yaml:"required,omitempty"`
}

// Port is a named connection point on a component.
type Port struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	DataType string `json:"data_type" yaml:"data_type"`
}

// Component is a read-only catalog entry describing one node type.
type Component struct {
	TypeID      string        `json:"type_id" yaml:"type_id"`
	Name        string        `json:"name" yaml:"name"`
	Category    Category      `json:"category" yaml:"category"`
	Icon        string        `json:"icon,omitempty" yaml:"icon,omitempty"`
	Color       string        `json:"color,omitempty" yaml:"color,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Inputs      []Port        `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs     []Port        `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	Config      []ConfigField `json:"config,omitempty" yaml:"config,omitempty"`
}

// DefaultConfig seeds a node config map from the declared field defaults.
func (c Component) DefaultConfig() map[string]any {
	cfg := make(map[string]any, len(c.Config))
	for _, f := range c.Config {
		if f.Default != nil {
			cfg[f.Name] = f.Default
		}
	}
	return cfg
}

// Catalog is the static component registry consumed by graph mutation and
// validation. It is loaded once and never mutated by the pipeline.
type Catalog struct {
	byType map[string]Component
	order  []string
}

// NewCatalog builds a catalog from components. Later entries with the same
// type id replace earlier ones.
func NewCatalog(components ...Component) *Catalog {
	c := &Catalog{byType: make(map[string]Component, len(components))}
	for _, comp := range components {
		if _, exists := c.byType[comp.TypeID]; !exists {
			c.order = append(c.order, comp.TypeID)
		}
		c.byType[comp.TypeID] = comp
	}
	return c
}

// Lookup resolves a component by type id.
func (c *Catalog) Lookup(typeID string) (Component, bool) {
	comp, ok := c.byType[typeID]
	return comp, ok
}

// Components returns all entries in registration order.
func (c *Catalog) Components() []Component {
	out := make([]Component, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byType[id])
	}
	return out
}

// ByCategory returns entries of one category in registration order.
func (c *Catalog) ByCategory(cat Category) []Component {
	var out []Component
	for _, id := range c.order {
		if comp := c.byType[id]; comp.Category == cat {
			out = append(out, comp)
		}
	}
	return out
}

// Categories returns the distinct categories present, in first-seen order.
func (c *Catalog) Categories() []Category {
	seen := make(map[Category]struct{})
	var out []Category
	for _, id := range c.order {
		cat := c.byType[id].Category
		if _, ok := seen[cat]; ok {
			continue
		}
		seen[cat] = struct{}{}
		out = append(out, cat)
	}
	return out
}

var defaultCatalog = NewCatalog(builtinComponents()...)

// DefaultCatalog returns the built-in component registry.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

func builtinComponents() []Component {
	return []Component{
		{
			TypeID:      "claude-agent",
			Name:        "Claude Agent",
			Category:    CategoryAgent,
			Icon:        "🤖",
			Color:       "#FF5722",
			Description: "Process input with a Claude model",
			Inputs:      []Port{{ID: "input", Name: "Prompt", DataType: "string"}},
			Outputs: []Port{
				{ID: "output", Name: "Response", DataType: "string"},
				{ID: "metadata", Name: "Metadata", DataType: "object"},
			},
			Config: []ConfigField{
				{Name: "model", Kind: "string", Default: "claude-sonnet-4", Required: true,
					Enum: []string{"claude-sonnet-4", "claude-opus-4"}},
				{Name: "role", Kind: "string"},
				{Name: "temperature", Kind: "number", Default: 0.7},
				{Name: "max_tokens", Kind: "number", Default: 4096},
			},
		},
		{
			TypeID:      "gpt-agent",
			Name:        "GPT Agent",
			Category:    CategoryAgent,
			Icon:        "🤖",
			Color:       "#00A67E",
			Description: "Process input with a GPT model",
			Inputs:      []Port{{ID: "input", Name: "Prompt", DataType: "string"}},
			Outputs:     []Port{{ID: "output", Name: "Response", DataType: "string"}},
			Config: []ConfigField{
				{Name: "model", Kind: "string", Default: "gpt-4", Required: true},
				{Name: "role", Kind: "string"},
				{Name: "temperature", Kind: "number", Default: 0.7},
				{Name: "max_tokens", Kind: "number", Default: 4096},
			},
		},
		{
			TypeID:      "gemini-agent",
			Name:        "Gemini Agent",
			Category:    CategoryAgent,
			Icon:        "🤖",
			Color:       "#4285F4",
			Description: "Process input with a Gemini model",
			Inputs:      []Port{{ID: "input", Name: "Prompt", DataType: "string"}},
			Outputs:     []Port{{ID: "output", Name: "Response", DataType: "string"}},
			Config: []ConfigField{
				{Name: "model", Kind: "string", Default: "gemini-pro", Required: true},
				{Name: "role", Kind: "string"},
				{Name: "temperature", Kind: "number", Default: 0.7},
				{Name: "max_tokens", Kind: "number", Default: 4096},
			},
		},
		{
			TypeID:      "cron-trigger",
			Name:        "Cron Trigger",
			Category:    CategoryTrigger,
			Icon:        "⏰",
			Color:       "#4CAF50",
			Description: "Run on a cron schedule",
			Outputs:     []Port{{ID: "output", Name: "Event", DataType: "object"}},
			Config: []ConfigField{
				{Name: "schedule", Kind: "string", Default: "0 * * * *"},
				{Name: "timezone", Kind: "string", Default: "UTC"},
			},
		},
		{
			TypeID:      "folder-watcher",
			Name:        "Folder Watcher",
			Category:    CategoryTrigger,
			Icon:        "📁",
			Color:       "#795548",
			Description: "Watch a folder for new or changed files",
			Outputs:     []Port{{ID: "output", Name: "File Event", DataType: "object"}},
			Config: []ConfigField{
				{Name: "path", Kind: "string"},
				{Name: "patterns", Kind: "array", Default: []string{"*"}},
				{Name: "recursive", Kind: "boolean", Default: false},
			},
		},
		{
			TypeID:      "email-trigger",
			Name:        "Email Trigger",
			Category:    CategoryTrigger,
			Icon:        "📧",
			Color:       "#2196F3",
			Description: "Poll a mailbox for new messages",
			Outputs:     []Port{{ID: "output", Name: "Message", DataType: "object"}},
			Config: []ConfigField{
				{Name: "protocol", Kind: "string", Default: "imap", Enum: []string{"imap", "pop3"}},
				{Name: "host", Kind: "string"},
				{Name: "port", Kind: "number", Default: 993},
				{Name: "folder", Kind: "string", Default: "INBOX"},
			},
		},
		{
			TypeID:      "api-trigger",
			Name:        "API Trigger",
			Category:    CategoryTrigger,
			Icon:        "🔗",
			Color:       "#9C27B0",
			Description: "Trigger via an HTTP endpoint",
			Outputs:     []Port{{ID: "output", Name: "Request", DataType: "object"}},
			Config: []ConfigField{
				{Name: "method", Kind: "string", Default: "POST",
					Enum: []string{"GET", "POST", "PUT", "DELETE"}},
				{Name: "path", Kind: "string", Default: "/webhook"},
				{Name: "port", Kind: "number", Default: 3000},
			},
		},
		{
			TypeID:      "manual-trigger",
			Name:        "Manual Trigger",
			Category:    CategoryTrigger,
			Icon:        "👆",
			Color:       "#607D8B",
			Description: "Run only when invoked by hand",
			Outputs:     []Port{{ID: "output", Name: "Event", DataType: "object"}},
		},
		{
			TypeID:      "drive-output",
			Name:        "Drive Output",
			Category:    CategoryOutput,
			Icon:        "💾",
			Color:       "#FBBC04",
			Description: "Write the result to a drive folder",
			Inputs:      []Port{{ID: "input", Name: "Content", DataType: "any"}},
			Config: []ConfigField{
				{Name: "path", Kind: "string"},
				{Name: "filename", Kind: "string", Default: "output.txt"},
			},
		},
		{
			TypeID:      "webhook-output",
			Name:        "Webhook Output",
			Category:    CategoryOutput,
			Icon:        "🌐",
			Color:       "#00BCD4",
			Description: "POST the result to a webhook",
			Inputs:      []Port{{ID: "input", Name: "Content", DataType: "any"}},
			Config: []ConfigField{
				{Name: "url", Kind: "string"},
				{Name: "method", Kind: "string", Default: "POST",
					Enum: []string{"POST", "PUT", "PATCH"}},
			},
		},
		{
			TypeID:      "log-output",
			Name:        "Log Output",
			Category:    CategoryOutput,
			Icon:        "📋",
			Color:       "#9E9E9E",
			Description: "Append the result to a log file",
			Inputs:      []Port{{ID: "input", Name: "Content", DataType: "any"}},
			Config: []ConfigField{
				{Name: "path", Kind: "string", Default: "./agent.log"},
				{Name: "level", Kind: "string", Default: "info",
					Enum: []string{"debug", "info", "warning", "error"}},
			},
		},
		{
			TypeID:      "email-output",
			Name:        "Email Output",
			Category:    CategoryOutput,
			Icon:        "📤",
			Color:       "#E91E63",
			Description: "Send the result by email",
			Inputs:      []Port{{ID: "input", Name: "Content", DataType: "any"}},
			Config: []ConfigField{
				{Name: "host", Kind: "string"},
				{Name: "from", Kind: "string"},
				{Name: "to", Kind: "string"},
				{Name: "subject", Kind: "string", Default: "Agent result"},
			},
		},
		{
			TypeID:      "memory-store",
			Name:        "Memory Store",
			Category:    CategoryMemory,
			Icon:        "🧠",
			Color:       "#673AB7",
			Description: "Persist conversation state between runs",
			Config: []ConfigField{
				{Name: "type", Kind: "string", Default: "file",
					Enum: []string{"file", "sqlite", "temporary"}},
				{Name: "path", Kind: "string", Default: "./memory"},
			},
		},
		{
			TypeID:      "prompt-template",
			Name:        "Prompt Template",
			Category:    CategoryTemplate,
			Icon:        "📝",
			Color:       "#FF9800",
			Description: "Interpolate input into a prompt template",
			Inputs:      []Port{{ID: "input", Name: "Variables", DataType: "object"}},
			Outputs:     []Port{{ID: "output", Name: "Prompt", DataType: "string"}},
			Config: []ConfigField{
				{Name: "template", Kind: "string"},
			},
		},
		{
			TypeID:      "http-action",
			Name:        "HTTP Request",
			Category:    CategoryAction,
			Icon:        "🌐",
			Color:       "#00BCD4",
			Description: "Make an HTTP request",
			Inputs:      []Port{{ID: "input", Name: "Body", DataType: "any"}},
			Outputs:     []Port{{ID: "output", Name: "Response", DataType: "object"}},
			Config: []ConfigField{
				{Name: "method", Kind: "string", Default: "GET",
					Enum: []string{"GET", "POST", "PUT", "DELETE", "PATCH"}},
				{Name: "url", Kind: "string"},
				{Name: "timeout_ms", Kind: "number", Default: 30000},
			},
		},
		{
			TypeID:      "transform-action",
			Name:        "Transform",
			Category:    CategoryAction,
			Icon:        "🔄",
			Color:       "#FFC107",
			Description: "Reshape data between nodes",
			Inputs:      []Port{{ID: "input", Name: "Input", DataType: "any"}},
			Outputs:     []Port{{ID: "output", Name: "Output", DataType: "any"}},
			Config: []ConfigField{
				{Name: "expression", Kind: "string"},
			},
		},
		{
			TypeID:      "filter-condition",
			Name:        "Filter",
			Category:    CategoryCondition,
			Icon:        "🔀",
			Color:       "#FF9800",
			Description: "Route data by a condition expression",
			Inputs:      []Port{{ID: "input", Name: "Input", DataType: "any"}},
			Outputs: []Port{
				{ID: "true", Name: "True Branch", DataType: "any"},
				{ID: "false", Name: "False Branch", DataType: "any"},
			},
			Config: []ConfigField{
				{Name: "condition", Kind: "string"},
			},
		},
	}
}

// NormalizeTypeID trims and lowercases an external type id.
func NormalizeTypeID(typeID string) string {
	return strings.ToLower(strings.TrimSpace(typeID))
}
