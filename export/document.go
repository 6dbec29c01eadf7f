package export

import forge "github.com/goliatone/go-forge"

// Document is the declarative agent configuration produced by Compile.
// Field order here is the emission order for every target, which is what
// makes the output deterministic.
type Document struct {
	Name       string         `yaml:"name" json:"name"`
	Model      string         `yaml:"model" json:"model"`
	Memory     *MemorySpec    `yaml:"memory,omitempty" json:"memory,omitempty"`
	Triggers   []TriggerSpec  `yaml:"triggers,omitempty" json:"triggers,omitempty"`
	Inputs     []InputSpec    `yaml:"inputs,omitempty" json:"inputs,omitempty"`
	Processing ProcessingSpec `yaml:"processing" json:"processing"`
	Outputs    []OutputSpec   `yaml:"outputs,omitempty" json:"outputs,omitempty"`

	// Full-fidelity JSON only: caller metadata plus the raw graph so a
	// re-import can reconstruct the visual layout.
	Metadata *forge.Metadata `yaml:"-" json:"metadata,omitempty"`
	Graph    *GraphSpec      `yaml:"-" json:"graph,omitempty"`
}

// MemorySpec carries the memory node's type and path verbatim.
type MemorySpec struct {
	Type string `yaml:"type,omitempty" json:"type,omitempty"`
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
}

// TriggerSpec is one trigger descriptor. Only the fields of the mapped
// trigger subtype are populated.
type TriggerSpec struct {
	Type      string   `yaml:"type" json:"type"`
	Schedule  string   `yaml:"schedule,omitempty" json:"schedule,omitempty"`
	Timezone  string   `yaml:"timezone,omitempty" json:"timezone,omitempty"`
	Path      string   `yaml:"path,omitempty" json:"path,omitempty"`
	Patterns  []string `yaml:"patterns,omitempty" json:"patterns,omitempty"`
	Recursive *bool    `yaml:"recursive,omitempty" json:"recursive,omitempty"`
	Protocol  string   `yaml:"protocol,omitempty" json:"protocol,omitempty"`
	Host      string   `yaml:"host,omitempty" json:"host,omitempty"`
	Port      int      `yaml:"port,omitempty" json:"port,omitempty"`
	Folder    string   `yaml:"folder,omitempty" json:"folder,omitempty"`
	Method    string   `yaml:"method,omitempty" json:"method,omitempty"`
}

// InputSpec is one input-source descriptor. Only watcher nodes contribute
// inputs today; the mapping is intentionally narrow.
type InputSpec struct {
	Type      string   `yaml:"type" json:"type"`
	Path      string   `yaml:"path,omitempty" json:"path,omitempty"`
	Patterns  []string `yaml:"patterns,omitempty" json:"patterns,omitempty"`
	Recursive *bool    `yaml:"recursive,omitempty" json:"recursive,omitempty"`
}

// ProcessingSpec describes the agent invocation parameters.
type ProcessingSpec struct {
	Role        string  `yaml:"role" json:"role"`
	Temperature float64 `yaml:"temperature" json:"temperature"`
	MaxTokens   int     `yaml:"max_tokens" json:"max_tokens"`
}

// OutputSpec is one output sink descriptor.
type OutputSpec struct {
	Type     string `yaml:"type" json:"type"`
	Path     string `yaml:"path,omitempty" json:"path,omitempty"`
	Filename string `yaml:"filename,omitempty" json:"filename,omitempty"`
	URL      string `yaml:"url,omitempty" json:"url,omitempty"`
	Method   string `yaml:"method,omitempty" json:"method,omitempty"`
	Level    string `yaml:"level,omitempty" json:"level,omitempty"`
	Host     string `yaml:"host,omitempty" json:"host,omitempty"`
	From     string `yaml:"from,omitempty" json:"from,omitempty"`
	To       string `yaml:"to,omitempty" json:"to,omitempty"`
	Subject  string `yaml:"subject,omitempty" json:"subject,omitempty"`
}

// GraphSpec is the raw node/connection payload appended to full JSON
// exports for round-trip fidelity.
type GraphSpec struct {
	Nodes       []forge.NodePayload       `json:"nodes"`
	Connections []forge.ConnectionPayload `json:"connections"`
}

// N8NWorkflow is the n8n export shell. The node-type and connection
// mapping to n8n's schema is not implemented; this target emits an empty
// workflow skeleton and nothing more.
type N8NWorkflow struct {
	Name        string         `json:"name"`
	Nodes       []any          `json:"nodes"`
	Connections map[string]any `json:"connections"`
	Active      bool           `json:"active"`
}

// MCPDocument is the Model Context Protocol export shape.
type MCPDocument struct {
	Agent    MCPAgent      `json:"agent"`
	Model    MCPModel      `json:"model"`
	Context  MCPContext    `json:"context"`
	Triggers []TriggerSpec `json:"triggers"`
	Outputs  []OutputSpec  `json:"outputs"`
}

type MCPAgent struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

type MCPModel struct {
	Provider string `json:"provider"`
	Name     string `json:"name"`
}

type MCPContext struct {
	Role   string      `json:"role"`
	Memory *MemorySpec `json:"memory,omitempty"`
}
