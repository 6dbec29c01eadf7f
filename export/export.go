// Package export compiles a validated agent graph into a declarative
// configuration in one of several target formats. Compilation is a pure
// function of the graph: two calls on an unmodified graph produce
// byte-identical output.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	errors "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"

	forge "github.com/goliatone/go-forge"
)

// Target selects the output format.
type Target string

const (
	TargetYAML        Target = "yaml"
	TargetJSON        Target = "json"
	TargetJSONCompact Target = "json_compact"
	TargetN8N         Target = "n8n"
	TargetMCP         Target = "mcp"
)

const (
	defaultModel       = "claude-sonnet-4"
	defaultRole        = "You are a helpful assistant."
	defaultTemperature = 0.7
	defaultMaxTokens   = 4096
	defaultName        = "untitled_agent"
)

const ErrCodeUnsupportedTarget = "EXPORT_UNSUPPORTED_TARGET"

var ErrUnsupportedTarget = errors.New("unsupported export target", errors.CategoryBadInput).
	WithTextCode(ErrCodeUnsupportedTarget)

// Targets lists every supported target.
func Targets() []Target {
	return []Target{TargetYAML, TargetJSON, TargetJSONCompact, TargetN8N, TargetMCP}
}

// ParseTarget resolves a target from its string form.
func ParseTarget(s string) (Target, error) {
	t := Target(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Targets() {
		if t == known {
			return t, nil
		}
	}
	err := ErrUnsupportedTarget.Clone()
	err.Message = fmt.Sprintf("unsupported export target %q", s)
	return "", err
}

// Compile renders the graph in the requested target format.
//
// The graph is re-checked for an agent node even though the validator
// should already have caught its absence; the exporter does not trust an
// unvalidated graph.
func Compile(g *forge.Graph, target Target) (string, error) {
	agent, err := g.AgentNode()
	if err != nil {
		return "", err
	}

	doc := buildDocument(g, agent)

	switch target {
	case TargetYAML:
		return marshalYAML(doc)
	case TargetJSON:
		payload := g.Payload()
		doc.Metadata = &payload.Metadata
		doc.Graph = &GraphSpec{Nodes: payload.Nodes, Connections: payload.Connections}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", errors.Wrap(err, errors.CategoryBadInput, "encode json export")
		}
		return string(data), nil
	case TargetJSONCompact:
		data, err := json.Marshal(doc)
		if err != nil {
			return "", errors.Wrap(err, errors.CategoryBadInput, "encode compact json export")
		}
		return string(data), nil
	case TargetN8N:
		return compileN8N(doc)
	case TargetMCP:
		return compileMCP(g, agent, doc)
	default:
		err := ErrUnsupportedTarget.Clone()
		err.Message = fmt.Sprintf("unsupported export target %q", target)
		return "", err
	}
}

func buildDocument(g *forge.Graph, agent *forge.Node) Document {
	doc := Document{
		Name:  exportName(g.Metadata.Name),
		Model: agent.ConfigString("model", defaultModel),
	}

	if memories := g.NodesByCategory(forge.CategoryMemory); len(memories) > 0 {
		mem := memories[0]
		doc.Memory = &MemorySpec{
			Type: mem.ConfigString("type", ""),
			Path: mem.ConfigString("path", ""),
		}
	}

	for _, trigger := range g.NodesByCategory(forge.CategoryTrigger) {
		doc.Triggers = append(doc.Triggers, triggerSpec(trigger))
		if trigger.TypeID == "folder-watcher" {
			recursive := trigger.ConfigBool("recursive", false)
			doc.Inputs = append(doc.Inputs, InputSpec{
				Type:      "folder_watch",
				Path:      trigger.ConfigString("path", ""),
				Patterns:  trigger.ConfigStrings("patterns", []string{"*"}),
				Recursive: &recursive,
			})
		}
	}

	doc.Processing = ProcessingSpec{
		Role:        agent.ConfigString("role", defaultRole),
		Temperature: agent.ConfigFloat("temperature", defaultTemperature),
		MaxTokens:   agent.ConfigInt("max_tokens", defaultMaxTokens),
	}

	for _, output := range g.NodesByCategory(forge.CategoryOutput) {
		doc.Outputs = append(doc.Outputs, outputSpec(output))
	}

	return doc
}

func triggerSpec(node *forge.Node) TriggerSpec {
	switch node.TypeID {
	case "cron-trigger":
		return TriggerSpec{
			Type:     "cron",
			Schedule: node.ConfigString("schedule", ""),
			Timezone: node.ConfigString("timezone", "UTC"),
		}
	case "folder-watcher":
		recursive := node.ConfigBool("recursive", false)
		return TriggerSpec{
			Type:      "folder_watch",
			Path:      node.ConfigString("path", ""),
			Patterns:  node.ConfigStrings("patterns", []string{"*"}),
			Recursive: &recursive,
		}
	case "email-trigger":
		return TriggerSpec{
			Type:     "email",
			Protocol: node.ConfigString("protocol", ""),
			Host:     node.ConfigString("host", ""),
			Port:     node.ConfigInt("port", 0),
			Folder:   node.ConfigString("folder", "INBOX"),
		}
	case "api-trigger":
		return TriggerSpec{
			Type:   "api",
			Method: node.ConfigString("method", "POST"),
			Path:   node.ConfigString("path", ""),
			Port:   node.ConfigInt("port", 3000),
		}
	default:
		return TriggerSpec{Type: "manual"}
	}
}

func outputSpec(node *forge.Node) OutputSpec {
	switch node.TypeID {
	case "drive-output":
		return OutputSpec{
			Type:     "drive",
			Path:     node.ConfigString("path", ""),
			Filename: node.ConfigString("filename", ""),
		}
	case "webhook-output":
		return OutputSpec{
			Type:   "webhook",
			URL:    node.ConfigString("url", ""),
			Method: node.ConfigString("method", "POST"),
		}
	case "log-output":
		return OutputSpec{
			Type:  "log",
			Path:  node.ConfigString("path", ""),
			Level: node.ConfigString("level", "info"),
		}
	case "email-output":
		return OutputSpec{
			Type:    "email",
			Host:    node.ConfigString("host", ""),
			From:    node.ConfigString("from", ""),
			To:      node.ConfigString("to", ""),
			Subject: node.ConfigString("subject", ""),
		}
	default:
		return OutputSpec{Type: "console"}
	}
}

func marshalYAML(doc Document) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return "", errors.Wrap(err, errors.CategoryBadInput, "encode yaml export")
	}
	if err := enc.Close(); err != nil {
		return "", errors.Wrap(err, errors.CategoryBadInput, "encode yaml export")
	}
	return buf.String(), nil
}

func compileN8N(doc Document) (string, error) {
	workflow := N8NWorkflow{
		Name:        doc.Name,
		Nodes:       []any{},
		Connections: map[string]any{},
		Active:      false,
	}
	data, err := json.MarshalIndent(workflow, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryBadInput, "encode n8n export")
	}
	return string(data), nil
}

func compileMCP(g *forge.Graph, agent *forge.Node, doc Document) (string, error) {
	mcp := MCPDocument{
		Agent: MCPAgent{
			Name:        doc.Name,
			Description: g.Metadata.Description,
			Version:     "1.0.0",
		},
		Model: MCPModel{
			Provider: ProviderForModel(doc.Model),
			Name:     doc.Model,
		},
		Context: MCPContext{
			Role:   doc.Processing.Role,
			Memory: doc.Memory,
		},
		Triggers: doc.Triggers,
		Outputs:  doc.Outputs,
	}
	if mcp.Triggers == nil {
		mcp.Triggers = []TriggerSpec{}
	}
	if mcp.Outputs == nil {
		mcp.Outputs = []OutputSpec{}
	}
	data, err := json.MarshalIndent(mcp, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryBadInput, "encode mcp export")
	}
	return string(data), nil
}

// ProviderForModel infers the provider slug from a model name.
func ProviderForModel(model string) string {
	lower := strings.ToLower(model)
	switch {
	case strings.Contains(lower, "claude"):
		return "anthropic"
	case strings.Contains(lower, "gpt"):
		return "openai"
	case strings.Contains(lower, "gemini"):
		return "google"
	case strings.Contains(lower, "llama"):
		return "meta"
	default:
		return "unknown"
	}
}

func exportName(name string) string {
	if sanitized := SanitizeName(name); sanitized != "" {
		return sanitized
	}
	return defaultName
}
