package export

import (
	"os"
	"path/filepath"

	errors "github.com/goliatone/go-errors"

	forge "github.com/goliatone/go-forge"
)

// Save compiles the graph and writes the result under dir, named after the
// sanitized graph name. It returns the written path.
func Save(g *forge.Graph, target Target, dir string) (string, error) {
	content, err := Compile(g, target)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, errors.CategoryExternal, "create export directory")
	}

	path := filepath.Join(dir, exportName(g.Metadata.Name)+targetSuffix(target))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", errors.Wrap(err, errors.CategoryExternal, "write export file")
	}
	return path, nil
}

func targetSuffix(target Target) string {
	switch target {
	case TargetYAML:
		return ".yaml"
	case TargetJSONCompact:
		return ".compact.json"
	case TargetN8N:
		return "_n8n.json"
	case TargetMCP:
		return "_mcp.json"
	default:
		return ".json"
	}
}
