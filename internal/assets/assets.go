// Package assets embeds the schemas and templates the engine ships with.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed embedded_schemas
var schemaFS embed.FS

//go:embed embedded_templates
var templateFS embed.FS

// knownSchemas maps schema names to their embedded paths. Directory-based
// versioning: v1.0.0 is the current version.
var knownSchemas = map[string]string{
	"term-batch-v1.0.0": "embedded_schemas/schemas/batch/v1.0.0/term-batch.yaml",
}

// GetSchema returns the embedded schema bytes for a known schema name.
func GetSchema(name string) ([]byte, bool) {
	path, ok := knownSchemas[name]
	if !ok {
		return nil, false
	}
	data, err := schemaFS.ReadFile(path)
	return data, err == nil
}

// SchemaNames returns the names of all embedded schemas.
func SchemaNames() []string {
	names := make([]string, 0, len(knownSchemas))
	for name := range knownSchemas {
		names = append(names, name)
	}
	return names
}

// GetTemplate returns an embedded template by name (e.g., "report.md.hbs").
func GetTemplate(name string) ([]byte, bool) {
	data, err := templateFS.ReadFile("embedded_templates/" + name)
	return data, err == nil
}

// GetTemplatesFS returns the embedded templates as a filesystem rooted at
// the template directory.
func GetTemplatesFS() fs.FS {
	if sub, err := fs.Sub(templateFS, "embedded_templates"); err == nil {
		return sub
	}
	return templateFS
}
