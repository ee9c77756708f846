package planner

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var promptsYAML []byte

type promptSpec struct {
	Model    string `yaml:"model"`
	Template string `yaml:"template"`
}

type promptCatalog struct {
	specs     map[string]promptSpec
	templates map[string]*template.Template
}

func loadPromptCatalog() (*promptCatalog, error) {
	specs := make(map[string]promptSpec)
	if err := yaml.Unmarshal(promptsYAML, &specs); err != nil {
		return nil, fmt.Errorf("parse prompt catalog: %w", err)
	}

	catalog := &promptCatalog{
		specs:     specs,
		templates: make(map[string]*template.Template, len(specs)),
	}
	for name, spec := range specs {
		if strings.TrimSpace(spec.Model) == "" {
			return nil, fmt.Errorf("prompt %s has no model", name)
		}
		parsed, err := template.New(name).Parse(spec.Template)
		if err != nil {
			return nil, fmt.Errorf("parse prompt template %s: %w", name, err)
		}
		catalog.templates[name] = parsed
	}
	return catalog, nil
}

func (catalog *promptCatalog) model(name string) string {
	return catalog.specs[name].Model
}

func (catalog *promptCatalog) render(name string, data any) (string, error) {
	parsed, ok := catalog.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown prompt %s", name)
	}

	builder := &strings.Builder{}
	if err := parsed.Execute(builder, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return builder.String(), nil
}
