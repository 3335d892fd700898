package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/scenarist/pkg/domain"
)

// TemplatesMarkdown lists the step types with their starter documents.
func TemplatesMarkdown(templates []domain.StepTemplate) (string, error) {
	var b strings.Builder
	b.WriteString("# Step types\n\n")
	b.WriteString("| Type | Name | Description |\n|---|---|---|\n")
	for _, t := range templates {
		fmt.Fprintf(&b, "| `%s` | %s | %s |\n", t.Type, t.Type.Label(), t.Description)
	}
	for _, t := range templates {
		doc, err := TemplateMarkdown(t)
		if err != nil {
			return "", err
		}
		b.WriteString("\n")
		b.WriteString(doc)
	}
	return b.String(), nil
}

// TemplateMarkdown renders one template as a heading and a json code block.
func TemplateMarkdown(t domain.StepTemplate) (string, error) {
	doc, err := t.Document()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "## %s (`%s`)\n\n", t.Type.Label(), t.Type)
	if t.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", t.Description)
	}
	fmt.Fprintf(&b, "```json\n%s\n```\n", doc)
	return b.String(), nil
}
