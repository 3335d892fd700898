package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/scenarist/pkg/catalog"
	"github.com/aretw0/scenarist/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesMarkdown(t *testing.T) {
	md, err := TemplatesMarkdown(catalog.Default().Templates())
	require.NoError(t, err)

	assert.Contains(t, md, "| `gpt_request` | GPT запрос |")
	assert.Contains(t, md, "## Завершение (`end`)")
	assert.Contains(t, md, "```json\n{\n  \"message\": \"Сценарий завершен. Спасибо!\"\n}\n```")
	assert.Equal(t, 5, strings.Count(md, "```json"))
}

func TestTemplateMarkdown_NoDescription(t *testing.T) {
	md, err := TemplateMarkdown(domain.StepTemplate{
		Type: domain.StepEnd,
		Data: domain.EndData{Message: "bye"},
	})
	require.NoError(t, err)
	assert.Equal(t, "## Завершение (`end`)\n\n```json\n{\n  \"message\": \"bye\"\n}\n```\n", md)
}

func TestStyledRenderer(t *testing.T) {
	render, err := NewStyledRenderer("notty", 60)
	require.NoError(t, err)

	out, err := render("# Step types\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Step types")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "0.1.0")

	assert.Contains(t, buf.String(), "v0.1.0")
	assert.NotContains(t, buf.String(), "\x1b[", "no colours outside a terminal")
}
