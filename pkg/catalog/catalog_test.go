package catalog_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/aretw0/scenarist/pkg/catalog"
	"github.com/aretw0/scenarist/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestDefault_TemplateAttributes(t *testing.T) {
	want := map[domain.StepType][]string{
		domain.StepMessage:    {"text", "transitions"},
		domain.StepGPTRequest: {"prompt", "transitions"},
		domain.StepInput:      {"response", "save_as", "text", "transitions"},
		domain.StepCondition:  {"conditions"},
		domain.StepEnd:        {"message"},
	}

	cat := catalog.Default()
	for stepType, attrs := range want {
		t.Run(string(stepType), func(t *testing.T) {
			tmpl, ok := cat.Template(stepType)
			require.True(t, ok)

			fields, err := tmpl.Fields()
			require.NoError(t, err)
			assert.Equal(t, attrs, keys(fields))
		})
	}
}

func TestDefault_TransitionsAreUnresolved(t *testing.T) {
	tmpl, ok := catalog.Default().Template(domain.StepMessage)
	require.True(t, ok)

	fields, err := tmpl.Fields()
	require.NoError(t, err)

	transitions := fields["transitions"].([]any)
	require.Len(t, transitions, 1)
	tr := transitions[0].(map[string]any)
	assert.Equal(t, "always", tr["condition"])
	assert.Contains(t, tr, "next_step_order")
	assert.Nil(t, tr["next_step_order"])

	cond, _ := catalog.Default().Template(domain.StepCondition)
	fields, err = cond.Fields()
	require.NoError(t, err)
	clause := fields["conditions"].([]any)[0].(map[string]any)
	assert.Equal(t, []string{"field", "next_step_order", "operator", "value"}, keys(clause))
}

func TestDefault_EndDocument(t *testing.T) {
	tmpl, ok := catalog.Default().Template(domain.StepEnd)
	require.True(t, ok)

	doc, err := tmpl.Document()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"message\": \"Сценарий завершен. Спасибо!\"\n}", doc)
}

func TestTemplate_Unknown(t *testing.T) {
	_, ok := catalog.Default().Template("keyboard")
	assert.False(t, ok)
}

func TestTemplate_ReturnsCopies(t *testing.T) {
	cat := catalog.Default()
	first, _ := cat.Template(domain.StepMessage)
	data := first.Data.(domain.MessageData)
	data.Transitions[0].Condition = "mutated"

	second, _ := cat.Template(domain.StepMessage)
	assert.Equal(t, "always", second.Data.(domain.MessageData).Transitions[0].Condition)
}

func TestDefault_TypesAndMarkers(t *testing.T) {
	cat := catalog.Default()
	assert.Equal(t, domain.StepTypes, cat.Types())
	assert.Same(t, cat, catalog.Default())

	markers := cat.Markers()
	assert.Contains(t, markers, "Введите")
	assert.Contains(t, markers, "Доступные переменные")
	assert.Contains(t, markers, "Что вы хотите")
	assert.Contains(t, markers, "Сценарий завершен")
	assert.Len(t, markers, 5, "shared markers are listed once")
}

func TestNew_Rejects(t *testing.T) {
	_, err := catalog.New(catalog.Entry{Type: "jump", Markers: []string{"x"}, NewData: func() any { return nil }})
	assert.ErrorIs(t, err, domain.ErrUnknownStepType)

	_, err = catalog.New(catalog.Entry{Type: domain.StepEnd, NewData: func() any { return nil }})
	assert.Error(t, err)
}

func TestLoadFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	content := `
templates:
  end:
    description: "Прощание"
    markers: ["До встречи"]
    data:
      message: "До встречи!"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cat, err := catalog.LoadFile(path)
	require.NoError(t, err)

	tmpl, ok := cat.Template(domain.StepEnd)
	require.True(t, ok)
	assert.Equal(t, "Завершение", tmpl.Name, "name falls back to the built-in entry")
	assert.Equal(t, "Прощание", tmpl.Description)

	doc, err := tmpl.Document()
	require.NoError(t, err)
	assert.Contains(t, doc, "До встречи!")
	assert.Contains(t, cat.Markers(), "До встречи")

	// Untouched entries are still present.
	_, ok = cat.Template(domain.StepMessage)
	assert.True(t, ok)
	assert.Equal(t, domain.StepTypes, cat.Types())
}

func TestLoadFile_KeepsAuthorKeyOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	content := `
templates:
  input:
    markers: ["Введите"]
    data:
      text: "Введите имя"
      save_as: name
      response: "Спасибо, {name}"
      transitions:
        - next_step_order: null
          condition: always
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cat, err := catalog.LoadFile(path)
	require.NoError(t, err)
	tmpl, ok := cat.Template(domain.StepInput)
	require.True(t, ok)

	doc, err := tmpl.Document()
	require.NoError(t, err)
	assert.Equal(t, `{
  "text": "Введите имя",
  "save_as": "name",
  "response": "Спасибо, {name}",
  "transitions": [
    {
      "next_step_order": null,
      "condition": "always"
    }
  ]
}`, doc)

	fields, err := tmpl.Fields()
	require.NoError(t, err)
	assert.Equal(t, "name", fields["save_as"])
}

func TestLoadFile_JSONKeepsAuthorKeyOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	content := `{"templates": {"end": {"markers": ["Пока"], "data": {"message": "Пока!", "extra": 1}}}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cat, err := catalog.LoadFile(path)
	require.NoError(t, err)
	tmpl, ok := cat.Template(domain.StepEnd)
	require.True(t, ok)

	doc, err := tmpl.Document()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"message\": \"Пока!\",\n  \"extra\": 1\n}", doc)
}

func TestLoadFile_JSONMarkerMustOccur(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	content := `{"templates": {"message": {"markers": ["absent"], "data": {"text": "hi", "transitions": []}}}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := catalog.LoadFile(path)
	assert.ErrorContains(t, err, "none of the markers")
}

func TestLoadFile_UnknownType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	require.NoError(t, os.WriteFile(path, []byte("templates:\n  jump:\n    markers: [x]\n    data: {x: 1}\n"), 0o644))

	_, err := catalog.LoadFile(path)
	assert.ErrorIs(t, err, domain.ErrUnknownStepType)
}
