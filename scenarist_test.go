package scenarist_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/scenarist"
	"github.com/aretw0/scenarist/pkg/adapters/memory"
	"github.com/aretw0/scenarist/pkg/domain"
	"github.com/aretw0/scenarist/pkg/jsonfield"
	"github.com/aretw0/scenarist/pkg/notify"
	"github.com/aretw0/scenarist/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacade_TemplatesRoundTrip(t *testing.T) {
	auth, err := scenarist.New()
	require.NoError(t, err)

	for _, st := range domain.StepTypes {
		tmpl, ok := auth.Template(st)
		require.True(t, ok, st)

		doc, err := tmpl.Document()
		require.NoError(t, err)
		formatted, err := auth.Format(doc)
		require.NoError(t, err)

		assert.True(t, auth.IsTemplate(formatted), "fresh %s template must be recognized", st)
		assert.Equal(t, jsonfield.Valid, auth.Validate(formatted))
	}

	_, ok := auth.Template("loop")
	assert.False(t, ok)
	assert.Len(t, auth.Templates(), 5)
}

func TestFacade_ScenarioChanged(t *testing.T) {
	ctx := context.Background()
	index := memory.NewStepIndex()
	require.NoError(t, index.Record(ctx, "1", "a", 3))

	auth, err := scenarist.New(scenarist.WithStepLister(index))
	require.NoError(t, err)

	f := memory.NewForm(map[string]string{domain.FieldOrder: ""})
	next, ok := auth.ScenarioChanged(ctx, f, "1")
	require.True(t, ok)
	assert.Equal(t, 4, next)
	assert.Equal(t, 4, auth.NextOrder(ctx, "1"))
	assert.Equal(t, 1, auth.NextOrder(ctx, "2"))
}

func TestFacade_FormatField(t *testing.T) {
	rec := &notify.Recorder{}
	auth, err := scenarist.New(scenarist.WithPresenter(rec))
	require.NoError(t, err)

	f := memory.NewForm(map[string]string{domain.FieldData: "{invalid"})
	assert.Error(t, auth.FormatField(f, domain.FieldData))

	notes := rec.Notifications()
	require.Len(t, notes, 1)
	assert.True(t, strings.HasPrefix(notes[0].Message, "Ошибка в JSON: "))
}

func TestFacade_Notifying(t *testing.T) {
	base := &notify.Recorder{}
	auth, err := scenarist.New(scenarist.WithPresenter(base))
	require.NoError(t, err)

	scoped := &notify.Recorder{}
	f := memory.NewForm(map[string]string{domain.FieldData: ""})
	assert.True(t, auth.Notifying(scoped).SelectStepType(f, domain.StepInput))

	assert.Len(t, base.Notifications(), 1)
	assert.Len(t, scoped.Notifications(), 1)

	auth.SelectStepType(memory.NewForm(map[string]string{domain.FieldData: ""}), domain.StepEnd)
	assert.Len(t, scoped.Notifications(), 1, "scoped presenter must not leak")
}

func TestFacade_CleanStep(t *testing.T) {
	ctx := context.Background()
	index := memory.NewStepIndex()
	require.NoError(t, index.Record(ctx, "1", "a", 1))

	auth, err := scenarist.New(scenarist.WithStepLister(index))
	require.NoError(t, err)

	data, err := auth.CleanStep(ctx, domain.StepInput, `{"text": "Имя?"}`, "1", "", 2)
	require.NoError(t, err)
	assert.Equal(t, "user_input", data["save_as"])

	_, err = auth.CleanStep(ctx, domain.StepInput, `{"text": "Имя?"}`, "1", "", 1)
	require.Error(t, err)
	assert.Len(t, schema.ValidationErrors(err), 1)
}

func TestFacade_CleanStepResavesOwnOrder(t *testing.T) {
	ctx := context.Background()
	index := memory.NewStepIndex()
	require.NoError(t, index.Record(ctx, "7", "step-1", 2))
	require.NoError(t, index.Record(ctx, "7", "step-2", 3))

	auth, err := scenarist.New(scenarist.WithStepLister(index))
	require.NoError(t, err)

	data, err := auth.CleanStep(ctx, domain.StepMessage, `{"text": "hi"}`, "7", "step-1", 2)
	require.NoError(t, err, "a step keeps its own order when saved again")
	assert.Equal(t, "hi", data["text"])

	_, err = auth.CleanStep(ctx, domain.StepMessage, `{"text": "hi"}`, "7", "step-1", 3)
	assert.ErrorContains(t, err, "step with order 3 already exists in this scenario")

	_, err = auth.CleanStep(ctx, domain.StepMessage, `{"text": "hi"}`, "7", "", 2)
	assert.ErrorContains(t, err, "step with order 2 already exists in this scenario")
}

type ordersOnly struct{ orders []int }

func (l ordersOnly) StepOrders(context.Context, string) ([]int, error) { return l.orders, nil }

func TestFacade_CleanStepWithoutStepIDs(t *testing.T) {
	auth, err := scenarist.New(scenarist.WithStepLister(ordersOnly{orders: []int{2}}))
	require.NoError(t, err)

	_, err = auth.CleanStep(context.Background(), domain.StepMessage, `{"text": "hi"}`, "7", "step-1", 2)
	assert.Error(t, err, "without step IDs every listed order is taken")
}

func TestFacade_CatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	content := []byte(`templates:
  end:
    markers: ["До встречи"]
    data:
      message: "До встречи!"
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	auth, err := scenarist.New(scenarist.WithCatalogFile(path))
	require.NoError(t, err)

	tmpl, ok := auth.Template(domain.StepEnd)
	require.True(t, ok)
	doc, err := tmpl.Document()
	require.NoError(t, err)
	assert.Contains(t, doc, "До встречи!")
	assert.True(t, auth.IsTemplate(doc))

	_, err = scenarist.New(scenarist.WithCatalogFile(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, strings.TrimSpace(scenarist.Version))
}
