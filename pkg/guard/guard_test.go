package guard_test

import (
	"testing"

	"github.com/aretw0/scenarist/pkg/catalog"
	"github.com/aretw0/scenarist/pkg/guard"
	"github.com/aretw0/scenarist/pkg/jsonfield"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_RecognizesEveryTemplate(t *testing.T) {
	isTemplate := guard.Default()
	for _, tmpl := range catalog.Default().Templates() {
		t.Run(string(tmpl.Type), func(t *testing.T) {
			doc, err := tmpl.Document()
			require.NoError(t, err)

			formatted, err := jsonfield.Format(doc)
			require.NoError(t, err)
			assert.True(t, isTemplate(formatted))
		})
	}
}

func TestDefault_MalformedIsPreserved(t *testing.T) {
	isTemplate := guard.Default()
	assert.False(t, isTemplate(`{"text": "Введите текст сообщения"`))
	assert.False(t, isTemplate("Введите"))
}

func TestDefault_EditedIsPreserved(t *testing.T) {
	isTemplate := guard.Default()
	assert.False(t, isTemplate(`{"text": "Привет! Как дела?", "transitions": []}`))
	assert.False(t, isTemplate(`{"message": "Пока"}`))

	edited := `{"conditions": [{"field": "user_input", "operator": "equals", "value": "нет", "next_step_order": null}]}`
	assert.False(t, isTemplate(edited), "changing the default clause removes the marker")
}

func TestDefault_EscapedMarkersStillMatch(t *testing.T) {
	// "Введите" written with unicode escapes
	raw := `{"text": "\u0412\u0432\u0435\u0434\u0438\u0442\u0435 текст"}`
	assert.True(t, guard.Default()(raw))
}

func TestMarkers_Custom(t *testing.T) {
	s := guard.Markers("TODO")
	assert.True(t, s(`{"prompt": "TODO: write prompt"}`))
	assert.False(t, s(`{"prompt": "done"}`))
	assert.False(t, guard.Markers()(`{"a": 1}`))
}

func TestOverwritable(t *testing.T) {
	s := guard.Default()
	assert.True(t, guard.Overwritable(s, ""))
	assert.True(t, guard.Overwritable(s, "  \n"))
	assert.True(t, guard.Overwritable(s, `{"message": "Сценарий завершен. Спасибо!"}`))
	assert.False(t, guard.Overwritable(s, `{"message": "Bye"}`))
	assert.False(t, guard.Overwritable(s, `{broken`))
}
