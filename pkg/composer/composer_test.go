package composer_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/scenarist/pkg/adapters/memory"
	"github.com/aretw0/scenarist/pkg/composer"
	"github.com/aretw0/scenarist/pkg/domain"
	"github.com/aretw0/scenarist/pkg/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose_AppendsPrefilledRow(t *testing.T) {
	rec := &notify.Recorder{}
	coll := memory.NewRowCollection([]map[string]string{
		{domain.FieldName: "Приветствие", domain.FieldStepType: "message", domain.FieldOrder: "1"},
		{domain.FieldName: "Вопрос", domain.FieldStepType: "input", domain.FieldOrder: "3"},
		{domain.FieldName: "Черновик", domain.FieldStepType: "message", domain.FieldOrder: "abc"},
	}, memory.WithMaterializeDelay(10*time.Millisecond))

	c := composer.New(composer.WithPresenter(rec))
	row, err := c.Compose(context.Background(), coll, domain.StepMessage, "Новое сообщение")
	require.NoError(t, err)
	require.NotNil(t, row)

	rows := coll.Snapshot()
	require.Len(t, rows, 4)
	last := rows[3]
	assert.Equal(t, "Новое сообщение", last[domain.FieldName])
	assert.Equal(t, "message", last[domain.FieldStepType])
	assert.Equal(t, "4", last[domain.FieldOrder])

	notes := rec.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, `Добавлен шаг "Новое сообщение"`, notes[0].Message)
	assert.Equal(t, domain.SeveritySuccess, notes[0].Severity)
}

func TestCompose_FirstRowGetsOrderOne(t *testing.T) {
	coll := memory.NewRowCollection(nil)

	_, err := composer.New().Compose(context.Background(), coll, domain.StepEnd, "Завершение сценария")
	require.NoError(t, err)

	rows := coll.Snapshot()
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0][domain.FieldOrder])
}

func TestCompose_TemplatesDataField(t *testing.T) {
	coll := memory.NewRowCollection(nil, memory.WithRowFields(
		domain.FieldName, domain.FieldStepType, domain.FieldOrder, domain.FieldData,
	))

	_, err := composer.New().Compose(context.Background(), coll, domain.StepInput, "Ввод данных")
	require.NoError(t, err)

	rows := coll.Snapshot()
	require.Len(t, rows, 1)
	assert.Contains(t, rows[0][domain.FieldData], "Что вы хотите ввести?")
}

func TestCompose_NoAddControl(t *testing.T) {
	rec := &notify.Recorder{}
	coll := memory.NewRowCollection(nil, memory.WithoutAddControl())

	row, err := composer.New(composer.WithPresenter(rec)).Compose(context.Background(), coll, domain.StepMessage, "x")
	assert.NoError(t, err)
	assert.Nil(t, row)
	assert.Empty(t, coll.Snapshot())
	assert.Empty(t, rec.Notifications())
}

func TestCompose_UnknownStepType(t *testing.T) {
	coll := memory.NewRowCollection(nil)

	_, err := composer.New().Compose(context.Background(), coll, domain.StepType("loop"), "x")
	assert.ErrorIs(t, err, domain.ErrUnknownStepType)
	assert.Empty(t, coll.Snapshot(), "collection must not be touched")
}

func TestCompose_Canceled(t *testing.T) {
	coll := memory.NewRowCollection(nil, memory.WithMaterializeDelay(time.Second))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	rec := &notify.Recorder{}
	_, err := composer.New(composer.WithPresenter(rec)).Compose(ctx, coll, domain.StepMessage, "x")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, rec.Notifications())
}

func TestQuickPresets(t *testing.T) {
	require.Len(t, composer.Presets, 4)

	coll := memory.NewRowCollection(nil)
	c := composer.New()
	for _, p := range composer.Presets {
		_, err := c.Quick(context.Background(), coll, p)
		require.NoError(t, err)
	}

	rows := coll.Snapshot()
	require.Len(t, rows, 4)
	assert.Equal(t, "Завершение сценария", rows[3][domain.FieldName])
	assert.Equal(t, "4", rows[3][domain.FieldOrder])

	p, ok := composer.PresetFor(domain.StepGPTRequest)
	require.True(t, ok)
	assert.Equal(t, "GPT запрос", p.Name)
	_, ok = composer.PresetFor(domain.StepCondition)
	assert.False(t, ok)
}
