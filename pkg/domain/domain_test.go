package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/scenarist/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStepType(t *testing.T) {
	for _, st := range domain.StepTypes {
		got, err := domain.ParseStepType(" " + string(st) + " ")
		require.NoError(t, err)
		assert.Equal(t, st, got)
		assert.True(t, got.Valid())
	}

	_, err := domain.ParseStepType("loop")
	assert.ErrorIs(t, err, domain.ErrUnknownStepType)
	assert.False(t, domain.StepType("loop").Valid())
	assert.Equal(t, "loop", domain.StepType("loop").Label())
}

func TestStepType_Label(t *testing.T) {
	assert.Equal(t, "Сообщение", domain.StepMessage.Label())
	assert.Equal(t, "GPT запрос", domain.StepGPTRequest.Label())
	assert.Equal(t, "Ввод данных", domain.StepInput.Label())
	assert.Equal(t, "Условие", domain.StepCondition.Label())
	assert.Equal(t, "Завершение", domain.StepEnd.Label())
}

func TestStepTemplate_Document(t *testing.T) {
	tmpl := domain.StepTemplate{
		Type: domain.StepMessage,
		Data: domain.MessageData{
			Text:        "hi",
			Transitions: []domain.Transition{{Condition: "always"}},
		},
	}

	doc, err := tmpl.Document()
	require.NoError(t, err)
	assert.Equal(t, `{
  "text": "hi",
  "transitions": [
    {
      "condition": "always",
      "next_step_order": null
    }
  ]
}`, doc)

	fields, err := tmpl.Fields()
	require.NoError(t, err)
	assert.Equal(t, "hi", fields["text"])
}

func TestStepTemplate_DocumentError(t *testing.T) {
	_, err := domain.StepTemplate{Type: domain.StepEnd, Data: func() {}}.Document()
	assert.Error(t, err)
}

func TestParseError(t *testing.T) {
	cause := errors.New("invalid character '}'")
	err := fmt.Errorf("format: %w", &domain.ParseError{Msg: cause.Error(), Offset: 7, Line: 2, Column: 3, Err: cause})

	var pe *domain.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "invalid character '}' (line 2, column 3)", pe.Error())
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, "eof", (&domain.ParseError{Msg: "eof"}).Error())
}

func TestScenario_Orders(t *testing.T) {
	s := domain.Scenario{Steps: []domain.Step{{Order: 3}, {Order: 1}}}
	assert.Equal(t, []int{3, 1}, s.Orders())
	assert.Empty(t, domain.Scenario{}.Orders())
}
