package catalog

import (
	"encoding/json"

	"github.com/aretw0/scenarist/pkg/domain"
)

const (
	markerEnterText  = "Введите"
	markerVariables  = "Доступные переменные"
	markerWhatToType = "Что вы хотите"
	markerEndMessage = "Сценарий завершен"
)

func defaultCondition() domain.Condition {
	return domain.Condition{
		Field:    "user_input",
		Operator: "equals",
		Value:    "да",
	}
}

// conditionMarker is the untouched default clause as the guard serializes it
// (keys sorted, compact). Editing any of its values removes the marker.
func conditionMarker() string {
	c := defaultCondition()
	b, err := json.Marshal(map[string]any{
		"field":           c.Field,
		"operator":        c.Operator,
		"value":           c.Value,
		"next_step_order": nil,
	})
	if err != nil {
		return `"operator":"equals","value":"да"`
	}
	return string(b)
}

func builtinEntries() []Entry {
	return []Entry{
		{
			Type:        domain.StepMessage,
			Name:        domain.StepMessage.Label(),
			Description: "Отправляет текст пользователю и переходит дальше",
			Markers:     []string{markerEnterText},
			NewData: func() any {
				return domain.MessageData{
					Text:        "Введите текст сообщения",
					Transitions: []domain.Transition{{Condition: "always"}},
				}
			},
		},
		{
			Type:        domain.StepGPTRequest,
			Name:        domain.StepGPTRequest.Label(),
			Description: "Отправляет промпт в GPT и возвращает ответ модели",
			Markers:     []string{markerEnterText, markerVariables},
			NewData: func() any {
				return domain.GPTRequestData{
					Prompt:      "Введите промпт для GPT. Доступные переменные: {user_name}, {last_user_message}",
					Transitions: []domain.Transition{{Condition: "user_responded"}},
				}
			},
		},
		{
			Type:        domain.StepInput,
			Name:        domain.StepInput.Label(),
			Description: "Запрашивает ввод и сохраняет ответ в контексте",
			Markers:     []string{markerWhatToType},
			NewData: func() any {
				return domain.InputData{
					Text:        "Что вы хотите ввести?",
					SaveAs:      "user_input",
					Response:    "Спасибо за ввод: {user_input}",
					Transitions: []domain.Transition{{Condition: "user_responded"}},
				}
			},
		},
		{
			Type:        domain.StepCondition,
			Name:        domain.StepCondition.Label(),
			Description: "Выбирает следующий шаг по значениям контекста",
			Markers:     []string{conditionMarker()},
			NewData: func() any {
				return domain.ConditionData{
					Conditions: []domain.Condition{defaultCondition()},
				}
			},
		},
		{
			Type:        domain.StepEnd,
			Name:        domain.StepEnd.Label(),
			Description: "Завершает сценарий",
			Markers:     []string{markerEndMessage},
			NewData: func() any {
				return domain.EndData{Message: "Сценарий завершен. Спасибо!"}
			},
		},
	}
}
