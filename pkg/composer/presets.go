package composer

import "github.com/aretw0/scenarist/pkg/domain"

// Preset is a button of the quick creation bar.
type Preset struct {
	Type  domain.StepType `json:"step_type"`
	Name  string          `json:"name"`
	Label string          `json:"label"`
}

// Presets are the quick creation buttons, in display order.
var Presets = []Preset{
	{Type: domain.StepMessage, Name: "Новое сообщение", Label: "Сообщение"},
	{Type: domain.StepGPTRequest, Name: "GPT запрос", Label: "GPT запрос"},
	{Type: domain.StepInput, Name: "Ввод данных", Label: "Ввод данных"},
	{Type: domain.StepEnd, Name: "Завершение сценария", Label: "Завершение"},
}

// PresetFor returns the preset of a step type.
func PresetFor(t domain.StepType) (Preset, bool) {
	for _, p := range Presets {
		if p.Type == t {
			return p, true
		}
	}
	return Preset{}, false
}
