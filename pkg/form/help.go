package form

import "github.com/aretw0/scenarist/pkg/domain"

// HelpTexts are the hints displayed next to the step form fields.
var HelpTexts = map[string]string{
	domain.FieldScenario: "Выберите сценарий, к которому относится этот шаг",
	domain.FieldName:     "Краткое название шага для удобства",
	domain.FieldStepType: "Выберите тип шага. Данные будут автоматически заполнены шаблоном.",
	domain.FieldOrder:    "Порядковый номер выполнения шага в сценарии.",
	domain.FieldData:     "JSON данные конфигурации шага. Используйте кнопку \"Форматировать JSON\" для улучшения читаемости.",
}

// Help returns the hint of a field, or "" when there is none.
func Help(field string) string {
	return HelpTexts[field]
}
