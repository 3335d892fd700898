package scenarist_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/scenarist"
	"github.com/aretw0/scenarist/pkg/adapters/memory"
	"github.com/aretw0/scenarist/pkg/composer"
	"github.com/aretw0/scenarist/pkg/domain"
	"github.com/aretw0/scenarist/pkg/notify"
)

// ExampleAuthoring_SelectStepType shows the data field following the step type
// until the author edits it.
func ExampleAuthoring_SelectStepType() {
	auth, err := scenarist.New()
	if err != nil {
		log.Fatal(err)
	}

	form := memory.NewForm(map[string]string{domain.FieldData: ""})

	auth.SelectStepType(form, domain.StepEnd)
	data, _ := form.Value(domain.FieldData)
	fmt.Println(data)

	form.SetValue(domain.FieldData, `{"message": "Пока!"}`)
	fmt.Println(auth.SelectStepType(form, domain.StepMessage))

	// Output:
	// {
	//   "message": "Сценарий завершен. Спасибо!"
	// }
	// false
}

// ExampleAuthoring_QuickStep shows one-click step creation in an inline collection.
func ExampleAuthoring_QuickStep() {
	rec := &notify.Recorder{}
	auth, err := scenarist.New(scenarist.WithPresenter(rec))
	if err != nil {
		log.Fatal(err)
	}

	rows := memory.NewRowCollection([]map[string]string{
		{domain.FieldName: "Приветствие", domain.FieldStepType: "message", domain.FieldOrder: "1"},
		{domain.FieldName: "Имя", domain.FieldStepType: "input", domain.FieldOrder: "2"},
	})

	preset, _ := composer.PresetFor(domain.StepEnd)
	if _, err := auth.QuickStep(context.Background(), rows, preset); err != nil {
		log.Fatal(err)
	}

	last := rows.Snapshot()[2]
	fmt.Println(last[domain.FieldName], last[domain.FieldOrder])
	fmt.Println(rec.Notifications()[0].Message)

	// Output:
	// Завершение сценария 3
	// Добавлен шаг "Завершение сценария"
}

func ExampleAuthoring_Format() {
	auth, _ := scenarist.New()

	out, _ := auth.Format(`{"text":"Привет","transitions":[]}`)
	fmt.Println(out)

	_, err := auth.Format("{invalid")
	fmt.Println(err != nil)

	// Output:
	// {
	//   "text": "Привет",
	//   "transitions": []
	// }
	// true
}
