/*
Package scenarist is the authoring helper behind the scenario admin of a conversational bot.

Scenarios are ordered sequences of steps (message, gpt_request, input, condition, end) whose
behavior is configured by a JSON document in each step's data field. Scenarist edits those
documents; it never runs them.

# Concept

The admin form is reached through small capabilities (ports.Fields, ports.RowCollection,
ports.Presenter, ports.StepLister), so the same core serves an in-memory form model, the HTTP
authoring API used by the admin page, an MCP tool server and the CLI.

# Key Features

  - Template catalog: every step type has a starter document, seeded when the type is chosen.
  - Template guard: documents the author has edited are never replaced by a template.
  - Order allocation: new steps get max(existing orders)+1, from persisted steps or open rows.
  - JSON assistant: formatting, continuous validity indicator, parser messages with positions.
  - Quick steps: one-click creation of a prefilled step row.

# Usage

	auth, err := scenarist.New(
		scenarist.WithStepLister(adminapi.New("https://admin.example.com/admin/scenarios/step/")),
		scenarist.WithPresenter(notify.NewBoard()),
	)
	if err != nil {
		log.Fatal(err)
	}

	form := memory.NewForm(map[string]string{"data": "", "order": ""})
	auth.SelectStepType(form, domain.StepMessage)
	auth.ScenarioChanged(ctx, form, "42")

See the cmd/scenarist command for the HTTP, MCP and CLI front ends.
*/
package scenarist
