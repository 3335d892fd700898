/*
Package domain contains the core domain models of the scenario authoring helper.

It defines the entities an author edits in the admin: Scenarios, their Steps, the
per-type configuration documents (Templates) and the transient Notifications shown
while editing. This package is kept pure and free of external dependencies like I/O
or persistence, following Hexagonal Architecture principles.

# Key Entities

  - StepType: The closed set of step variants (message, gpt_request, input, condition, end).
  - StepTemplate: The default configuration document seeded when a step type is chosen.
  - Transition / Condition: Positional references to the next step by its order.
  - Step / Scenario: The authored data. Persistence belongs to the admin, not to this module.
  - Notification: Ephemeral feedback shown to the author.
*/
package domain
