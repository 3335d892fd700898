/*
Package ports defines the driven ports (interfaces) of the authoring helper.

These interfaces replace the browser form of the original admin with injected
capabilities, so the same core can edit an in-memory form, serve an HTTP API or
run inside a test against a fake.

# Key Interfaces

  - Fields: A form (or inline row) whose fields are addressed by name.
  - RowCollection: A collection of inline rows that can add a row and hand it back.
  - StepLister: Reads the orders of persisted steps of a scenario.
  - StepIndex: A StepLister that can also be maintained (Record / Remove).
  - Presenter: The ephemeral notification surface.
*/
package ports
