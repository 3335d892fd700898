/*
Package catalog holds the immutable table of step templates.

A Catalog maps each StepType to the default configuration document written into a
step's data field when the author selects that type. Catalogs are built once (the
built-in one lazily through Default) and never mutated afterwards; every lookup
returns a fresh copy of the template data.

Each template declares marker phrases: literal instructional strings that only
ever appear in generated templates. The guard package uses them to tell an
untouched template from author-edited data.
*/
package catalog
