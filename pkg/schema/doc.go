// Package schema validates step data documents before they are saved.
//
// Each step type has a Schema mapping field names to types. Fields are
// required unless wrapped in Optional:
//
//	Schema{
//	    "text":        String(),
//	    "transitions": Optional(Slice(Transition())),
//	}
//
// CleanStepData applies the schema of a step type to the raw data field and
// fills in defaults (an empty field becomes the template of the step type).
// All failures of one document are reported together as an *AggregateError.
package schema
