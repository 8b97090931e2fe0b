// Package validator provides small declarative rules for checking request
// payloads before any side effect happens.
//
// A Rule pairs a Check func with the ValidationError reported when the
// check fails. Apply evaluates every rule and aggregates failures into a
// ValidationErrors value that satisfies the error interface, so callers get
// all field problems of a payload in one return:
//
//	err := validator.Apply(
//	    validator.MinNum("sender.id", sender.ID, 1),
//	    validator.RequiredString("sender.role", sender.Role),
//	    validator.MaxRunes("text", text, 4096),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    // verrs.Fields(), verrs.Get("text") ...
//	}
//
// Rules are plain values without shared state and are safe for concurrent
// use. Rules for nested structures are usually built with a field prefix
// such as "recipients[2].id".
package validator
