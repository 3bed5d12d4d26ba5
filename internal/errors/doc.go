// Package errors provides structured, coded errors for the dragkit tools.
//
// Each code maps to a category and a short message:
//
//   - E100-E199: configuration (dragkit.json, environment)
//   - E200-E299: wire protocol
//   - E300-E399: gesture scenarios
//
// Errors can carry the location in the input file that caused them. The
// surrounding lines are read when the location is set so that Format can
// show them.
//
// # Usage
//
//	err := errors.New(errors.CodeScenarioStep).
//	    WithLocation("board.yaml", 14, 5).
//	    WithDetail(`no element matches "#c9"`)
//
//	errors.Fprint(os.Stderr, err)
package errors
