// Package validation provides argument checks shared by stage constructors,
// sources and configuration parsers.
//
// Every helper returns a *errors.ValidationError, which matches
// errors.ErrInvalidArgument under errors.Is.
package validation
