// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package routepattern

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyLiteral indicates that a literal part was constructed from empty text.
	ErrEmptyLiteral = errors.New("literal text must not be empty")

	// ErrLiteralQuestionMark indicates that a literal part contains the reserved '?' character.
	ErrLiteralQuestionMark = errors.New("literal text must not contain '?'")

	// ErrEmptySeparator indicates that a separator part was constructed from empty text.
	ErrEmptySeparator = errors.New("separator text must not be empty")

	// ErrEmptyParameterName indicates that a parameter part has no name.
	ErrEmptyParameterName = errors.New("parameter name must not be empty")

	// ErrInvalidParameterName indicates that a parameter name contains a reserved delimiter character.
	ErrInvalidParameterName = errors.New("parameter name contains a reserved character")

	// ErrOptionalHasDefault indicates that an optional parameter carries a default value.
	ErrOptionalHasDefault = errors.New("optional parameter must not have a default value")

	// ErrEmptySegment indicates that a segment was built from an empty part list.
	ErrEmptySegment = errors.New("segment must contain at least one part")

	// ErrInvalidConstraint indicates a constraint value that is neither a Policy,
	// a string, nor a collection of either.
	ErrInvalidConstraint = errors.New("constraint value is not a Policy or string")

	// ErrDefaultConflict indicates that a default value was specified both inline
	// and out-of-line with different values.
	ErrDefaultConflict = errors.New("conflicting inline and out-of-line default values")

	// ErrDuplicateParameter indicates two parameters sharing the same name within one pattern.
	ErrDuplicateParameter = errors.New("duplicate parameter name")

	// ErrDuplicateKey indicates two supplied keys that differ only by case.
	ErrDuplicateKey = errors.New("duplicate key differing only by case")

	// ErrRequiredValueUnsatisfied indicates a required value with no matching
	// parameter or default.
	ErrRequiredValueUnsatisfied = errors.New("required value has no matching parameter or default")

	// ErrCombineConflict indicates that two combined patterns map the same key
	// to different values.
	ErrCombineConflict = errors.New("combined patterns disagree on a key")
)

// PatternError reports a structural problem with a route pattern's text, such
// as a duplicate parameter name introduced while combining two patterns. It
// carries the raw template text so the authoring mistake can be located.
type PatternError struct {
	RawText string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("route pattern %q: %v", e.RawText, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}
