// Copyright 2025 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil

import "fmt"

// A RangeError is returned by constructors and replacement methods when a
// component is outside its valid range.
type RangeError struct {
	// Name of the offending component ("year", "hour", …).
	Name string
	// Value is the value that was provided.
	Value int64
	// Min and Max are the bounds of the valid range, inclusive.
	Min, Max int64
	// Conditional indicates that the valid range depends on other
	// components. For example, the valid days of a month depend on the month
	// and the year.
	Conditional bool
}

// Error returns the string representation of a RangeError.
func (e *RangeError) Error() string {
	if e.Conditional {
		return fmt.Sprintf("%s must be in the range %d..=%d, given values of other parameters", e.Name, e.Min, e.Max)
	}
	return fmt.Sprintf("%s must be in the range %d..=%d", e.Name, e.Min, e.Max)
}

func rangeError(name string, value, min, max int64) error {
	return &RangeError{Name: name, Value: value, Min: min, Max: max}
}

func rangeErrorCond(name string, value, min, max int64) error {
	return &RangeError{Name: name, Value: value, Min: min, Max: max, Conditional: true}
}

// errOutOfRange is the panic value used by the unchecked arithmetic methods.
const errOutOfRange = "civil: resulting value is out of range"
