// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package validation checks configuration values and reports every
// violation at once.
package validation

import (
	"go.uber.org/multierr"
)

// Validator is implemented by values that can check themselves
type Validator interface {
	Validate() error
}

// Rule adapts a function to a Validator
type Rule func() error

// Validate runs the rule
func (r Rule) Validate() error {
	return r()
}

// Check is an ordered list of validators.
// Validate combines the violations with multierr, or stops at the first one
// when the check was created with StopAtFirst.
type Check struct {
	stopAtFirst bool
	validators  []Validator
}

// Option configures a Check
type Option func(*Check)

// StopAtFirst makes Validate return the first violation only
func StopAtFirst() Option {
	return func(c *Check) { c.stopAtFirst = true }
}

// New creates an empty Check
func New(opts ...Option) *Check {
	c := new(Check)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add appends validators to the check
func (c *Check) Add(validators ...Validator) *Check {
	c.validators = append(c.validators, validators...)
	return c
}

// Require fails when value is nil, typed nils included
func (c *Check) Require(field string, value any) *Check {
	return c.Add(Required(field, value))
}

// That fails with a violation of field when ok is false
func (c *Check) That(field string, ok bool, reason string) *Check {
	return c.Add(Rule(func() error {
		if ok {
			return nil
		}
		return &FieldError{Field: field, Reason: reason}
	}))
}

// Validate runs the validators in order. It holds no state between calls.
func (c *Check) Validate() error {
	var err error
	for _, validator := range c.validators {
		violation := validator.Validate()
		if violation == nil {
			continue
		}
		if c.stopAtFirst {
			return violation
		}
		err = multierr.Append(err, violation)
	}
	return err
}

// Violations splits the error returned by Validate into its field errors.
// Violations that are not field errors are dropped.
func Violations(err error) []*FieldError {
	var out []*FieldError
	for _, e := range multierr.Errors(err) {
		if fieldErr, ok := e.(*FieldError); ok {
			out = append(out, fieldErr)
		}
	}
	return out
}
