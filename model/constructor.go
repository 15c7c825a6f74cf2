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

package model

import (
	"reflect"

	gerrors "github.com/typewire/typewire/errors"
)

var errorType = reflect.TypeFor[error]()

// Parameter is one named parameter of a Constructor
type Parameter struct {
	Name string
	Type reflect.Type
}

// Constructor builds a value of a type from positional arguments.
// The primary constructor is the field literal of a struct: one parameter
// per field property.
type Constructor struct {
	Params  []Parameter
	Marked  bool
	Primary bool

	owner    reflect.Type
	fn       reflect.Value
	fields   [][]int
	ptrOut   bool
	errorOut bool
}

// Arity returns the number of parameters
func (c *Constructor) Arity() int {
	return len(c.Params)
}

// New invokes the constructor. Invalid arguments are replaced by the zero value
// of the parameter type. The returned value has the owner type, never a pointer to it.
func (c *Constructor) New(args []reflect.Value) (reflect.Value, error) {
	if len(args) != len(c.Params) {
		return reflect.Value{}, gerrors.NewErrSchemaMismatch("constructor of %s expects %d arguments, got %d",
			c.owner, len(c.Params), len(args))
	}

	if c.Primary {
		out := reflect.New(c.owner).Elem()
		for i, index := range c.fields {
			if args[i].IsValid() {
				out.FieldByIndex(index).Set(args[i])
			}
		}
		return out, nil
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		if !arg.IsValid() {
			arg = reflect.Zero(c.Params[i].Type)
		}
		in[i] = arg
	}

	results := c.fn.Call(in)
	if c.errorOut && !results[1].IsNil() {
		return reflect.Value{}, results[1].Interface().(error)
	}

	out := results[0]
	if c.ptrOut {
		if out.IsNil() {
			return reflect.Value{}, gerrors.NewErrSchemaMismatch("constructor of %s returned nil", c.owner)
		}
		out = out.Elem()
	}
	return out, nil
}

func primaryConstructor(t reflect.Type, properties []*Property) *Constructor {
	ctor := &Constructor{
		Primary: true,
		owner:   t,
		Params:  make([]Parameter, 0, len(properties)),
		fields:  make([][]int, 0, len(properties)),
	}
	for _, property := range properties {
		if !property.IsField() {
			continue
		}
		ctor.Params = append(ctor.Params, Parameter{Name: property.Name, Type: property.Type})
		ctor.fields = append(ctor.fields, property.index)
	}
	return ctor
}

// newConstructor validates fn as a constructor of t. fn must be a function
// returning t or *t, optionally followed by an error.
func newConstructor(t reflect.Type, fn any, names []string, marked bool) (*Constructor, error) {
	value := reflect.ValueOf(fn)
	if !value.IsValid() || value.Kind() != reflect.Func || value.IsNil() {
		return nil, gerrors.NewErrInvalidClass(t.String(), "constructor is not a function: %T", fn)
	}

	fnType := value.Type()
	if fnType.IsVariadic() {
		return nil, gerrors.NewErrInvalidClass(t.String(), "variadic constructor %s", fnType)
	}
	if fnType.NumIn() != len(names) {
		return nil, gerrors.NewErrInvalidClass(t.String(), "constructor %s has %d parameters but %d names were given",
			fnType, fnType.NumIn(), len(names))
	}

	ctor := &Constructor{Marked: marked, owner: t, fn: value}
	switch fnType.NumOut() {
	case 1:
	case 2:
		if fnType.Out(1) != errorType {
			return nil, gerrors.NewErrInvalidClass(t.String(), "second result of %s is not an error", fnType)
		}
		ctor.errorOut = true
	default:
		return nil, gerrors.NewErrInvalidClass(t.String(), "constructor %s must return one value and an optional error", fnType)
	}

	switch out := fnType.Out(0); {
	case out == t:
	case out.Kind() == reflect.Pointer && out.Elem() == t:
		ctor.ptrOut = true
	default:
		return nil, gerrors.NewErrInvalidClass(t.String(), "constructor %s does not return %s", fnType, t)
	}

	seen := make(map[string]struct{}, len(names))
	ctor.Params = make([]Parameter, len(names))
	for i, name := range names {
		if name == "" {
			return nil, gerrors.NewErrInvalidClass(t.String(), "constructor parameter %d has no name", i)
		}
		if _, ok := seen[name]; ok {
			return nil, gerrors.NewErrInvalidClass(t.String(), "duplicate constructor parameter %q", name)
		}
		seen[name] = struct{}{}
		ctor.Params[i] = Parameter{Name: name, Type: fnType.In(i)}
	}
	return ctor, nil
}
