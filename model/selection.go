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
	gerrors "github.com/typewire/typewire/errors"
)

// SelectConstructor picks the constructor used to rebuild values of class.
// It returns nil for abstract classes. The order of preference is:
//   - the single constructor marked for deserialization
//   - the only constructor, when it takes parameters
//   - the non zero-argument constructor, when there are exactly two and one takes none
//   - the primary constructor
func SelectConstructor(class *Class) (*Constructor, error) {
	if class.Abstract() {
		return nil, nil
	}

	var marked *Constructor
	for _, ctor := range class.Constructors {
		if !ctor.Marked {
			continue
		}
		if marked != nil {
			return nil, gerrors.ErrAmbiguousConstructor
		}
		marked = ctor
	}
	if marked != nil {
		return marked, nil
	}

	ctors := class.Constructors
	zeroArg := -1
	for i, ctor := range ctors {
		if ctor.Arity() == 0 {
			zeroArg = i
			break
		}
	}

	switch {
	case len(ctors) == 1 && zeroArg < 0:
		return ctors[0], nil
	case len(ctors) == 2 && zeroArg >= 0:
		return ctors[1-zeroArg], nil
	}

	if primary, ok := class.Primary(); ok {
		return primary, nil
	}
	return nil, gerrors.ErrNoSuitableConstructor
}

// MatchProperties returns, for each parameter of ctor, the property of the
// same name. The property type must be assignable to the parameter type.
func MatchProperties(class *Class, ctor *Constructor) ([]*Property, error) {
	properties := make([]*Property, 0, len(ctor.Params))
	typeName := class.Type.String()
	for _, param := range ctor.Params {
		property, ok := class.Property(param.Name)
		if !ok {
			return nil, gerrors.NewErrPropertyMismatch(typeName, param.Name)
		}
		if !property.Type.AssignableTo(param.Type) {
			return nil, gerrors.NewErrTypeMismatch(typeName, param.Name, property.Type.String(), param.Type.String())
		}
		properties = append(properties, property)
	}
	return properties, nil
}
