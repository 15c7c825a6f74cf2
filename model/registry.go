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

	"github.com/typewire/typewire/internal/xsync"
)

// Registry holds the classes known to a serializer factory.
// Explicitly registered classes win; other types get a derived class, memoised.
type Registry struct {
	classes *xsync.Map[reflect.Type, *Class]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{classes: xsync.NewMap[reflect.Type, *Class]()}
}

// Register records explicit class descriptions, replacing any previous one
func (r *Registry) Register(classes ...*Class) {
	for _, class := range classes {
		if class != nil {
			r.classes.Set(class.Type, class)
		}
	}
}

// Describe derives the class of t with the given options and registers it
func (r *Registry) Describe(t reflect.Type, opts ...Option) (*Class, error) {
	class, err := DescribeType(t, opts...)
	if err != nil {
		return nil, err
	}
	r.Register(class)
	return class, nil
}

// Has reports whether t has an explicit or memoised class
func (r *Registry) Has(t reflect.Type) bool {
	return r.classes.Has(t)
}

// ClassOf returns the class of t
func (r *Registry) ClassOf(t reflect.Type) *Class {
	if class, ok := r.classes.Get(t); ok {
		return class
	}
	// deriving without options cannot fail
	class, _ := DescribeType(t)
	class, _ = r.classes.SetIfAbsent(t, class)
	return class
}
