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

// Package registry resolves the type names read from a schema back to Go types.
package registry

import (
	"reflect"
	"slices"
	"strings"

	"github.com/typewire/typewire/internal/xsync"
)

// Registry maps wire names to named Go types.
// Names are package qualified and case-sensitive. Safe for concurrent use.
type Registry struct {
	types *xsync.Map[string, reflect.Type]
}

// New creates an empty Registry
func New() *Registry {
	return &Registry{types: xsync.NewMap[string, reflect.Type]()}
}

// Register records the type of v and returns its wire name. v may be a
// value, a pointer or a reflect.Type; pointers are recorded by their element.
// Nil and unnamed types are ignored and yield an empty name.
func (r *Registry) Register(v any) string {
	t := baseType(v)
	if t == nil || t.Name() == "" {
		return ""
	}
	name := TypeName(t)
	r.types.Set(name, t)
	return name
}

// Lookup returns the type registered under name
func (r *Registry) Lookup(name string) (reflect.Type, bool) {
	return r.types.Get(name)
}

// Names returns the registered names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, r.types.Len())
	r.types.Range(func(name string, _ reflect.Type) bool {
		names = append(names, name)
		return true
	})
	slices.Sort(names)
	return names
}

// TypeName returns the wire name of t: the import path and the name for named
// types, the Go syntax otherwise.
func TypeName(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return strings.TrimSpace(t.String())
}

func baseType(v any) reflect.Type {
	var t reflect.Type
	switch x := v.(type) {
	case nil:
		return nil
	case reflect.Type:
		t = x
	default:
		t = reflect.TypeOf(v)
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
