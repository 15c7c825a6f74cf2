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

package serialization

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/typewire/typewire/internal/registry"
)

const (
	binaryName    = "binary"
	timestampName = "timestamp"
	uuidName      = "uuid"
	anyName       = "any"
	// anyFieldType is the field type of a property declared with an interface type
	anyFieldType = "*"
)

var (
	anyType   = reflect.TypeFor[any]()
	bytesType = reflect.TypeFor[[]byte]()
	byteType  = reflect.TypeFor[byte]()
	timeType  = reflect.TypeFor[time.Time]()
	uuidType  = reflect.TypeFor[uuid.UUID]()
)

// builtinTypes maps the wire names of the unnamed primitive types to their Go type
var builtinTypes = map[string]reflect.Type{
	"bool":        reflect.TypeFor[bool](),
	"int":         reflect.TypeFor[int](),
	"int8":        reflect.TypeFor[int8](),
	"int16":       reflect.TypeFor[int16](),
	"int32":       reflect.TypeFor[int32](),
	"int64":       reflect.TypeFor[int64](),
	"uint":        reflect.TypeFor[uint](),
	"uint8":       reflect.TypeFor[uint8](),
	"uint16":      reflect.TypeFor[uint16](),
	"uint32":      reflect.TypeFor[uint32](),
	"uint64":      reflect.TypeFor[uint64](),
	"float32":     reflect.TypeFor[float32](),
	"float64":     reflect.TypeFor[float64](),
	"string":      reflect.TypeFor[string](),
	binaryName:    bytesType,
	timestampName: timeType,
	uuidName:      uuidType,
	anyName:       anyType,
}

// builtinNames is the reverse of builtinTypes
var builtinNames = func() map[reflect.Type]string {
	names := make(map[reflect.Type]string, len(builtinTypes))
	for name, t := range builtinTypes {
		names[t] = name
	}
	return names
}()

// isPrimitive reports whether t is written as a plain wire value
func isPrimitive(t reflect.Type) bool {
	if t == timeType || t == uuidType {
		return true
	}
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return true
	case reflect.Slice:
		return t.Elem().Kind() == reflect.Uint8
	default:
		return false
	}
}

// isNullable reports whether the zero value of t is nil
func isNullable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice:
		return true
	default:
		return false
	}
}

// unsupportedKind returns the reason a kind can never be written, or an empty string
func unsupportedKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Map:
		return "iteration order unstable"
	case reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Uintptr:
		return "kind " + t.Kind().String() + " has no wire form"
	case reflect.Complex64, reflect.Complex128:
		return "complex numbers have no wire form"
	default:
		return ""
	}
}

// deref strips every pointer level of t
func deref(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// typeName returns the wire name of t.
// Named types use their package qualified name, unnamed composite types are
// spelled the Go way from the names of their elements.
func typeName(t reflect.Type) string {
	if name, ok := builtinNames[t]; ok {
		return name
	}
	if t.Name() != "" {
		return registry.TypeName(t)
	}
	switch t.Kind() {
	case reflect.Pointer:
		return "*" + typeName(t.Elem())
	case reflect.Slice:
		return "[]" + typeName(t.Elem())
	case reflect.Array:
		return fmt.Sprintf("[%d]%s", t.Len(), typeName(t.Elem()))
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return anyName
		}
	}
	return t.String()
}

// fieldTypeName returns the type of a field holding a property of type t.
// Pointers are represented by their element and a non-mandatory field.
func fieldTypeName(t reflect.Type) string {
	if t.Kind() == reflect.Interface {
		return anyFieldType
	}
	return typeName(deref(t))
}

// Limits on the types a wire name may describe. Names come from untrusted
// messages and arrays are allocated whole when read.
const (
	maxNameNesting = 32
	maxArrayLength = 1 << 20
	maxArrayBytes  = 1 << 24
)

// typeForName resolves a wire name produced by typeName
func (f *Factory) typeForName(name string) (reflect.Type, bool) {
	return f.resolveName(name, 0)
}

func (f *Factory) resolveName(name string, depth int) (reflect.Type, bool) {
	if t, ok := builtinTypes[name]; ok {
		return t, true
	}
	if depth >= maxNameNesting {
		return nil, false
	}

	switch {
	case strings.HasPrefix(name, "*"):
		elem, ok := f.resolveName(name[1:], depth+1)
		if !ok {
			return nil, false
		}
		return reflect.PointerTo(elem), true
	case strings.HasPrefix(name, "[]"):
		elem, ok := f.resolveName(name[2:], depth+1)
		if !ok {
			return nil, false
		}
		return reflect.SliceOf(elem), true
	case strings.HasPrefix(name, "["):
		size, elemName, found := strings.Cut(name[1:], "]")
		if !found {
			return nil, false
		}
		n, err := strconv.Atoi(size)
		if err != nil || n < 0 || n > maxArrayLength {
			return nil, false
		}
		elem, ok := f.resolveName(elemName, depth+1)
		if !ok {
			return nil, false
		}
		if elem.Size() != 0 && uintptr(n) > maxArrayBytes/elem.Size() {
			return nil, false
		}
		return reflect.ArrayOf(n, elem), true
	}

	return f.names.Lookup(name)
}
