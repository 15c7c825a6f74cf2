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

package schema

import (
	"fmt"
	"strings"

	"github.com/typewire/typewire/internal/codec"
)

// Field describes one property of a composite type. It is documentation for
// the receiver: decoding relies on field order, not on the field metadata.
type Field struct {
	Name     string
	Type     string
	Requires []string
	// Default is the textual default of a primitive property. Empty means absent.
	Default string
	// Label is optional. Empty means absent.
	Label string
	// Mandatory is false only for nullable non-primitive properties
	Mandatory bool
	Multiple  bool
}

// ToWire returns the wire form of the field
func (f *Field) ToWire() any {
	return FieldDescriptor.Describe([]any{
		f.Name,
		f.Type,
		stringList(f.Requires),
		optionalString(f.Default),
		optionalString(f.Label),
		f.Mandatory,
		f.Multiple,
	})
}

// String renders the field element
func (f *Field) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<field name=%q type=%q mandatory=\"%t\" multiple=\"%t\"", f.Name, f.Type, f.Mandatory, f.Multiple)
	if len(f.Requires) > 0 {
		fmt.Fprintf(&sb, " requires=%q", strings.Join(f.Requires, ","))
	}
	if f.Default != "" {
		fmt.Fprintf(&sb, " default=%q", f.Default)
	}
	if f.Label != "" {
		fmt.Fprintf(&sb, " label=%q", f.Label)
	}
	sb.WriteString("/>")
	return sb.String()
}

// FieldFromWire parses the wire form of a Field
func FieldFromWire(v any) (*Field, error) {
	list, err := expectList(v, FieldDescriptor, 7)
	if err != nil {
		return nil, err
	}

	f := new(Field)
	if f.Name, err = asString(list[0], "field name"); err != nil {
		return nil, err
	}
	if f.Type, err = asString(list[1], "field type"); err != nil {
		return nil, err
	}
	if f.Requires, err = asStrings(list[2], "field requires"); err != nil {
		return nil, err
	}
	if f.Default, err = asOptionalString(list[3], "field default"); err != nil {
		return nil, err
	}
	if f.Label, err = asOptionalString(list[4], "field label"); err != nil {
		return nil, err
	}
	if f.Mandatory, err = asBool(list[5], "field mandatory"); err != nil {
		return nil, err
	}
	if f.Multiple, err = asBool(list[6], "field multiple"); err != nil {
		return nil, err
	}
	return f, nil
}

func fieldsFromWire(v any) ([]*Field, error) {
	list, ok := codec.AsList(v)
	if !ok {
		return nil, unexpected("fields", v)
	}
	fields := make([]*Field, 0, len(list))
	for _, item := range list {
		field, err := FieldFromWire(item)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return fields, nil
}
