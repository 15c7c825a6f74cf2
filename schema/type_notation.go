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

// Sources of a RestrictedType
const (
	SourceList    = "list"
	SourceMap     = "map"
	SourceBoolean = "boolean"
	SourceString  = "string"
)

// TypeNotation describes one logical type on the wire.
// The implementations are *CompositeType and *RestrictedType.
type TypeNotation interface {
	// Name returns the type name
	Name() string
	// Label returns the optional label
	Label() string
	// Provides returns the interface names the type satisfies
	Provides() []string
	// Descriptor returns the descriptor under which values of the type are written
	Descriptor() Descriptor
	// ToWire returns the wire form of the notation
	ToWire() any
	fmt.Stringer
}

// CompositeType describes an object-like type rebuilt from its properties and constructor
type CompositeType struct {
	name       string
	label      string
	provides   []string
	descriptor Descriptor
	Fields     []*Field
}

// enforce compilation error
var _ TypeNotation = (*CompositeType)(nil)

// NewCompositeType creates a CompositeType
func NewCompositeType(name, label string, provides []string, descriptor Descriptor, fields []*Field) *CompositeType {
	return &CompositeType{
		name:       name,
		label:      label,
		provides:   provides,
		descriptor: descriptor,
		Fields:     fields,
	}
}

func (c *CompositeType) Name() string           { return c.name }
func (c *CompositeType) Label() string          { return c.label }
func (c *CompositeType) Provides() []string     { return c.provides }
func (c *CompositeType) Descriptor() Descriptor { return c.descriptor }

// Field returns the field with the given name
func (c *CompositeType) Field(name string) (*Field, bool) {
	for _, field := range c.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return nil, false
}

// ToWire returns the wire form of the composite type
func (c *CompositeType) ToWire() any {
	fields := make([]any, len(c.Fields))
	for i, field := range c.Fields {
		fields[i] = field.ToWire()
	}
	return CompositeTypeDescriptor.Describe([]any{
		c.name,
		optionalString(c.label),
		stringList(c.provides),
		c.descriptor.ToWire(),
		fields,
	})
}

// String renders the type element
func (c *CompositeType) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<type class=\"composite\" name=%q", c.name)
	if c.label != "" {
		fmt.Fprintf(&sb, " label=%q", c.label)
	}
	if len(c.provides) > 0 {
		fmt.Fprintf(&sb, " provides=%q", strings.Join(c.provides, ","))
	}
	sb.WriteString(">\n")
	fmt.Fprintf(&sb, "  %s\n", c.descriptor)
	for _, field := range c.Fields {
		fmt.Fprintf(&sb, "  %s\n", field)
	}
	sb.WriteString("</type>")
	return sb.String()
}

// Choice is one allowed value of a RestrictedType
type Choice struct {
	Name  string
	Value string
}

// ToWire returns the wire form of the choice
func (c Choice) ToWire() any {
	return ChoiceDescriptor.Describe([]any{c.Name, c.Value})
}

// String renders the choice element
func (c Choice) String() string {
	return fmt.Sprintf("<choice name=%q value=%q/>", c.Name, c.Value)
}

// ChoiceFromWire parses the wire form of a Choice
func ChoiceFromWire(v any) (Choice, error) {
	list, err := expectList(v, ChoiceDescriptor, 2)
	if err != nil {
		return Choice{}, err
	}
	name, err := asString(list[0], "choice name")
	if err != nil {
		return Choice{}, err
	}
	value, err := asString(list[1], "choice value")
	if err != nil {
		return Choice{}, err
	}
	return Choice{Name: name, Value: value}, nil
}

// RestrictedType describes a structural type written as a bare container or scalar
type RestrictedType struct {
	name       string
	label      string
	provides   []string
	descriptor Descriptor
	Source     string
	Choices    []Choice
}

// enforce compilation error
var _ TypeNotation = (*RestrictedType)(nil)

// NewRestrictedType creates a RestrictedType
func NewRestrictedType(name, label string, provides []string, source string, descriptor Descriptor, choices []Choice) *RestrictedType {
	return &RestrictedType{
		name:       name,
		label:      label,
		provides:   provides,
		descriptor: descriptor,
		Source:     source,
		Choices:    choices,
	}
}

func (r *RestrictedType) Name() string           { return r.name }
func (r *RestrictedType) Label() string          { return r.label }
func (r *RestrictedType) Provides() []string     { return r.provides }
func (r *RestrictedType) Descriptor() Descriptor { return r.descriptor }

// ToWire returns the wire form of the restricted type
func (r *RestrictedType) ToWire() any {
	choices := make([]any, len(r.Choices))
	for i, choice := range r.Choices {
		choices[i] = choice.ToWire()
	}
	return RestrictedTypeDescriptor.Describe([]any{
		r.name,
		optionalString(r.label),
		stringList(r.provides),
		r.Source,
		r.descriptor.ToWire(),
		choices,
	})
}

// String renders the type element
func (r *RestrictedType) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<type class=\"restricted\" name=%q", r.name)
	if r.label != "" {
		fmt.Fprintf(&sb, " label=%q", r.label)
	}
	fmt.Fprintf(&sb, " source=%q", r.Source)
	if len(r.provides) > 0 {
		fmt.Fprintf(&sb, " provides=%q", strings.Join(r.provides, ","))
	}
	sb.WriteString(">\n")
	fmt.Fprintf(&sb, "  %s\n", r.descriptor)
	for _, choice := range r.Choices {
		fmt.Fprintf(&sb, "  %s\n", choice)
	}
	sb.WriteString("</type>")
	return sb.String()
}

// TypeNotationFromWire parses the wire form of either notation variant
func TypeNotationFromWire(v any) (TypeNotation, error) {
	described, ok := codec.AsDescribed(v)
	if !ok {
		return nil, unexpected("type notation", v)
	}
	switch descriptor := DescriptorOf(described); {
	case descriptor.Matches(CompositeTypeDescriptor):
		return compositeFromWire(v)
	case descriptor.Matches(RestrictedTypeDescriptor):
		return restrictedFromWire(v)
	default:
		return nil, unexpected("type notation descriptor "+descriptor.Key(), v)
	}
}

func notationHeader(list []any) (name, label string, provides []string, err error) {
	if name, err = asString(list[0], "type name"); err != nil {
		return
	}
	if label, err = asOptionalString(list[1], "type label"); err != nil {
		return
	}
	provides, err = asStrings(list[2], "type provides")
	return
}

func compositeFromWire(v any) (*CompositeType, error) {
	list, err := expectList(v, CompositeTypeDescriptor, 5)
	if err != nil {
		return nil, err
	}
	name, label, provides, err := notationHeader(list)
	if err != nil {
		return nil, err
	}
	descriptor, err := DescriptorFromWire(list[3])
	if err != nil {
		return nil, err
	}
	fields, err := fieldsFromWire(list[4])
	if err != nil {
		return nil, err
	}
	return NewCompositeType(name, label, provides, descriptor, fields), nil
}

func restrictedFromWire(v any) (*RestrictedType, error) {
	list, err := expectList(v, RestrictedTypeDescriptor, 6)
	if err != nil {
		return nil, err
	}
	name, label, provides, err := notationHeader(list)
	if err != nil {
		return nil, err
	}
	source, err := asString(list[3], "type source")
	if err != nil {
		return nil, err
	}
	descriptor, err := DescriptorFromWire(list[4])
	if err != nil {
		return nil, err
	}
	rawChoices, ok := codec.AsList(list[5])
	if !ok {
		return nil, unexpected("choices", list[5])
	}
	choices := make([]Choice, 0, len(rawChoices))
	for _, item := range rawChoices {
		choice, err := ChoiceFromWire(item)
		if err != nil {
			return nil, err
		}
		choices = append(choices, choice)
	}
	return NewRestrictedType(name, label, provides, source, descriptor, choices), nil
}
