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
	"strings"

	"github.com/typewire/typewire/internal/codec"
)

// Schema is the deduplicated list of type notations of one message
type Schema struct {
	Types []TypeNotation
}

// Find returns the notation written under descriptor
func (s *Schema) Find(descriptor Descriptor) (TypeNotation, bool) {
	if s == nil {
		return nil, false
	}
	for _, notation := range s.Types {
		if notation.Descriptor().Matches(descriptor) {
			return notation, true
		}
	}
	return nil, false
}

// FindByName returns the first notation with the given type name
func (s *Schema) FindByName(name string) (TypeNotation, bool) {
	if s == nil {
		return nil, false
	}
	for _, notation := range s.Types {
		if notation.Name() == name {
			return notation, true
		}
	}
	return nil, false
}

// ToWire returns the wire form of the schema
func (s *Schema) ToWire() any {
	types := make([]any, len(s.Types))
	for i, notation := range s.Types {
		types[i] = notation.ToWire()
	}
	return SchemaDescriptor.Describe([]any{types})
}

// String renders every notation, one per block
func (s *Schema) String() string {
	parts := make([]string, len(s.Types))
	for i, notation := range s.Types {
		parts[i] = notation.String()
	}
	return strings.Join(parts, "\n")
}

// FromWire parses the wire form of a Schema
func FromWire(v any) (*Schema, error) {
	list, err := expectList(v, SchemaDescriptor, 1)
	if err != nil {
		return nil, err
	}
	rawTypes, ok := codec.AsList(list[0])
	if !ok {
		return nil, unexpected("schema types", list[0])
	}
	types := make([]TypeNotation, 0, len(rawTypes))
	for _, item := range rawTypes {
		notation, err := TypeNotationFromWire(item)
		if err != nil {
			return nil, err
		}
		types = append(types, notation)
	}
	return &Schema{Types: types}, nil
}

// Envelope is the single top-level value of a message: the object and the schema describing it
type Envelope struct {
	// Object is the encoded object graph, still in container form
	Object any
	Schema *Schema
}

// ToWire returns the wire form of the envelope
func (e *Envelope) ToWire() any {
	s := e.Schema
	if s == nil {
		s = new(Schema)
	}
	return EnvelopeDescriptor.Describe([]any{e.Object, s.ToWire()})
}

// EnvelopeFromWire parses the wire form of an Envelope
func EnvelopeFromWire(v any) (*Envelope, error) {
	list, err := expectList(v, EnvelopeDescriptor, 2)
	if err != nil {
		return nil, err
	}
	s, err := FromWire(list[1])
	if err != nil {
		return nil, err
	}
	return &Envelope{Object: list[0], Schema: s}, nil
}
