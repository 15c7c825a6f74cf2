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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/typewire/typewire/errors"
	"github.com/typewire/typewire/internal/codec"
)

func sampleSchema() *Schema {
	person := NewCompositeType("example.com/model.Person", "", []string{"example.com/model.Named"},
		NewDescriptor("typewire:person"), []*Field{
			{Name: "Name", Type: "string", Mandatory: false},
			{Name: "Age", Type: "int32", Default: "0", Mandatory: true},
			{Name: "Pet", Type: "*", Requires: []string{"example.com/model.Animal"}},
			{Name: "Tags", Type: "[]string", Multiple: true},
		})
	tags := NewRestrictedType("[]string", "", nil, SourceList, NewDescriptor("typewire:tags"), nil)
	marker := NewRestrictedType("example.com/model.Nobody", "", nil, SourceBoolean, NewDescriptor("typewire:nobody"),
		[]Choice{{Name: "instance", Value: "false"}})
	return &Schema{Types: []TypeNotation{person, tags, marker}}
}

func TestEnvelopeWire(t *testing.T) {
	c, err := codec.New()
	require.NoError(t, err)

	envelope := &Envelope{
		Object: NewDescriptor("typewire:person").Describe([]any{"Ada", int64(36), nil, []any{"x"}}),
		Schema: sampleSchema(),
	}
	data, err := c.Marshal(envelope.ToWire())
	require.NoError(t, err)

	decoded, err := c.Unmarshal(data)
	require.NoError(t, err)
	actual, err := EnvelopeFromWire(decoded)
	require.NoError(t, err)

	require.Len(t, actual.Schema.Types, 3)
	assert.Equal(t, envelope.Schema.String(), actual.Schema.String())

	person, ok := actual.Schema.Find(NewDescriptor("typewire:person"))
	require.True(t, ok)
	composite, ok := person.(*CompositeType)
	require.True(t, ok)
	assert.Equal(t, "example.com/model.Person", composite.Name())
	assert.Equal(t, []string{"example.com/model.Named"}, composite.Provides())
	require.Len(t, composite.Fields, 4)
	assert.Equal(t, []string{"example.com/model.Animal"}, composite.Fields[2].Requires)
	assert.Equal(t, "0", composite.Fields[1].Default)
	assert.True(t, composite.Fields[3].Multiple)

	field, ok := composite.Field("Age")
	require.True(t, ok)
	assert.True(t, field.Mandatory)
	_, ok = composite.Field("age")
	assert.False(t, ok)

	marker, ok := actual.Schema.FindByName("example.com/model.Nobody")
	require.True(t, ok)
	restricted, ok := marker.(*RestrictedType)
	require.True(t, ok)
	assert.Equal(t, SourceBoolean, restricted.Source)
	assert.Equal(t, []Choice{{Name: "instance", Value: "false"}}, restricted.Choices)

	object, ok := codec.AsDescribed(actual.Object)
	require.True(t, ok)
	assert.Equal(t, "typewire:person", object.Name)
}

func TestSchemaString(t *testing.T) {
	expected := `<type class="composite" name="example.com/model.Person" provides="example.com/model.Named">
  <descriptor name="typewire:person"/>
  <field name="Name" type="string" mandatory="false" multiple="false"/>
  <field name="Age" type="int32" mandatory="true" multiple="false" default="0"/>
  <field name="Pet" type="*" mandatory="false" multiple="false" requires="example.com/model.Animal"/>
  <field name="Tags" type="[]string" mandatory="false" multiple="true"/>
</type>
<type class="restricted" name="[]string" source="list">
  <descriptor name="typewire:tags"/>
</type>
<type class="restricted" name="example.com/model.Nobody" source="boolean">
  <descriptor name="typewire:nobody"/>
  <choice name="instance" value="false"/>
</type>`
	assert.Equal(t, expected, sampleSchema().String())
}

func TestDescriptor(t *testing.T) {
	t.Run("With code rendering", func(t *testing.T) {
		assert.Equal(t, `<descriptor code="0x00000000:0x74770001"/>`, EnvelopeDescriptor.String())
		assert.Equal(t, "0x74770001", EnvelopeDescriptor.Key())
	})
	t.Run("With matching", func(t *testing.T) {
		assert.True(t, NewDescriptor("a").Matches(NewDescriptor("a")))
		assert.False(t, NewDescriptor("a").Matches(NewDescriptor("b")))
		assert.False(t, NewDescriptor("a").Matches(EnvelopeDescriptor))
		assert.True(t, EnvelopeDescriptor.Matches(NewCodedDescriptor(DescriptorTopBits|1)))
		assert.True(t, Descriptor{}.IsZero())
	})
	t.Run("With descriptor wire form", func(t *testing.T) {
		actual, err := DescriptorFromWire(Descriptor{Name: "n", Code: 7}.ToWire())
		require.NoError(t, err)
		assert.Equal(t, Descriptor{Name: "n", Code: 7}, actual)
	})
}

func TestMalformedWire(t *testing.T) {
	t.Run("With a value that is not described", func(t *testing.T) {
		_, err := EnvelopeFromWire("text")
		require.ErrorIs(t, err, gerrors.ErrSchemaMismatch)
	})
	t.Run("With a wrong descriptor", func(t *testing.T) {
		_, err := EnvelopeFromWire(SchemaDescriptor.Describe([]any{nil, nil}))
		require.ErrorIs(t, err, gerrors.ErrSchemaMismatch)
	})
	t.Run("With a short body", func(t *testing.T) {
		_, err := EnvelopeFromWire(EnvelopeDescriptor.Describe([]any{nil}))
		require.ErrorIs(t, err, gerrors.ErrSchemaMismatch)
	})
	t.Run("With a bad field", func(t *testing.T) {
		bad := FieldDescriptor.Describe([]any{"name", int64(1), []any{}, nil, nil, true, false})
		_, err := FieldFromWire(bad)
		require.ErrorIs(t, err, gerrors.ErrSchemaMismatch)
	})
	t.Run("With an unknown notation", func(t *testing.T) {
		_, err := TypeNotationFromWire(ChoiceDescriptor.Describe([]any{"a", "b"}))
		require.ErrorIs(t, err, gerrors.ErrSchemaMismatch)
	})
	t.Run("With a nil schema", func(t *testing.T) {
		var s *Schema
		_, ok := s.Find(NewDescriptor("x"))
		assert.False(t, ok)
		_, ok = s.FindByName("x")
		assert.False(t, ok)
	})
}
