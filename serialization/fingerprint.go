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
	"encoding/base64"
	"fmt"
	"reflect"
	"strconv"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/zeebo/xxh3"

	"github.com/typewire/typewire/collection"
	gerrors "github.com/typewire/typewire/errors"
	"github.com/typewire/typewire/model"
	"github.com/typewire/typewire/schema"
)

// descriptorDomain prefixes every fingerprint based descriptor
const descriptorDomain = "typewire:"

const (
	arrayHash       = "Array = true"
	listHash        = "List = true"
	mapHash         = "Map = true"
	alreadySeenHash = "Already seen = true"
	nullableHash    = "Nullable = true"
	notNullableHash = "Nullable = false"
	anyTypeHash     = "Any type = true"
	interfaceHash   = "Interface = true"
	customHash      = "Custom = true"
	singletonHash   = "Singleton = true"
)

// fingerprintForDescriptors hashes a list of strings
func fingerprintForDescriptors(descriptors ...string) string {
	hasher := xxh3.New()
	for _, descriptor := range descriptors {
		_, _ = hasher.WriteString(descriptor)
	}
	return encodeSum(hasher)
}

// descriptorFor returns the fingerprint based descriptor of fingerprint
func descriptorFor(fingerprint string) schema.Descriptor {
	return schema.NewDescriptor(descriptorDomain + fingerprint)
}

func encodeSum(hasher *xxh3.Hasher) string {
	sum := hasher.Sum128().Bytes()
	return base64.StdEncoding.EncodeToString(sum[:])
}

// fingerprinter hashes the shape of a type: its name, the names, types and
// nullability of the properties it is rebuilt from and its declared interfaces.
// Types are visited once; a type reached again hashes as already seen, which
// keeps recursive types finite.
type fingerprinter struct {
	factory *Factory
	hasher  *xxh3.Hasher
	seen    mapset.Set[reflect.Type]
}

// fingerprint returns the fingerprint of t
func (f *Factory) fingerprint(t reflect.Type) (string, error) {
	fp := &fingerprinter{
		factory: f,
		hasher:  xxh3.New(),
		seen:    mapset.NewThreadUnsafeSet[reflect.Type](),
	}
	if err := fp.walk(t); err != nil {
		return "", err
	}
	return encodeSum(fp.hasher), nil
}

func (fp *fingerprinter) write(s string) {
	_, _ = fp.hasher.WriteString(s)
}

func (fp *fingerprinter) walk(t reflect.Type) error {
	if fp.seen.Contains(t) {
		fp.write(alreadySeenHash)
		return nil
	}
	fp.seen.Add(t)

	if _, ok := fp.factory.singletonFor(t); ok {
		fp.write(typeName(t))
		fp.write(singletonHash)
		return nil
	}

	switch {
	case t.Kind() == reflect.Pointer:
		return fp.walk(t.Elem())
	case t.Kind() == reflect.Interface:
		if t.NumMethod() == 0 {
			fp.write(anyTypeHash)
			return nil
		}
		fp.write(typeName(t))
		fp.write(interfaceHash)
		return nil
	case isPrimitive(t):
		fp.write(typeName(t))
		return nil
	}

	if custom, ok := fp.factory.customFor(t); ok {
		fp.write(custom.TypeDescriptor().Key())
		fp.write(customHash)
		return nil
	}

	if reason := unsupportedKind(t); reason != "" {
		return gerrors.NewErrUnsupportedType(t.String(), reason)
	}

	switch {
	case t.Kind() == reflect.Slice:
		if err := fp.walk(t.Elem()); err != nil {
			return err
		}
		fp.write(listHash)
		if t.Name() != "" {
			fp.write(typeName(t))
		}
		return nil
	case t.Kind() == reflect.Array:
		if err := fp.walk(t.Elem()); err != nil {
			return err
		}
		fp.write(arrayHash)
		fp.write(strconv.Itoa(t.Len()))
		return nil
	case collection.IsSequence(t):
		elem := reflect.Zero(reflect.PointerTo(t)).Interface().(collection.Sequence).ElemType()
		if err := fp.walk(elem); err != nil {
			return err
		}
		fp.write(listHash)
		fp.write(typeName(t))
		return nil
	case collection.IsMapping(t):
		mapping := reflect.Zero(reflect.PointerTo(t)).Interface().(collection.Mapping)
		if err := fp.walk(mapping.KeyType()); err != nil {
			return err
		}
		if err := fp.walk(mapping.ValueType()); err != nil {
			return err
		}
		fp.write(mapHash)
		fp.write(typeName(t))
		return nil
	case t.Kind() == reflect.Struct:
		return fp.walkObject(t)
	default:
		return gerrors.NewErrUnsupportedType(t.String(), "kind "+t.Kind().String()+" has no wire form")
	}
}

func (fp *fingerprinter) walkObject(t reflect.Type) error {
	fp.write(typeName(t))

	class := fp.factory.classes.ClassOf(t)
	_, properties, err := objectProperties(class)
	if err != nil {
		return err
	}

	for _, property := range properties {
		if err := fp.walk(property.Type); err != nil {
			return gerrors.AppendPath(property.Name, err)
		}
		fp.write(property.Name)
		if isNullable(property.Type) {
			fp.write(nullableHash)
		} else {
			fp.write(notNullableHash)
		}
	}

	for _, iface := range class.Interfaces {
		if err := fp.walk(iface); err != nil {
			return err
		}
	}
	return nil
}

// objectProperties returns the deserialization constructor of a composite and
// the properties it is written with, in the order of the constructor parameters
func objectProperties(class *model.Class) (*model.Constructor, []*model.Property, error) {
	ctor, err := model.SelectConstructor(class)
	if err != nil {
		return nil, nil, fmt.Errorf("type=(%s): %w", class.Type, err)
	}
	if ctor == nil {
		return nil, nil, gerrors.NewErrAbstractType(class.Type.String())
	}
	properties, err := model.MatchProperties(class, ctor)
	if err != nil {
		return nil, nil, err
	}
	return ctor, properties, nil
}
