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
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/atomic"

	"github.com/typewire/typewire/collection"
	gerrors "github.com/typewire/typewire/errors"
	"github.com/typewire/typewire/internal/codec"
	"github.com/typewire/typewire/internal/metric"
	"github.com/typewire/typewire/internal/registry"
	"github.com/typewire/typewire/internal/xsync"
	"github.com/typewire/typewire/log"
	"github.com/typewire/typewire/model"
	"github.com/typewire/typewire/schema"
)

// Factory builds, caches and hands out the serializers of Go types.
//
// Serializers are built lazily the first time a type is written or read and
// shared afterwards. A Factory is safe for concurrent use: lookups of
// published serializers never block, construction runs under a single build
// lock. Recursive types are resolved through placeholders that forward to the
// serializer once it is complete.
type Factory struct {
	config  *Config
	logger  log.Logger
	codec   *codec.Codec
	classes *model.Registry
	names   *registry.Registry
	metric  *metric.SerializationMetric

	// buildMu is held by the session building serializers
	buildMu sync.Mutex
	// slots and ids are the arena of serializers under construction or built.
	// Guarded by buildMu.
	slots []*slot
	ids   map[reflect.Type]int
	// customs are consulted in registration order. Guarded by buildMu.
	customs []CustomSerializer

	serializers *xsync.Map[reflect.Type, Serializer]
	descriptors *xsync.Map[string, Serializer]
	singletons  *xsync.Map[reflect.Type, *singletonSerializer]
}

// slot holds the serializer of one type. Its id never changes once the
// serializer is published.
type slot struct {
	id     int
	typ    reflect.Type
	target *atomic.Pointer[binding]
}

type binding struct {
	serializer Serializer
}

// NewFactory creates a Factory
func NewFactory(opts ...Option) (*Factory, error) {
	config := newConfig(opts...)
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c, err := codec.New()
	if err != nil {
		return nil, err
	}

	instruments, err := metric.NewSerializationMetric(metric.Meter(config.meterProvider))
	if err != nil {
		return nil, err
	}

	factory := &Factory{
		config:      config,
		logger:      config.logger.With("component", "serialization"),
		codec:       c,
		classes:     config.classes,
		names:       registry.New(),
		metric:      instruments,
		ids:         make(map[reflect.Type]int),
		serializers: xsync.NewMap[reflect.Type, Serializer](),
		descriptors: xsync.NewMap[string, Serializer](),
		singletons:  xsync.NewMap[reflect.Type, *singletonSerializer](),
	}

	if config.defaultSerializers {
		for _, custom := range defaultSerializers() {
			if err := factory.RegisterCustomSerializer(custom); err != nil {
				return nil, err
			}
		}
	}
	return factory, nil
}

// Config returns the factory configuration
func (f *Factory) Config() *Config {
	return f.config
}

// Classes returns the registry of class descriptions used by the factory.
// Explicit descriptions must be added before the type is first resolved.
func (f *Factory) Classes() *model.Registry {
	return f.classes
}

// Register makes the types of values resolvable by their wire name, so that
// values of those types can be read from interface declared slots before the
// factory has written any. values may hold reflect.Type values.
func (f *Factory) Register(values ...any) {
	for _, value := range values {
		if value != nil {
			f.names.Register(value)
		}
	}
}

// RegisterClass adds an explicit class description and makes its type
// resolvable by name
func (f *Factory) RegisterClass(class *model.Class) error {
	f.buildMu.Lock()
	defer f.buildMu.Unlock()

	if f.serializers.Has(class.Type) {
		return fmt.Errorf("type=(%s) %w", typeName(class.Type), gerrors.ErrSerializerAlreadyResolved)
	}
	f.classes.Register(class)
	f.names.Register(class.Type)
	return nil
}

// RegisterCustomSerializer adds a custom serializer. It is consulted before
// the generic serializers of every type it handles.
func (f *Factory) RegisterCustomSerializer(custom CustomSerializer) error {
	f.buildMu.Lock()
	defer f.buildMu.Unlock()

	t := custom.Type()
	for _, existing := range f.customs {
		if existing.Type() == t {
			return fmt.Errorf("type=(%s) %w", typeName(t), gerrors.ErrSerializerAlreadyRegistered)
		}
	}
	if f.serializers.Has(t) {
		return fmt.Errorf("type=(%s) %w", typeName(t), gerrors.ErrSerializerAlreadyResolved)
	}

	f.customs = append(f.customs, custom)
	if t.Name() != "" {
		f.names.Register(t)
	}
	f.logger.Debugf("registered custom serializer for %s", typeName(t))
	return nil
}

// RegisterSingleton binds instance to its type. Values of that type are
// written as a marker and read back as instance itself.
func (f *Factory) RegisterSingleton(instance any) error {
	if instance == nil {
		return gerrors.NewErrUnsupportedType("nil", "a singleton needs an instance")
	}

	value := reflect.ValueOf(instance)
	t := value.Type()

	f.buildMu.Lock()
	defer f.buildMu.Unlock()

	if f.singletons.Has(t) {
		return fmt.Errorf("type=(%s) %w", typeName(t), gerrors.ErrSerializerAlreadyRegistered)
	}
	if f.serializers.Has(t) {
		return fmt.Errorf("type=(%s) %w", typeName(t), gerrors.ErrSerializerAlreadyResolved)
	}

	singleton := newSingletonSerializer(value)
	f.singletons.Set(t, singleton)
	f.serializers.Set(t, singleton)
	f.descriptors.Set(singleton.TypeDescriptor().Key(), singleton)
	f.logger.Debugf("registered singleton %s", typeName(t))
	return nil
}

// Get returns the serializer of a value whose runtime type is actual, held in
// a slot declared with type declared. The declared type wins unless it is an
// interface. Pointers are serialized through their element type.
func (f *Factory) Get(actual, declared reflect.Type) (Serializer, error) {
	t, err := f.resolveType(actual, declared)
	if err != nil {
		return nil, err
	}

	if serializer, ok := f.serializers.Get(t); ok {
		return serializer, nil
	}

	f.buildMu.Lock()
	defer f.buildMu.Unlock()

	if serializer, ok := f.serializers.Get(t); ok {
		return serializer, nil
	}

	session := &session{factory: f}
	serializer, err := session.get(t)
	if err != nil {
		session.rollback()
		f.logger.Warnf("could not build a serializer for %s: %v", typeName(t), err)
		return nil, err
	}
	session.commit()
	return serializer, nil
}

// GetByDescriptor returns the serializer of the type identified by descriptor,
// using the schema of the message being read to resolve descriptors the
// factory has not seen. When the local type has a different shape than the
// one described in the schema an evolution serializer is returned.
func (f *Factory) GetByDescriptor(descriptor schema.Descriptor, sch *schema.Schema) (Serializer, error) {
	if serializer, ok := f.descriptors.Get(descriptor.Key()); ok {
		return serializer, nil
	}

	var notation schema.TypeNotation
	name := descriptor.Name
	if sch != nil {
		if found, ok := sch.Find(descriptor); ok {
			notation = found
			name = found.Name()
		}
	}
	if name == "" {
		return nil, gerrors.NewErrTypeNotFound(descriptor.Key())
	}

	t, ok := f.typeForName(name)
	if !ok {
		return nil, gerrors.NewErrTypeNotFound(name)
	}

	serializer, err := f.Get(t, t)
	if err != nil {
		return nil, err
	}
	if serializer.TypeDescriptor().Matches(descriptor) {
		return serializer, nil
	}

	composite, isComposite := notation.(*schema.CompositeType)
	object, isObject := resolved(serializer).(*objectSerializer)
	if isComposite && isObject {
		return f.evolve(object, composite)
	}

	f.logger.Debugf("descriptor %s of %s differs from the local one, reading positionally", descriptor.Key(), name)
	return serializer, nil
}

// evolutionFor returns the serializer reading a value of the type handled by
// serializer written with descriptor
func (f *Factory) evolutionFor(serializer Serializer, descriptor schema.Descriptor, sch *schema.Schema) (Serializer, error) {
	if cached, ok := f.descriptors.Get(descriptor.Key()); ok && cached.Type() == serializer.Type() {
		return cached, nil
	}

	object, ok := resolved(serializer).(*objectSerializer)
	if !ok {
		return serializer, nil
	}

	var notation schema.TypeNotation
	if sch != nil {
		notation, _ = sch.Find(descriptor)
	}
	composite, ok := notation.(*schema.CompositeType)
	if !ok {
		return nil, gerrors.NewErrSchemaMismatch("descriptor %s read as %s is not a composite of the schema",
			descriptor.Key(), typeName(object.typ))
	}
	if !f.designates(composite.Name(), object.typ) {
		return nil, gerrors.NewErrSchemaMismatch("descriptor %s names %s, expected %s",
			descriptor.Key(), composite.Name(), typeName(object.typ))
	}
	return f.evolve(object, composite)
}

// designates reports whether the wire name stands for the local type t
func (f *Factory) designates(name string, t reflect.Type) bool {
	if name == typeName(t) {
		return true
	}
	resolved, ok := f.typeForName(name)
	return ok && resolved == t
}

func (f *Factory) evolve(local *objectSerializer, remote *schema.CompositeType) (Serializer, error) {
	key := remote.Descriptor().Key()
	if cached, ok := f.descriptors.Get(key); ok {
		return cached, nil
	}

	evolved, err := newEvolutionSerializer(f, local, remote)
	if err != nil {
		return nil, err
	}

	f.logger.Infof("reading %s with evolved descriptor %s", typeName(local.typ), key)
	actual, _ := f.descriptors.SetIfAbsent(key, evolved)
	f.metric.RecordSerializerBuilt(context.Background(), kindOf(actual))
	return actual, nil
}

// resolveType returns the type whose serializer handles the slot
func (f *Factory) resolveType(actual, declared reflect.Type) (reflect.Type, error) {
	t := declared
	if t == nil {
		t = actual
	}
	if t == nil {
		return nil, gerrors.NewErrUnsupportedType("nil", "no type to resolve")
	}

	if t.Kind() == reflect.Interface {
		if actual == nil || actual.Kind() == reflect.Interface {
			return nil, gerrors.NewErrAbstractType(typeName(t))
		}
		t = actual
	}
	return f.strip(t), nil
}

// strip dereferences t down to the type its serializer handles.
// Pointer types bound to a singleton are kept.
func (f *Factory) strip(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		if f.singletons.Has(t) {
			break
		}
		t = t.Elem()
	}
	return t
}

func (f *Factory) singletonFor(t reflect.Type) (*singletonSerializer, bool) {
	return f.singletons.Get(t)
}

// customFor returns the first custom serializer handling t. The caller holds buildMu.
func (f *Factory) customFor(t reflect.Type) (CustomSerializer, bool) {
	for _, custom := range f.customs {
		if custom.IsSerializerFor(t) {
			return custom, true
		}
	}
	return nil, false
}

// build creates the serializer of t. It runs inside a session.
func (f *Factory) build(s *session, t reflect.Type) (Serializer, error) {
	if t.Kind() == reflect.Map {
		return nil, gerrors.NewErrUnsupportedType(t.String(), unsupportedKind(t))
	}

	if isPrimitive(t) {
		return newPrimitiveSerializer(t), nil
	}

	if custom, ok := f.customFor(t); ok {
		return custom, nil
	}

	if singleton, ok := f.singletons.Get(t); ok {
		return singleton, nil
	}

	if t.Kind() == reflect.Interface {
		return nil, gerrors.NewErrAbstractType(typeName(t))
	}

	if reason := unsupportedKind(t); reason != "" {
		return nil, gerrors.NewErrUnsupportedType(t.String(), reason)
	}

	switch {
	case t.Kind() == reflect.Slice:
		return newListSerializer(s, t)
	case collection.IsSequence(t):
		return newListSerializer(s, t)
	case collection.IsMapping(t):
		return newMapSerializer(s, t)
	case t.Kind() == reflect.Array:
		return newArraySerializer(s, t)
	case t.Kind() == reflect.Struct:
		if !f.config.whitelist.Allowed(t) {
			return nil, fmt.Errorf("type=(%s) %w", typeName(t), gerrors.ErrNotWhitelisted)
		}
		return newObjectSerializer(s, t)
	default:
		return nil, gerrors.NewErrUnsupportedType(t.String(), "kind "+t.Kind().String()+" has no wire form")
	}
}

// session builds the serializers missing for one lookup. It holds the build
// lock of the factory for its whole lifetime.
type session struct {
	factory  *Factory
	reserved []*slot
}

// get returns the serializer of t, building it when needed. A type reached
// again while it is being built gets a placeholder.
func (s *session) get(t reflect.Type) (Serializer, error) {
	f := s.factory
	if serializer, ok := f.serializers.Get(t); ok {
		return serializer, nil
	}

	if id, ok := f.ids[t]; ok {
		existing := f.slots[id]
		if b := existing.target.Load(); b != nil {
			return b.serializer, nil
		}
		return &placeholder{slot: existing}, nil
	}

	reserved := &slot{
		id:     len(f.slots),
		typ:    t,
		target: atomic.NewPointer[binding](nil),
	}
	f.slots = append(f.slots, reserved)
	f.ids[t] = reserved.id
	s.reserved = append(s.reserved, reserved)

	serializer, err := f.build(s, t)
	if err != nil {
		return nil, err
	}

	if !reserved.target.CompareAndSwap(nil, &binding{serializer: serializer}) {
		return reserved.target.Load().serializer, nil
	}
	return serializer, nil
}

// element returns the serializer of values declared with type t, or nil for
// interface declared values which are resolved from their runtime type
func (s *session) element(t reflect.Type) (Serializer, error) {
	base := s.factory.strip(t)
	if base.Kind() == reflect.Interface {
		return nil, nil
	}
	return s.get(base)
}

// commit publishes every serializer built by the session
func (s *session) commit() {
	f := s.factory
	for _, reserved := range s.reserved {
		serializer := reserved.target.Load().serializer
		f.serializers.Set(reserved.typ, serializer)
		f.descriptors.SetIfAbsent(serializer.TypeDescriptor().Key(), serializer)
		f.names.Register(reserved.typ)

		kind := kindOf(serializer)
		f.metric.RecordSerializerBuilt(context.Background(), kind)
		f.logger.Debugf("built %s serializer for %s (slot=%d)", kind, typeName(reserved.typ), reserved.id)
	}
	s.reserved = nil
}

// rollback releases every slot reserved by a failed session. Slots are
// reserved at the tail of the arena while the build lock is held.
func (s *session) rollback() {
	if len(s.reserved) == 0 {
		return
	}
	f := s.factory
	for _, reserved := range s.reserved {
		delete(f.ids, reserved.typ)
	}
	first := s.reserved[0].id
	clear(f.slots[first:])
	f.slots = f.slots[:first]
	s.reserved = nil
}

func kindOf(serializer Serializer) string {
	switch resolved(serializer).(type) {
	case *objectSerializer:
		return "object"
	case *evolutionSerializer:
		return "evolution"
	case *listSerializer:
		return "list"
	case *mapSerializer:
		return "map"
	case *arraySerializer:
		return "array"
	case *primitiveArraySerializer:
		return "primitive_array"
	case *byteArraySerializer:
		return "binary_array"
	case *primitiveSerializer:
		return "primitive"
	case *singletonSerializer:
		return "singleton"
	case CustomSerializer:
		return "custom"
	default:
		return "unknown"
	}
}
