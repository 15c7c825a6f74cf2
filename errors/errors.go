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

package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedType is returned when a declared type has a shape that cannot be
	// represented on the wire at all: native maps (unstable iteration order), channels,
	// functions, complex numbers, unsafe pointers or collections of those.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrNotSerializable is returned when a specific value could not be written or read.
	// It is usually carried by a NotSerializableError that records where in the object
	// graph the failure happened.
	ErrNotSerializable = errors.New("not serializable")

	// ErrSchemaMismatch indicates that the wire data disagrees with the receiver's
	// expectation of the field count or shape of a type.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrAbstractType is returned when an interface type has to be reconstructed directly.
	// Interfaces can only be rebuilt through a registered custom serializer.
	ErrAbstractType = errors.New("abstract type cannot be constructed")

	// ErrAmbiguousConstructor is returned when more than one constructor of a type is
	// marked for deserialization.
	ErrAmbiguousConstructor = errors.New("more than one constructor is marked for deserialization")

	// ErrNoSuitableConstructor is returned when no constructor of a concrete type can be
	// selected for deserialization.
	ErrNoSuitableConstructor = errors.New("no suitable constructor for deserialization")

	// ErrPropertyMismatch is returned when a constructor parameter does not refer to a
	// readable property of the type.
	ErrPropertyMismatch = errors.New("constructor parameter does not refer to a property")

	// ErrTypeMismatch is returned when a property getter returns a type that is not
	// assignable to the matching constructor parameter.
	ErrTypeMismatch = errors.New("property type differs from constructor parameter type")

	// ErrInvalidHeader is returned when a message does not start with the expected magic bytes.
	ErrInvalidHeader = errors.New("invalid message header")

	// ErrCyclicGraphNotSupported is returned when an object is reached again while it is
	// still being written.
	ErrCyclicGraphNotSupported = errors.New("cyclic object graphs are not supported")

	// ErrMaxDepthExceeded is returned when an object graph is nested deeper than the
	// configured maximum depth.
	ErrMaxDepthExceeded = errors.New("maximum object graph depth exceeded")

	// ErrUnsupportedCollectionShape is returned when a collection has to be rebuilt into a
	// concrete shape outside the supported set.
	ErrUnsupportedCollectionShape = errors.New("unsupported collection shape")

	// ErrArrayElementType is returned when an array has to be built from elements of an
	// unexpected type.
	ErrArrayElementType = errors.New("unexpected array element type")

	// ErrTypeNotFound is returned when a type named on the wire is unknown to the receiver.
	// Errors carrying it are never decorated with an object graph path.
	ErrTypeNotFound = errors.New("type not found")

	// ErrSerializerAlreadyRegistered is returned when a custom serializer is registered for
	// a type that already has one.
	ErrSerializerAlreadyRegistered = errors.New("serializer already registered")

	// ErrSerializerAlreadyResolved is returned when a custom serializer is registered for a
	// type that the factory has already resolved.
	ErrSerializerAlreadyResolved = errors.New("serializer already resolved for type")

	// ErrNotWhitelisted is returned when a type is rejected by the factory whitelist.
	ErrNotWhitelisted = errors.New("type is not whitelisted")

	// ErrInvalidConfig is returned when the factory configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidClass is returned when an explicit class description is inconsistent with
	// the type it describes.
	ErrInvalidClass = errors.New("invalid class description")
)

// pathSeparator separates the breadcrumbs of a NotSerializableError.
const pathSeparator = " -> "

// NotSerializableError records the path from the root of an object graph to the node that
// could not be written or read. Each level of the walk prepends its own segment as the error
// unwinds, so the message reads from the root to the failing node.
type NotSerializableError struct {
	Path []string
	Err  error
}

// enforce compilation error
var _ error = (*NotSerializableError)(nil)

// NewNotSerializableError creates a NotSerializableError for the given cause
func NewNotSerializableError(err error, path ...string) *NotSerializableError {
	return &NotSerializableError{Path: path, Err: err}
}

// Error implements the standard error interface
func (e *NotSerializableError) Error() string {
	if len(e.Path) == 0 {
		return e.Err.Error()
	}
	return strings.Join(e.Path, pathSeparator) + pathSeparator + e.Err.Error()
}

// Unwrap returns the underlying cause
func (e *NotSerializableError) Unwrap() error {
	return e.Err
}

// Is reports ErrNotSerializable so callers can match every path error with errors.Is
func (e *NotSerializableError) Is(target error) bool {
	return target == ErrNotSerializable
}

// AppendPath adds segment in front of the path carried by err.
// Errors wrapping ErrTypeNotFound are returned unchanged: the missing type name is the
// actionable detail and must reach the caller verbatim.
func AppendPath(segment string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrTypeNotFound) {
		return err
	}

	var pathErr *NotSerializableError
	if errors.As(err, &pathErr) {
		path := make([]string, 0, len(pathErr.Path)+1)
		path = append(path, segment)
		path = append(path, pathErr.Path...)
		return &NotSerializableError{Path: path, Err: pathErr.Err}
	}

	return &NotSerializableError{Path: []string{segment}, Err: err}
}

// NewErrUnsupportedType formats an ErrUnsupportedType for the given type name and reason
func NewErrUnsupportedType(typeName, reason string) error {
	return fmt.Errorf("type=(%s) %s: %w", typeName, reason, ErrUnsupportedType)
}

// NewErrTypeNotFound formats an ErrTypeNotFound for the given wire name
func NewErrTypeNotFound(name string) error {
	return fmt.Errorf("%w: %s", ErrTypeNotFound, name)
}

// NewErrSchemaMismatch wraps a reason with ErrSchemaMismatch
func NewErrSchemaMismatch(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSchemaMismatch, fmt.Sprintf(format, args...))
}

// NewErrAbstractType formats an ErrAbstractType for the given type name
func NewErrAbstractType(typeName string) error {
	return fmt.Errorf("type=(%s) %w", typeName, ErrAbstractType)
}

// NewErrPropertyMismatch formats an ErrPropertyMismatch naming the missing property
func NewErrPropertyMismatch(typeName, property string) error {
	return fmt.Errorf("property=(%s) type=(%s) %w", property, typeName, ErrPropertyMismatch)
}

// NewErrTypeMismatch formats an ErrTypeMismatch for the given property
func NewErrTypeMismatch(typeName, property, propertyType, paramType string) error {
	return fmt.Errorf("property=(%s) of type=(%s) returns (%s) but the constructor expects (%s): %w",
		property, typeName, propertyType, paramType, ErrTypeMismatch)
}

// NewErrArrayElementType formats an ErrArrayElementType for the given element
func NewErrArrayElementType(elemType string, value any) error {
	return fmt.Errorf("expected=(%s) got=(%T) %w", elemType, value, ErrArrayElementType)
}

// NewErrInvalidClass formats an ErrInvalidClass for the given type name and reason
func NewErrInvalidClass(typeName, format string, args ...any) error {
	return fmt.Errorf("type=(%s) %s: %w", typeName, fmt.Sprintf(format, args...), ErrInvalidClass)
}
