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
	gerrors "github.com/typewire/typewire/errors"
	"github.com/typewire/typewire/internal/codec"
)

func optionalString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func optionalCode(code uint64) any {
	if code == 0 {
		return nil
	}
	return code
}

func stringList(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func unexpected(what string, v any) error {
	return gerrors.NewErrSchemaMismatch("unexpected %s: %T", what, v)
}

// expectList checks that v is a described value keyed by descriptor whose body is a list
// of at least size elements, and returns that list.
func expectList(v any, descriptor Descriptor, size int) ([]any, error) {
	described, ok := codec.AsDescribed(v)
	if !ok {
		return nil, gerrors.NewErrSchemaMismatch("expected described value %s, got %T", descriptor.Key(), v)
	}
	if !DescriptorOf(described).Matches(descriptor) {
		return nil, gerrors.NewErrSchemaMismatch("unexpected descriptor %s, expected %s", described.Key(), descriptor.Key())
	}
	list, ok := codec.AsList(described.Value)
	if !ok {
		return nil, gerrors.NewErrSchemaMismatch("expected list body for %s, got %T", descriptor.Key(), described.Value)
	}
	if len(list) < size {
		return nil, gerrors.NewErrSchemaMismatch("expected %d elements for %s, got %d", size, descriptor.Key(), len(list))
	}
	return list, nil
}

func asString(v any, what string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", unexpected(what, v)
	}
	return s, nil
}

func asOptionalString(v any, what string) (string, error) {
	if v == nil {
		return "", nil
	}
	return asString(v, what)
}

func asBool(v any, what string) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, unexpected(what, v)
	}
	return b, nil
}

func asStrings(v any, what string) ([]string, error) {
	list, ok := codec.AsList(v)
	if !ok {
		return nil, unexpected(what, v)
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, err := asString(item, what)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
