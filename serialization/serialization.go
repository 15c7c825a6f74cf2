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

import "reflect"

// Serialize writes v as a complete message
func (f *Factory) Serialize(v any) ([]byte, error) {
	return NewSerializationOutput(f).Serialize(v)
}

// Deserialize reads a message holding a value of type expected. A nil
// expected type reads the value as it was written.
func (f *Factory) Deserialize(data []byte, expected reflect.Type) (any, error) {
	value, err := NewDeserializationInput(f).Deserialize(data, expected)
	if err != nil {
		return nil, err
	}
	return value.Interface(), nil
}

// Deserialize reads a message holding a value of type T
func Deserialize[T any](f *Factory, data []byte) (T, error) {
	var zero T
	value, err := NewDeserializationInput(f).Deserialize(data, reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	out, _ := value.Interface().(T)
	return out, nil
}
