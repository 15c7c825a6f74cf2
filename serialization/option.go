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
	"go.opentelemetry.io/otel/metric"

	"github.com/typewire/typewire/log"
	"github.com/typewire/typewire/model"
)

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(*Config)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(config *Config)

func (f OptionFunc) Apply(c *Config) {
	f(c)
}

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(config *Config) {
		config.logger = logger
	})
}

// WithCompression sets the compression algorithm applied to written messages
func WithCompression(compression Compression) Option {
	return OptionFunc(func(config *Config) {
		config.compression = compression
	})
}

// WithMaxDepth sets the maximum nesting of the object graphs written and read
func WithMaxDepth(depth int) Option {
	return OptionFunc(func(config *Config) {
		config.maxDepth = depth
	})
}

// WithWhitelist restricts the composite types the factory agrees to serialize.
// The check happens before the type is reflected.
func WithWhitelist(whitelist Whitelist) Option {
	return OptionFunc(func(config *Config) {
		config.whitelist = whitelist
	})
}

// WithMeterProvider sets the OpenTelemetry MeterProvider used for the
// factory metrics. The global provider is used by default.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return OptionFunc(func(config *Config) {
		config.meterProvider = provider
	})
}

// WithClassRegistry sets the registry holding the explicit class descriptions
// of the factory. Registries can be shared between factories.
func WithClassRegistry(classes *model.Registry) Option {
	return OptionFunc(func(config *Config) {
		config.classes = classes
	})
}

// WithoutDefaultSerializers disables the built-in custom serializers for
// big.Int and big.Float
func WithoutDefaultSerializers() Option {
	return OptionFunc(func(config *Config) {
		config.defaultSerializers = false
	})
}
