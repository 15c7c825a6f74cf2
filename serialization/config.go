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
	"fmt"
	"reflect"
	"strings"

	"go.opentelemetry.io/otel/metric"

	gerrors "github.com/typewire/typewire/errors"
	"github.com/typewire/typewire/internal/validation"
	"github.com/typewire/typewire/log"
	"github.com/typewire/typewire/model"
)

const (
	// DefaultMaxDepth is the default maximum nesting of an object graph
	DefaultMaxDepth = 512
	// maxDepthLimit keeps the nesting of the container encoding within its decoder limits
	maxDepthLimit = 2048
)

// Whitelist decides which composite types the factory agrees to reflect
type Whitelist interface {
	// Allowed reports whether t may be serialized
	Allowed(t reflect.Type) bool
}

// WhitelistFunc implements Whitelist with a function
type WhitelistFunc func(t reflect.Type) bool

// Allowed calls f
func (f WhitelistFunc) Allowed(t reflect.Type) bool {
	return f(t)
}

// AllowAll returns a Whitelist accepting every type
func AllowAll() Whitelist {
	return WhitelistFunc(func(reflect.Type) bool { return true })
}

// AllowPackages returns a Whitelist accepting the types declared in one of
// the given packages or in their sub packages
func AllowPackages(packages ...string) Whitelist {
	return WhitelistFunc(func(t reflect.Type) bool {
		pkg := t.PkgPath()
		for _, allowed := range packages {
			if pkg == allowed || strings.HasPrefix(pkg, allowed+"/") {
				return true
			}
		}
		return false
	})
}

// Config defines the serializer factory configuration
type Config struct {
	logger             log.Logger
	compression        Compression
	maxDepth           int
	whitelist          Whitelist
	meterProvider      metric.MeterProvider
	classes            *model.Registry
	defaultSerializers bool
}

var _ validation.Validator = (*Config)(nil)

// newConfig returns a Config with the defaults overridden by opts
func newConfig(opts ...Option) *Config {
	cfg := &Config{
		logger:             log.DiscardLogger,
		compression:        NoCompression,
		maxDepth:           DefaultMaxDepth,
		whitelist:          AllowAll(),
		defaultSerializers: true,
	}

	for _, opt := range opts {
		opt.Apply(cfg)
	}

	if cfg.classes == nil {
		cfg.classes = model.NewRegistry()
	}
	return cfg
}

// Logger returns the logger
func (x *Config) Logger() log.Logger {
	return x.logger
}

// Compression returns the compression algorithm applied to written messages
func (x *Config) Compression() Compression {
	return x.compression
}

// MaxDepth returns the maximum nesting of an object graph
func (x *Config) MaxDepth() int {
	return x.maxDepth
}

// Validate checks the configuration
func (x *Config) Validate() error {
	err := validation.New().
		Require("logger", x.logger).
		Require("whitelist", x.whitelist).
		Add(validation.InRange("maxDepth", x.maxDepth, 1, maxDepthLimit)).
		That("compression", x.compression.valid(), fmt.Sprintf("unsupported algorithm %d", int(x.compression))).
		Validate()
	if err != nil {
		return fmt.Errorf("%w: %w", gerrors.ErrInvalidConfig, err)
	}
	return nil
}
