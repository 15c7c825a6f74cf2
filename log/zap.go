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

package log

import (
	"io"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// loggerName names the root zap logger
const loggerName = "typewire"

// DefaultLogger writes info messages and above to os.Stderr
var DefaultLogger = NewZap(InfoLevel, os.Stderr)

// Zap implements Logger on top of go.uber.org/zap. Entries are JSON lines.
// The level can be changed at runtime and is shared with the loggers derived
// through With.
type Zap struct {
	sugar   *zap.SugaredLogger
	level   zap.AtomicLevel
	outputs []io.Writer
}

// enforce compilation and linter error
var _ Logger = (*Zap)(nil)

// NewZap creates a Zap logger writing to writers, os.Stderr when none is given
func NewZap(level Level, writers ...io.Writer) *Zap {
	if len(writers) == 0 {
		writers = []io.Writer{os.Stderr}
	}

	syncers := make([]zapcore.WriteSyncer, len(writers))
	for i, writer := range writers {
		syncers[i] = zapcore.AddSync(writer)
	}

	encoding := zap.NewProductionEncoderConfig()
	encoding.TimeKey = "ts"
	encoding.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	encoding.EncodeDuration = zapcore.StringDurationEncoder

	atomicLevel := zap.NewAtomicLevelAt(toZapLevel(level))
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoding), zap.CombineWriteSyncers(syncers...), atomicLevel)
	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Named(loggerName)

	return &Zap{
		sugar:   logger.Sugar(),
		level:   atomicLevel,
		outputs: writers,
	}
}

func (z *Zap) Debugf(format string, args ...any) {
	z.sugar.Debugf(format, args...)
}

func (z *Zap) Infof(format string, args ...any) {
	z.sugar.Infof(format, args...)
}

func (z *Zap) Warnf(format string, args ...any) {
	z.sugar.Warnf(format, args...)
}

func (z *Zap) Errorf(format string, args ...any) {
	z.sugar.Errorf(format, args...)
}

// Enabled reports whether messages at level are written
func (z *Zap) Enabled(level Level) bool {
	return z.level.Enabled(toZapLevel(level))
}

// With returns a Logger adding the key-value pairs to every message.
// Keys must be strings; a trailing key without value is dropped.
func (z *Zap) With(keyValues ...any) Logger {
	if len(keyValues)%2 != 0 {
		keyValues = keyValues[:len(keyValues)-1]
	}
	fields := make([]any, 0, len(keyValues))
	for i := 0; i < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, keyValues[i+1]))
	}
	if len(fields) == 0 {
		return z
	}
	return &Zap{
		sugar:   z.sugar.With(fields...),
		level:   z.level,
		outputs: z.outputs,
	}
}

// Level returns the current level
func (z *Zap) Level() Level {
	return fromZapLevel(z.level.Level())
}

// SetLevel changes the level of the logger and of the loggers derived from it
func (z *Zap) SetLevel(level Level) {
	z.level.SetLevel(toZapLevel(level))
}

// Outputs returns the writers the logger writes to
func (z *Zap) Outputs() []io.Writer {
	return z.outputs
}

// Flush syncs the file outputs, standard streams excepted
func (z *Zap) Flush() error {
	var err error
	for _, output := range z.outputs {
		if file, ok := output.(*os.File); ok && file != os.Stdout && file != os.Stderr {
			err = multierr.Append(err, file.Sync())
		}
	}
	return err
}

// toZapLevel maps level to zap. Unknown levels log everything.
func toZapLevel(level Level) zapcore.Level {
	switch level {
	case InfoLevel:
		return zapcore.InfoLevel
	case WarningLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.DebugLevel
	}
}

func fromZapLevel(level zapcore.Level) Level {
	switch level {
	case zapcore.DebugLevel:
		return DebugLevel
	case zapcore.InfoLevel:
		return InfoLevel
	case zapcore.WarnLevel:
		return WarningLevel
	case zapcore.ErrorLevel:
		return ErrorLevel
	default:
		return InvalidLevel
	}
}
