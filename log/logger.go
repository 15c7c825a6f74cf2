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

// Logger is the logging abstraction of the serializer factory and of the
// outputs and inputs it creates. Messages are formatted only when their level
// is enabled.
type Logger interface {
	// Debugf logs a message at debug level
	Debugf(format string, args ...any)
	// Infof logs a message at info level
	Infof(format string, args ...any)
	// Warnf logs a message at warn level
	Warnf(format string, args ...any)
	// Errorf logs a message at error level
	Errorf(format string, args ...any)
	// Enabled reports whether messages at level are written
	Enabled(level Level) bool
	// With returns a Logger adding the key-value pairs to every message
	With(keyValues ...any) Logger
}
