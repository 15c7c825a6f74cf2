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
	"math/big"
)

// defaultSerializers returns the custom serializers every factory starts
// with, unless disabled with WithoutDefaultSerializers
func defaultSerializers() []CustomSerializer {
	return []CustomSerializer{
		NewToStringSerializer(formatBigInt, parseBigInt, MatchExact),
		NewToStringSerializer(formatBigFloat, parseBigFloat, MatchExact),
	}
}

func formatBigInt(v big.Int) (string, error) {
	return v.String(), nil
}

func parseBigInt(text string) (big.Int, error) {
	n, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return big.Int{}, fmt.Errorf("invalid integer %q", text)
	}
	return *n, nil
}

// big.Float values are written in decimal with the shortest representation
// that reads back to the same value at their precision
func formatBigFloat(v big.Float) (string, error) {
	return fmt.Sprintf("%d:%s", v.Prec(), v.Text('g', -1)), nil
}

func parseBigFloat(text string) (big.Float, error) {
	var prec uint
	var digits string
	if _, err := fmt.Sscanf(text, "%d:%s", &prec, &digits); err != nil {
		return big.Float{}, fmt.Errorf("invalid float %q: %w", text, err)
	}
	f, _, err := big.ParseFloat(digits, 10, prec, big.ToNearestEven)
	if err != nil {
		return big.Float{}, fmt.Errorf("invalid float %q: %w", text, err)
	}
	return *f, nil
}
