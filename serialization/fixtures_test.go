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
	"math/big"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/typewire/typewire/collection"
	"github.com/typewire/typewire/model"
)

// Test types shared by the serialization tests. Their wire names are
// github.com/typewire/typewire/serialization.<Name>.

type testLeaf struct {
	Label string
	Count int32
}

type testPerson struct {
	Name    string
	Age     int
	Email   *string
	Tags    []string
	Friends []*testPerson
}

type testPair struct {
	Left  *testLeaf
	Right *testLeaf
}

type testNode struct {
	Value int64
	Next  *testNode
}

type testTree struct {
	Name     string
	Children []*testTree
}

type testHolder struct {
	Value any
}

type testPrimitives struct {
	Flag    bool
	Small   int8
	Medium  int16
	Large   int64
	Unsized uint
	Byte    uint8
	Ratio   float32
	Precise float64
	Text    string
	Raw     []byte
	At      time.Time
	ID      uuid.UUID
}

type testArrays struct {
	Numbers [3]int32
	Digest  [4]byte
	Leaves  [2]testLeaf
}

type testCollections struct {
	Names   collection.Set[string]
	Ranks   *collection.SortedSet[int]
	Scores  collection.OrderedMap[string, int64]
	Indexed *collection.SortedMap[int, *testLeaf]
}

type testBig struct {
	Amount *big.Int
	Rate   big.Float
}

type testInner struct {
	BadField any
}

type testOuter struct {
	Inner testInner
}

type testWithMap struct {
	Meta map[string]int
}

type testWithChannel struct {
	Events chan int
}

type testShape interface {
	Area() float64
}

type testSquare struct {
	Side float64
}

func (s testSquare) Area() float64 { return s.Side * s.Side }

type testDrawing struct {
	Shape testShape
}

type testMoney struct {
	Amount   int64
	Currency string
}

type testMoneyProxy struct {
	Text string
}

type testColor string

type testUnit struct{}

// testNothing is bound as a singleton through its pointer
var testNothing = &testUnit{}

type testTemperature struct {
	celsius float64
}

func (t testTemperature) Celsius() float64 { return t.celsius }

func newTestTemperature(celsius float64) testTemperature {
	return testTemperature{celsius: celsius}
}

type testPoint struct {
	X int
	Y int
}

func describeTemperature() (*model.Class, error) {
	return model.Describe[testTemperature](
		model.WithGetter("Celsius", testTemperature.Celsius),
		model.WithConstructor(newTestTemperature, "Celsius"))
}

// describeSwappedPoint rebuilds a testPoint from Y then X
func describeSwappedPoint() (*model.Class, error) {
	return model.Describe[testPoint](
		model.WithMarkedConstructor(func(y, x int) testPoint {
			return testPoint{X: x, Y: y}
		}, "Y", "X"))
}

// testBag implements collection.Sequence with a shape the readers do not rebuild
type testBag struct {
	items []any
}

func (b *testBag) Shape() collection.Shape { return collection.Shape(99) }
func (b *testBag) ElemType() reflect.Type  { return reflect.TypeFor[string]() }
func (b *testBag) Len() int                { return len(b.items) }
func (b *testBag) Elements() []any         { return b.items }

func (b *testBag) Insert(v any) error {
	b.items = append(b.items, v)
	return nil
}

func stringPtr(s string) *string {
	return &s
}
