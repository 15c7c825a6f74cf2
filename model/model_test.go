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

package model

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/typewire/typewire/errors"
)

type shape interface {
	Area() float64
}

type square struct {
	Side   float64
	Label  string `wire:"label"`
	Hidden string `wire:"-"`
	secret int
}

func (s square) Area() float64 { return s.Side * s.Side }

type account struct {
	Owner   string
	Balance int64
}

func newAccount(owner string, balance int64) (*account, error) {
	if balance < 0 {
		return nil, errors.New("negative balance")
	}
	return &account{Owner: owner, Balance: balance}, nil
}

type empty struct{}

type withGetter struct {
	values []int
}

func (w *withGetter) Count() int { return len(w.values) }

func TestDescribe(t *testing.T) {
	t.Run("With default field properties", func(t *testing.T) {
		class, err := Describe[square]()
		require.NoError(t, err)
		require.Len(t, class.Properties, 2)
		assert.Equal(t, "Side", class.Properties[0].Name)
		assert.Equal(t, "label", class.Properties[1].Name)
		assert.False(t, class.Abstract())

		primary, ok := class.Primary()
		require.True(t, ok)
		assert.Equal(t, 2, primary.Arity())

		value, err := primary.New([]reflect.Value{reflect.ValueOf(2.0), reflect.ValueOf("sq")})
		require.NoError(t, err)
		assert.Equal(t, square{Side: 2, Label: "sq"}, value.Interface())

		label, ok := class.Property("label")
		require.True(t, ok)
		assert.Equal(t, "sq", label.Get(value).Interface())
	})
	t.Run("With an interface type", func(t *testing.T) {
		class, err := Describe[shape]()
		require.NoError(t, err)
		assert.True(t, class.Abstract())
		assert.Empty(t, class.Constructors)

		ctor, err := SelectConstructor(class)
		require.NoError(t, err)
		assert.Nil(t, ctor)
	})
	t.Run("With explicit constructor returning a pointer and an error", func(t *testing.T) {
		class, err := Describe[account](WithoutPrimaryConstructor(), WithConstructor(newAccount, "Owner", "Balance"))
		require.NoError(t, err)

		ctor, err := SelectConstructor(class)
		require.NoError(t, err)
		assert.False(t, ctor.Primary)

		value, err := ctor.New([]reflect.Value{reflect.ValueOf("ada"), reflect.ValueOf(int64(10))})
		require.NoError(t, err)
		assert.Equal(t, account{Owner: "ada", Balance: 10}, value.Interface())

		_, err = ctor.New([]reflect.Value{reflect.ValueOf("ada"), reflect.ValueOf(int64(-1))})
		require.EqualError(t, err, "negative balance")

		value, err = ctor.New([]reflect.Value{{}, {}})
		require.NoError(t, err)
		assert.Equal(t, account{}, value.Interface())

		_, err = ctor.New(nil)
		require.ErrorIs(t, err, gerrors.ErrSchemaMismatch)
	})
	t.Run("With getter on a pointer receiver", func(t *testing.T) {
		class, err := Describe[withGetter](WithGetter("Count", (*withGetter).Count))
		require.NoError(t, err)
		property, ok := class.Property("Count")
		require.True(t, ok)
		assert.False(t, property.IsField())
		assert.Equal(t, 3, property.Get(reflect.ValueOf(withGetter{values: []int{1, 2, 3}})).Interface())
	})
	t.Run("With getter replacing a field", func(t *testing.T) {
		class, err := Describe[account](WithGetter("Owner", func(a account) string { return "x" + a.Owner }))
		require.NoError(t, err)
		require.Len(t, class.Properties, 2)
		owner, _ := class.Property("Owner")
		assert.Equal(t, "xy", owner.Get(reflect.ValueOf(account{Owner: "y"})).Interface())

		primary, _ := class.Primary()
		assert.Equal(t, 1, primary.Arity())
	})
	t.Run("With declared interfaces", func(t *testing.T) {
		class, err := Describe[square](WithInterfaces(reflect.TypeFor[shape]()))
		require.NoError(t, err)
		assert.Equal(t, []reflect.Type{reflect.TypeFor[shape]()}, class.Interfaces)

		_, err = Describe[account](WithInterfaces(reflect.TypeFor[shape]()))
		require.ErrorIs(t, err, gerrors.ErrInvalidClass)
		_, err = Describe[account](WithInterfaces(reflect.TypeFor[int]()))
		require.ErrorIs(t, err, gerrors.ErrInvalidClass)
	})
	t.Run("With invalid descriptions", func(t *testing.T) {
		testCases := []Option{
			WithConstructor("not a func"),
			WithConstructor(newAccount, "Owner"),
			WithConstructor(func(string) int { return 0 }, "Owner"),
			WithConstructor(func(string) (account, int) { return account{}, 0 }, "Owner"),
			WithConstructor(func(a, b string) account { return account{} }, "Owner", "Owner"),
			WithConstructor(func(a string) account { return account{} }, ""),
			WithConstructor(func(a ...string) account { return account{} }, "Owner"),
			WithGetter("Owner", func(square) string { return "" }),
			WithGetter("", func(account) string { return "" }),
			WithGetter("Owner", func() string { return "" }),
		}
		for i, opt := range testCases {
			_, err := Describe[account](opt)
			assert.ErrorIs(t, err, gerrors.ErrInvalidClass, fmt.Sprintf("case %d", i))
		}
		_, err := DescribeType(nil)
		assert.ErrorIs(t, err, gerrors.ErrInvalidClass)
	})
}

func TestSelectConstructor(t *testing.T) {
	multi := func(owner string, balance int64) account { return account{Owner: owner, Balance: balance} }
	other := func(balance int64, owner string) account { return account{Owner: owner, Balance: balance} }
	zero := func() account { return account{} }

	t.Run("With a single marked constructor", func(t *testing.T) {
		class, err := Describe[account](WithMarkedConstructor(other, "Balance", "Owner"))
		require.NoError(t, err)
		ctor, err := SelectConstructor(class)
		require.NoError(t, err)
		assert.True(t, ctor.Marked)
	})
	t.Run("With two marked constructors", func(t *testing.T) {
		class, err := Describe[account](
			WithMarkedConstructor(multi, "Owner", "Balance"),
			WithMarkedConstructor(other, "Balance", "Owner"))
		require.NoError(t, err)
		for range 10 {
			_, err = SelectConstructor(class)
			require.ErrorIs(t, err, gerrors.ErrAmbiguousConstructor)
		}
	})
	t.Run("With a zero-arg and a multi-arg constructor", func(t *testing.T) {
		class, err := Describe[account](WithoutPrimaryConstructor(),
			WithConstructor(zero), WithConstructor(multi, "Owner", "Balance"))
		require.NoError(t, err)
		for range 10 {
			ctor, err := SelectConstructor(class)
			require.NoError(t, err)
			assert.Equal(t, 2, ctor.Arity())
			assert.Equal(t, "Owner", ctor.Params[0].Name)
		}
	})
	t.Run("With two multi-arg constructors and no primary", func(t *testing.T) {
		class, err := Describe[account](WithoutPrimaryConstructor(),
			WithConstructor(multi, "Owner", "Balance"), WithConstructor(other, "Balance", "Owner"))
		require.NoError(t, err)
		for range 10 {
			_, err = SelectConstructor(class)
			require.ErrorIs(t, err, gerrors.ErrNoSuitableConstructor)
		}
	})
	t.Run("With the primary constructor as fallback", func(t *testing.T) {
		class, err := Describe[account](WithConstructor(multi, "Owner", "Balance"), WithConstructor(other, "Balance", "Owner"))
		require.NoError(t, err)
		ctor, err := SelectConstructor(class)
		require.NoError(t, err)
		assert.True(t, ctor.Primary)
	})
	t.Run("With a struct without fields", func(t *testing.T) {
		class, err := Describe[empty]()
		require.NoError(t, err)
		ctor, err := SelectConstructor(class)
		require.NoError(t, err)
		assert.True(t, ctor.Primary)
		assert.Zero(t, ctor.Arity())
	})
	t.Run("With a struct without fields and one explicit constructor", func(t *testing.T) {
		class, err := Describe[empty](WithConstructor(func(n int) empty { return empty{} }, "n"))
		require.NoError(t, err)
		ctor, err := SelectConstructor(class)
		require.NoError(t, err)
		assert.False(t, ctor.Primary)
	})
	t.Run("With no constructor at all", func(t *testing.T) {
		class, err := Describe[account](WithoutPrimaryConstructor())
		require.NoError(t, err)
		_, err = SelectConstructor(class)
		require.ErrorIs(t, err, gerrors.ErrNoSuitableConstructor)
	})
}

type named interface {
	Name() string
}

type person struct {
	First string
}

func (p person) Name() string { return p.First }

type holder struct {
	Value person
}

func TestMatchProperties(t *testing.T) {
	t.Run("With properties in constructor parameter order", func(t *testing.T) {
		class, err := Describe[account](WithMarkedConstructor(func(balance int64, owner string) account {
			return account{Owner: owner, Balance: balance}
		}, "Balance", "Owner"))
		require.NoError(t, err)
		ctor, err := SelectConstructor(class)
		require.NoError(t, err)
		properties, err := MatchProperties(class, ctor)
		require.NoError(t, err)
		require.Len(t, properties, 2)
		assert.Equal(t, "Balance", properties[0].Name)
		assert.Equal(t, "Owner", properties[1].Name)
	})
	t.Run("With a parameter without property", func(t *testing.T) {
		class, err := Describe[account](WithMarkedConstructor(func(owner string) account {
			return account{Owner: owner}
		}, "owner"))
		require.NoError(t, err)
		ctor, _ := SelectConstructor(class)
		_, err = MatchProperties(class, ctor)
		require.ErrorIs(t, err, gerrors.ErrPropertyMismatch)
		assert.Contains(t, err.Error(), "owner")
	})
	t.Run("With a covariant property", func(t *testing.T) {
		class, err := Describe[holder](WithMarkedConstructor(func(v named) holder {
			return holder{Value: v.(person)}
		}, "Value"))
		require.NoError(t, err)
		ctor, _ := SelectConstructor(class)
		properties, err := MatchProperties(class, ctor)
		require.NoError(t, err)
		assert.Equal(t, reflect.TypeFor[person](), properties[0].Type)
	})
	t.Run("With a contravariant property", func(t *testing.T) {
		class, err := Describe[account](WithMarkedConstructor(func(owner string, balance int32) account {
			return account{Owner: owner, Balance: int64(balance)}
		}, "Owner", "Balance"))
		require.NoError(t, err)
		ctor, _ := SelectConstructor(class)
		_, err = MatchProperties(class, ctor)
		require.ErrorIs(t, err, gerrors.ErrTypeMismatch)
	})
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	typ := reflect.TypeFor[account]()
	assert.False(t, registry.Has(typ))

	derived := registry.ClassOf(typ)
	require.NotNil(t, derived)
	assert.True(t, registry.Has(typ))
	assert.Same(t, derived, registry.ClassOf(typ))

	explicit, err := registry.Describe(typ, WithoutPrimaryConstructor(), WithConstructor(newAccount, "Owner", "Balance"))
	require.NoError(t, err)
	assert.Same(t, explicit, registry.ClassOf(typ))

	_, err = registry.Describe(typ, WithConstructor(1))
	require.Error(t, err)
	assert.Same(t, explicit, registry.ClassOf(typ))

	registry.Register(nil)
}
