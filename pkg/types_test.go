package minlang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWiden(t *testing.T) {
	cases := []struct {
		left, right BasicType
		want        BasicType
		ok          bool
	}{
		{TypeInt, TypeInt, TypeInt, true},
		{TypeInt, TypeLong, TypeLong, true},
		{TypeLong, TypeInt, TypeLong, true},
		{TypeInt, TypeDouble, TypeDouble, true},
		{TypeLong, TypeDouble, TypeDouble, true},
		{TypeDouble, TypeDouble, TypeDouble, true},
		{TypeBool, TypeBool, TypeBool, true},
		{TypeChar, TypeChar, TypeChar, true},
		{TypeBool, TypeInt, 0, false},
		{TypeChar, TypeInt, 0, false},
		{TypeBool, TypeChar, 0, false},
	}

	for _, c := range cases {
		got, ok := Widen(c.left, c.right)
		assert.Equal(t, c.ok, ok, "%s + %s", c.left, c.right)
		if c.ok {
			assert.Equal(t, c.want, got, "%s + %s", c.left, c.right)
		}
	}
}

func TestCanAssign(t *testing.T) {
	cases := []struct {
		src, dst BasicType
		want     bool
	}{
		{TypeInt, TypeInt, true},
		{TypeInt, TypeLong, true},
		{TypeInt, TypeDouble, true},
		{TypeLong, TypeDouble, true},
		// Assignment never narrows.
		{TypeLong, TypeInt, false},
		{TypeDouble, TypeInt, false},
		{TypeDouble, TypeLong, false},
		{TypeBool, TypeBool, true},
		{TypeChar, TypeChar, true},
		{TypeInt, TypeBool, false},
		{TypeBool, TypeInt, false},
		{TypeChar, TypeInt, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, CanAssign(c.src, c.dst), "%s -> %s", c.src, c.dst)
	}
}

func TestTypeSizeAndName(t *testing.T) {
	assert.Equal(t, 4, TypeInt.Size())
	assert.Equal(t, 4, TypeBool.Size())
	assert.Equal(t, 1, TypeChar.Size())
	assert.Equal(t, 8, TypeLong.Size())
	assert.Equal(t, 8, TypeDouble.Size())

	assert.Equal(t, "int", TypeInt.String())
	assert.Equal(t, "long", TypeLong.String())
	assert.Equal(t, "double", TypeDouble.String())
	assert.Equal(t, "bool", TypeBool.String())
	assert.Equal(t, "char", TypeChar.String())
}
