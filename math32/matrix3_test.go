package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrix3_Solve(t *testing.T) {
	tests := []struct {
		matrix   *Matrix3
		b        *Vector3
		expected *Vector3
	}{
		{
			matrix:   NewMatrix3(),
			b:        NewVector3(1, 2, 3),
			expected: NewVector3(1, 2, 3),
		},
		{
			matrix:   NewMatrix3().Set(2, 0, 0, 0, 4, 0, 0, 0, 8),
			b:        NewVector3(2, 2, 2),
			expected: NewVector3(1, 0.5, 0.25),
		},
		{
			matrix:   NewMatrix3().Set(1, 2, 0, 0, 1, 0, 0, 0, 1),
			b:        NewVector3(5, 2, 1),
			expected: NewVector3(1, 2, 1),
		},
		{
			// Requires row pivoting
			matrix:   NewMatrix3().Set(0, 1, 0, 1, 0, 0, 0, 0, 1),
			b:        NewVector3(3, 7, 9),
			expected: NewVector3(7, 3, 9),
		},
	}

	for i, test := range tests {
		var x Vector3
		err := test.matrix.Solve(test.b, &x)
		assert.NoErrorf(t, err, "Failed test %v", i)
		assert.Truef(t, x.AlmostEquals(test.expected, 1e-6), "Failed test %v: got %v", i, x)
	}
}

func TestMatrix3_SolveSingular(t *testing.T) {

	m := NewMatrix3().Set(
		1, 2, 3,
		2, 4, 6,
		0, 0, 1,
	)
	var x Vector3
	assert.Error(t, m.Solve(NewVector3(1, 1, 1), &x))

	assert.Error(t, NewMatrix3().Zero().Solve(NewVector3(1, 0, 0), &x))
}

func TestMatrix3_MakeCrossProduct(t *testing.T) {
	tests := []struct {
		v *Vector3
		u *Vector3
	}{
		{v: NewVector3(1, 0, 0), u: NewVector3(0, 1, 0)},
		{v: NewVector3(1, 2, 3), u: NewVector3(-4, 5, 0.5)},
		{v: NewVector3(0, -1, 2), u: NewVector3(3, 3, 3)},
	}

	for i, test := range tests {
		m := NewMatrix3().MakeCrossProduct(test.v)
		got := test.u.Clone().ApplyMatrix3(m)
		expected := NewVec3().CrossVectors(test.v, test.u)
		assert.Truef(t, got.AlmostEquals(expected, 1e-6), "Failed test %v: got %v expected %v", i, got, expected)
	}
}

func TestVector3_ApplyMatrix3(t *testing.T) {

	// Row-major Set: the first three arguments are the first row, so
	// m*(1,0,0) must yield the first column.
	m := NewMatrix3().Set(
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	)
	assert.True(t, NewVector3(1, 0, 0).ApplyMatrix3(m).Equals(NewVector3(1, 4, 7)))
	assert.True(t, NewVector3(0, 1, 0).ApplyMatrix3(m).Equals(NewVector3(2, 5, 8)))
	assert.True(t, NewVector3(1, 1, 1).ApplyMatrix3(m).Equals(NewVector3(6, 15, 24)))
}

func TestMatrix3_MultiplyMatrices(t *testing.T) {

	a := NewMatrix3().Set(
		1, 2, 0,
		0, 1, 0,
		0, 0, 1,
	)
	b := NewMatrix3().Set(
		1, 0, 0,
		3, 1, 0,
		0, 0, 1,
	)
	got := NewMatrix3().MultiplyMatrices(a, b)
	expected := NewMatrix3().Set(
		7, 2, 0,
		3, 1, 0,
		0, 0, 1,
	)
	assert.Equal(t, expected, got)
}

func TestMatrix3_MakeDiagonal(t *testing.T) {

	m := NewMatrix3().MakeDiagonal(NewVector3(2, 3, 4))
	v := NewVector3(1, 1, 1).ApplyMatrix3(m)
	assert.True(t, v.Equals(NewVector3(2, 3, 4)))
}
