// Copyright 2024 The Dyn3 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "errors"

// Matrix3 is 3x3 matrix organized internally as column matrix
type Matrix3 [9]float32

// NewMatrix3 creates and returns a pointer to a new Matrix3
// initialized as the identity matrix.
func NewMatrix3() *Matrix3 {

	var m Matrix3
	m.Identity()
	return &m
}

// Set sets all the elements of the matrix row by row starting at row1, column1,
// row1, column2, row1, column3 and so forth.
// Returns the pointer to this updated Matrix.
func (m *Matrix3) Set(n11, n12, n13, n21, n22, n23, n31, n32, n33 float32) *Matrix3 {

	m[0] = n11
	m[3] = n12
	m[6] = n13
	m[1] = n21
	m[4] = n22
	m[7] = n23
	m[2] = n31
	m[5] = n32
	m[8] = n33
	return m
}

// Identity sets this matrix as the identity matrix.
// Returns the pointer to this updated matrix.
func (m *Matrix3) Identity() *Matrix3 {

	m.Set(
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	)
	return m
}

// Zero sets all the elements of this matrix to zero.
// Returns the pointer to this updated matrix.
func (m *Matrix3) Zero() *Matrix3 {

	for i := 0; i < 9; i++ {
		m[i] = 0
	}
	return m
}

// Copy copies src matrix into this one.
// Returns the pointer to this updated matrix.
func (m *Matrix3) Copy(src *Matrix3) *Matrix3 {

	*m = *src
	return m
}

// Add adds the other matrix to this one elementwise.
// Returns the pointer to this updated matrix.
func (m *Matrix3) Add(other *Matrix3) *Matrix3 {

	for i := 0; i < 9; i++ {
		m[i] += other[i]
	}
	return m
}

// Sub subtracts the other matrix from this one elementwise.
// Returns the pointer to this updated matrix.
func (m *Matrix3) Sub(other *Matrix3) *Matrix3 {

	for i := 0; i < 9; i++ {
		m[i] -= other[i]
	}
	return m
}

// MultiplyScalar multiplies each of this matrix's components by the specified scalar.
// Returns pointer to this updated matrix.
func (m *Matrix3) MultiplyScalar(s float32) *Matrix3 {

	for i := 0; i < 9; i++ {
		m[i] *= s
	}
	return m
}

// MultiplyMatrices multiplies matrix a by b storing the result in this matrix.
// Returns the pointer to this updated matrix.
func (m *Matrix3) MultiplyMatrices(a, b *Matrix3) *Matrix3 {

	a11 := a[0]
	a12 := a[3]
	a13 := a[6]
	a21 := a[1]
	a22 := a[4]
	a23 := a[7]
	a31 := a[2]
	a32 := a[5]
	a33 := a[8]

	b11 := b[0]
	b12 := b[3]
	b13 := b[6]
	b21 := b[1]
	b22 := b[4]
	b23 := b[7]
	b31 := b[2]
	b32 := b[5]
	b33 := b[8]

	m[0] = a11*b11 + a12*b21 + a13*b31
	m[3] = a11*b12 + a12*b22 + a13*b32
	m[6] = a11*b13 + a12*b23 + a13*b33
	m[1] = a21*b11 + a22*b21 + a23*b31
	m[4] = a21*b12 + a22*b22 + a23*b32
	m[7] = a21*b13 + a22*b23 + a23*b33
	m[2] = a31*b11 + a32*b21 + a33*b31
	m[5] = a31*b12 + a32*b22 + a33*b32
	m[8] = a31*b13 + a32*b23 + a33*b33
	return m
}

// Multiply multiplies this matrix by the other matrix.
// Returns the pointer to this updated matrix.
func (m *Matrix3) Multiply(other *Matrix3) *Matrix3 {

	return m.MultiplyMatrices(m, other)
}

// MakeDiagonal sets this matrix to the diagonal matrix with the
// components of d on the main diagonal.
// Returns the pointer to this updated matrix.
func (m *Matrix3) MakeDiagonal(d *Vector3) *Matrix3 {

	m.Set(
		d.X, 0, 0,
		0, d.Y, 0,
		0, 0, d.Z,
	)
	return m
}

// MakeCrossProduct sets this matrix to the skew-symmetric cross-product
// matrix of v, so that for any vector u: m*u == v x u.
// Returns the pointer to this updated matrix.
func (m *Matrix3) MakeCrossProduct(v *Vector3) *Matrix3 {

	m.Set(
		0, -v.Z, v.Y,
		v.Z, 0, -v.X,
		-v.Y, v.X, 0,
	)
	return m
}

// Determinant calculates and returns the determinant of this matrix.
func (m *Matrix3) Determinant() float32 {

	return m[0]*m[4]*m[8] -
		m[0]*m[5]*m[7] -
		m[1]*m[3]*m[8] +
		m[1]*m[5]*m[6] +
		m[2]*m[3]*m[7] -
		m[2]*m[4]*m[6]
}

// Transpose transposes this matrix.
// Returns pointer to this updated matrix.
func (m *Matrix3) Transpose() *Matrix3 {

	m[1], m[3] = m[3], m[1]
	m[2], m[6] = m[6], m[2]
	m[5], m[7] = m[7], m[5]
	return m
}

// Solve solves the linear system m*x = b storing the solution in target,
// using Gaussian elimination with partial pivoting.
// If the system has no unique solution returns error and leaves target
// unchanged. This matrix is unchanged.
func (m *Matrix3) Solve(b *Vector3, target *Vector3) error {

	// Augmented matrix in row-major order
	var a [3][4]float32
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			a[row][col] = m[row+col*3]
		}
	}
	a[0][3] = b.X
	a[1][3] = b.Y
	a[2][3] = b.Z

	for col := 0; col < 3; col++ {
		// Pivot on the row with the largest magnitude in this column
		pivot := col
		for row := col + 1; row < 3; row++ {
			if Abs(a[row][col]) > Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if a[pivot][col] == 0 {
			return errors.New("singular linear system")
		}
		if pivot != col {
			a[col], a[pivot] = a[pivot], a[col]
		}
		// Eliminate the column below the pivot
		for row := col + 1; row < 3; row++ {
			f := a[row][col] / a[col][col]
			for k := col; k < 4; k++ {
				a[row][k] -= f * a[col][k]
			}
		}
	}

	// Back substitution
	z := a[2][3] / a[2][2]
	y := (a[1][3] - a[1][2]*z) / a[1][1]
	x := (a[0][3] - a[0][1]*y - a[0][2]*z) / a[0][0]

	target.Set(x, y, z)
	return nil
}

// Clone creates and returns a pointer to a copy of this matrix.
func (m *Matrix3) Clone() *Matrix3 {

	cloned := *m
	return &cloned
}
