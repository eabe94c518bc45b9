// Copyright 2024 The Dyn3 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package collision implements collision related algorithms and data structures.
package collision

// Matrix records contact existence for every body pair in the current and
// the previous step. It is a packed NxN array of bits: for a pair (i,j)
// with i < j the current step's bit lives in the upper triangle at
// [i + j*N] and the previous step's bit in the lower triangle at [j + i*N].
// The diagonal is never set.
type Matrix struct {
	n    int
	bits []int16
}

// NewMatrix creates and returns a pointer to a new contact Matrix
// for n bodies.
func NewMatrix(n int) *Matrix {

	m := new(Matrix)
	m.Reset(n)
	return m
}

// Size returns the number of bodies the matrix covers.
func (m *Matrix) Size() int {

	return m.n
}

// Reset reallocates the matrix for n bodies with all bits zeroed.
func (m *Matrix) Reset(n int) {

	m.n = n
	m.bits = make([]int16, n*n)
}

// order returns the pair indices ordered so that s < l.
func order(i, j int) (s, l int) {

	if i < j {
		return i, j
	}
	return j, i
}

// Current returns whether bodies i and j are in contact in the current step.
func (m *Matrix) Current(i, j int) bool {

	s, l := order(i, j)
	return m.bits[s+l*m.n] != 0
}

// SetCurrent sets the current step contact state of bodies i and j.
// Setting the state of a body against itself is ignored.
func (m *Matrix) SetCurrent(i, j int, state bool) {

	if i == j {
		return
	}
	s, l := order(i, j)
	if state {
		m.bits[s+l*m.n] = 1
	} else {
		m.bits[s+l*m.n] = 0
	}
}

// Previous returns whether bodies i and j were in contact in the previous step.
func (m *Matrix) Previous(i, j int) bool {

	s, l := order(i, j)
	return m.bits[l+s*m.n] != 0
}

// Tick moves every current contact bit to its previous slot and
// zeroes the current bits. Called by the world once per step before
// the narrowphase runs.
func (m *Matrix) Tick() {

	for s := 0; s < m.n; s++ {
		for l := s + 1; l < m.n; l++ {
			m.bits[l+s*m.n] = m.bits[s+l*m.n]
			m.bits[s+l*m.n] = 0
		}
	}
}

// ClearBody zeroes the current and previous contact bits of every pair
// involving body i.
func (m *Matrix) ClearBody(i int) {

	for j := 0; j < m.n; j++ {
		if j == i {
			continue
		}
		s, l := order(i, j)
		m.bits[s+l*m.n] = 0
		m.bits[l+s*m.n] = 0
	}
}
