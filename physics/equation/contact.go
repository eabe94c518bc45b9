// Copyright 2024 The Dyn3 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equation

import (
	"github.com/dyn3/engine/math32"
)

// Contact is a non-penetration constraint equation. The force bounds
// are [0, +inf): the constraint can only push the bodies apart.
type Contact struct {
	Equation
	normal math32.Vector3 // Contact normal, pointing out of body "i"
	rA     math32.Vector3 // World vector from the center of body "i" to the contact point
	rB     math32.Vector3 // World vector from the center of body "j" to the contact point
}

// NewContact creates and returns a pointer to a new Contact equation
// between body indices bi and bj. Use bj = NoBody when body "j" is
// immovable.
func NewContact(bi, bj int) *Contact {

	ce := new(Contact)
	ce.Equation.bi = bi
	ce.Equation.bj = bj
	ce.Equation.SetSpookParams(1e7, 4, 1.0/60.0)
	ce.SetLowerBound(0)
	return ce
}

// SetNormal sets the contact normal.
func (ce *Contact) SetNormal(normal *math32.Vector3) {

	ce.normal = *normal
}

// Normal returns the contact normal.
func (ce *Contact) Normal() math32.Vector3 {

	return ce.normal
}

// SetRA sets the contact offset of body "i".
func (ce *Contact) SetRA(rA *math32.Vector3) {

	ce.rA = *rA
}

// RA returns the contact offset of body "i".
func (ce *Contact) RA() math32.Vector3 {

	return ce.rA
}

// SetRB sets the contact offset of body "j".
func (ce *Contact) SetRB(rB *math32.Vector3) {

	ce.rB = *rB
}

// RB returns the contact offset of body "j".
func (ce *Contact) RB() math32.Vector3 {

	return ce.rB
}
