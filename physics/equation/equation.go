// Copyright 2024 The Dyn3 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package equation implements SPOOK constraint equations.
package equation

import (
	"github.com/dyn3/engine/math32"
)

// NoBody marks the second body slot of a single-body equation.
const NoBody = -1

// JacobianElement is one 6 degree-of-freedom half of a constraint
// Jacobian row: three spatial (linear) and three rotational components.
type JacobianElement struct {
	spatial    math32.Vector3
	rotational math32.Vector3
}

// SetSpatial sets the spatial component of the jacobian element.
func (je *JacobianElement) SetSpatial(v *math32.Vector3) {

	je.spatial = *v
}

// Spatial returns the spatial component of the jacobian element.
func (je *JacobianElement) Spatial() math32.Vector3 {

	return je.spatial
}

// SetRotational sets the rotational component of the jacobian element.
func (je *JacobianElement) SetRotational(v *math32.Vector3) {

	je.rotational = *v
}

// Rotational returns the rotational component of the jacobian element.
func (je *JacobianElement) Rotational() math32.Vector3 {

	return je.rotational
}

// MultiplyVectors returns the dot product of the jacobian element with
// the 6-vector formed by spatial and rotational.
func (je *JacobianElement) MultiplyVectors(spatial, rotational *math32.Vector3) float32 {

	return je.spatial.Dot(spatial) + je.rotational.Dot(rotational)
}

// Equation is a SPOOK constraint equation over the velocities of one or
// two bodies. It carries the full canonical row: the Jacobian, the
// inverse mass diagonal, the constraint violation, the constraint rate,
// the external forces, the force bounds and the body indices.
// All per-body data is captured when the row is assembled so the solver
// never touches world state.
type Equation struct {
	bi int // Index of body "i"
	bj int // Index of body "j"; NoBody for a single-body equation

	jeA JacobianElement
	jeB JacobianElement

	// Inverse mass diagonal per body: scalar inverse mass for the three
	// spatial slots and componentwise inverse inertia for the three
	// rotational slots. Fixed bodies contribute zeros.
	invMassA    float32
	invMassB    float32
	invInertiaA math32.Vector3
	invInertiaB math32.Vector3

	// Constraint violation. Only the spatial slots carry the penetration
	// vector; the rotational slots of the canonical row are zero.
	qA math32.Vector3
	qB math32.Vector3

	// Constraint rate: body velocities at assembly time.
	qdotA JacobianElement
	qdotB JacobianElement

	// External force and torque at assembly time.
	fextA JacobianElement
	fextB JacobianElement

	// Force bounds. The has flags indicate whether each bound is
	// present; absent bounds are not clamped against.
	lower    float32
	upper    float32
	hasLower bool
	hasUpper bool

	a          float32 // SPOOK parameter
	b          float32 // SPOOK parameter
	eps        float32 // SPOOK parameter
	multiplier float32 // Solved lambda over timestep, set by the solver
}

// NewEquation creates and returns a pointer to a new Equation between
// body indices bi and bj with no force bounds.
// Use bj = NoBody for a single-body equation.
func NewEquation(bi, bj int) *Equation {

	e := new(Equation)
	e.bi = bi
	e.bj = bj
	e.SetSpookParams(1e7, 4, 1.0/60.0)
	return e
}

// BodyA returns the index of body "i".
func (e *Equation) BodyA() int {

	return e.bi
}

// BodyB returns the index of body "j" or NoBody.
func (e *Equation) BodyB() int {

	return e.bj
}

// SingleBody returns whether this equation constrains a single body.
func (e *Equation) SingleBody() bool {

	return e.bj == NoBody
}

// JeA returns the jacobian element of body "i".
func (e *Equation) JeA() *JacobianElement {

	return &e.jeA
}

// JeB returns the jacobian element of body "j".
func (e *Equation) JeB() *JacobianElement {

	return &e.jeB
}

// SetMassA sets the inverse mass and inverse inertia diagonal of body "i".
func (e *Equation) SetMassA(invMass float32, invInertia *math32.Vector3) {

	e.invMassA = invMass
	e.invInertiaA = *invInertia
}

// SetMassB sets the inverse mass and inverse inertia diagonal of body "j".
func (e *Equation) SetMassB(invMass float32, invInertia *math32.Vector3) {

	e.invMassB = invMass
	e.invInertiaB = *invInertia
}

// InvMassA returns the inverse mass of body "i".
func (e *Equation) InvMassA() float32 {

	return e.invMassA
}

// InvMassB returns the inverse mass of body "j".
func (e *Equation) InvMassB() float32 {

	return e.invMassB
}

// InvInertiaA returns the inverse inertia diagonal of body "i".
func (e *Equation) InvInertiaA() math32.Vector3 {

	return e.invInertiaA
}

// InvInertiaB returns the inverse inertia diagonal of body "j".
func (e *Equation) InvInertiaB() math32.Vector3 {

	return e.invInertiaB
}

// SetViolationA sets the spatial constraint violation slots of body "i".
func (e *Equation) SetViolationA(q *math32.Vector3) {

	e.qA = *q
}

// SetViolationB sets the spatial constraint violation slots of body "j".
func (e *Equation) SetViolationB(q *math32.Vector3) {

	e.qB = *q
}

// SetRateA sets the constraint rate slots of body "i".
func (e *Equation) SetRateA(velocity, angularVelocity *math32.Vector3) {

	e.qdotA.SetSpatial(velocity)
	e.qdotA.SetRotational(angularVelocity)
}

// SetRateB sets the constraint rate slots of body "j".
func (e *Equation) SetRateB(velocity, angularVelocity *math32.Vector3) {

	e.qdotB.SetSpatial(velocity)
	e.qdotB.SetRotational(angularVelocity)
}

// SetExternalA sets the external force and torque slots of body "i".
func (e *Equation) SetExternalA(force, torque *math32.Vector3) {

	e.fextA.SetSpatial(force)
	e.fextA.SetRotational(torque)
}

// SetExternalB sets the external force and torque slots of body "j".
func (e *Equation) SetExternalB(force, torque *math32.Vector3) {

	e.fextB.SetSpatial(force)
	e.fextB.SetRotational(torque)
}

// SetLowerBound sets the lower force bound.
func (e *Equation) SetLowerBound(lower float32) {

	e.lower = lower
	e.hasLower = true
}

// SetUpperBound sets the upper force bound.
func (e *Equation) SetUpperBound(upper float32) {

	e.upper = upper
	e.hasUpper = true
}

// ClearBounds removes both force bounds.
func (e *Equation) ClearBounds() {

	e.hasLower = false
	e.hasUpper = false
}

// Lower returns the lower force bound and whether it is present.
func (e *Equation) Lower() (float32, bool) {

	return e.lower, e.hasLower
}

// Upper returns the upper force bound and whether it is present.
func (e *Equation) Upper() (float32, bool) {

	return e.upper, e.hasUpper
}

// Eps returns the SPOOK regularization parameter.
func (e *Equation) Eps() float32 {

	return e.eps
}

// SetMultiplier sets the multiplier.
func (e *Equation) SetMultiplier(multiplier float32) {

	e.multiplier = multiplier
}

// Multiplier returns the multiplier.
func (e *Equation) Multiplier() float32 {

	return e.multiplier
}

// SetSpookParams recalculates the a, b and eps parameters from the
// global spring/damper specification: stiffness k, relaxation d (the
// number of steps to stabilization) and the timestep h.
func (e *Equation) SetSpookParams(stiffness, relaxation, timeStep float32) {

	e.a = 4.0 / (timeStep * (1 + 4*relaxation))
	e.b = (4.0 * relaxation) / (1 + 4*relaxation)
	e.eps = 4.0 / (timeStep * timeStep * stiffness * (1 + 4*relaxation))
}

// ComputeB computes the RHS of the SPOOK equation:
// B = -a*Gq - b*GW - h*GMf.
func (e *Equation) ComputeB(h float32) float32 {

	return -e.ComputeGq()*e.a - e.ComputeGW()*e.b - e.ComputeGMf()*h
}

// ComputeGq computes G*q, the projection of the constraint violation
// onto the Jacobian. Only the spatial slots of q are populated.
func (e *Equation) ComputeGq() float32 {

	gq := e.jeA.spatial.Dot(&e.qA)
	if e.bj != NoBody {
		gq += e.jeB.spatial.Dot(&e.qB)
	}
	return gq
}

// ComputeGW computes G*W, the constraint rate.
func (e *Equation) ComputeGW() float32 {

	vA := e.qdotA.spatial
	wA := e.qdotA.rotational
	gw := e.jeA.MultiplyVectors(&vA, &wA)
	if e.bj != NoBody {
		vB := e.qdotB.spatial
		wB := e.qdotB.rotational
		gw += e.jeB.MultiplyVectors(&vB, &wB)
	}
	return gw
}

// ComputeGMf computes G*inv(M)*f where M is the mass matrix with
// diagonal blocks for each body and f are the external forces.
func (e *Equation) ComputeGMf() float32 {

	gmf := e.halfGMf(&e.jeA, &e.fextA, e.invMassA, &e.invInertiaA)
	if e.bj != NoBody {
		gmf += e.halfGMf(&e.jeB, &e.fextB, e.invMassB, &e.invInertiaB)
	}
	return gmf
}

func (e *Equation) halfGMf(je, fext *JacobianElement, invMass float32, invInertia *math32.Vector3) float32 {

	gmf := je.spatial.Dot(&fext.spatial) * invMass
	gmf += je.rotational.X * invInertia.X * fext.rotational.X
	gmf += je.rotational.Y * invInertia.Y * fext.rotational.Y
	gmf += je.rotational.Z * invInertia.Z * fext.rotational.Z
	return gmf
}

// ComputeGMG computes G*inv(M)*G', the diagonal of the system matrix
// for this row.
func (e *Equation) ComputeGMG() float32 {

	gmg := e.halfGMG(&e.jeA, e.invMassA, &e.invInertiaA)
	if e.bj != NoBody {
		gmg += e.halfGMG(&e.jeB, e.invMassB, &e.invInertiaB)
	}
	return gmg
}

func (e *Equation) halfGMG(je *JacobianElement, invMass float32, invInertia *math32.Vector3) float32 {

	gmg := je.spatial.LengthSq() * invMass
	gmg += je.rotational.X * je.rotational.X * invInertia.X
	gmg += je.rotational.Y * je.rotational.Y * invInertia.Y
	gmg += je.rotational.Z * je.rotational.Z * invInertia.Z
	return gmg
}

// ComputeC computes the denominator part of the SPOOK equation:
// C = G*inv(M)*G' + eps.
func (e *Equation) ComputeC() float32 {

	return e.ComputeGMG() + e.eps
}
