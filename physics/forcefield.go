// Copyright 2024 The Dyn3 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import "github.com/dyn3/engine/math32"

// ForceField represents a force field. An acceleration is defined for
// every point. The world scales the field by each body's mass before
// accumulating it into the body force.
type ForceField interface {
	ForceAt(pos *math32.Vector3) math32.Vector3
}

//
// Constant is a constant force field.
//
type Constant struct {
	force math32.Vector3
}

// NewConstant creates and returns a pointer to a new Constant force
// field with the specified force.
func NewConstant(force *math32.Vector3) *Constant {

	c := new(Constant)
	c.force = *force
	return c
}

// SetForce sets the force of the force field.
func (c *Constant) SetForce(force *math32.Vector3) {

	c.force = *force
}

// Force returns the force of the force field.
func (c *Constant) Force() math32.Vector3 {

	return c.force
}

// ForceAt satisfies the ForceField interface and returns the force at
// the specified position.
func (c *Constant) ForceAt(pos *math32.Vector3) math32.Vector3 {

	return c.force
}

//
// PointAttractor is a force field where all forces point to a single
// point. The force strength changes with the inverse distance squared.
//
type PointAttractor struct {
	position math32.Vector3
	mass     float32
}

// NewPointAttractor creates and returns a pointer to a new
// PointAttractor force field.
func NewPointAttractor(position *math32.Vector3, mass float32) *PointAttractor {

	pa := new(PointAttractor)
	pa.position = *position
	pa.mass = mass
	return pa
}

// SetPosition sets the position of the PointAttractor.
func (pa *PointAttractor) SetPosition(position *math32.Vector3) {

	pa.position = *position
}

// Position returns the position of the PointAttractor.
func (pa *PointAttractor) Position() math32.Vector3 {

	return pa.position
}

// SetMass sets the mass of the PointAttractor.
func (pa *PointAttractor) SetMass(mass float32) {

	pa.mass = mass
}

// Mass returns the mass of the PointAttractor.
func (pa *PointAttractor) Mass() float32 {

	return pa.mass
}

// ForceAt satisfies the ForceField interface and returns the force at
// the specified position.
func (pa *PointAttractor) ForceAt(pos *math32.Vector3) math32.Vector3 {

	dir := math32.NewVec3().SubVectors(&pa.position, pos)
	dist := dir.Length()
	if dist == 0 {
		return *math32.NewVec3()
	}
	dir.Normalize()
	dir.MultiplyScalar(pa.mass / (dist * dist))
	return *dir
}

//
// PointRepeller is a force field where all forces point away from a
// single point. The force strength changes with the inverse distance
// squared.
//
type PointRepeller struct {
	position math32.Vector3
	mass     float32
}

// NewPointRepeller creates and returns a pointer to a new PointRepeller
// force field.
func NewPointRepeller(position *math32.Vector3, mass float32) *PointRepeller {

	pr := new(PointRepeller)
	pr.position = *position
	pr.mass = mass
	return pr
}

// SetPosition sets the position of the PointRepeller.
func (pr *PointRepeller) SetPosition(position *math32.Vector3) {

	pr.position = *position
}

// Position returns the position of the PointRepeller.
func (pr *PointRepeller) Position() math32.Vector3 {

	return pr.position
}

// SetMass sets the mass of the PointRepeller.
func (pr *PointRepeller) SetMass(mass float32) {

	pr.mass = mass
}

// Mass returns the mass of the PointRepeller.
func (pr *PointRepeller) Mass() float32 {

	return pr.mass
}

// ForceAt satisfies the ForceField interface and returns the force at
// the specified position.
func (pr *PointRepeller) ForceAt(pos *math32.Vector3) math32.Vector3 {

	dir := math32.NewVec3().SubVectors(pos, &pr.position)
	dist := dir.Length()
	if dist == 0 {
		return *math32.NewVec3()
	}
	dir.Normalize()
	dir.MultiplyScalar(pr.mass / (dist * dist))
	return *dir
}
