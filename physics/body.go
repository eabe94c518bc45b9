// Copyright 2024 The Dyn3 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/google/uuid"

	"github.com/dyn3/engine/math32"
	"github.com/dyn3/engine/physics/shape"
)

// Detached marks a body that is not attached to a world.
const Detached = -1

// RigidBody represents a physics-driven rigid body.
//
// A body is created detached and carries its own state record.
// Once attached via World.Add the world arrays are authoritative and
// the body getters and setters forward to them; while detached they
// operate on the in-record state.
type RigidBody struct {
	id       uuid.UUID
	name     string
	world    *World // World the body is living in; nil while detached
	index    int    // Index into the world arrays; Detached while detached
	shp      shape.IShape
	mass     float32
	material *Material

	// Detached state record
	position        math32.Vector3
	quaternion      math32.Quaternion
	velocity        math32.Vector3
	angularVelocity math32.Vector3
	force           math32.Vector3
	torque          math32.Vector3
}

// NewRigidBody creates and returns a pointer to a new RigidBody with
// the specified mass and shape. A mass less than or equal to zero makes
// the body fixed.
func NewRigidBody(mass float32, shp shape.IShape) *RigidBody {

	b := new(RigidBody)
	b.id = uuid.New()
	b.index = Detached
	b.shp = shp
	b.mass = mass
	b.material = defaultMaterial
	b.quaternion.SetIdentity()
	return b
}

// ID returns the unique id of the body.
func (b *RigidBody) ID() uuid.UUID {

	return b.id
}

// SetName sets the body name used in log messages.
func (b *RigidBody) SetName(name string) {

	b.name = name
}

// Name returns the body name.
func (b *RigidBody) Name() string {

	return b.name
}

// Shape returns the collision shape of the body.
func (b *RigidBody) Shape() shape.IShape {

	return b.shp
}

// Mass returns the mass of the body.
func (b *RigidBody) Mass() float32 {

	return b.mass
}

// Fixed returns whether the body is fixed (mass <= 0).
func (b *RigidBody) Fixed() bool {

	return b.mass <= 0
}

// Index returns the body index in its world, or Detached.
func (b *RigidBody) Index() int {

	return b.index
}

// World returns the world the body is attached to, or nil.
func (b *RigidBody) World() *World {

	return b.world
}

// SetMaterial sets the contact material of the body.
func (b *RigidBody) SetMaterial(m *Material) {

	b.material = m
}

// Material returns the contact material of the body.
func (b *RigidBody) Material() *Material {

	return b.material
}

// SetPosition sets the world position of the body.
func (b *RigidBody) SetPosition(pos *math32.Vector3) {

	if b.world != nil {
		i := b.index
		b.world.px[i] = pos.X
		b.world.py[i] = pos.Y
		b.world.pz[i] = pos.Z
		return
	}
	b.position = *pos
}

// Position returns the world position of the body.
func (b *RigidBody) Position() math32.Vector3 {

	if b.world != nil {
		i := b.index
		return *math32.NewVector3(b.world.px[i], b.world.py[i], b.world.pz[i])
	}
	return b.position
}

// SetQuaternion sets the world orientation of the body.
func (b *RigidBody) SetQuaternion(q *math32.Quaternion) {

	if b.world != nil {
		i := b.index
		b.world.qx[i] = q.X
		b.world.qy[i] = q.Y
		b.world.qz[i] = q.Z
		b.world.qw[i] = q.W
		return
	}
	b.quaternion = *q
}

// Quaternion returns the world orientation of the body.
func (b *RigidBody) Quaternion() math32.Quaternion {

	if b.world != nil {
		i := b.index
		return *math32.NewQuaternion(b.world.qx[i], b.world.qy[i], b.world.qz[i], b.world.qw[i])
	}
	return b.quaternion
}

// SetVelocity sets the linear velocity of the body.
func (b *RigidBody) SetVelocity(vel *math32.Vector3) {

	if b.world != nil {
		i := b.index
		b.world.vx[i] = vel.X
		b.world.vy[i] = vel.Y
		b.world.vz[i] = vel.Z
		return
	}
	b.velocity = *vel
}

// Velocity returns the linear velocity of the body.
func (b *RigidBody) Velocity() math32.Vector3 {

	if b.world != nil {
		i := b.index
		return *math32.NewVector3(b.world.vx[i], b.world.vy[i], b.world.vz[i])
	}
	return b.velocity
}

// SetAngularVelocity sets the angular velocity of the body.
func (b *RigidBody) SetAngularVelocity(vel *math32.Vector3) {

	if b.world != nil {
		i := b.index
		b.world.wx[i] = vel.X
		b.world.wy[i] = vel.Y
		b.world.wz[i] = vel.Z
		return
	}
	b.angularVelocity = *vel
}

// AngularVelocity returns the angular velocity of the body.
func (b *RigidBody) AngularVelocity() math32.Vector3 {

	if b.world != nil {
		i := b.index
		return *math32.NewVector3(b.world.wx[i], b.world.wy[i], b.world.wz[i])
	}
	return b.angularVelocity
}

// SetForce sets the accumulated force on the body.
func (b *RigidBody) SetForce(force *math32.Vector3) {

	if b.world != nil {
		i := b.index
		b.world.fx[i] = force.X
		b.world.fy[i] = force.Y
		b.world.fz[i] = force.Z
		return
	}
	b.force = *force
}

// Force returns the accumulated force on the body.
func (b *RigidBody) Force() math32.Vector3 {

	if b.world != nil {
		i := b.index
		return *math32.NewVector3(b.world.fx[i], b.world.fy[i], b.world.fz[i])
	}
	return b.force
}

// SetTorque sets the accumulated torque on the body.
func (b *RigidBody) SetTorque(torque *math32.Vector3) {

	if b.world != nil {
		i := b.index
		b.world.taux[i] = torque.X
		b.world.tauy[i] = torque.Y
		b.world.tauz[i] = torque.Z
		return
	}
	b.torque = *torque
}

// Torque returns the accumulated torque on the body.
func (b *RigidBody) Torque() math32.Vector3 {

	if b.world != nil {
		i := b.index
		return *math32.NewVector3(b.world.taux[i], b.world.tauy[i], b.world.tauz[i])
	}
	return b.torque
}

// ApplyForce accumulates a force applied at a world point relative to
// the center of mass. The force adds to the body force and its moment
// to the body torque.
func (b *RigidBody) ApplyForce(force, relativePoint *math32.Vector3) {

	f := b.Force()
	f.Add(force)
	b.SetForce(&f)

	tau := b.Torque()
	tau.Add(math32.NewVec3().CrossVectors(relativePoint, force))
	b.SetTorque(&tau)
}

// LocalInertia returns the diagonal of the body's moment of inertia in
// local coordinates.
func (b *RigidBody) LocalInertia() math32.Vector3 {

	return b.shp.LocalInertia(b.mass)
}
