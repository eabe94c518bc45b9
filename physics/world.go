// Copyright 2024 The Dyn3 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/dyn3/engine/math32"
	"github.com/dyn3/engine/physics/collision"
	"github.com/dyn3/engine/physics/constraint"
	"github.com/dyn3/engine/physics/shape"
	"github.com/dyn3/engine/physics/solver"
)

// World owns the simulated bodies and advances them in fixed time
// steps. The body state is kept in parallel arrays indexed by the body
// index.
//
// A world is not safe for concurrent use; callers serialize Step and
// mutations.
type World struct {
	gravity math32.Vector3

	bodies []*RigidBody
	shapes []shape.IShape

	// Body state, one slot per body
	px, py, pz       []float32 // Position
	vx, vy, vz       []float32 // Linear velocity
	fx, fy, fz       []float32 // Accumulated force
	taux, tauy, tauz []float32 // Accumulated torque
	wx, wy, wz       []float32 // Angular velocity
	qx, qy, qz, qw   []float32 // Orientation quaternion
	mass             []float32 // Mass; <= 0 for fixed bodies
	invMass          []float32 // Inverse mass; 0 for fixed bodies
	inx, iny, inz    []float32 // Diagonal local inertia
	fixed            []bool

	cmatrix     *collision.Matrix
	broadphase  collision.IBroadphase
	narrowphase *Narrowphase
	solver      *solver.GaussSeidel

	forceFields []ForceField
	constraints []constraint.IConstraint

	// SPOOK parameters applied to every contact equation
	contactStiffness  float32
	contactRelaxation float32

	applyImpulseAngular bool

	paused     bool
	dt         float32 // Timestep currently being integrated
	time       float32 // Simulated time since world creation
	stepnumber int     // Number of steps taken since world creation
}

// NewWorld creates and returns a pointer to a new empty World with a
// naive broadphase and a Gauss-Seidel solver.
func NewWorld() *World {

	w := new(World)
	w.broadphase = collision.NewNaive()
	w.narrowphase = NewNarrowphase(w)
	w.solver = solver.NewGaussSeidel()
	w.cmatrix = collision.NewMatrix(0)
	w.contactStiffness = 1e7
	w.contactRelaxation = 4
	return w
}

// SetGravity sets the gravity acceleration applied to every body.
func (w *World) SetGravity(g *math32.Vector3) {

	w.gravity = *g
}

// Gravity returns the gravity acceleration.
func (w *World) Gravity() math32.Vector3 {

	return w.gravity
}

// SetBroadphase sets the broadphase implementation used to find
// candidate collision pairs.
func (w *World) SetBroadphase(bp collision.IBroadphase) {

	w.broadphase = bp
}

// SetIterations sets the number of solver sweeps per step.
func (w *World) SetIterations(n int) {

	w.solver.SetIterations(n)
}

// Iterations returns the number of solver sweeps per step.
func (w *World) Iterations() int {

	return w.solver.Iterations()
}

// SetContactParams sets the SPOOK stiffness and relaxation applied to
// every contact equation.
func (w *World) SetContactParams(stiffness, relaxation float32) {

	w.contactStiffness = stiffness
	w.contactRelaxation = relaxation
}

// SetApplyImpulseAngular enables the angular velocity update of the
// first-contact impulse. Off by default.
func (w *World) SetApplyImpulseAngular(state bool) {

	w.applyImpulseAngular = state
}

// SetPaused pauses or resumes the world. While paused Step is a no-op.
func (w *World) SetPaused(state bool) {

	w.paused = state
}

// Paused returns whether the world is paused.
func (w *World) Paused() bool {

	return w.paused
}

// Time returns the simulated time since world creation.
func (w *World) Time() float32 {

	return w.time
}

// StepNumber returns the number of steps taken since world creation.
func (w *World) StepNumber() int {

	return w.stepnumber
}

// NumBodies returns the number of bodies in the world.
func (w *World) NumBodies() int {

	return len(w.bodies)
}

// Bodies returns the slice of bodies in the world.
func (w *World) Bodies() []*RigidBody {

	return w.bodies
}

// BodyPosition returns the position of the body at index i.
func (w *World) BodyPosition(i int) math32.Vector3 {

	return *math32.NewVector3(w.px[i], w.py[i], w.pz[i])
}

// BodyShape returns the shape of the body at index i.
func (w *World) BodyShape(i int) shape.IShape {

	return w.shapes[i]
}

// bodyVelocity returns the linear velocity of the body at index i.
func (w *World) bodyVelocity(i int) math32.Vector3 {

	return *math32.NewVector3(w.vx[i], w.vy[i], w.vz[i])
}

// bodyAngularVelocity returns the angular velocity of the body at index i.
func (w *World) bodyAngularVelocity(i int) math32.Vector3 {

	return *math32.NewVector3(w.wx[i], w.wy[i], w.wz[i])
}

// bodyForce returns the accumulated force on the body at index i.
func (w *World) bodyForce(i int) math32.Vector3 {

	return *math32.NewVector3(w.fx[i], w.fy[i], w.fz[i])
}

// bodyTorque returns the accumulated torque on the body at index i.
func (w *World) bodyTorque(i int) math32.Vector3 {

	return *math32.NewVector3(w.taux[i], w.tauy[i], w.tauz[i])
}

// AddForceField adds a force field to the world.
func (w *World) AddForceField(ff ForceField) {

	w.forceFields = append(w.forceFields, ff)
}

// RemoveForceField removes the specified force field from the world.
// Returns true if found, false otherwise.
func (w *World) RemoveForceField(ff ForceField) bool {

	for pos, current := range w.forceFields {
		if current == ff {
			copy(w.forceFields[pos:], w.forceFields[pos+1:])
			w.forceFields[len(w.forceFields)-1] = nil
			w.forceFields = w.forceFields[:len(w.forceFields)-1]
			return true
		}
	}
	return false
}

// AddConstraint adds a user constraint to the world. Its equations are
// refreshed and solved together with the contact equations every step.
func (w *World) AddConstraint(c constraint.IConstraint) {

	w.constraints = append(w.constraints, c)
}

// RemoveConstraint removes the specified constraint from the world.
// Returns true if found, false otherwise.
func (w *World) RemoveConstraint(c constraint.IConstraint) bool {

	for pos, current := range w.constraints {
		if current == c {
			copy(w.constraints[pos:], w.constraints[pos+1:])
			w.constraints[len(w.constraints)-1] = nil
			w.constraints = w.constraints[:len(w.constraints)-1]
			return true
		}
	}
	return false
}

// Add attaches a body to the world and returns its index.
// The body's detached state is copied into the world arrays and its
// getters and setters forward to the world from now on.
func (w *World) Add(body *RigidBody) (int, error) {

	if body.index != Detached {
		return Detached, ErrBodyAttached
	}
	if !shape.Supported(body.shp) {
		return Detached, ErrUnsupportedShape
	}

	idx := len(w.bodies)
	w.bodies = append(w.bodies, body)
	w.shapes = append(w.shapes, body.shp)

	w.px = append(w.px, body.position.X)
	w.py = append(w.py, body.position.Y)
	w.pz = append(w.pz, body.position.Z)
	w.vx = append(w.vx, body.velocity.X)
	w.vy = append(w.vy, body.velocity.Y)
	w.vz = append(w.vz, body.velocity.Z)
	w.fx = append(w.fx, body.force.X)
	w.fy = append(w.fy, body.force.Y)
	w.fz = append(w.fz, body.force.Z)
	w.taux = append(w.taux, body.torque.X)
	w.tauy = append(w.tauy, body.torque.Y)
	w.tauz = append(w.tauz, body.torque.Z)
	w.wx = append(w.wx, body.angularVelocity.X)
	w.wy = append(w.wy, body.angularVelocity.Y)
	w.wz = append(w.wz, body.angularVelocity.Z)
	w.qx = append(w.qx, body.quaternion.X)
	w.qy = append(w.qy, body.quaternion.Y)
	w.qz = append(w.qz, body.quaternion.Z)
	w.qw = append(w.qw, body.quaternion.W)

	fixed := body.mass <= 0
	w.mass = append(w.mass, body.mass)
	w.fixed = append(w.fixed, fixed)
	if fixed {
		w.invMass = append(w.invMass, 0)
	} else {
		w.invMass = append(w.invMass, 1/body.mass)
	}

	inertia := body.shp.LocalInertia(body.mass)
	w.inx = append(w.inx, inertia.X)
	w.iny = append(w.iny, inertia.Y)
	w.inz = append(w.inz, inertia.Z)

	// The contact matrix grows with the body count; history restarts
	w.cmatrix.Reset(idx + 1)

	body.world = w
	body.index = idx
	log.Debug("add body %s (%s) at index %d", body.name, body.id, idx)
	return idx, nil
}

// AddNamed attaches a body to the world with the specified name.
func (w *World) AddNamed(body *RigidBody, name string) (int, error) {

	body.SetName(name)
	return w.Add(body)
}

// ClearCollisionState zeroes the current and previous contact bits of
// every pair involving the specified body.
func (w *World) ClearCollisionState(body *RigidBody) {

	if body.index == Detached {
		return
	}
	w.cmatrix.ClearBody(body.index)
}

// Step advances the simulation by dt seconds. dt should equal the
// timestep the contact SPOOK parameters were derived for.
// The reported failures are a broadphase error (such as
// collision.ErrUnknownBroadphase) and a singular first-contact impulse
// solve; all other degradations are silent.
func (w *World) Step(dt float32) error {

	if w.paused {
		return nil
	}
	w.dt = dt

	// Find candidate pairs of colliding bodies
	pairsA, pairsB, err := w.broadphase.CollisionPairs(w)
	if err != nil {
		return err
	}

	// Store old contact state and clear the current one
	w.cmatrix.Tick()

	// Accumulate force fields and gravity
	w.applyForceFields()
	for i := 0; i < len(w.bodies); i++ {
		w.fx[i] += w.gravity.X * w.mass[i]
		w.fy[i] += w.gravity.Y * w.mass[i]
		w.fz[i] += w.gravity.Z * w.mass[i]
	}

	// Generate contacts: first-contact impulses are applied directly,
	// persistent contacts become solver equations
	w.solver.ClearEquations()
	for k := 0; k < len(pairsA); k++ {
		if err := w.narrowphase.Resolve(pairsA[k], pairsB[k]); err != nil {
			return err
		}
	}

	// Add user constraint equations
	for _, c := range w.constraints {
		c.Update()
		for _, eq := range c.Equations() {
			w.solver.AddEquation(eq)
		}
	}

	// Solve the constrained system and apply the velocity corrections
	if w.solver.NumEquations() > 0 {
		sol := w.solver.Solve(dt, len(w.bodies))
		w.applySolution(sol)
	}

	// Integrate the forces into velocities into position deltas
	w.integrate(dt)
	w.clearForces()

	w.time += dt
	w.stepnumber++
	return nil
}

// applyForceFields accumulates every force field into the body forces,
// scaled by body mass.
func (w *World) applyForceFields() {

	for _, ff := range w.forceFields {
		for i := 0; i < len(w.bodies); i++ {
			if w.fixed[i] {
				continue
			}
			pos := w.BodyPosition(i)
			force := ff.ForceAt(&pos)
			w.fx[i] += force.X * w.mass[i]
			w.fy[i] += force.Y * w.mass[i]
			w.fz[i] += force.Z * w.mass[i]
		}
	}
}

// applySolution adds the solver velocity corrections to the body
// velocities.
func (w *World) applySolution(sol *solver.Solution) {

	for i := 0; i < len(w.bodies); i++ {
		w.vx[i] += sol.VelocityDeltas[i].X
		w.vy[i] += sol.VelocityDeltas[i].Y
		w.vz[i] += sol.VelocityDeltas[i].Z
		w.wx[i] += sol.AngularVelocityDeltas[i].X
		w.wy[i] += sol.AngularVelocityDeltas[i].Y
		w.wz[i] += sol.AngularVelocityDeltas[i].Z
	}
}

// integrate performs one semi-implicit leapfrog step for every movable
// body: velocity from force, then position from the new velocity, then
// orientation from the angular velocity.
func (w *World) integrate(dt float32) {

	for i := 0; i < len(w.bodies); i++ {
		if w.fixed[i] {
			continue
		}

		// Integrate force over mass to obtain the new velocities
		iMdt := w.invMass[i] * dt
		w.vx[i] += w.fx[i] * iMdt
		w.vy[i] += w.fy[i] * iMdt
		w.vz[i] += w.fz[i] * iMdt

		inv := invComponents(w.inx[i], w.iny[i], w.inz[i])
		w.wx[i] += w.taux[i] * inv.X * dt
		w.wy[i] += w.tauy[i] * inv.Y * dt
		w.wz[i] += w.tauz[i] * inv.Z * dt

		// Integrate velocity to obtain the new position
		w.px[i] += w.vx[i] * dt
		w.py[i] += w.vy[i] * dt
		w.pz[i] += w.vz[i] * dt

		// Integrate angular velocity to obtain the new orientation:
		// qdot = 0.5 * (0, w) * q
		ax := w.wx[i]
		ay := w.wy[i]
		az := w.wz[i]
		bx := w.qx[i]
		by := w.qy[i]
		bz := w.qz[i]
		bw := w.qw[i]
		halfDt := dt * 0.5
		w.qx[i] += halfDt * (ax*bw + ay*bz - az*by)
		w.qy[i] += halfDt * (ay*bw + az*bx - ax*bz)
		w.qz[i] += halfDt * (az*bw + ax*by - ay*bx)
		w.qw[i] += halfDt * (-ax*bx - ay*by - az*bz)

		// Renormalize the orientation
		q := math32.NewQuaternion(w.qx[i], w.qy[i], w.qz[i], w.qw[i]).Normalize()
		w.qx[i] = q.X
		w.qy[i] = q.Y
		w.qz[i] = q.Z
		w.qw[i] = q.W
	}
}

// clearForces zeroes the accumulated forces and torques of every body.
func (w *World) clearForces() {

	for i := 0; i < len(w.bodies); i++ {
		w.fx[i] = 0
		w.fy[i] = 0
		w.fz[i] = 0
		w.taux[i] = 0
		w.tauy[i] = 0
		w.tauz[i] = 0
	}
}

// localInertia returns the diagonal local inertia of body i.
func (w *World) localInertia(i int) math32.Vector3 {

	return *math32.NewVector3(w.inx[i], w.iny[i], w.inz[i])
}

// inertiaWorld returns the world-frame inertia diagonal of body i.
// For boxes it is approximated as the componentwise absolute value of
// the local inertia diagonal rotated by the body orientation, which is
// dimensionally sound only near axis-aligned orientations. Other shapes
// have rotation-invariant diagonals and use the local inertia directly.
func (w *World) inertiaWorld(i int) math32.Vector3 {

	inertia := w.localInertia(i)
	if w.shapes[i].Kind() != shape.BoxKind {
		return inertia
	}
	q := math32.NewQuaternion(w.qx[i], w.qy[i], w.qz[i], w.qw[i])
	return *inertia.ApplyQuaternion(q).Abs()
}

// invComponents returns the componentwise inverse of a diagonal,
// treating non-positive components as immovable (inverse zero).
func invComponents(x, y, z float32) math32.Vector3 {

	var inv math32.Vector3
	if x > 0 {
		inv.X = 1 / x
	}
	if y > 0 {
		inv.Y = 1 / y
	}
	if z > 0 {
		inv.Z = 1 / z
	}
	return inv
}
