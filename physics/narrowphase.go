// Copyright 2024 The Dyn3 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/dyn3/engine/math32"
	"github.com/dyn3/engine/physics/equation"
	"github.com/dyn3/engine/physics/shape"
)

// maxPlaneContacts caps the contacts emitted for one box/plane pair.
const maxPlaneContacts = 4

// Narrowphase computes exact contacts for the candidate pairs produced
// by the broadphase. A new contact is resolved with a first-contact
// impulse; a contact that also existed in the previous step becomes a
// non-penetration equation for the solver.
type Narrowphase struct {
	world *World
}

// NewNarrowphase creates and returns a pointer to a new Narrowphase.
func NewNarrowphase(world *World) *Narrowphase {

	n := new(Narrowphase)
	n.world = world
	return n
}

// Resolve dispatches the pair (i, j) to the handler for its shape
// kinds. Pairs with no handler are skipped.
func (n *Narrowphase) Resolve(i, j int) error {

	w := n.world
	if w.fixed[i] && w.fixed[j] {
		return nil
	}
	ki := w.shapes[i].Kind()
	kj := w.shapes[j].Kind()

	switch {
	case ki == shape.SphereKind && kj == shape.SphereKind:
		return n.sphereSphere(i, j)
	case ki == shape.SphereKind && kj == shape.PlaneKind:
		return n.spherePlane(i, j)
	case ki == shape.PlaneKind && kj == shape.SphereKind:
		return n.spherePlane(j, i)
	case ki == shape.BoxKind && kj == shape.PlaneKind:
		return n.boxPlane(i, j)
	case ki == shape.PlaneKind && kj == shape.BoxKind:
		return n.boxPlane(j, i)
	}

	log.Debug("no narrowphase handler for pair (%d,%d)", i, j)
	return nil
}

// spherePlane resolves the contact between the sphere at index si and
// the plane at index pi.
func (n *Narrowphase) spherePlane(si, pi int) error {

	w := n.world
	sphere := w.shapes[si].(*shape.Sphere)
	plane := w.shapes[pi].(*shape.Plane)

	planeNormal := plane.Normal()
	// Contact normal pointing out of the sphere, toward the plane
	nrm := planeNormal
	nrm.Negate()

	// Vector from the sphere center to the contact point
	rs := *nrm.Clone().MultiplyScalar(sphere.Radius())

	xs := w.BodyPosition(si)
	xp := w.BodyPosition(pi)

	// Project the sphere center onto the plane
	d := math32.NewVec3().SubVectors(&xs, &xp)
	proj := *xs.Clone().AddScaledVector(&planeNormal, -d.Dot(&planeNormal))

	// Penetration relative to the sphere surface point
	qvec := *math32.NewVec3().SubVectors(&proj, &xs).Sub(&rs)
	if qvec.Dot(&nrm) >= 0 {
		return nil
	}

	prev := w.cmatrix.Previous(si, pi)
	w.cmatrix.SetCurrent(si, pi, true)

	if !prev {
		rp := *math32.NewVec3().SubVectors(&proj, &xp)
		bi := w.bodies[si]
		bj := w.bodies[pi]
		return w.collisionImpulse(si, pi, &rs, &rp, &nrm,
			combineRestitution(bi.material, bj.material),
			combineFriction(bi.material, bj.material))
	}

	// Persistent contact: single-body non-penetration equation.
	// The contact torque arm of the sphere is treated as zero, so the
	// rotational block stays zero-filled.
	ce := equation.NewContact(si, equation.NoBody)
	ce.SetSpookParams(w.contactStiffness, w.contactRelaxation, w.dt)
	ce.SetNormal(&nrm)
	ce.SetRA(&rs)
	minusN := nrm
	minusN.Negate()
	ce.JeA().SetSpatial(&minusN)
	inv := invComponents(w.inx[si], w.iny[si], w.inz[si])
	ce.SetMassA(w.invMass[si], &inv)
	ce.SetViolationA(qvec.Clone().Negate())
	vel := w.bodyVelocity(si)
	ce.SetRateA(&vel, math32.NewVec3())
	force := w.bodyForce(si)
	torque := w.bodyTorque(si)
	ce.SetExternalA(&force, &torque)
	w.solver.AddEquation(&ce.Equation)
	return nil
}

// sphereSphere resolves the contact between the spheres at indices
// i and j.
func (n *Narrowphase) sphereSphere(i, j int) error {

	w := n.world
	si := w.shapes[i].(*shape.Sphere)
	sj := w.shapes[j].(*shape.Sphere)

	xi := w.BodyPosition(i)
	xj := w.BodyPosition(j)

	// Contact normal pointing out of body i, toward body j
	nrm := *math32.NewVec3().SubVectors(&xj, &xi)
	if nrm.LengthSq() == 0 {
		return nil
	}
	nrm.Normalize()

	// Surface offsets toward the other sphere's center
	ri := *nrm.Clone().MultiplyScalar(si.Radius())
	rj := *nrm.Clone().MultiplyScalar(-sj.Radius())

	// Penetration between the two surface points
	qvec := *math32.NewVec3().AddVectors(&xj, &rj)
	qvec.Sub(&xi).Sub(&ri)
	if qvec.Dot(&nrm) >= 0 {
		return nil
	}

	prev := w.cmatrix.Previous(i, j)
	w.cmatrix.SetCurrent(i, j, true)

	if !prev {
		bi := w.bodies[i]
		bj := w.bodies[j]
		return w.collisionImpulse(i, j, &ri, &rj, &nrm,
			combineRestitution(bi.material, bj.material),
			combineFriction(bi.material, bj.material))
	}

	// Persistent contact: two-body equation with a linear-only Jacobian
	ce := equation.NewContact(i, j)
	ce.SetSpookParams(w.contactStiffness, w.contactRelaxation, w.dt)
	ce.SetNormal(&nrm)
	ce.SetRA(&ri)
	ce.SetRB(&rj)
	minusN := nrm
	minusN.Negate()
	ce.JeA().SetSpatial(&minusN)
	ce.JeB().SetSpatial(&nrm)
	invI := invComponents(w.inx[i], w.iny[i], w.inz[i])
	invJ := invComponents(w.inx[j], w.iny[j], w.inz[j])
	ce.SetMassA(w.invMass[i], &invI)
	ce.SetMassB(w.invMass[j], &invJ)
	ce.SetViolationA(qvec.Clone().Negate())
	ce.SetViolationB(&qvec)
	velI := w.bodyVelocity(i)
	velJ := w.bodyVelocity(j)
	ce.SetRateA(&velI, math32.NewVec3())
	ce.SetRateB(&velJ, math32.NewVec3())
	forceI := w.bodyForce(i)
	torqueI := w.bodyTorque(i)
	forceJ := w.bodyForce(j)
	torqueJ := w.bodyTorque(j)
	ce.SetExternalA(&forceI, &torqueI)
	ce.SetExternalB(&forceJ, &torqueJ)
	w.solver.AddEquation(&ce.Equation)
	return nil
}

// boxPlane resolves the contacts between the box at index bi and the
// plane at index pi. At most maxPlaneContacts corners are emitted.
func (n *Narrowphase) boxPlane(bi, pi int) error {

	w := n.world
	box := w.shapes[bi].(*shape.Box)
	plane := w.shapes[pi].(*shape.Plane)

	planeNormal := plane.Normal()
	nrm := planeNormal
	nrm.Negate()

	xb := w.BodyPosition(bi)
	xp := w.BodyPosition(pi)
	quat := math32.NewQuaternion(w.qx[bi], w.qy[bi], w.qz[bi], w.qw[bi])

	emitted := 0
	corners := box.Corners()
	for c := 0; c < len(corners) && emitted < maxPlaneContacts; c++ {

		// Corner offset in world frame
		rs := corners[c]
		rs.ApplyQuaternion(quat)

		// Project the corner onto the plane
		worldCorner := *math32.NewVec3().AddVectors(&xb, &rs)
		d := math32.NewVec3().SubVectors(&worldCorner, &xp)
		proj := *worldCorner.Clone().AddScaledVector(&planeNormal, -d.Dot(&planeNormal))

		qvec := *math32.NewVec3().SubVectors(&proj, &xb).Sub(&rs)
		if qvec.Dot(&nrm) >= 0 {
			continue
		}
		emitted++

		prev := w.cmatrix.Previous(bi, pi)
		w.cmatrix.SetCurrent(bi, pi, true)

		if !prev {
			rp := *math32.NewVec3().SubVectors(&proj, &xp)
			bodyB := w.bodies[bi]
			bodyP := w.bodies[pi]
			err := w.collisionImpulse(bi, pi, &rs, &rp, &nrm,
				combineRestitution(bodyB.material, bodyP.material),
				combineFriction(bodyB.material, bodyP.material))
			if err != nil {
				return err
			}
			continue
		}

		// Persistent contact: single-body equation with the full
		// Jacobian (-n, -rs x n)
		ce := equation.NewContact(bi, equation.NoBody)
		ce.SetSpookParams(w.contactStiffness, w.contactRelaxation, w.dt)
		ce.SetNormal(&nrm)
		ce.SetRA(&rs)
		minusN := nrm
		minusN.Negate()
		rot := math32.NewVec3().CrossVectors(&rs, &nrm).Negate()
		ce.JeA().SetSpatial(&minusN)
		ce.JeA().SetRotational(rot)
		inertia := w.inertiaWorld(bi)
		inv := invComponents(inertia.X, inertia.Y, inertia.Z)
		ce.SetMassA(w.invMass[bi], &inv)
		ce.SetViolationA(qvec.Clone().Negate())
		vel := w.bodyVelocity(bi)
		avel := w.bodyAngularVelocity(bi)
		ce.SetRateA(&vel, &avel)
		force := w.bodyForce(bi)
		torque := w.bodyTorque(bi)
		ce.SetExternalA(&force, &torque)
		w.solver.AddEquation(&ce.Equation)
	}
	return nil
}
